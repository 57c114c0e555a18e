package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

// ErrInvalidDocument is returned by check when the document has violations.
var ErrInvalidDocument = errors.New("document is invalid")

// Exit codes of the numstr binary.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitError   = 2
)

// Execute runs the command line with the process arguments and returns the
// exit code.
func Execute(ctx context.Context) int {
	return run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrInvalidDocument):
		return ExitInvalid
	default:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return ExitError
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "numstr",
		Short: "Validate numeric strings in documents",
		Long: `numstr checks decimal values carried as strings against declarative
schemas: numeric format, integers, comparisons against literals or other
fields of the same document, ranges and decimal places.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(checkCmd(), serveCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "numstr %s\n", Version)
		},
	}
}
