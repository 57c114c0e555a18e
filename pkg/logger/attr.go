package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups the non-nil errors under "errors", keyed by position.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under "request_id".
func RequestID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("request_id", id)
}

func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Schema records the schema source, a file path or "inline".
func Schema(source string) slog.Attr {
	return slog.String("schema", source)
}

func Locale(lang string) slog.Attr {
	return slog.String("locale", lang)
}

// Violations records the number of failed checks under "violations".
func Violations(n int) slog.Attr {
	return slog.Int("violations", n)
}

// Fields records the failing field paths under "fields".
func Fields(paths []string) slog.Attr {
	return slog.Any("fields", paths)
}
