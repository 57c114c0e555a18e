// Package httpserver runs an http.Server with graceful shutdown.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//	    return err
//	}
//
// Run blocks until ctx is cancelled or SIGINT/SIGTERM arrives, then gives
// in-flight requests the shutdown timeout to finish. Startup and shutdown
// failures wrap ErrStart and ErrShutdown. HealthCheckHandler serves liveness
// and readiness probes.
package httpserver
