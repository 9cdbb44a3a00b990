// Package httpserver runs the HTTP API with graceful shutdown.
//
// Server is a thin wrapper over http.Server: Run blocks serving one handler
// until the context is canceled or an interrupt/TERM signal arrives, then
// drains in-flight requests within a configurable grace period. Construction
// goes through New with functional options, or NewFromConfig when settings
// come from the environment.
//
// HealthCheckHandler serves Kubernetes-style probes: with no dependency
// checks it answers liveness, with checks (such as pg.Healthcheck) it
// answers readiness.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Run failures wrap ErrStart and Shutdown failures wrap ErrShutdown, both
// inspectable with errors.Is.
package httpserver
