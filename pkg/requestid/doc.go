// Package requestid correlates log records with the HTTP request that
// produced them.
//
// Middleware picks or generates an X-Request-ID per request, stores it in
// the context, and echoes it back to the client. On the other end the
// logger reads it out again: wire LoggerExtractor into logger.New and
// every slog record written with the request context carries request_id,
// which is how the error handler ties a logged failure to the response
// the client saw.
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r.Use(requestid.Middleware)
package requestid
