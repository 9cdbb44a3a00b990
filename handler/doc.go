// Package handler provides type-safe HTTP request handling for JSON APIs.
//
// Handlers are generic functions that receive a bound, typed request and
// return a Response. Binding, error formatting, and response rendering are
// handled by Wrap, so individual handlers carry no HTTP boilerplate:
//
//	type VerifyRequest struct {
//		Purpose string `json:"purpose"`
//		Code    string `json:"code"`
//	}
//
//	verify := handler.HandlerFunc[handler.Context, VerifyRequest](
//		func(ctx handler.Context, req VerifyRequest) handler.Response {
//			if err := service.Verify(ctx, subject, req.Purpose, req.Code); err != nil {
//				return handler.JSONError(err)
//			}
//			return handler.Empty()
//		},
//	)
//
//	r.Post("/verify", handler.Wrap(verify,
//		handler.WithBinder[handler.Context, VerifyRequest](binder.BindJSON()),
//	))
//
// Errors flow through an ErrorHandler. The default maps HTTPError values to
// their status code and everything else to 500; NewErrorHandler produces a
// logging JSON variant meant to be configured once in main and shared by all
// mounted services.
package handler
