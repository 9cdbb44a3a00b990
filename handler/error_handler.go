package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vzoverflow/vzoverflow/pkg/logger"
	"github.com/vzoverflow/vzoverflow/pkg/requestid"
)

// errorInfo is the classified view of an error: how to report it to the
// client and how loudly to log it.
type errorInfo struct {
	StatusCode int
	Detail     *ErrorDetail
	LogLevel   slog.Level
}

func isClientError(statusCode int) bool {
	return statusCode >= http.StatusBadRequest && statusCode < http.StatusInternalServerError
}

// classifyError maps an error to a response status, a JSON error detail, and
// a log level. Unknown errors are reported as a generic 500 so internal
// details never leak to the client.
func classifyError(err error) errorInfo {
	status := http.StatusInternalServerError
	detail := &ErrorDetail{
		Code:    "internal_error",
		Message: "An error occurred processing your request",
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		detail = &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	// Validation errors override an HTTP error when both are present.
	var valErr ValidationError
	if errors.As(err, &valErr) {
		status = http.StatusUnprocessableEntity
		detail = &ErrorDetail{
			Code:    "validation_error",
			Message: valErr.Error(),
			Details: map[string][]string(valErr),
		}
	}

	level := slog.LevelError
	if isClientError(status) {
		level = slog.LevelWarn
	}

	return errorInfo{StatusCode: status, Detail: detail, LogLevel: level}
}

// NewErrorHandler creates the default error handler: it logs the error with
// request context and renders the classified JSON error envelope.
// Configure once in main and pass to all mounted services.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		info := classifyError(err)

		log.LogAttrs(ctx.Request().Context(), info.LogLevel, "request error",
			logger.RequestID(requestid.FromContext(ctx.Request().Context())),
			logger.Error(err),
			slog.Int("status_code", info.StatusCode),
			slog.String("method", ctx.Request().Method),
			slog.String("path", ctx.Request().URL.Path),
			logger.Component("error_handler"),
		)

		response := JSONError(info.Detail, WithJSONStatus(info.StatusCode))
		if renderErr := response.Render(ctx.ResponseWriter(), ctx.Request()); renderErr != nil {
			http.Error(ctx.ResponseWriter(), "Internal Server Error", http.StatusInternalServerError)
		}
	}
}
