package requestid

import (
	"context"
	"log/slog"
)

// LoggerExtractor adapts FromContext to the logger package's context
// extractor hook, so every record logged with a request-scoped context
// carries a request_id attribute.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id := FromContext(ctx); id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
