package requestid

import (
	"net/http"

	"github.com/google/uuid"
)

// Header is the canonical correlation header, echoed on every response.
const Header = "X-Request-ID"

const maxIDLen = 128

// Middleware ensures every request carries a correlation ID. A valid
// client-supplied X-Request-ID is reused so IDs survive proxy hops;
// anything else is replaced with a fresh UUID. The chosen ID is stored in
// the request context and echoed in the response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if !validID(id) {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// validID accepts the alphabet UUIDs and common tracing IDs use. Anything
// wider would let clients smuggle header or log injection payloads into
// request_id attributes.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
