package middleware

import (
	"io"
	"net/http"
)

// drainLimit caps how much of an unread body is consumed before closing, bigger leftovers just close the connection.
const drainLimit = 256 << 10

// DrainAndCloseRequest drains and closes the request body once the handler is done.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.CopyN(io.Discard, r.Body, drainLimit)
			_ = r.Body.Close()
		})
	}
}
