package middleware

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

// Recoverer converts handler panics into 500 responses with a generic message.
// The stack trace is written to the response body only when includeStack is
// set (non-production); it is always logged server-side.
func Recoverer(includeStack bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := debug.Stack()
					log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, stack)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					if includeStack {
						fmt.Fprintf(w, `{"success":false,"message":"Internal server error","error":%q,"stack":%q}`, fmt.Sprint(rec), stack)
						return
					}
					w.Write([]byte(`{"success":false,"message":"Internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
