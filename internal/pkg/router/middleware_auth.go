package router

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
)

// publicRoutes are reachable without a session token, keyed "METHOD route".
// Everything the sign-in flow needs before a token exists lives here.
var publicRoutes = routeSet{
	"GET /":             {},
	"GET /health":       {},
	"GET /auth/sms":     {},
	"GET /auth/email":   {},
	"POST /auth/sms":    {},
	"POST /auth/email":  {},
	"POST /auth/user":   {},
	"POST /auth/signin": {},
}

type routeSet map[string]struct{}

func (s routeSet) has(method, route string) bool {
	_, ok := s[method+" "+route]
	return ok
}

func bearerToken(h http.Header) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(h.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	return token, true
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="gosignin"`)
	writeJSON(w, errorResponse{Message: msg}, http.StatusUnauthorized)
}

// middlewareAuthentication puts verified claims in the request context.
// Protected routes without a valid token stop here with 401.
func middlewareAuthentication(verifier jwt.JWT, public routeSet) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public.has(r.Method, matchedRoutePath(r)) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r.Header)
			if !ok || verifier == nil {
				unauthorized(w, "Authentication required")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				slog.DebugContext(r.Context(), "rejected session token", "error", err)
				unauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
