package router

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/uid"
)

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

type clientIPKey struct{}

// ClientIP returns the caller address resolved by the router, or "".
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// middlewareRequestContext stamps every request with a correlation id and the
// client address. Forwarding headers are honored only when trustProxy is set;
// otherwise a caller could pick any address it likes.
func middlewareRequestContext(gen uid.StringID, trustProxy bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cid := correlationID(r.Header)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}
			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				ctx = instrument.SetCorrelationID(ctx, cid)
			}

			if ip := clientIP(r, trustProxy); ip != "" {
				ctx = context.WithValue(ctx, clientIPKey{}, ip)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func correlationID(h http.Header) string {
	for _, name := range []string{HeaderCorrelationID, HeaderRequestID} {
		v := h.Get(name)
		if strings.ContainsAny(v, "\r\n") {
			continue
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if len(v) > maxCorrelationIDLen {
			v = v[:maxCorrelationIDLen]
		}
		return v
	}
	return ""
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		candidates := []string{r.Header.Get("True-Client-IP"), r.Header.Get("X-Real-IP")}
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			candidates = append(candidates, first)
		}
		for _, c := range candidates {
			if c = strings.TrimSpace(c); net.ParseIP(c) != nil {
				return c
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return ""
}
