package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/gosignin/internal/pkg/config"
)

// maintenanceRules answers whether a route is switched off. Entries in
// app.maintenance.endpoints are either a route ("/auth/sms"), a method and a
// route ("POST /auth/sms") or "*" for everything except the health probe.
type maintenanceRules struct {
	all    bool
	routes map[string]struct{}
}

func newMaintenanceRules(cfg config.Config) maintenanceRules {
	rules := maintenanceRules{routes: make(map[string]struct{})}
	if cfg == nil {
		return rules
	}

	for _, entry := range cfg.GetArray("app.maintenance.endpoints") {
		entry = strings.Join(strings.Fields(entry), " ")
		switch {
		case entry == "":
		case entry == "*":
			rules.all = true
		default:
			if method, route, ok := strings.Cut(entry, " "); ok {
				entry = strings.ToUpper(method) + " " + route
			}
			rules.routes[entry] = struct{}{}
		}
	}
	return rules
}

func (m maintenanceRules) blocked(method, route string) bool {
	if route == "/health" {
		return false
	}
	if m.all {
		return true
	}
	if _, ok := m.routes[route]; ok {
		return true
	}
	_, ok := m.routes[method+" "+route]
	return ok
}

func middlewareMaintenance(cfg config.Config) Middleware {
	rules := newMaintenanceRules(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if rules.blocked(r.Method, matchedRoutePath(r)) {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
