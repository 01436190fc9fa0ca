package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/shandysiswandi/gosignin/internal/pkg/config"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
)

func TestMaskerHidesCodes(t *testing.T) {
	// Arrange
	cfg, err := config.NewViperFromBytes("yaml", []byte("instrument:\n  log_mask_fields: \"code, Password\"\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	m := newMasker(cfg)

	// Act
	query := m.values(url.Values{"phoneNumber": {"13800138000"}, "code": {"123456"}})
	body := m.body("application/json", []byte(`{"channel":"sms","code":"123456","nested":{"password":"x"}}`), false)
	headers := m.headers(http.Header{"Authorization": {"Bearer abc"}, "Accept": {"*/*"}})

	// Assert
	if query["code"] != masked || query["phoneNumber"] != "13800138000" {
		t.Fatalf("unexpected query %v", query)
	}
	got, ok := body.(map[string]any)
	if !ok {
		t.Fatalf("unexpected body type %T", body)
	}
	if got["code"] != masked || got["nested"].(map[string]any)["password"] != masked {
		t.Fatalf("unexpected body %v", got)
	}
	if headers.Get("Authorization") != masked || headers.Get("Accept") != "*/*" {
		t.Fatalf("unexpected headers %v", headers)
	}
}

func TestMaskerBodyShapes(t *testing.T) {
	m := newMasker(nil)

	if got := m.body("", nil, false); got != nil {
		t.Fatalf("empty body should log nil, got %v", got)
	}
	if got := m.body("text/plain", []byte{0xff, 0xfe}, false); got != "<binary body omitted>" {
		t.Fatalf("unexpected binary body %v", got)
	}
	form := m.body("application/x-www-form-urlencoded", []byte("authorization=x&email=a%40b.co"), false)
	if f := form.(map[string]any); f["authorization"] != masked || f["email"] != "a@b.co" {
		t.Fatalf("unexpected form body %v", f)
	}
	if got := m.body("text/plain", []byte("hello"), true).(map[string]any); got["truncated"] != true {
		t.Fatalf("truncated body should be flagged, got %v", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		headers    map[string]string
		want       string
	}{
		{name: "remote addr", want: "192.0.2.1"},
		{name: "untrusted header ignored", headers: map[string]string{"X-Forwarded-For": "203.0.113.9"}, want: "192.0.2.1"},
		{name: "forwarded for", trustProxy: true, headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, want: "203.0.113.9"},
		{name: "real ip first", trustProxy: true, headers: map[string]string{"X-Real-IP": "198.51.100.7", "X-Forwarded-For": "203.0.113.9"}, want: "198.51.100.7"},
		{name: "garbage falls back", trustProxy: true, headers: map[string]string{"X-Real-IP": "nope"}, want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			var got string
			h := middlewareRequestContext(nil, tt.trustProxy)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = ClientIP(r.Context())
			}))
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Fatalf("client ip = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCorrelationIDFallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "  req-7  ")

	var got string
	h := middlewareRequestContext(staticID("generated"), false)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got = instrument.GetCorrelationID(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got != "req-7" || rec.Header().Get(HeaderCorrelationID) != "req-7" {
		t.Fatalf("unexpected correlation id %q", got)
	}

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != "generated" {
		t.Fatalf("expected generated id, got %q", got)
	}

	if ClientIP(context.Background()) != "" {
		t.Fatal("empty context should have no client ip")
	}
}

func TestMaintenanceRules(t *testing.T) {
	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  maintenance:\n    endpoints: \"post /auth/sms, /auth/email\"\n"))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	rules := newMaintenanceRules(cfg)

	tests := []struct {
		method, route string
		want          bool
	}{
		{http.MethodPost, "/auth/sms", true},
		{http.MethodGet, "/auth/sms", false},
		{http.MethodGet, "/auth/email", true},
		{http.MethodPost, "/auth/signin", false},
	}
	for _, tt := range tests {
		if got := rules.blocked(tt.method, tt.route); got != tt.want {
			t.Fatalf("blocked(%s %s) = %v, want %v", tt.method, tt.route, got, tt.want)
		}
	}

	all := maintenanceRules{all: true}
	if !all.blocked(http.MethodGet, "/auth/sms") || all.blocked(http.MethodGet, "/health") {
		t.Fatal("wildcard should block everything but health")
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer   abc ", want: "abc", ok: true},
		{header: "Basic abc", ok: false},
		{header: "Bearer", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			h := http.Header{}
			h.Set("Authorization", tt.header)

			got, ok := bearerToken(h)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("bearerToken(%q) = %q, %v", tt.header, got, ok)
			}
		})
	}
}

func TestPublicRoutes(t *testing.T) {
	if !publicRoutes.has(http.MethodPost, "/auth/signin") {
		t.Fatal("sign-in must be public")
	}
	if publicRoutes.has(http.MethodGet, "/auth/session") {
		t.Fatal("session must require a token")
	}
}
