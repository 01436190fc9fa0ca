package inbound

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/auth/outbound/mq"
	"github.com/shandysiswandi/gosignin/internal/auth/outbound/resolver"
	"github.com/shandysiswandi/gosignin/internal/auth/outbound/sender"
	"github.com/shandysiswandi/gosignin/internal/auth/usecase"
	"github.com/shandysiswandi/gosignin/internal/pkg/clock"
	"github.com/shandysiswandi/gosignin/internal/pkg/codestore"
	"github.com/shandysiswandi/gosignin/internal/pkg/config"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
	"github.com/shandysiswandi/gosignin/internal/pkg/mail"
	"github.com/shandysiswandi/gosignin/internal/pkg/messaging"
	"github.com/shandysiswandi/gosignin/internal/pkg/otp"
	"github.com/shandysiswandi/gosignin/internal/pkg/router"
	"github.com/shandysiswandi/gosignin/internal/pkg/sms"
	"github.com/shandysiswandi/gosignin/internal/pkg/validator"
)

const testConfig = `
auth:
  code_ttl_seconds: 300
  code_length: 6
jwt:
  ttl_minutes: 30
`

var codePattern = regexp.MustCompile(`>(\d{6})</p>`)

type staticID string

func (s staticID) Generate() string { return string(s) }

type inbox struct {
	mu   sync.Mutex
	msgs []mail.Message
}

func (i *inbox) Send(_ context.Context, msg mail.Message) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.msgs = append(i.msgs, msg)
	return nil
}

func (*inbox) Close() error { return nil }

func (i *inbox) lastCode(t *testing.T) string {
	t.Helper()

	i.mu.Lock()
	defer i.mu.Unlock()
	if len(i.msgs) == 0 {
		t.Fatal("no email sent")
	}
	m := codePattern.FindStringSubmatch(i.msgs[len(i.msgs)-1].HTMLBody)
	if m == nil {
		t.Fatalf("no code in email body %q", i.msgs[len(i.msgs)-1].HTMLBody)
	}
	return m[1]
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]entity.User
}

func (m *memUsers) FindOrCreateUser(_ context.Context, candidate entity.User) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[candidate.ID]; ok {
		return &u, nil
	}
	m.users[candidate.ID] = candidate
	return &candidate, nil
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

type testServer struct {
	srv   *httptest.Server
	inbox *inbox
	clock *clock.Manual
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	ins := instrument.NewNoop()
	clk := clock.NewManual(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	box := &inbox{}
	users := &memUsers{users: map[string]entity.User{}}

	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("s", 64)),
		Issuer: "gosignin",
		TTL:    30 * time.Minute,
		Clock:  clk,
		UUID:   staticID("jti"),
	})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	r := router.NewRouter(router.Config{UUID: staticID("cid"), JWT: tokens, Instrument: ins})

	RegisterHTTPEndpoint(r, usecase.New(usecase.Dependency{
		RepoDB:        users,
		RepoMessaging: mq.NewMessaging(messaging.NewLog(), ins),
		Store:         codestore.NewMemory(clk),
		Generator:     otp.NewNumeric(),
		SMSSender:     sender.NewSMS(sms.NewLog(), sender.SMSConfig{SignName: "GoSignin"}, ins),
		EmailSender:   sender.NewEmail(box, sender.EmailConfig{AccountName: "GoSignin"}, ins),
		Resolver:      resolver.NewLocal(users),
		Validator:     v,
		Config:        cfg,
		Clock:         clk,
		UUID:          staticID("evt"),
		JWT:           tokens,
		Instrument:    ins,
	}))

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, inbox: box, clock: clk}
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequestWithContext(context.Background(), method, ts.srv.URL+path, strings.NewReader(body))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func TestEmailCodeScenario(t *testing.T) {
	// Arrange
	ts := newTestServer(t)

	// Act & Assert: issue
	status, env := ts.do(t, http.MethodPost, "/auth/email", `{"email":"Jane@Example.com"}`, "")
	if status != http.StatusOK || env.Message != "verification code sent" {
		t.Fatalf("issue: %d %+v", status, env)
	}
	code := ts.inbox.lastCode(t)

	// wrong code keeps the record
	status, env = ts.do(t, http.MethodGet, "/auth/email?email=jane@example.com&code=000000x", "", "")
	if status != http.StatusBadRequest || env.Success {
		t.Fatalf("wrong code: %d %+v", status, env)
	}

	// right code verifies once
	status, env = ts.do(t, http.MethodGet, "/auth/email?email=jane@example.com&code="+code, "", "")
	if status != http.StatusOK || env.Message != "verification code verified" {
		t.Fatalf("verify: %d %+v", status, env)
	}

	status, env = ts.do(t, http.MethodGet, "/auth/email?email=jane@example.com&code="+code, "", "")
	if status != http.StatusBadRequest || env.Message != "verification code is invalid or expired" {
		t.Fatalf("replay: %d %+v", status, env)
	}
}

func TestEmailCodeExpires(t *testing.T) {
	ts := newTestServer(t)

	if status, env := ts.do(t, http.MethodPost, "/auth/email", `{"email":"jane@example.com"}`, ""); status != http.StatusOK {
		t.Fatalf("issue: %d %+v", status, env)
	}
	code := ts.inbox.lastCode(t)

	ts.clock.Advance(301 * time.Second)

	status, _ := ts.do(t, http.MethodGet, "/auth/email?email=jane@example.com&code="+code, "", "")
	if status != http.StatusBadRequest {
		t.Fatalf("expired code should be rejected, got %d", status)
	}
}

func TestVerifyRejectsPaddedCode(t *testing.T) {
	ts := newTestServer(t)

	if status, env := ts.do(t, http.MethodPost, "/auth/email", `{"email":"jane@example.com"}`, ""); status != http.StatusOK {
		t.Fatalf("issue: %d %+v", status, env)
	}
	code := ts.inbox.lastCode(t)

	status, _ := ts.do(t, http.MethodGet, "/auth/email?email=jane@example.com&code=%20"+code, "", "")
	if status != http.StatusBadRequest {
		t.Fatalf("padded code should be rejected, got %d", status)
	}

	status, env := ts.do(t, http.MethodGet, "/auth/email?email=jane@example.com&code="+code, "", "")
	if status != http.StatusOK {
		t.Fatalf("exact code should still verify, got %d %+v", status, env)
	}
}

func TestVerifyMissingParams(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		path string
	}{
		{name: "sms without code", path: "/auth/sms?phoneNumber=13800138000"},
		{name: "sms without phone", path: "/auth/sms?code=123456"},
		{name: "email without anything", path: "/auth/email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, env := ts.do(t, http.MethodGet, tt.path, "", "")
			if status != http.StatusBadRequest || env.Success {
				t.Fatalf("got %d %+v", status, env)
			}
		})
	}
}

func TestIssueInvalidDestination(t *testing.T) {
	ts := newTestServer(t)

	status, env := ts.do(t, http.MethodPost, "/auth/sms", `{"phoneNumber":"12345"}`, "")
	if status != http.StatusBadRequest || env.Message != "please enter a valid phone number" {
		t.Fatalf("sms: %d %+v", status, env)
	}

	status, env = ts.do(t, http.MethodPost, "/auth/email", `{"email":"not-an-email"}`, "")
	if status != http.StatusBadRequest || env.Message != "please enter a valid email address" {
		t.Fatalf("email: %d %+v", status, env)
	}

	status, _ = ts.do(t, http.MethodPost, "/auth/sms", `{"phone":"13800138000"}`, "")
	if status != http.StatusBadRequest {
		t.Fatalf("unknown field should be rejected, got %d", status)
	}
}

func TestSignInAndSession(t *testing.T) {
	// Arrange
	ts := newTestServer(t)
	if status, env := ts.do(t, http.MethodPost, "/auth/email", `{"email":"jane@example.com"}`, ""); status != http.StatusOK {
		t.Fatalf("issue: %d %+v", status, env)
	}
	code := ts.inbox.lastCode(t)

	// Act
	status, env := ts.do(t, http.MethodPost, "/auth/signin",
		`{"channel":"email","destination":"jane@example.com","code":"`+code+`"}`, "")

	// Assert
	if status != http.StatusOK {
		t.Fatalf("signin: %d %+v", status, env)
	}
	var signin SignInResponse
	if err := json.Unmarshal(env.Data, &signin); err != nil {
		t.Fatalf("decode signin: %v", err)
	}
	if signin.AccessToken == "" || signin.TokenType != "Bearer" {
		t.Fatalf("unexpected token response %+v", signin)
	}
	if signin.Identity == nil || signin.Identity.Username != "jane" || signin.Identity.Email != "jane@example.com" {
		t.Fatalf("unexpected identity %+v", signin.Identity)
	}

	status, env = ts.do(t, http.MethodGet, "/auth/session", "", signin.AccessToken)
	if status != http.StatusOK {
		t.Fatalf("session: %d %+v", status, env)
	}
	var session SessionResponse
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if session.IdentityID != "jane@example.com" || session.Channel != "email" {
		t.Fatalf("unexpected session %+v", session)
	}

	// the code was spent by the sign-in
	status, _ = ts.do(t, http.MethodPost, "/auth/signin",
		`{"channel":"email","destination":"jane@example.com","code":"`+code+`"}`, "")
	if status != http.StatusUnauthorized {
		t.Fatalf("replayed signin should be 401, got %d", status)
	}
}

func TestSignInBadRequests(t *testing.T) {
	ts := newTestServer(t)

	status, env := ts.do(t, http.MethodPost, "/auth/signin", `{"channel":"fax","destination":"x","code":"1"}`, "")
	if status != http.StatusBadRequest || env.Error["channel"] == "" {
		t.Fatalf("unknown channel: %d %+v", status, env)
	}

	status, _ = ts.do(t, http.MethodGet, "/auth/session", "", "")
	if status != http.StatusUnauthorized {
		t.Fatalf("session without token: %d", status)
	}
}

func TestResolveUserEndpoint(t *testing.T) {
	ts := newTestServer(t)

	status, env := ts.do(t, http.MethodPost, "/auth/user", `{"id":"13800138000","phone":"13800138000"}`, "")
	if status != http.StatusOK {
		t.Fatalf("resolve: %d %+v", status, env)
	}
	var user entity.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	if user.Username != "user_8000" || user.FirstName != "user" || user.LastName != "8000" {
		t.Fatalf("unexpected defaults %+v", user)
	}

	status, _ = ts.do(t, http.MethodPost, "/auth/user", `{"id":"13800138000"}`, "")
	if status != http.StatusBadRequest {
		t.Fatalf("missing phone and email should be 400, got %d", status)
	}
}
