package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/clock"
	"github.com/shandysiswandi/gosignin/internal/pkg/codestore"
	"github.com/shandysiswandi/gosignin/internal/pkg/config"
	"github.com/shandysiswandi/gosignin/internal/pkg/goerror"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
	"github.com/shandysiswandi/gosignin/internal/pkg/validator"
)

const testConfig = `
auth:
  code_ttl_seconds: 300
  code_length: 6
jwt:
  ttl_minutes: 30
`

type sentCode struct {
	destination string
	code        string
}

type fakeSender struct {
	mu       sync.Mutex
	sent     []sentCode
	err      error
	rejected bool
}

func (f *fakeSender) Send(_ context.Context, destination, code string) (*entity.Delivery, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sent = append(f.sent, sentCode{destination: destination, code: code})
	if f.err != nil {
		return nil, f.err
	}
	if f.rejected {
		return &entity.Delivery{Delivered: false, ProviderMessage: "isv.MOBILE_NUMBER_ILLEGAL"}, nil
	}
	return &entity.Delivery{Delivered: true, MessageID: "msg-1"}, nil
}

func (f *fakeSender) last(t *testing.T) sentCode {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		t.Fatal("expected a code to be sent")
	}
	return f.sent[len(f.sent)-1]
}

type sequenceGenerator struct {
	mu    sync.Mutex
	codes []string
	next  int
}

func (g *sequenceGenerator) Generate(int) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	code := g.codes[g.next%len(g.codes)]
	g.next++
	return code
}

type failingStore struct{}

func (failingStore) Put(context.Context, string, string, string, time.Duration) error {
	return codestore.ErrUnavailable
}

func (failingStore) VerifyAndConsume(context.Context, string, string, string) (bool, error) {
	return false, codestore.ErrUnavailable
}

type fakeResolver struct {
	mu    sync.Mutex
	calls []entity.ResolveUser
	user  *entity.User
	err   error
}

func (f *fakeResolver) FindOrCreate(_ context.Context, in entity.ResolveUser) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, in)
	return f.user, f.err
}

type fakeRepoDB struct {
	got  entity.User
	user *entity.User
	err  error
}

func (f *fakeRepoDB) FindOrCreateUser(_ context.Context, candidate entity.User) (*entity.User, error) {
	f.got = candidate
	if f.err != nil {
		return nil, f.err
	}
	if f.user != nil {
		return f.user, nil
	}
	return &candidate, nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []UserSignedInEvent
	err    error
}

func (f *fakeMessaging) PublishUserSignedIn(_ context.Context, ev UserSignedInEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.events = append(f.events, ev)
	return f.err
}

type staticID string

func (s staticID) Generate() string { return string(s) }

type fixture struct {
	uc        *Usecase
	clock     *clock.Manual
	store     *codestore.Memory
	sms       *fakeSender
	email     *fakeSender
	resolver  *fakeResolver
	repoDB    *fakeRepoDB
	messaging *fakeMessaging
	jwt       *jwt.Symmetric
}

type fixtureOption func(*Dependency)

func newFixture(t *testing.T, opts ...fixtureOption) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	f := &fixture{
		clock:     clock.NewManual(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		sms:       &fakeSender{},
		email:     &fakeSender{},
		resolver:  &fakeResolver{user: &entity.User{ID: "user-1"}},
		repoDB:    &fakeRepoDB{},
		messaging: &fakeMessaging{},
	}
	f.store = codestore.NewMemory(f.clock)

	f.jwt, err = jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("k", 64)),
		Issuer: "gosignin",
		TTL:    30 * time.Minute,
		Clock:  f.clock,
		UUID:   staticID("jti"),
	})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	dep := Dependency{
		RepoDB:        f.repoDB,
		RepoMessaging: f.messaging,
		Store:         f.store,
		Generator:     &sequenceGenerator{codes: []string{"123456", "654321"}},
		SMSSender:     f.sms,
		EmailSender:   f.email,
		Resolver:      f.resolver,
		Validator:     v,
		Config:        cfg,
		Clock:         f.clock,
		UUID:          staticID("event-1"),
		JWT:           f.jwt,
		Instrument:    instrument.NewNoop(),
	}
	for _, opt := range opts {
		opt(&dep)
	}

	f.uc = New(dep)
	return f
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *goerror.Error, got %T (%v)", err, err)
	}
	if got := gerr.StatusCode(); got != want {
		t.Fatalf("status = %d, want %d (%v)", got, want, err)
	}
}
