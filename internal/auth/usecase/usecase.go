package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/clock"
	"github.com/shandysiswandi/gosignin/internal/pkg/config"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/jwt"
	"github.com/shandysiswandi/gosignin/internal/pkg/otp"
	"github.com/shandysiswandi/gosignin/internal/pkg/uid"
	"github.com/shandysiswandi/gosignin/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultCodeTTL = 300 * time.Second

type UserSignedInEvent struct {
	EventID    string
	IdentityID string
	Channel    entity.Channel
	Username   string
	SignedInAt time.Time
}

type codeSender interface {
	Send(ctx context.Context, destination, code string) (*entity.Delivery, error)
}

type codeStore interface {
	Put(ctx context.Context, channel, identity, code string, ttl time.Duration) error
	VerifyAndConsume(ctx context.Context, channel, identity, code string) (bool, error)
}

type identityResolver interface {
	FindOrCreate(ctx context.Context, in entity.ResolveUser) (*entity.User, error)
}

type repoDB interface {
	FindOrCreateUser(ctx context.Context, candidate entity.User) (*entity.User, error)
}

type repoMessaging interface {
	PublishUserSignedIn(ctx context.Context, ev UserSignedInEvent) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	store         codeStore
	generator     otp.Generator
	resolver      identityResolver
	validator     validator.Validator
	cfg           config.Config
	clock         clock.Clocker
	uuid          uid.StringID
	jwt           jwt.JWT
	ins           instrument.Instrumentation

	channels map[entity.Channel]channelDescriptor

	issuedCounter   metric.Int64Counter
	verifiedCounter metric.Int64Counter
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Store         codeStore
	Generator     otp.Generator
	SMSSender     codeSender
	EmailSender   codeSender
	Resolver      identityResolver
	Validator     validator.Validator
	Config        config.Config
	Clock         clock.Clocker
	UUID          uid.StringID
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	s := &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		store:         dep.Store,
		generator:     dep.Generator,
		resolver:      dep.Resolver,
		validator:     dep.Validator,
		cfg:           dep.Config,
		clock:         dep.Clock,
		uuid:          dep.UUID,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}

	s.channels = map[entity.Channel]channelDescriptor{
		entity.ChannelSMS: {
			channel:  entity.ChannelSMS,
			validate: s.tagPredicate("required,cnphone"),
			sender:   dep.SMSSender,
		},
		entity.ChannelEmail: {
			channel:  entity.ChannelEmail,
			validate: s.tagPredicate("required,otpemail"),
			sender:   dep.EmailSender,
		},
	}

	meter := s.ins.Meter("auth.usecase")

	var err error
	s.issuedCounter, err = meter.Int64Counter("auth.code.issued", metric.WithDescription("Verification codes issued"))
	if err != nil {
		slog.Error("failed to create auth.code.issued counter", "error", err)
	}
	s.verifiedCounter, err = meter.Int64Counter("auth.code.verified", metric.WithDescription("Verification code checks"))
	if err != nil {
		slog.Error("failed to create auth.code.verified counter", "error", err)
	}

	return s
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("auth.usecase").Start(ctx, name)
}

func (s *Usecase) tagPredicate(tag string) func(string) bool {
	return func(v string) bool {
		return s.validator.Var(v, tag) == nil
	}
}

func (s *Usecase) codeTTL() time.Duration {
	if s.cfg == nil {
		return defaultCodeTTL
	}
	if ttl := s.cfg.GetSecond("auth.code_ttl_seconds"); ttl > 0 {
		return ttl
	}
	return defaultCodeTTL
}

func (s *Usecase) sessionTTL() time.Duration {
	if s.cfg == nil {
		return jwt.DefaultTTL
	}
	if ttl := s.cfg.GetMinute("jwt.ttl_minutes"); ttl > 0 {
		return ttl
	}
	return jwt.DefaultTTL
}

func (s *Usecase) codeLength() int {
	if s.cfg == nil {
		return otp.DefaultLength
	}
	return s.cfg.GetInt("auth.code_length")
}

func count(ctx context.Context, c metric.Int64Counter, ch entity.Channel, result string) {
	if c == nil {
		return
	}
	c.Add(ctx, 1, metric.WithAttributes(
		attribute.String("channel", ch.String()),
		attribute.String("result", result),
	))
}
