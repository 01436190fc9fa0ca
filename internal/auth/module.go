package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/auth/inbound"
	"github.com/shandysiswandi/gosignin/internal/auth/outbound/db"
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
	"github.com/shandysiswandi/gosignin/internal/pkg/uid"
	"github.com/shandysiswandi/gosignin/internal/pkg/validator"
)

const (
	resolverDriverLocal = "local"
	resolverDriverHTTP  = "http"
)

type identityResolver interface {
	FindOrCreate(ctx context.Context, in entity.ResolveUser) (*entity.User, error)
}

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CodeStore  codestore.Store            `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	SMS        sms.Sender                 `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Generator  otp.Generator              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	var idResolver identityResolver
	switch driver := strings.TrimSpace(dep.Config.GetString("auth.resolver.driver")); driver {
	case "", resolverDriverLocal:
		idResolver = resolver.NewLocal(dbAuth)
	case resolverDriverHTTP:
		idResolver = resolver.NewHTTP(resolver.HTTPConfig{
			BaseURL: dep.Config.GetString("auth.resolver.http.base_url"),
			Timeout: dep.Config.GetSecond("auth.resolver.http.timeout_seconds"),
		}, dep.Instrument)
	default:
		return fmt.Errorf("auth: unknown resolver driver %q", driver)
	}

	smsSender := sender.NewSMS(dep.SMS, sender.SMSConfig{
		SignName:    dep.Config.GetString("sms.sign_name"),
		Template:    dep.Config.GetString("sms.template"),
		CountryCode: dep.Config.GetString("sms.country_code"),
	}, dep.Instrument)

	emailSender := sender.NewEmail(dep.Mail, sender.EmailConfig{
		From:         dep.Config.GetString("email.from"),
		AccountName:  dep.Config.GetString("email.account_name"),
		Subject:      dep.Config.GetString("email.subject"),
		Tag:          dep.Config.GetString("email.tag"),
		ValidMinutes: int(dep.Config.GetSecond("auth.code_ttl_seconds").Minutes()),
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Store:         dep.CodeStore,
		Generator:     dep.Generator,
		SMSSender:     smsSender,
		EmailSender:   emailSender,
		Resolver:      idResolver,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Clock:         dep.Clock,
		UUID:          dep.UUID,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
