package sender

import (
	"context"
	"strings"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/sms"
)

// DefaultSMSTemplate is used when no template is configured. {sign} and
// {code} are replaced at send time.
const DefaultSMSTemplate = "{sign}: your verification code is {code}, valid for 5 minutes."

// SMSConfig configures the SMS code sender.
type SMSConfig struct {
	// SignName prefixes every message, e.g. the product name.
	SignName string
	// Template is the message text with {sign} and {code} placeholders.
	Template string
	// CountryCode is prepended to national numbers, e.g. "+86".
	CountryCode string
}

// SMS sends verification codes as short messages.
type SMS struct {
	client sms.Sender
	cfg    SMSConfig
	ins    instrument.Instrumentation
}

func NewSMS(client sms.Sender, cfg SMSConfig, ins instrument.Instrumentation) *SMS {
	if strings.TrimSpace(cfg.Template) == "" {
		cfg.Template = DefaultSMSTemplate
	}
	return &SMS{client: client, cfg: cfg, ins: ins}
}

func (s *SMS) Send(ctx context.Context, destination, code string) (_ *entity.Delivery, err error) {
	ctx, span := startSpan(ctx, s.ins, "SendSMS")
	defer func() { endSpan(span, err) }()

	receipt, err := s.client.Send(ctx, sms.Message{
		To:   s.cfg.CountryCode + destination,
		Body: s.render(code),
	})
	if err != nil {
		return nil, err
	}

	if receipt.MessageID == "" {
		return &entity.Delivery{Delivered: false, ProviderMessage: "gateway returned no message id"}, nil
	}

	return &entity.Delivery{Delivered: true, MessageID: receipt.MessageID}, nil
}

func (s *SMS) render(code string) string {
	return strings.NewReplacer("{sign}", s.cfg.SignName, "{code}", code).Replace(s.cfg.Template)
}
