package sender

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	"github.com/shandysiswandi/gosignin/internal/auth/entity"
	"github.com/shandysiswandi/gosignin/internal/pkg/instrument"
	"github.com/shandysiswandi/gosignin/internal/pkg/mail"
)

const defaultEmailSubject = "Your verification code"

var emailTemplate = template.Must(template.New("code").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2328;">
  <p>Hello,</p>
  <p>Your {{.AccountName}} verification code is:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 6px;">{{.Code}}</p>
  <p>The code is valid for {{.ValidMinutes}} minutes. If you did not request it, you can ignore this email.</p>
</body>
</html>
`))

// EmailConfig configures the email code sender.
type EmailConfig struct {
	// From is the sender address; the mail driver default is used when empty.
	From string
	// AccountName is shown in the body and as the sender display name.
	AccountName string
	// Subject is the message subject line.
	Subject string
	// ValidMinutes is the validity window quoted in the body.
	ValidMinutes int
	// Tag labels the message for delivery statistics; empty sends none.
	Tag string
}

// Email sends verification codes as HTML email.
type Email struct {
	client mail.Mail
	cfg    EmailConfig
	ins    instrument.Instrumentation
}

func NewEmail(client mail.Mail, cfg EmailConfig, ins instrument.Instrumentation) *Email {
	if strings.TrimSpace(cfg.Subject) == "" {
		cfg.Subject = defaultEmailSubject
	}
	if cfg.ValidMinutes <= 0 {
		cfg.ValidMinutes = 5
	}
	return &Email{client: client, cfg: cfg, ins: ins}
}

func (e *Email) Send(ctx context.Context, destination, code string) (_ *entity.Delivery, err error) {
	ctx, span := startSpan(ctx, e.ins, "SendEmail")
	defer func() { endSpan(span, err) }()

	body, err := e.render(code)
	if err != nil {
		return nil, err
	}

	from := e.cfg.From
	if from != "" && e.cfg.AccountName != "" {
		from = e.cfg.AccountName + " <" + from + ">"
	}

	if err := e.client.Send(ctx, mail.Message{
		From:     from,
		To:       []string{destination},
		Subject:  e.cfg.Subject,
		HTMLBody: body,
		Tag:      e.cfg.Tag,
	}); err != nil {
		return nil, err
	}

	return &entity.Delivery{Delivered: true}, nil
}

func (e *Email) render(code string) (string, error) {
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		AccountName  string
		Code         string
		ValidMinutes int
	}{
		AccountName:  e.cfg.AccountName,
		Code:         code,
		ValidMinutes: e.cfg.ValidMinutes,
	})
	return buf.String(), err
}
