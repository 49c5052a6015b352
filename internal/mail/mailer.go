// Package mail delivers event passes over SMTP. Each pass email embeds
// the registration's QR credential so the attendee can present it at the
// venue without an account.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"

	gomail "gopkg.in/gomail.v2"

	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/domain"
	"github.com/Irfanx3000/Unstop-Igniters-Web/internal/qr"
)

// SMTPConfig holds the outbound mail settings. An empty Host disables
// SMTP delivery; cmd/api falls back to the log mailer in that case.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" }

var passBody = template.Must(template.New("pass").Parse(`<p>Hi {{.Name}},</p>
<p>You're registered for <strong>{{.Event}}</strong>. Show the QR code below at the entrance to mark your attendance.</p>
<p><img src="cid:pass.png" alt="event pass" width="256" height="256"></p>
<p>See you there!<br>Unstop Igniters</p>
`))

// PassMailer sends pass emails through gomail.
type PassMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewPassMailer(cfg SMTPConfig) *PassMailer {
	return &PassMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *PassMailer) SendPass(ctx context.Context, reg domain.Registration, event domain.Event) error {
	payload, err := qr.Encode(qr.Credential{RegistrationID: reg.ID, EventID: reg.EventID})
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	png, err := qr.ImagePNG(payload)
	if err != nil {
		return fmt.Errorf("render pass: %w", err)
	}

	var body bytes.Buffer
	if err := passBody.Execute(&body, map[string]string{
		"Name":  reg.Name,
		"Event": event.Title,
	}); err != nil {
		return fmt.Errorf("render body: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", reg.Email)
	msg.SetHeader("Subject", "Your pass for "+event.Title)
	msg.SetBody("text/html", body.String())
	msg.Embed("pass.png", gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(png)
		return err
	}))

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send pass: %w", err)
	}
	return nil
}

// LogMailer stands in for SMTP in development: it logs the pass instead
// of sending it.
type LogMailer struct{}

func (LogMailer) SendPass(ctx context.Context, reg domain.Registration, event domain.Event) error {
	payload, err := qr.Encode(qr.Credential{RegistrationID: reg.ID, EventID: reg.EventID})
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}
	uri, err := qr.DataURI(payload)
	if err != nil {
		return fmt.Errorf("render pass: %w", err)
	}
	slog.InfoContext(ctx, "smtp disabled, pass not emailed",
		"to", reg.Email,
		"event", event.Title,
		"qr", uri[:32]+"...",
	)
	return nil
}
