// Package mail implements the MailService interface over SMTP.
package mail

import (
	"context"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"

	"htga/config"
	"htga/internal/domain/service"
)

type smtpService struct {
	client *gomail.Client
	from   string
}

// New creates the SMTP mail service from config.
func New(cfg *config.Config) (service.MailService, error) {
	if cfg.Mail == nil {
		return nil, errors.New("mail configuration is missing")
	}

	client, err := gomail.NewClient(cfg.Mail.Host,
		gomail.WithPort(cfg.Mail.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Mail.Username),
		gomail.WithPassword(cfg.Mail.Password),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create smtp client")
	}

	return &smtpService{client: client, from: cfg.Mail.From}, nil
}

// Send delivers an HTML message with a plain-text alternative part.
func (s *smtpService) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	msg := gomail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return errors.Wrap(err, "invalid from address")
	}
	if err := msg.To(to); err != nil {
		return errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, textBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send mail")
	}

	return nil
}
