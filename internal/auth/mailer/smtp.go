package mailer

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	mail "github.com/wneessen/go-mail"
)

// SMTPConfig holds the connection settings for the upstream SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string

	// SendsPerSecond caps outbound throughput so a signup burst cannot
	// trip the relay's abuse limits. Zero disables throttling.
	SendsPerSecond float64
}

// SMTPSender delivers messages over SMTP using go-mail.
type SMTPSender struct {
	client  *mail.Client
	from    string
	limiter *rate.Limiter
}

// NewSMTPSender builds a sender from the given relay settings.
func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.SendsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.SendsPerSecond), 1)
	}

	return &SMTPSender{
		client:  client,
		from:    cfg.From,
		limiter: limiter,
	}, nil
}

// Send delivers a single message, waiting on the throttle first.
func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("smtp from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("smtp to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	if msg.HTMLBody != "" {
		m.AddAlternativeString(mail.TypeTextHTML, msg.HTMLBody)
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
