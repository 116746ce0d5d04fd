// Package mailer sends transactional email over SMTP with bounded
// retries.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

const defaultRetries = 3

// ErrNoRecipient is returned when an email names no destination address.
var ErrNoRecipient = errors.New("mailer: no recipient address")

// Email is one outbound message.
type Email struct {
	From    string
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// SMTPSettings configures the SMTP connection.
type SMTPSettings struct {
	Host     string
	Port     int
	Secure   bool
	User     string
	Password string
}

// Mailer delivers email through a fixed SMTP endpoint. Deliveries are
// retried with exponential backoff before giving up.
type Mailer struct {
	settings SMTPSettings
	retries  int
	sleep    func(context.Context, time.Duration) error
	deliver  func(context.Context, SMTPSettings, *mail.Msg) error
	log      zerolog.Logger
}

// New creates a Mailer. A retries value below 1 falls back to the
// default of 3 attempts.
func New(settings SMTPSettings, retries int, log zerolog.Logger) *Mailer {
	if retries < 1 {
		retries = defaultRetries
	}
	m := &Mailer{
		settings: settings,
		retries:  retries,
		sleep:    sleepCtx,
		log:      log,
	}
	m.deliver = m.dialAndSend
	return m
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (m *Mailer) client(settings SMTPSettings) (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(settings.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(settings.User),
		mail.WithPassword(settings.Password),
	}
	if settings.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	return mail.NewClient(settings.Host, opts...)
}

func buildMessage(email Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", email.From, err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("invalid recipients %v: %w", email.To, err)
	}
	msg.Subject(email.Subject)
	if email.HTML {
		msg.SetBodyString(mail.TypeTextHTML, email.Body)
	} else {
		msg.SetBodyString(mail.TypeTextPlain, email.Body)
	}
	return msg, nil
}

// Send delivers email using the mailer's SMTP settings, or override
// when non-nil. Each failed attempt doubles the backoff delay.
func (m *Mailer) Send(ctx context.Context, email Email, override *SMTPSettings) error {
	if len(email.To) == 0 {
		return ErrNoRecipient
	}

	settings := m.settings
	if override != nil {
		settings = *override
	}

	msg, err := buildMessage(email)
	if err != nil {
		return err
	}

	var lastErr error
	backoff := time.Second
	for attempt := 1; attempt <= m.retries; attempt++ {
		lastErr = m.deliver(ctx, settings, msg)
		if lastErr == nil {
			if attempt > 1 {
				m.log.Info().Int("attempt", attempt).Msg("email delivered after retry")
			}
			return nil
		}
		m.log.Warn().Err(lastErr).Int("attempt", attempt).Msg("email delivery failed")
		if attempt == m.retries {
			break
		}
		if err := m.sleep(ctx, backoff); err != nil {
			return err
		}
		backoff *= 2
	}
	return fmt.Errorf("send after %d attempts: %w", m.retries, lastErr)
}

func (m *Mailer) dialAndSend(ctx context.Context, settings SMTPSettings, msg *mail.Msg) error {
	c, err := m.client(settings)
	if err != nil {
		return err
	}
	return c.DialAndSendWithContext(ctx, msg)
}

// TestConnection dials the SMTP endpoint and disconnects without
// sending anything.
func (m *Mailer) TestConnection(ctx context.Context, override *SMTPSettings) error {
	settings := m.settings
	if override != nil {
		settings = *override
	}
	c, err := m.client(settings)
	if err != nil {
		return err
	}
	if err := c.DialWithContext(ctx); err != nil {
		return fmt.Errorf("dial %s:%d: %w", settings.Host, settings.Port, err)
	}
	return c.Close()
}
