package mailer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

func newTestMailer(retries int) *Mailer {
	m := New(SMTPSettings{Host: "smtp.example.com", Port: 587}, retries, zerolog.Nop())
	m.sleep = func(context.Context, time.Duration) error { return nil }
	return m
}

func testEmail() Email {
	return Email{
		From:    "noreply@example.com",
		To:      []string{"client@example.com"},
		Subject: "Demande de devis",
		Body:    "Bonjour",
	}
}

func TestSendNoRecipient(t *testing.T) {
	m := newTestMailer(3)
	err := m.Send(t.Context(), Email{From: "noreply@example.com"}, nil)
	if !errors.Is(err, ErrNoRecipient) {
		t.Fatalf("err = %v, want ErrNoRecipient", err)
	}
}

func TestSendInvalidSender(t *testing.T) {
	m := newTestMailer(3)
	email := testEmail()
	email.From = "not an address"
	if err := m.Send(t.Context(), email, nil); err == nil {
		t.Fatal("expected error for invalid sender")
	}
}

func TestSendRetriesThenSucceeds(t *testing.T) {
	m := newTestMailer(3)
	attempts := 0
	m.deliver = func(context.Context, SMTPSettings, *mail.Msg) error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary failure")
		}
		return nil
	}

	if err := m.Send(t.Context(), testEmail(), nil); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

func TestSendGivesUpAfterRetries(t *testing.T) {
	m := newTestMailer(2)
	attempts := 0
	m.deliver = func(context.Context, SMTPSettings, *mail.Msg) error {
		attempts++
		return errors.New("550 mailbox unavailable")
	}

	err := m.Send(t.Context(), testEmail(), nil)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if !strings.Contains(err.Error(), "550 mailbox unavailable") {
		t.Errorf("err = %v, want last delivery error wrapped", err)
	}
}

func TestSendBackoffDoubles(t *testing.T) {
	m := newTestMailer(3)
	var delays []time.Duration
	m.sleep = func(_ context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	m.deliver = func(context.Context, SMTPSettings, *mail.Msg) error {
		return errors.New("timeout")
	}

	_ = m.Send(t.Context(), testEmail(), nil)
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(delays) != len(want) {
		t.Fatalf("delays = %v, want %v", delays, want)
	}
	for i := range want {
		if delays[i] != want[i] {
			t.Errorf("delay[%d] = %v, want %v", i, delays[i], want[i])
		}
	}
}

func TestSendStopsOnCancelledContext(t *testing.T) {
	m := newTestMailer(3)
	m.sleep = sleepCtx
	attempts := 0
	m.deliver = func(context.Context, SMTPSettings, *mail.Msg) error {
		attempts++
		return errors.New("timeout")
	}

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	err := m.Send(ctx, testEmail(), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

func TestSendUsesOverrideSettings(t *testing.T) {
	m := newTestMailer(1)
	var got SMTPSettings
	m.deliver = func(_ context.Context, s SMTPSettings, _ *mail.Msg) error {
		got = s
		return nil
	}

	override := &SMTPSettings{Host: "smtp.client.fr", Port: 465, Secure: true}
	if err := m.Send(t.Context(), testEmail(), override); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.Host != override.Host || got.Port != override.Port || !got.Secure {
		t.Errorf("settings = %+v, want override %+v", got, *override)
	}
}
