package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/esil-events/chatbot/pkg/models"
)

type fakeCounter struct {
	count     int64
	err       error
	lastSince time.Time
}

func (f *fakeCounter) CountSince(_ context.Context, since time.Time) (int64, error) {
	f.lastSince = since
	return f.count, f.err
}

func TestCheckUnderLimit(t *testing.T) {
	g := New(models.QuotaPolicy{MaxCalls: 100, Period: models.QuotaDaily}, &fakeCounter{count: 50})
	if err := g.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

func TestCheckAtLimit(t *testing.T) {
	g := New(models.QuotaPolicy{MaxCalls: 100, Period: models.QuotaDaily}, &fakeCounter{count: 100})
	if err := g.Check(context.Background()); !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
}

func TestCheckDisabled(t *testing.T) {
	g := New(models.QuotaPolicy{}, &fakeCounter{count: 1 << 40})
	if err := g.Check(context.Background()); err != nil {
		t.Fatalf("disabled guard should never fail, got %v", err)
	}
	if g.Enabled() {
		t.Error("guard with zero MaxCalls reports enabled")
	}
}

func TestCheckCounterError(t *testing.T) {
	wantErr := errors.New("db closed")
	g := New(models.QuotaPolicy{MaxCalls: 10, Period: models.QuotaDaily}, &fakeCounter{err: wantErr})
	if err := g.Check(context.Background()); !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want wrapped counter error", err)
	}
}

func TestPeriodStart(t *testing.T) {
	fixed := time.Date(2026, time.March, 15, 13, 45, 0, 0, time.UTC)

	counter := &fakeCounter{}
	g := New(models.QuotaPolicy{MaxCalls: 10, Period: models.QuotaDaily}, counter)
	g.now = func() time.Time { return fixed }
	_ = g.Check(context.Background())
	if want := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC); !counter.lastSince.Equal(want) {
		t.Errorf("daily period start = %v, want %v", counter.lastSince, want)
	}

	g = New(models.QuotaPolicy{MaxCalls: 10, Period: models.QuotaMonthly}, counter)
	g.now = func() time.Time { return fixed }
	_ = g.Check(context.Background())
	if want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC); !counter.lastSince.Equal(want) {
		t.Errorf("monthly period start = %v, want %v", counter.lastSince, want)
	}
}

func TestStatus(t *testing.T) {
	g := New(models.QuotaPolicy{MaxCalls: 100, Period: models.QuotaDaily}, &fakeCounter{count: 120})
	st, err := g.Status(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if st.Used != 120 {
		t.Errorf("used = %d, want 120", st.Used)
	}
	if st.Remaining != 0 {
		t.Errorf("remaining = %d, want 0 when over limit", st.Remaining)
	}
}
