package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewService_InvalidExpression(t *testing.T) {
	if _, err := NewService("job", "not a schedule", nil); err == nil {
		t.Fatal("expected error for invalid expression")
	}
	if _, err := NewService("job", "* * * * * *", nil); err == nil {
		t.Fatal("expected error for six-field expression")
	}
}

func TestService_Next(t *testing.T) {
	svc, err := NewService("job", "*/15 * * * *", nil)
	if err != nil {
		t.Fatal(err)
	}
	from := time.Date(2024, 1, 1, 10, 7, 0, 0, time.UTC)
	want := time.Date(2024, 1, 1, 10, 15, 0, 0, time.UTC)
	if got := svc.Next(from); !got.Equal(want) {
		t.Errorf("Next = %v, want %v", got, want)
	}

	every, err := NewService("job", "@every 5m", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := every.Next(from); !got.Equal(from.Add(5 * time.Minute)) {
		t.Errorf("Next = %v", got)
	}
}

func TestService_TickInvokesJob(t *testing.T) {
	var calls int32
	svc, err := NewService("job", "@every 1h", func(context.Context) error {
		atomic.AddInt32(&calls, 1)
		return errors.New("mail not running")
	})
	if err != nil {
		t.Fatal(err)
	}

	svc.tick(context.Background())
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.tick(ctx)
	if atomic.LoadInt32(&calls) != 1 {
		t.Error("tick should not run after cancellation")
	}
}

func TestService_StartFiresAndStops(t *testing.T) {
	fired := make(chan struct{}, 4)
	svc, err := NewService("job", "@every 1s", func(context.Context) error {
		fired <- struct{}{}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("job never fired")
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start returned %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}
