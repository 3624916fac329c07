package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestWaitSpacesRequestsPerHost(t *testing.T) {
	l := NewPerHost(30 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx, "example.com"); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 60*time.Millisecond {
		t.Fatalf("three hits finished in %s, want at least two intervals", elapsed)
	}
}

func TestWaitHostsAreIndependent(t *testing.T) {
	l := NewPerHost(time.Minute)
	ctx := context.Background()

	if err := l.Wait(ctx, "a.example"); err != nil {
		t.Fatalf("Wait: %v", err)
	}

	// A different host must not inherit a.example's cooldown.
	start := time.Now()
	if err := l.Wait(ctx, "b.example"); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("b.example waited %s behind a.example", elapsed)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := NewPerHost(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Wait(ctx, "example.com"); err != nil {
		t.Fatalf("first Wait: %v", err)
	}

	cancel()
	if err := l.Wait(ctx, "example.com"); err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestWaitDisabledInterval(t *testing.T) {
	l := NewPerHost(0)
	for i := 0; i < 10; i++ {
		if err := l.Wait(context.Background(), "example.com"); err != nil {
			t.Fatalf("Wait: %v", err)
		}
	}
}
