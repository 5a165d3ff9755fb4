package goroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestManager(t *testing.T) {
	t.Run("CollectsErrors", func(t *testing.T) {
		// Arrange
		m := NewManager(4)
		boom := errors.New("boom")

		// Act
		m.Go(context.Background(), func(context.Context) error { return nil })
		m.Go(context.Background(), func(context.Context) error { return boom })
		err := m.Wait()

		// Assert
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})

	t.Run("RecoversPanics", func(t *testing.T) {
		// Arrange
		m := NewManager(1)

		// Act
		m.Go(context.Background(), func(context.Context) error { panic("oops") })
		err := m.Wait()

		// Assert
		if err != nil {
			t.Fatalf("expected nil error after panic, got %v", err)
		}
	})

	t.Run("ClosedManagerDropsWork", func(t *testing.T) {
		// Arrange
		m := NewManager(1)
		_ = m.Wait()
		var ran atomic.Bool

		// Act
		m.Go(context.Background(), func(context.Context) error { ran.Store(true); return nil })
		_ = m.Wait()

		// Assert
		if ran.Load() {
			t.Fatalf("expected task to be skipped after Wait")
		}
	})

	t.Run("EveryStopsOnCancel", func(t *testing.T) {
		// Arrange
		m := NewManager(1)
		ctx, cancel := context.WithCancel(context.Background())
		var runs atomic.Int32

		// Act
		m.Every(ctx, "test", time.Millisecond, func(context.Context) error {
			if runs.Add(1) == 3 {
				cancel()
			}
			return nil
		})
		err := m.Wait()

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if runs.Load() < 3 {
			t.Fatalf("expected at least 3 runs, got %d", runs.Load())
		}
	})
}
