package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/shared/event"
)

type flakyPublisher struct {
	failures int
	calls    int
	subject  string
	last     messaging.OutgoingMessage
}

func (f *flakyPublisher) Publish(_ context.Context, subject string, msg messaging.OutgoingMessage) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("broker unavailable")
	}
	f.subject = subject
	f.last = msg
	return nil
}

func TestMessaging_Publish(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("RetriesAndCarriesCorrelationID", func(t *testing.T) {
		// Arrange
		pub := &flakyPublisher{failures: 2}
		m := NewMessaging(pub, clock.Fixed(at), instrument.NewNoop())
		ctx := instrument.SetCorrelationID(context.Background(), "cid-1")

		// Act
		err := m.PublishEntryCreated(ctx, usecase.EntryEvent{
			UserID: 1, EntryID: 2, Name: "GitHub", Issuer: "GitHub", Method: entity.EntryMethodURL,
		})

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pub.calls != 3 || pub.subject != event.EntryCreatedSubject {
			t.Fatalf("calls = %d, subject = %q", pub.calls, pub.subject)
		}
		if pub.last.Headers[event.CorrelationHeader] != "cid-1" {
			t.Fatalf("headers = %v", pub.last.Headers)
		}

		var got event.EntryCreatedMessage
		if err := json.Unmarshal(pub.last.Body, &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.EntryID != 2 || got.Method != "url" || !got.OccurredAt.Equal(at) {
			t.Fatalf("payload = %+v", got)
		}
	})

	t.Run("GivesUp", func(t *testing.T) {
		pub := &flakyPublisher{failures: 10}
		m := NewMessaging(pub, clock.Fixed(at), instrument.NewNoop())

		err := m.PublishUserRegistered(context.Background(), usecase.UserRegisteredEvent{UserID: 1})

		if err == nil {
			t.Fatalf("expected error after retries")
		}
		if pub.calls != publishAttempts {
			t.Fatalf("calls = %d, want %d", pub.calls, publishAttempts)
		}
	})
}
