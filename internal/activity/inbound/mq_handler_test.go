package inbound

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/activity/entity"
	"github.com/h7ml/denoAuthenticator/internal/activity/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goroutine"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/shared/event"
)

type fakeUC struct {
	mu   sync.Mutex
	err  error
	got  []usecase.RecordInput
	cIDs []string
	done chan struct{}
}

func (f *fakeUC) Record(ctx context.Context, in usecase.RecordInput) error {
	f.mu.Lock()
	f.got = append(f.got, in)
	f.cIDs = append(f.cIDs, instrument.GetCorrelationID(ctx))
	f.mu.Unlock()
	if f.done != nil {
		f.done <- struct{}{}
	}
	return f.err
}

func (f *fakeUC) ActivityList(context.Context, usecase.ActivityListInput) ([]usecase.ActivityOutput, error) {
	return nil, nil
}

type stubMessage struct {
	subject string
	body    string
	headers map[string]string
}

func (m stubMessage) Body() []byte { return []byte(m.body) }
func (m stubMessage) Header(key string) string { return m.headers[key] }
func (m stubMessage) Subject() string { return m.subject }
func (m stubMessage) Timestamp() time.Time { return time.Time{} }
func (m stubMessage) Ack(context.Context) error { return nil }
func (m stubMessage) Nack(context.Context) error { return nil }

func newHandler(uc *fakeUC) *MQHandler {
	return &MQHandler{uc: uc, uuid: uid.NewUUID(), ins: instrument.NewNoop()}
}

func TestMQHandler(t *testing.T) {
	t.Run("UserPasswordReset", func(t *testing.T) {
		// Arrange
		uc := &fakeUC{}
		msg := stubMessage{
			subject: event.UserPasswordResetSubject,
			body:    `{"user_id":"12","username":"alice","email":"alice@example.com","revoked_sessions":3,"occurred_at":"2026-05-04T10:00:00Z"}`,
			headers: map[string]string{event.CorrelationHeader: "cid-9"},
		}

		// Act
		err := newHandler(uc).UserPasswordReset(context.Background(), msg)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		in := uc.got[0]
		if in.UserID != 12 || in.Action != entity.ActionUserPasswordReset || in.Email != "alice@example.com" {
			t.Fatalf("got %+v", in)
		}
		if in.Metadata["revoked_sessions"] != int64(3) {
			t.Fatalf("metadata = %v", in.Metadata)
		}
		if uc.cIDs[0] != "cid-9" {
			t.Fatalf("cID = %q, want cid-9", uc.cIDs[0])
		}
	})

	t.Run("EntryCreatedWithoutCorrelation", func(t *testing.T) {
		uc := &fakeUC{}
		msg := stubMessage{body: `{"user_id":"5","entry_id":"77","name":"GitHub","issuer":"GitHub","method":"url"}`}

		if err := newHandler(uc).EntryCreated(context.Background(), msg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		in := uc.got[0]
		if in.Metadata["entry_id"] != "77" || in.Metadata["method"] != "url" {
			t.Fatalf("metadata = %v", in.Metadata)
		}
		if uc.cIDs[0] == "" {
			t.Fatal("a correlation ID must be generated")
		}
	})

	t.Run("MalformedBodyIsAcked", func(t *testing.T) {
		uc := &fakeUC{}

		err := newHandler(uc).EntryDeleted(context.Background(), stubMessage{body: "{"})

		if err != nil {
			t.Fatalf("err = %v, want nil", err)
		}
		if len(uc.got) != 0 {
			t.Fatal("usecase must not be called")
		}
	})

	t.Run("RecordErrorIsReturned", func(t *testing.T) {
		uc := &fakeUC{err: errors.New("db down")}

		err := newHandler(uc).UserRegistered(context.Background(), stubMessage{body: `{"user_id":"1"}`})

		if err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestRegisterMQConsumer(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	broker := messaging.NewMemory()
	routine := goroutine.NewManager(8)
	uc := &fakeUC{done: make(chan struct{}, 1)}

	RegisterMQConsumer(ctx, routine, broker, uid.NewUUID(), uc, instrument.NewNoop())

	deadline := time.Now().Add(2 * time.Second)
	for broker.Subscribed(event.EntryDeletedSubject) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("consumer did not subscribe")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Act
	err := broker.Publish(ctx, event.EntryDeletedSubject, messaging.OutgoingMessage{
		Body: []byte(`{"user_id":"4","entry_id":"8","name":"Mail"}`),
	})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}

	// Assert
	select {
	case <-uc.done:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not consumed")
	}
	cancel()
	if err := routine.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
	if uc.got[0].Action != entity.ActionEntryDeleted || uc.got[0].UserID != 4 {
		t.Fatalf("got %+v", uc.got[0])
	}
}
