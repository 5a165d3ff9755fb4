package mq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sethvargo/go-retry"
	"go.opentelemetry.io/otel/codes"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/shared/event"
)

const (
	publishAttempts = 3
	publishBackoff  = 100 * time.Millisecond
)

type Messaging struct {
	client messaging.Publisher
	clock  clock.Clocker
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, clk clock.Clocker, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, clock: clk, ins: ins}
}

func (m *Messaging) PublishUserRegistered(ctx context.Context, msg usecase.UserRegisteredEvent) error {
	return m.publish(ctx, "PublishUserRegistered", event.UserRegisteredSubject, event.UserRegisteredMessage{
		UserID:     msg.UserID,
		Username:   msg.Username,
		Email:      msg.Email,
		OccurredAt: m.clock.Now(),
	})
}

func (m *Messaging) PublishUserPasswordReset(ctx context.Context, msg usecase.UserPasswordResetEvent) error {
	return m.publish(ctx, "PublishUserPasswordReset", event.UserPasswordResetSubject, event.UserPasswordResetMessage{
		UserID:          msg.UserID,
		Username:        msg.Username,
		Email:           msg.Email,
		RevokedSessions: msg.RevokedSessions,
		OccurredAt:      m.clock.Now(),
	})
}

func (m *Messaging) PublishEntryCreated(ctx context.Context, msg usecase.EntryEvent) error {
	return m.publish(ctx, "PublishEntryCreated", event.EntryCreatedSubject, event.EntryCreatedMessage{
		UserID:     msg.UserID,
		EntryID:    msg.EntryID,
		Name:       msg.Name,
		Issuer:     msg.Issuer,
		Method:     msg.Method.String(),
		OccurredAt: m.clock.Now(),
	})
}

func (m *Messaging) PublishEntryDeleted(ctx context.Context, msg usecase.EntryEvent) error {
	return m.publish(ctx, "PublishEntryDeleted", event.EntryDeletedSubject, event.EntryDeletedMessage{
		UserID:     msg.UserID,
		EntryID:    msg.EntryID,
		Name:       msg.Name,
		OccurredAt: m.clock.Now(),
	})
}

// publish marshals payload and sends it with the request correlation ID,
// retrying transient broker failures with exponential backoff.
func (m *Messaging) publish(ctx context.Context, name, subject string, payload any) error {
	ctx, span := m.ins.Tracer("authenticator.outbound.mq").Start(ctx, name)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	out := messaging.OutgoingMessage{
		Body:    body,
		Headers: map[string]string{event.CorrelationHeader: instrument.GetCorrelationID(ctx)},
	}

	backoff := retry.WithMaxRetries(publishAttempts-1, retry.NewExponential(publishBackoff))
	if err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := m.client.Publish(ctx, subject, out); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
