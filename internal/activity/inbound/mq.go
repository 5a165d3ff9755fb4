package inbound

import (
	"context"
	"log/slog"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goroutine"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/shared/event"
)

const consumerConcurrency = 4

func RegisterMQConsumer(
	ctx context.Context,
	routine *goroutine.Manager,
	consumer messaging.Consumer,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) {
	h := &MQHandler{uc: uc, uuid: uuid, ins: ins}

	subscriptions := []struct {
		subject string
		handler messaging.Handler
	}{
		{subject: event.UserRegisteredSubject, handler: h.UserRegistered},
		{subject: event.UserPasswordResetSubject, handler: h.UserPasswordReset},
		{subject: event.EntryCreatedSubject, handler: h.EntryCreated},
		{subject: event.EntryDeletedSubject, handler: h.EntryDeleted},
	}

	for _, sub := range subscriptions {
		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "subject", sub.subject, "group", event.ActivityQueueGroup)
			err := consumer.Consume(pCtx,
				sub.subject,
				sub.handler,
				messaging.WithQueueGroup(event.ActivityQueueGroup),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(consumerConcurrency),
			)
			if pCtx.Err() != nil {
				return nil
			}
			return err
		})
	}
}
