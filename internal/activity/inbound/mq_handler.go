package inbound

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"

	"github.com/h7ml/denoAuthenticator/internal/activity/entity"
	"github.com/h7ml/denoAuthenticator/internal/activity/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/shared/event"
)

type MQHandler struct {
	uc   uc
	uuid uid.StringID
	ins  instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID := msg.Header(event.CorrelationHeader); cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// decode parses the body into dst. A body that cannot be parsed is logged and
// reported as handled so it is not redelivered forever.
func (h *MQHandler) decode(ctx context.Context, name string, msg messaging.Message, dst any) (context.Context, bool) {
	ctx = h.ensureCorrelationID(ctx, msg)
	body := msg.Body()
	slog.InfoContext(ctx, "consume: "+name, "subject", msg.Subject(), "msg_body", string(body))

	if err := json.Unmarshal(body, dst); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of "+name, "msg_body", string(body), "error", err)
		return ctx, false
	}
	return ctx, true
}

func (h *MQHandler) record(ctx context.Context, name string, in usecase.RecordInput) error {
	ctx, span := h.ins.Tracer("activity.inbound.mq").Start(ctx, name)
	defer span.End()

	if err := h.uc.Record(ctx, in); err != nil {
		slog.ErrorContext(ctx, "failed to record "+name, "user_id", in.UserID, "error", err)
		return err
	}
	return nil
}

func (h *MQHandler) UserRegistered(ctx context.Context, msg messaging.Message) error {
	var payload event.UserRegisteredMessage
	ctx, ok := h.decode(ctx, "user registered", msg, &payload)
	if !ok {
		return nil
	}

	return h.record(ctx, "UserRegistered", usecase.RecordInput{
		UserID:     payload.UserID,
		Action:     entity.ActionUserRegistered,
		Username:   payload.Username,
		Email:      payload.Email,
		Metadata:   map[string]any{"username": payload.Username},
		OccurredAt: payload.OccurredAt,
	})
}

func (h *MQHandler) UserPasswordReset(ctx context.Context, msg messaging.Message) error {
	var payload event.UserPasswordResetMessage
	ctx, ok := h.decode(ctx, "user password reset", msg, &payload)
	if !ok {
		return nil
	}

	return h.record(ctx, "UserPasswordReset", usecase.RecordInput{
		UserID:   payload.UserID,
		Action:   entity.ActionUserPasswordReset,
		Username: payload.Username,
		Email:    payload.Email,
		Metadata: map[string]any{
			"username":         payload.Username,
			"revoked_sessions": payload.RevokedSessions,
		},
		OccurredAt: payload.OccurredAt,
	})
}

func (h *MQHandler) EntryCreated(ctx context.Context, msg messaging.Message) error {
	var payload event.EntryCreatedMessage
	ctx, ok := h.decode(ctx, "entry created", msg, &payload)
	if !ok {
		return nil
	}

	return h.record(ctx, "EntryCreated", usecase.RecordInput{
		UserID: payload.UserID,
		Action: entity.ActionEntryCreated,
		Metadata: map[string]any{
			"entry_id": strconv.FormatInt(payload.EntryID, 10),
			"name":     payload.Name,
			"issuer":   payload.Issuer,
			"method":   payload.Method,
		},
		OccurredAt: payload.OccurredAt,
	})
}

func (h *MQHandler) EntryDeleted(ctx context.Context, msg messaging.Message) error {
	var payload event.EntryDeletedMessage
	ctx, ok := h.decode(ctx, "entry deleted", msg, &payload)
	if !ok {
		return nil
	}

	return h.record(ctx, "EntryDeleted", usecase.RecordInput{
		UserID: payload.UserID,
		Action: entity.ActionEntryDeleted,
		Metadata: map[string]any{
			"entry_id": strconv.FormatInt(payload.EntryID, 10),
			"name":     payload.Name,
		},
		OccurredAt: payload.OccurredAt,
	})
}
