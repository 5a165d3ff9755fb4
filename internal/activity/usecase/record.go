package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/activity/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/mail"
	"github.com/h7ml/denoAuthenticator/internal/pkg/valueobject"
)

type RecordInput struct {
	UserID     int64         `validate:"required,gt=0"`
	Action     entity.Action `validate:"required,oneof=user.registered user.password_reset entry.created entry.deleted"`
	Username   string
	Email      string `validate:"omitempty,email"`
	Metadata   map[string]any
	OccurredAt time.Time
}

// Record stores one activity and, for account events, emails a notice.
// Malformed input is dropped with a log line so the broker does not redeliver
// it. A storage failure is returned so the message is retried.
func (s *Usecase) Record(ctx context.Context, in RecordInput) error {
	ctx, span := s.startSpan(ctx, "Record")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.WarnContext(ctx, "dropping invalid activity", "action", in.Action, "error", err)
		return nil
	}

	now := s.clock.Now()
	occurredAt := in.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}

	act := entity.Activity{
		ID:            s.uid.Generate(),
		UserID:        in.UserID,
		Action:        in.Action,
		Metadata:      valueobject.JSONMap(in.Metadata),
		CorrelationID: instrument.GetCorrelationID(ctx),
		OccurredAt:    occurredAt,
		CreatedAt:     now,
	}
	if err := s.repoDB.CreateActivity(ctx, act); err != nil {
		slog.ErrorContext(ctx, "failed to repo create activity", "user_id", in.UserID, "action", in.Action, "error", err)
		return err
	}

	if in.Action.Notifiable() && in.Email != "" && s.cfg.GetBool("modules.activity.mail_enabled") {
		s.sendNotice(ctx, in, occurredAt)
	}

	return nil
}

func (s *Usecase) sendNotice(ctx context.Context, in RecordInput, at time.Time) {
	msg := mail.Message{
		From: s.cfg.GetString("modules.activity.mail_from"),
		To:   []string{in.Email},
	}

	switch in.Action {
	case entity.ActionUserRegistered:
		msg.Subject = "Welcome to Authenticator"
		msg.Text = fmt.Sprintf("Hi %s,\n\nYour account was created on %s.\n", in.Username, at.UTC().Format(time.RFC1123))
	case entity.ActionUserPasswordReset:
		msg.Subject = "Your password was reset"
		msg.Text = fmt.Sprintf(
			"Hi %s,\n\nThe password for your account was reset on %s and every signed-in session was ended.\n"+
				"If this was not you, reset it again and review your authenticators.\n",
			in.Username, at.UTC().Format(time.RFC1123))
	default:
		return
	}

	if err := s.repoMail.Send(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to send activity notice", "user_id", in.UserID, "action", in.Action, "error", err)
	}
}
