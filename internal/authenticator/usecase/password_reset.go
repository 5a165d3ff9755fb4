package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
)

type PasswordResetInput struct {
	Username    string `validate:"required,max=32"`
	Email       string `validate:"required,email,max=255"`
	NewPassword string `validate:"required,password"`
}

func (s *Usecase) PasswordReset(ctx context.Context, in PasswordResetInput) error {
	ctx, span := s.startSpan(ctx, "PasswordReset")
	defer span.End()

	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByUsername(ctx, in.Username)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "username", in.Username)
		return goerror.NewNotFound("username and email do not match any account")
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by username", "username", in.Username, "error", err)
		return goerror.NewServer(err)
	}

	if !strings.EqualFold(user.Email, in.Email) {
		slog.WarnContext(ctx, "email does not match user account", "user_id", user.ID)
		return goerror.NewNotFound("username and email do not match any account")
	}

	passHash, err := s.hash.Hash(in.NewPassword)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	revoked, err := s.repoDB.ResetPassword(ctx, user.ID, string(passHash), s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo reset password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "password reset", "user_id", user.ID, "revoked_sessions", revoked)

	if err := s.repoMessaging.PublishUserPasswordReset(ctx, UserPasswordResetEvent{
		UserID:          user.ID,
		Username:        user.Username,
		Email:           user.Email,
		RevokedSessions: revoked,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish user password reset", "user_id", user.ID, "error", err)
	}

	return nil
}
