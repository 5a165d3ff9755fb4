package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
)

// Logout ends the session behind the current token. Ending a session that is
// already gone succeeds.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	err = s.repoDB.DeleteSession(ctx, clm.ID)
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo delete session", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
