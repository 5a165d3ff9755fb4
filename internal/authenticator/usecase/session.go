package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
)

// SessionActive reports whether the session behind a token jti still exists
// and has not expired. The router consults it on every authenticated request.
func (s *Usecase) SessionActive(ctx context.Context, id string) (bool, error) {
	ctx, span := s.startSpan(ctx, "SessionActive")
	defer span.End()

	sess, err := s.repoDB.GetSession(ctx, id)
	if errors.Is(err, goerror.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get session", "session_id", id, "error", err)
		return false, goerror.NewServer(err)
	}

	return sess.Active(s.clock.Now()), nil
}

// SessionCleanup removes expired sessions and returns how many were deleted.
func (s *Usecase) SessionCleanup(ctx context.Context) (int64, error) {
	ctx, span := s.startSpan(ctx, "SessionCleanup")
	defer span.End()

	n, err := s.repoDB.DeleteExpiredSessions(ctx, s.clock.Now())
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo delete expired sessions", "error", err)
		return 0, goerror.NewServer(err)
	}

	if n > 0 {
		slog.InfoContext(ctx, "expired sessions removed", "count", n)
	}

	return n, nil
}
