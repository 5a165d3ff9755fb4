package usecase

import (
	"context"
	"log/slog"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
)

type EntryDeleteInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) EntryDelete(ctx context.Context, in EntryDeleteInput) error {
	ctx, span := s.startSpan(ctx, "EntryDelete")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return err
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	entry, err := s.repoDB.GetEntry(ctx, in.ID, clm.UserID)
	if err != nil {
		return s.entryNotFoundOrServer(ctx, err, in.ID, clm.UserID, "repo get entry")
	}

	if err := s.repoDB.DeleteEntry(ctx, in.ID, clm.UserID); err != nil {
		return s.entryNotFoundOrServer(ctx, err, in.ID, clm.UserID, "repo delete entry")
	}

	if err := s.repoMessaging.PublishEntryDeleted(ctx, EntryEvent{
		UserID:  clm.UserID,
		EntryID: entry.ID,
		Name:    entry.Name,
		Issuer:  entry.Issuer,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish entry deleted", "entry_id", entry.ID, "error", err)
	}

	return nil
}
