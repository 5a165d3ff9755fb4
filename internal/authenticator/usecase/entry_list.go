package usecase

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
)

// EntryList returns the current user's entries, newest first, each with its
// current code.
func (s *Usecase) EntryList(ctx context.Context) ([]EntryOutput, error) {
	ctx, span := s.startSpan(ctx, "EntryList")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.openEntries(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(entries, func(a, b entity.Entry) int {
		return cmp.Compare(b.CreatedAt.UnixNano(), a.CreatedAt.UnixNano())
	})

	result := make([]EntryOutput, 0, len(entries))
	for _, e := range entries {
		out, err := s.present(e)
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate code", "entry_id", e.ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		result = append(result, out)
	}

	return result, nil
}

type EntryDetailInput struct {
	ID int64 `validate:"required,gt=0"`
}

func (s *Usecase) EntryDetail(ctx context.Context, in EntryDetailInput) (*EntryOutput, error) {
	ctx, span := s.startSpan(ctx, "EntryDetail")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	entry, err := s.openEntry(ctx, in.ID, clm.UserID)
	if err != nil {
		return nil, s.entryNotFoundOrServer(ctx, err, in.ID, clm.UserID, "load entry")
	}

	out, err := s.present(*entry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate code", "entry_id", entry.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &out, nil
}

func (s *Usecase) openEntries(ctx context.Context, userID int64) ([]entity.Entry, error) {
	entries, err := s.repoDB.ListEntries(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list entries", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	for i := range entries {
		plain, err := s.sealer.Open(entries[i].SealedSecret, entryScope(userID))
		if err != nil {
			slog.ErrorContext(ctx, "failed to open entry secret", "entry_id", entries[i].ID, "error", err)
			return nil, goerror.NewServer(err)
		}
		entries[i].Secret = string(plain)
	}

	return entries, nil
}
