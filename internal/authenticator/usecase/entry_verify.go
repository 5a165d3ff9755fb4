package usecase

import (
	"context"
	"strings"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
)

type EntryVerifyInput struct {
	ID   int64  `validate:"required,gt=0"`
	Code string `validate:"required,numeric,min=6,max=8"`
}

type EntryVerifyOutput struct {
	Valid bool
}

// EntryVerify checks a code against the entry within the configured drift window.
func (s *Usecase) EntryVerify(ctx context.Context, in EntryVerifyInput) (*EntryVerifyOutput, error) {
	ctx, span := s.startSpan(ctx, "EntryVerify")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	in.Code = strings.ReplaceAll(strings.TrimSpace(in.Code), " ", "")
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	entry, err := s.openEntry(ctx, in.ID, clm.UserID)
	if err != nil {
		return nil, s.entryNotFoundOrServer(ctx, err, in.ID, clm.UserID, "load entry")
	}

	return &EntryVerifyOutput{
		Valid: s.totp.Verify(entry.Secret, in.Code, entryParams(*entry)),
	}, nil
}
