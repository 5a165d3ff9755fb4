package usecase

import (
	"context"
	"strings"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
)

type EntryUpdateInput struct {
	ID          int64  `validate:"required,gt=0"`
	Name        string `validate:"required,max=100"`
	Issuer      string `validate:"omitempty,max=100"`
	AccountName string `validate:"omitempty,max=255"`
}

func (s *Usecase) EntryUpdate(ctx context.Context, in EntryUpdateInput) (*EntryOutput, error) {
	ctx, span := s.startSpan(ctx, "EntryUpdate")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.repoDB.UpdateEntry(ctx, entity.EntryPatch{
		ID:          in.ID,
		UserID:      clm.UserID,
		Name:        in.Name,
		Issuer:      strings.TrimSpace(in.Issuer),
		AccountName: strings.TrimSpace(in.AccountName),
		UpdatedAt:   s.clock.Now(),
	}); err != nil {
		return nil, s.entryNotFoundOrServer(ctx, err, in.ID, clm.UserID, "repo update entry")
	}

	return s.EntryDetail(ctx, EntryDetailInput{ID: in.ID})
}
