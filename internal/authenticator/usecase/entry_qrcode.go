package usecase

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
	"github.com/h7ml/denoAuthenticator/internal/pkg/qrcode"
)

type EntryQRCodeInput struct {
	ID   int64 `validate:"required,gt=0"`
	Size int   `validate:"omitempty,min=128,max=1024"`
}

type EntryQRCodeOutput struct {
	Filename string
	PNG      []byte
}

// EntryQRCode renders the entry's otpauth URI so it can be scanned into
// another authenticator app.
func (s *Usecase) EntryQRCode(ctx context.Context, in EntryQRCodeInput) (*EntryQRCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "EntryQRCode")
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

	uri := otp.URI(otp.ProvisioningRecord{
		Secret:      entry.Secret,
		Issuer:      entry.Issuer,
		AccountName: entry.AccountName,
	}, entryParams(*entry))

	png, err := qrcode.PNG(uri, in.Size)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render qrcode", "entry_id", entry.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EntryQRCodeOutput{
		Filename: "authenticator-" + strconv.FormatInt(entry.ID, 10) + ".png",
		PNG:      png,
	}, nil
}
