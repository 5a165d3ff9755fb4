package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
)

const defaultAccountName = "account"

type ParseURLInput struct {
	URL string `validate:"required,max=2048"`
}

// ParseURL extracts secret, issuer and account from an otpauth:// or
// phonefactor:// URL without storing anything.
func (s *Usecase) ParseURL(ctx context.Context, in ParseURLInput) (*otp.ProvisioningRecord, error) {
	ctx, span := s.startSpan(ctx, "ParseURL")
	defer span.End()

	in.URL = strings.TrimSpace(in.URL)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	rec := s.parser.Parse(in.URL)
	if rec == nil {
		slog.WarnContext(ctx, "unsupported provisioning url")
		return nil, goerror.NewInvalidInput(nil, "url", "unsupported provisioning url format")
	}

	return rec, nil
}

type SecretGenerateInput struct {
	AccountName string `validate:"omitempty,max=255"`
}

type SecretGenerateOutput struct {
	Secret string
	URI    string
}

func (s *Usecase) SecretGenerate(ctx context.Context, in SecretGenerateInput) (*SecretGenerateOutput, error) {
	ctx, span := s.startSpan(ctx, "SecretGenerate")
	defer span.End()

	in.AccountName = strings.TrimSpace(in.AccountName)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	account := in.AccountName
	if account == "" {
		account = defaultAccountName
	}

	secret, uri, err := s.provisioner.Generate(account)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate secret", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &SecretGenerateOutput{Secret: secret, URI: uri}, nil
}
