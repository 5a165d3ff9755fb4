package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/idempotency"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
)

const defaultEntryName = "Authenticator"

type EntryCreateInput struct {
	Method         string `validate:"required,oneof=url manual"`
	Name           string `validate:"omitempty,max=100"`
	URL            string `validate:"omitempty,max=2048"`
	Secret         string `validate:"omitempty,max=256"`
	Issuer         string `validate:"omitempty,max=100"`
	AccountName    string `validate:"omitempty,max=255"`
	Digits         int    `validate:"omitempty,min=6,max=8"`
	TimeStep       int    `validate:"omitempty,min=1,max=300"`
	IdempotencyKey string `validate:"omitempty,max=128"`
}

func (s *Usecase) EntryCreate(ctx context.Context, in EntryCreateInput) (*EntryOutput, error) {
	ctx, span := s.startSpan(ctx, "EntryCreate")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	entry, err := s.buildEntry(in, clm.UserID)
	if err != nil {
		return nil, err
	}

	create := func(ctx context.Context) ([]byte, error) {
		id, err := s.storeEntry(ctx, entry, entity.EntryMethod(in.Method))
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatInt(id, 10)), nil
	}

	var raw []byte
	if in.IdempotencyKey == "" {
		raw, err = create(ctx)
	} else {
		raw, err = s.createOnce(ctx, clm.UserID, in.IdempotencyKey, create)
	}
	if err != nil {
		return nil, err
	}

	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse stored entry id", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	stored, err := s.openEntry(ctx, id, clm.UserID)
	if err != nil {
		return nil, s.entryNotFoundOrServer(ctx, err, id, clm.UserID, "load created entry")
	}

	out, err := s.present(*stored)
	if err != nil {
		slog.ErrorContext(ctx, "failed to generate code", "entry_id", id, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &out, nil
}

// buildEntry resolves the secret and labels from either a provisioning URL or
// manual fields and checks that a code can be produced from them.
func (s *Usecase) buildEntry(in EntryCreateInput, userID int64) (entity.Entry, error) {
	entry := entity.Entry{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		Issuer:      strings.TrimSpace(in.Issuer),
		AccountName: strings.TrimSpace(in.AccountName),
		Digits:      in.Digits,
		TimeStep:    in.TimeStep,
	}

	switch entity.EntryMethod(in.Method) {
	case entity.EntryMethodURL:
		if strings.TrimSpace(in.URL) == "" {
			return entity.Entry{}, goerror.NewInvalidInput(nil, "url", "url is required")
		}

		rec := s.parser.Parse(strings.TrimSpace(in.URL))
		if rec == nil {
			return entity.Entry{}, goerror.NewInvalidInput(nil, "url", "unsupported provisioning url format")
		}

		entry.Secret = rec.Secret
		if entry.Issuer == "" {
			entry.Issuer = rec.Issuer
		}
		if entry.AccountName == "" {
			entry.AccountName = rec.AccountName
		}

	case entity.EntryMethodManual:
		if strings.TrimSpace(in.Secret) == "" {
			return entity.Entry{}, goerror.NewInvalidInput(nil, "secret", "secret is required")
		}
		entry.Secret = in.Secret
	}

	key := otp.DecodeBase32(entry.Secret)
	if len(key) == 0 {
		return entity.Entry{}, goerror.NewInvalidInput(nil, "secret", "secret must be a base32 encoded key")
	}
	entry.Secret = otp.EncodeBase32(key)

	if entry.Digits == 0 {
		entry.Digits = entity.DefaultDigits
	}
	if entry.TimeStep == 0 {
		entry.TimeStep = entity.DefaultTimeStep
	}
	if entry.Name == "" {
		entry.Name = firstNonEmpty(entry.Issuer, entry.AccountName, defaultEntryName)
	}

	if _, err := s.totp.Code(entry.Secret, entryParams(entry)); err != nil {
		return entity.Entry{}, goerror.NewInvalidInput(nil, "digits", err.Error())
	}

	return entry, nil
}

func (s *Usecase) storeEntry(ctx context.Context, entry entity.Entry, method entity.EntryMethod) (int64, error) {
	sealed, err := s.sealer.Seal([]byte(entry.Secret), entryScope(entry.UserID))
	if err != nil {
		slog.ErrorContext(ctx, "failed to seal entry secret", "user_id", entry.UserID, "error", err)
		return 0, goerror.NewServer(err)
	}

	now := s.clock.Now()
	entry.ID = s.uid.Generate()
	entry.SealedSecret = sealed
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.repoDB.CreateEntry(ctx, entry); err != nil {
		slog.ErrorContext(ctx, "failed to repo create entry", "user_id", entry.UserID, "error", err)
		return 0, goerror.NewServer(err)
	}

	if err := s.repoMessaging.PublishEntryCreated(ctx, EntryEvent{
		UserID:  entry.UserID,
		EntryID: entry.ID,
		Name:    entry.Name,
		Issuer:  entry.Issuer,
		Method:  method,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish entry created", "entry_id", entry.ID, "error", err)
	}

	return entry.ID, nil
}

func (s *Usecase) createOnce(ctx context.Context, userID int64, key string, fn func(context.Context) ([]byte, error)) ([]byte, error) {
	hashed, err := s.hmac.Hash(fmt.Sprintf("%d:%s", userID, key))
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash idempotency key", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	raw, err := s.idemp.Exec(ctx, "entry_create:"+string(hashed), fn,
		idempotency.WithStateTTL(s.cfg.GetHour("modules.authenticator.idempotency_ttl_hours")),
	)
	if errors.Is(err, idempotency.ErrAlreadyInProgress) {
		slog.WarnContext(ctx, "duplicate entry create in progress", "user_id", userID)
		return nil, goerror.NewBusiness("a request with this idempotency key is in progress", goerror.CodeConflict)
	}
	if err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			return nil, err
		}
		slog.ErrorContext(ctx, "failed to run idempotent entry create", "user_id", userID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return raw, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
