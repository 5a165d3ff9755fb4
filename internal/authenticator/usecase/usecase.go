package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/hash"
	"github.com/h7ml/denoAuthenticator/internal/pkg/idempotency"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
	"github.com/h7ml/denoAuthenticator/internal/pkg/seal"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type UserRegisteredEvent struct {
	UserID   int64
	Username string
	Email    string
}

type UserPasswordResetEvent struct {
	UserID          int64
	Username        string
	Email           string
	RevokedSessions int64
}

type EntryEvent struct {
	UserID  int64
	EntryID int64
	Name    string
	Issuer  string
	Method  entity.EntryMethod
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
	PublishUserPasswordReset(ctx context.Context, msg UserPasswordResetEvent) error
	PublishEntryCreated(ctx context.Context, msg EntryEvent) error
	PublishEntryDeleted(ctx context.Context, msg EntryEvent) error
}

type repoDB interface {
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	GetEntry(ctx context.Context, id, userID int64) (*entity.Entry, error)
	ListEntries(ctx context.Context, userID int64) ([]entity.Entry, error)

	CreateUser(ctx context.Context, user entity.User) error
	CreateSession(ctx context.Context, sess entity.Session) error
	CreateEntry(ctx context.Context, entry entity.Entry) error

	UpdateEntry(ctx context.Context, patch entity.EntryPatch) error
	ResetPassword(ctx context.Context, userID int64, hash string, at time.Time) (revoked int64, err error)

	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
	DeleteEntry(ctx context.Context, id, userID int64) error
}

type repoBlob interface {
	PutExport(ctx context.Context, key string, body []byte) error
	ExportURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

type totpEngine interface {
	Code(secret string, p otp.Params) (string, error)
	Remaining(step uint) int
	Verify(secret, code string, p otp.Params) bool
}

type provisioner interface {
	Generate(accountName string) (secret string, uri string, err error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoBlob      repoBlob
	idemp         idempotency.Idempotency
	validator     validator.Validator
	cfg           config.Config
	hash          hash.Hash
	hmac          hash.Hash
	sealer        seal.Sealer
	totp          totpEngine
	parser        otp.Parser
	provisioner   provisioner
	uid           uid.NumberID
	uuid          uid.StringID
	oid           uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoBlob      repoBlob
	Idempotency   idempotency.Idempotency
	Validator     validator.Validator
	Config        config.Config
	Hash          hash.Hash
	HMAC          hash.Hash
	Sealer        seal.Sealer
	TOTP          totpEngine
	Parser        otp.Parser
	Provisioner   provisioner
	UID           uid.NumberID
	UUID          uid.StringID
	OID           uid.StringID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoBlob:      dep.RepoBlob,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		cfg:           dep.Config,
		hash:          dep.Hash,
		hmac:          dep.HMAC,
		sealer:        dep.Sealer,
		totp:          dep.TOTP,
		parser:        dep.Parser,
		provisioner:   dep.Provisioner,
		uid:           dep.UID,
		uuid:          dep.UUID,
		oid:           dep.OID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("authenticator.usecase").Start(ctx, name)
}

func (s *Usecase) currentUser(ctx context.Context) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.UserID == 0 {
		return nil, goerror.NewUnauthorized("authentication required")
	}

	return clm, nil
}

// openEntry fetches an entry owned by userID and unseals its secret.
func (s *Usecase) openEntry(ctx context.Context, id, userID int64) (*entity.Entry, error) {
	entry, err := s.repoDB.GetEntry(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	plain, err := s.sealer.Open(entry.SealedSecret, entryScope(userID))
	if err != nil {
		return nil, err
	}
	entry.Secret = string(plain)

	return entry, nil
}

func (s *Usecase) entryNotFoundOrServer(ctx context.Context, err error, id, userID int64, op string) error {
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "authenticator entry not found", "entry_id", id, "user_id", userID)
		return goerror.NewNotFound("authenticator not found")
	}

	slog.ErrorContext(ctx, "failed to "+op, "entry_id", id, "user_id", userID, "error", err)
	return goerror.NewServer(err)
}

func entryScope(userID int64) seal.Scope {
	return seal.Scope{UserID: userID, Purpose: seal.PurposeEntrySecret}
}

func entryParams(e entity.Entry) otp.Params {
	return otp.Params{Step: uint(max(e.TimeStep, 0)), Digits: e.Digits}
}

// EntryOutput is an entry with its current code. The secret is never included.
type EntryOutput struct {
	ID               int64
	Name             string
	Issuer           string
	AccountName      string
	Digits           int
	TimeStep         int
	Code             string
	RemainingSeconds int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (s *Usecase) present(e entity.Entry) (EntryOutput, error) {
	p := entryParams(e)

	code, err := s.totp.Code(e.Secret, p)
	if err != nil {
		return EntryOutput{}, err
	}

	return EntryOutput{
		ID:               e.ID,
		Name:             e.Name,
		Issuer:           e.Issuer,
		AccountName:      e.AccountName,
		Digits:           e.Digits,
		TimeStep:         e.TimeStep,
		Code:             code,
		RemainingSeconds: s.totp.Remaining(p.Step),
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}, nil
}
