package authenticator

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/inbound"
	"github.com/h7ml/denoAuthenticator/internal/authenticator/outbound/blob"
	"github.com/h7ml/denoAuthenticator/internal/authenticator/outbound/db"
	"github.com/h7ml/denoAuthenticator/internal/authenticator/outbound/mq"
	"github.com/h7ml/denoAuthenticator/internal/authenticator/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goroutine"
	"github.com/h7ml/denoAuthenticator/internal/pkg/hash"
	"github.com/h7ml/denoAuthenticator/internal/pkg/idempotency"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
	"github.com/h7ml/denoAuthenticator/internal/pkg/seal"
	"github.com/h7ml/denoAuthenticator/internal/pkg/storage"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/pkg/validator"
)

const defaultCleanupInterval = time.Hour

type Dependency struct {
	Ctx         context.Context            `validate:"required"`
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Messaging   messaging.Publisher        `validate:"required"`
	Storage     storage.Storage            `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	OID         uid.StringID               `validate:"required"`
	Hash        hash.Hash                  `validate:"required"`
	HMAC        hash.Hash                  `validate:"required"`
	Sealer      seal.Sealer                `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	TOTP        *otp.TOTP                  `validate:"required"`
	Parser      otp.Parser                 `validate:"required"`
	Provisioner *otp.Provisioner           `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	JWT         jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	bucket := dep.Config.GetString("modules.authenticator.export_bucket")
	if err := dep.Storage.EnsureBucket(dep.Ctx, bucket); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Clock, dep.Instrument),
		RepoBlob:      blob.NewBlob(dep.Storage, bucket, dep.Instrument),
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Hash:          dep.Hash,
		HMAC:          dep.HMAC,
		Sealer:        dep.Sealer,
		TOTP:          dep.TOTP,
		Parser:        dep.Parser,
		Provisioner:   dep.Provisioner,
		UID:           dep.UID,
		UUID:          dep.UUID,
		OID:           dep.OID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	dep.Router.SetSessionChecker(uc)

	interval := dep.Config.GetMinute("modules.authenticator.session_cleanup_interval_minutes")
	if interval <= 0 {
		interval = defaultCleanupInterval
	}
	dep.Goroutine.Every(dep.Ctx, "authenticator.session_cleanup", interval, func(ctx context.Context) error {
		_, err := uc.SessionCleanup(ctx)
		return err
	})

	return nil
}
