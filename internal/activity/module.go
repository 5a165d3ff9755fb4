package activity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/h7ml/denoAuthenticator/internal/activity/inbound"
	"github.com/h7ml/denoAuthenticator/internal/activity/outbound/db"
	"github.com/h7ml/denoAuthenticator/internal/activity/outbound/email"
	"github.com/h7ml/denoAuthenticator/internal/activity/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goroutine"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/mail"
	"github.com/h7ml/denoAuthenticator/internal/pkg/messaging"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Consumer         `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		RepoMail:   email.New(dep.Mail, dep.Instrument),
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)
	if dep.Config.GetBool("modules.activity.consumer_enabled") {
		inbound.RegisterMQConsumer(dep.Ctx, dep.Goroutine, dep.Messaging, dep.UUID, uc, dep.Instrument)
	}

	return nil
}
