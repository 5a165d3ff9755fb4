package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/h7ml/denoAuthenticator/internal/activity/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
	"github.com/h7ml/denoAuthenticator/internal/pkg/config"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/mail"
	"github.com/h7ml/denoAuthenticator/internal/pkg/uid"
	"github.com/h7ml/denoAuthenticator/internal/pkg/validator"
)

type repoDB interface {
	CreateActivity(ctx context.Context, a entity.Activity) error
	ListActivities(ctx context.Context, userID int64, limit int32) ([]entity.Activity, error)
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("activity.usecase").Start(ctx, name)
}

type ActivityOutput struct {
	ID            int64
	Action        string
	Metadata      map[string]any
	CorrelationID string
	OccurredAt    time.Time
}
