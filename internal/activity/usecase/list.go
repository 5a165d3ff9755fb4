package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/h7ml/denoAuthenticator/internal/activity/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/jwt"
)

const defaultListLimit int32 = 20

type ActivityListInput struct {
	Limit int32 `validate:"omitempty,min=1,max=100"`
}

func (s *Usecase) ActivityList(ctx context.Context, in ActivityListInput) ([]ActivityOutput, error) {
	ctx, span := s.startSpan(ctx, "ActivityList")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil || clm.UserID == 0 {
		return nil, goerror.NewUnauthorized("authentication required")
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if in.Limit == 0 {
		in.Limit = defaultListLimit
	}

	items, err := s.repoDB.ListActivities(ctx, clm.UserID, in.Limit)
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo list activities", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	return lo.Map(items, func(a entity.Activity, _ int) ActivityOutput {
		meta := map[string]any(a.Metadata)
		if meta == nil {
			meta = map[string]any{}
		}
		return ActivityOutput{
			ID:            a.ID,
			Action:        a.Action.String(),
			Metadata:      meta,
			CorrelationID: a.CorrelationID,
			OccurredAt:    a.OccurredAt,
		}
	}), nil
}
