package inbound

import (
	"context"

	"github.com/h7ml/denoAuthenticator/internal/activity/usecase"
)

type uc interface {
	Record(ctx context.Context, in usecase.RecordInput) error
	ActivityList(ctx context.Context, in usecase.ActivityListInput) ([]usecase.ActivityOutput, error)
}
