package inbound

import (
	"github.com/samber/lo"

	"github.com/h7ml/denoAuthenticator/internal/activity/usecase"
	"github.com/h7ml/denoAuthenticator/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// ActivityList returns the caller's recent account and authenticator activity.
// @Summary List activity
// @Tags Activity
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max items (1..100, default 20)"
// @Success 200 {object} router.successResponse{data=ActivitiesResponse}
// @Failure 400 {object} router.errorResponse "Invalid limit"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Router /api/v1/activities [get]
func (h *HTTPEndpoint) ActivityList(r *router.Request) (any, error) {
	limit, err := r.GetQueryInt32("limit")
	if err != nil {
		return nil, err
	}

	items, err := h.uc.ActivityList(r.Context(), usecase.ActivityListInput{Limit: limit})
	if err != nil {
		return nil, err
	}

	return ActivitiesResponse{
		Activities: lo.Map(items, func(a usecase.ActivityOutput, _ int) ActivityResponse {
			return ActivityResponse{
				ID:            a.ID,
				Action:        a.Action,
				Metadata:      a.Metadata,
				CorrelationID: a.CorrelationID,
				OccurredAt:    a.OccurredAt,
			}
		}),
	}, nil
}
