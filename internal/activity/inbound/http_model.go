package inbound

import "time"

type ActivityResponse struct {
	ID            int64          `json:"id,string"`
	Action        string         `json:"action"`
	Metadata      map[string]any `json:"metadata"`
	CorrelationID string         `json:"correlation_id,omitempty"`
	OccurredAt    time.Time      `json:"occurred_at"`
}

type ActivitiesResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

func (r ActivitiesResponse) Meta() map[string]any {
	return map[string]any{"count": len(r.Activities)}
}
