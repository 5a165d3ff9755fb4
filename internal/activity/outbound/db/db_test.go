package db

import (
	"context"
	"testing"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/activity/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/pgtest"
	"github.com/h7ml/denoAuthenticator/internal/pkg/valueobject"
)

func TestDB_Activities(t *testing.T) {
	s := NewDB(pgtest.New(t), instrument.NewNoop())
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	// Arrange
	for i, act := range []entity.Activity{
		{ID: 1, UserID: 7, Action: entity.ActionUserRegistered, Metadata: valueobject.JSONMap{"username": "alice"}, CorrelationID: "c1", OccurredAt: base},
		{ID: 2, UserID: 7, Action: entity.ActionEntryCreated, Metadata: valueobject.JSONMap{"entry_id": "42"}, OccurredAt: base.Add(time.Minute)},
		{ID: 3, UserID: 8, Action: entity.ActionEntryCreated, OccurredAt: base},
		{ID: 4, UserID: 7, Action: entity.ActionEntryDeleted, OccurredAt: base.Add(2 * time.Minute)},
	} {
		act.CreatedAt = base
		if err := s.CreateActivity(ctx, act); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	// Act
	got, err := s.ListActivities(ctx, 7, 2)

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].ID != 4 || got[1].ID != 2 {
		t.Fatalf("order = [%d %d], want [4 2]", got[0].ID, got[1].ID)
	}
	if got[1].Metadata.GetString("entry_id") != "42" {
		t.Fatalf("metadata = %v", got[1].Metadata)
	}
	if got[0].Metadata == nil {
		t.Fatal("nil metadata must scan as an empty map")
	}

	all, err := s.ListActivities(ctx, 7, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 || all[2].CorrelationID != "c1" {
		t.Fatalf("got %+v", all)
	}
}
