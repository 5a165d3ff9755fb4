package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/h7ml/denoAuthenticator/internal/activity/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/valueobject"
)

type DB struct {
	conn *pgxpool.Pool
	ins  instrument.Instrumentation
}

func NewDB(conn *pgxpool.Pool, ins instrument.Instrumentation) *DB {
	return &DB{conn: conn, ins: ins}
}

func (s *DB) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("activity.outbound.db").Start(ctx, name)
}

func (s *DB) endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *DB) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return goerror.ErrNotFound
	}
	return err
}

func (s *DB) CreateActivity(ctx context.Context, a entity.Activity) (err error) {
	ctx, span := s.startSpan(ctx, "CreateActivity")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO activity_logs (id, user_id, action, metadata, correlation_id, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.UserID, a.Action.String(), a.Metadata, a.CorrelationID, a.OccurredAt, a.CreatedAt)

	err = s.mapError(err)
	return err
}

func (s *DB) ListActivities(ctx context.Context, userID int64, limit int32) (_ []entity.Activity, err error) {
	ctx, span := s.startSpan(ctx, "ListActivities")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT id, user_id, action, metadata, correlation_id, occurred_at, created_at
		FROM activity_logs WHERE user_id = $1
		ORDER BY occurred_at DESC, id DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, s.mapError(err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Activity, error) {
		var (
			a      entity.Activity
			action string
			meta   valueobject.JSONMap
		)
		if err := row.Scan(&a.ID, &a.UserID, &action, &meta, &a.CorrelationID, &a.OccurredAt, &a.CreatedAt); err != nil {
			return a, err
		}
		a.Action = entity.Action(action)
		a.Metadata = meta
		return a, nil
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return items, nil
}
