package db

import (
	"context"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
)

func (s *DB) CreateSession(ctx context.Context, sess entity.Session) (err error) {
	ctx, span := s.startSpan(ctx, "CreateSession")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO auth_sessions (id, user_id, username, expires_at, created_at) VALUES ($1, $2, $3, $4, $5)`,
		sess.ID, sess.UserID, sess.Username, sess.ExpiresAt, sess.CreatedAt)

	err = s.mapError(err)
	return err
}

func (s *DB) GetSession(ctx context.Context, id string) (_ *entity.Session, err error) {
	ctx, span := s.startSpan(ctx, "GetSession")
	defer func() { s.endSpan(span, err) }()

	var sess entity.Session
	err = s.conn.QueryRow(ctx,
		`SELECT id, user_id, username, expires_at, created_at FROM auth_sessions WHERE id = $1`, id,
	).Scan(&sess.ID, &sess.UserID, &sess.Username, &sess.ExpiresAt, &sess.CreatedAt)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &sess, nil
}

func (s *DB) DeleteSession(ctx context.Context, id string) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteSession")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM auth_sessions WHERE id = $1`, id)
	if err != nil {
		return s.mapError(err)
	}

	err = affected(tag)
	return err
}

func (s *DB) DeleteExpiredSessions(ctx context.Context, now time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteExpiredSessions")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM auth_sessions WHERE expires_at <= $1`, now)
	if err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
