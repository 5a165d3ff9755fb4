package db

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	u, err := scanUser(s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE username = $1`, username))
	if err != nil {
		return nil, s.mapError(err)
	}

	return u, nil
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	u, err := scanUser(s.conn.QueryRow(ctx,
		`SELECT `+userColumns+` FROM auth_users WHERE id = $1`, id))
	if err != nil {
		return nil, s.mapError(err)
	}

	return u, nil
}

func (s *DB) CreateUser(ctx context.Context, user entity.User) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO auth_users (`+userColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	err = s.mapError(err)
	return err
}

// ResetPassword replaces the password hash and removes every session of the
// user in one transaction. It returns the number of sessions removed.
func (s *DB) ResetPassword(ctx context.Context, userID int64, hash string, at time.Time) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer func() { s.endSpan(span, err) }()

	tx, err := s.conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() {
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			slog.ErrorContext(ctx, "failed to rollback", "error", rErr)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE auth_users SET password_hash = $2, updated_at = $3 WHERE id = $1`, userID, hash, at)
	if err != nil {
		return 0, s.mapError(err)
	}
	if err = affected(tag); err != nil {
		return 0, err
	}

	tag, err = tx.Exec(ctx, `DELETE FROM auth_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return 0, s.mapError(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, s.mapError(err)
	}

	return tag.RowsAffected(), nil
}
