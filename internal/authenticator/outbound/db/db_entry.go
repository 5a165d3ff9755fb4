package db

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
)

const entryColumns = `id, user_id, name, issuer, account_name, secret, digits, time_step, created_at, updated_at`

func scanEntry(row pgx.Row) (entity.Entry, error) {
	var e entity.Entry
	err := row.Scan(&e.ID, &e.UserID, &e.Name, &e.Issuer, &e.AccountName,
		&e.SealedSecret, &e.Digits, &e.TimeStep, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (s *DB) CreateEntry(ctx context.Context, entry entity.Entry) (err error) {
	ctx, span := s.startSpan(ctx, "CreateEntry")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		`INSERT INTO auth_entries (`+entryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID, entry.UserID, entry.Name, entry.Issuer, entry.AccountName,
		entry.SealedSecret, entry.Digits, entry.TimeStep, entry.CreatedAt, entry.UpdatedAt)

	err = s.mapError(err)
	return err
}

func (s *DB) GetEntry(ctx context.Context, id, userID int64) (_ *entity.Entry, err error) {
	ctx, span := s.startSpan(ctx, "GetEntry")
	defer func() { s.endSpan(span, err) }()

	e, err := scanEntry(s.conn.QueryRow(ctx,
		`SELECT `+entryColumns+` FROM auth_entries WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		return nil, s.mapError(err)
	}

	return &e, nil
}

func (s *DB) ListEntries(ctx context.Context, userID int64) (_ []entity.Entry, err error) {
	ctx, span := s.startSpan(ctx, "ListEntries")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		`SELECT `+entryColumns+` FROM auth_entries WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, s.mapError(err)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.Entry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, s.mapError(err)
	}

	return entries, nil
}

func (s *DB) UpdateEntry(ctx context.Context, patch entity.EntryPatch) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateEntry")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		`UPDATE auth_entries SET name = $3, issuer = $4, account_name = $5, updated_at = $6
		 WHERE id = $1 AND user_id = $2`,
		patch.ID, patch.UserID, patch.Name, patch.Issuer, patch.AccountName, patch.UpdatedAt)
	if err != nil {
		return s.mapError(err)
	}

	err = affected(tag)
	return err
}

func (s *DB) DeleteEntry(ctx context.Context, id, userID int64) (err error) {
	ctx, span := s.startSpan(ctx, "DeleteEntry")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, `DELETE FROM auth_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return s.mapError(err)
	}

	err = affected(tag)
	return err
}
