package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/pgtest"
)

func TestDB(t *testing.T) {
	s := NewDB(pgtest.New(t), instrument.NewNoop())
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	alice := entity.User{ID: 1, Username: "alice", Email: "alice@example.com", PasswordHash: "h1", CreatedAt: now, UpdatedAt: now}
	if err := s.CreateUser(ctx, alice); err != nil {
		t.Fatalf("create user: %v", err)
	}

	t.Run("UserConflict", func(t *testing.T) {
		dup := alice
		dup.ID = 2

		err := s.CreateUser(ctx, dup)

		if !errors.Is(err, goerror.ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("UserLookup", func(t *testing.T) {
		got, err := s.GetUserByUsername(ctx, "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != alice.ID || got.Email != alice.Email {
			t.Fatalf("got %+v", got)
		}

		_, err = s.GetUserByID(ctx, 404)
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("Sessions", func(t *testing.T) {
		// Arrange
		for _, sess := range []entity.Session{
			{ID: "expired", UserID: 1, Username: "alice", ExpiresAt: now.Add(-time.Minute), CreatedAt: now},
			{ID: "live", UserID: 1, Username: "alice", ExpiresAt: now.Add(time.Hour), CreatedAt: now},
		} {
			if err := s.CreateSession(ctx, sess); err != nil {
				t.Fatalf("create session: %v", err)
			}
		}

		// Act
		n, err := s.DeleteExpiredSessions(ctx, now)

		// Assert
		if err != nil || n != 1 {
			t.Fatalf("deleted %d, err %v; want 1", n, err)
		}
		if _, err := s.GetSession(ctx, "live"); err != nil {
			t.Fatalf("live session missing: %v", err)
		}
		if err := s.DeleteSession(ctx, "expired"); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("ResetPasswordRevokesSessions", func(t *testing.T) {
		revoked, err := s.ResetPassword(ctx, 1, "h2", now.Add(time.Minute))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if revoked != 1 {
			t.Fatalf("revoked = %d, want 1", revoked)
		}

		got, _ := s.GetUserByID(ctx, 1)
		if got.PasswordHash != "h2" {
			t.Fatalf("hash not updated")
		}

		if _, err := s.ResetPassword(ctx, 404, "h", now); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("Entries", func(t *testing.T) {
		// Arrange
		older := entity.Entry{ID: 10, UserID: 1, Name: "older", SealedSecret: []byte{1, 2, 3}, Digits: 6, TimeStep: 30, CreatedAt: now, UpdatedAt: now}
		newer := older
		newer.ID, newer.Name, newer.CreatedAt = 11, "newer", now.Add(time.Second)
		for _, e := range []entity.Entry{older, newer} {
			if err := s.CreateEntry(ctx, e); err != nil {
				t.Fatalf("create entry: %v", err)
			}
		}

		// Act
		list, err := s.ListEntries(ctx, 1)

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(list) != 2 || list[0].ID != 11 {
			t.Fatalf("list = %+v", list)
		}

		if _, err := s.GetEntry(ctx, 10, 2); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("other owner: err = %v, want ErrNotFound", err)
		}

		err = s.UpdateEntry(ctx, entity.EntryPatch{ID: 10, UserID: 1, Name: "renamed", UpdatedAt: now})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		got, _ := s.GetEntry(ctx, 10, 1)
		if got.Name != "renamed" || string(got.SealedSecret) != string([]byte{1, 2, 3}) {
			t.Fatalf("got %+v", got)
		}

		if err := s.UpdateEntry(ctx, entity.EntryPatch{ID: 10, UserID: 2, Name: "x"}); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
		if err := s.DeleteEntry(ctx, 10, 1); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if err := s.DeleteEntry(ctx, 10, 1); !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("EntryForMissingUser", func(t *testing.T) {
		err := s.CreateEntry(ctx, entity.Entry{ID: 99, UserID: 404, Name: "x", SealedSecret: []byte{1}, Digits: 6, TimeStep: 30, CreatedAt: now, UpdatedAt: now})
		if !errors.Is(err, goerror.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})
}
