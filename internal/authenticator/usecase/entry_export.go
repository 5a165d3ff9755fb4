package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/h7ml/denoAuthenticator/internal/authenticator/entity"
	"github.com/h7ml/denoAuthenticator/internal/pkg/goerror"
	"github.com/h7ml/denoAuthenticator/internal/pkg/otp"
)

type exportDocument struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Entries    []exportEntry `json:"entries"`
}

type exportEntry struct {
	Name        string    `json:"name"`
	Issuer      string    `json:"issuer"`
	AccountName string    `json:"account_name"`
	Secret      string    `json:"secret"`
	Digits      int       `json:"digits"`
	TimeStep    int       `json:"time_step"`
	URI         string    `json:"uri"`
	CreatedAt   time.Time `json:"created_at"`
}

type EntryExportOutput struct {
	Key       string
	URL       string
	Count     int
	ExpiresAt time.Time
}

// EntryExport writes a JSON backup of every entry to object storage and returns
// a presigned link to it.
func (s *Usecase) EntryExport(ctx context.Context) (*EntryExportOutput, error) {
	ctx, span := s.startSpan(ctx, "EntryExport")
	defer span.End()

	clm, err := s.currentUser(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := s.openEntries(ctx, clm.UserID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	body, err := json.Marshal(exportDocument{
		Version:    1,
		ExportedAt: now,
		Entries: lo.Map(entries, func(e entity.Entry, _ int) exportEntry {
			return exportEntry{
				Name:        e.Name,
				Issuer:      e.Issuer,
				AccountName: e.AccountName,
				Secret:      e.Secret,
				Digits:      e.Digits,
				TimeStep:    e.TimeStep,
				URI: otp.URI(otp.ProvisioningRecord{
					Secret:      e.Secret,
					Issuer:      e.Issuer,
					AccountName: e.AccountName,
				}, entryParams(e)),
				CreatedAt: e.CreatedAt,
			}
		}),
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal export", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	key := "exports/" + strconv.FormatInt(clm.UserID, 10) + "/" + s.oid.Generate() + ".json"
	if err := s.repoBlob.PutExport(ctx, key, body); err != nil {
		slog.ErrorContext(ctx, "failed to upload export", "user_id", clm.UserID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	expiry := s.cfg.GetMinute("modules.authenticator.export_url_expiry_minutes")
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	url, err := s.repoBlob.ExportURL(ctx, key, expiry)
	if err != nil {
		slog.ErrorContext(ctx, "failed to presign export url", "user_id", clm.UserID, "key", key, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &EntryExportOutput{
		Key:       key,
		URL:       url,
		Count:     len(entries),
		ExpiresAt: now.Add(expiry),
	}, nil
}
