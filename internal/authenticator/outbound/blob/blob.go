package blob

import (
	"bytes"
	"context"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/h7ml/denoAuthenticator/internal/pkg/instrument"
	"github.com/h7ml/denoAuthenticator/internal/pkg/storage"
)

// Blob stores entry exports in a single bucket.
type Blob struct {
	store  storage.Storage
	bucket string
	ins    instrument.Instrumentation
}

func NewBlob(store storage.Storage, bucket string, ins instrument.Instrumentation) *Blob {
	return &Blob{store: store, bucket: bucket, ins: ins}
}

func (b *Blob) PutExport(ctx context.Context, key string, body []byte) (err error) {
	ctx, span := b.ins.Tracer("authenticator.outbound.blob").Start(ctx, "PutExport")
	defer func() { endSpan(span, err) }()

	_, err = b.store.Put(ctx, b.bucket, key, bytes.NewReader(body), storage.PutOptions{
		Size:        int64(len(body)),
		ContentType: "application/json",
		Metadata:    map[string]string{"kind": "authenticator-export"},
	})
	return err
}

func (b *Blob) ExportURL(ctx context.Context, key string, expiry time.Duration) (_ string, err error) {
	ctx, span := b.ins.Tracer("authenticator.outbound.blob").Start(ctx, "ExportURL")
	defer func() { endSpan(span, err) }()

	return b.store.PresignGet(ctx, b.bucket, key, expiry)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
