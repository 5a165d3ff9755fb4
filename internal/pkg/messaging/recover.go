package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/h7ml/denoAuthenticator/internal/pkg/stacktrace"
)

func handleSafely(ctx context.Context, subject string, fn func() error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}

		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in message handler", "subject", subject, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in message handler", "subject", subject, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in %s handler: %v", subject, rvr)
	}()

	return fn()
}

type responder interface {
	Ack(context.Context) error
	Nack(context.Context) error
	responded() bool
}

func settle(ctx context.Context, msg responder, autoAck bool, handlerErr error) {
	if !autoAck || msg.responded() {
		return
	}

	var err error
	if handlerErr == nil {
		err = msg.Ack(ctx)
	} else {
		err = msg.Nack(ctx)
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to settle message", "error", err)
	}
}
