package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		// Act
		got := GetCorrelationID(context.Background())

		// Assert
		if got != InvalidCorrelationID {
			t.Fatalf("got %q, want %q", got, InvalidCorrelationID)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		// Arrange
		ctx := SetCorrelationID(context.Background(), "abc")

		// Act
		got := GetCorrelationID(ctx)

		// Assert
		if got != "abc" {
			t.Fatalf("got %q, want abc", got)
		}
	})
}

func TestLogger(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := newLogger(&buf, "authenticator", slog.LevelInfo, nil, []string{"password", "Secret"})
	ctx := SetCorrelationID(context.Background(), "cid-1")

	// Act
	logger.InfoContext(ctx, "request received",
		"password", "hunter2",
		"body", map[string]any{"username": "alice", "secret": "JBSWY3DPEHPK3PXP"},
		"raw", `{"entries":[{"secret":"X"}]}`,
	)

	// Assert
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected json log line, got %q", buf.String())
	}
	if line["password"] != Masked {
		t.Fatalf("expected password masked, got %v", line["password"])
	}
	body, _ := line["body"].(map[string]any)
	if body["secret"] != Masked || body["username"] != "alice" {
		t.Fatalf("unexpected body %v", body)
	}
	if line["raw"] != `{"entries":[{"secret":"***"}]}` {
		t.Fatalf("unexpected raw %v", line["raw"])
	}
	if line["_cID"] != "cid-1" || line["service"] != "authenticator" {
		t.Fatalf("missing context attributes in %v", line)
	}
	if line["severity"] != "INFO" || line["ts"] == nil {
		t.Fatalf("expected renamed keys in %v", line)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{"": slog.LevelInfo, "debug": slog.LevelDebug, "WARN": slog.LevelWarn, "nope": slog.LevelInfo}

	for in, want := range cases {
		// Act
		got := parseLevel(in)

		// Assert
		if got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
