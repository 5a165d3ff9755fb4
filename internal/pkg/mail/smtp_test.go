package mail

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"
)

func TestCompose(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("plain text", func(t *testing.T) {
		raw := string(compose(Message{
			From:    "noreply@example.com",
			To:      []string{"alice@example.com"},
			Subject: "New sign-in",
			Text:    "hello",
		}, at, "tok"))

		for _, want := range []string{
			"From: noreply@example.com\r\n",
			"To: alice@example.com\r\n",
			"Subject: New sign-in\r\n",
			"Date: Fri, 02 Jan 2026 03:04:05 +0000\r\n",
			"Content-Type: text/plain; charset=UTF-8\r\n\r\nhello",
		} {
			if !strings.Contains(raw, want) {
				t.Fatalf("message missing %q:\n%s", want, raw)
			}
		}
	})

	t.Run("alternative", func(t *testing.T) {
		raw := string(compose(Message{
			From: "a@example.com", To: []string{"b@example.com"},
			Subject: "x", Text: "plain", HTML: "<p>rich</p>",
		}, at, "tok"))

		if !strings.Contains(raw, "multipart/alternative; boundary=alt-tok") {
			t.Fatalf("missing multipart header:\n%s", raw)
		}
		if !strings.Contains(raw, "--alt-tok\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n<p>rich</p>") {
			t.Fatalf("missing html part:\n%s", raw)
		}
		if !strings.HasSuffix(raw, "--alt-tok--\r\n") {
			t.Fatalf("missing closing boundary:\n%s", raw)
		}
	})

	t.Run("non ascii subject", func(t *testing.T) {
		raw := string(compose(Message{From: "a@x", To: []string{"b@x"}, Subject: "Sécurité"}, at, "tok"))
		if !strings.Contains(raw, "Subject: =?utf-8?q?") {
			t.Fatalf("subject should be Q-encoded:\n%s", raw)
		}
	})
}

func TestSMTPSend(t *testing.T) {
	s, err := NewSMTP(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"})
	if err != nil {
		t.Fatalf("NewSMTP() error = %v", err)
	}

	var gotAddr, gotFrom string
	var gotTo []string
	s.send = func(addr string, _ smtp.Auth, from string, to []string, _ []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}

	if err := s.Send(context.Background(), Message{To: []string{"alice@example.com"}, Subject: "hi", Text: "x"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if gotAddr != "localhost:1025" || gotFrom != "noreply@example.com" || len(gotTo) != 1 {
		t.Fatalf("relay got addr=%s from=%s to=%v", gotAddr, gotFrom, gotTo)
	}

	if err := s.Send(context.Background(), Message{}); !errors.Is(err, ErrNoRecipients) {
		t.Fatalf("Send() without recipients error = %v", err)
	}

	if _, err := NewSMTP(SMTPConfig{}); !errors.Is(err, ErrSMTPHostPortRequired) {
		t.Fatalf("NewSMTP() error = %v", err)
	}
}
