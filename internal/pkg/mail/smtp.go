package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrSMTPHostPortRequired is returned when Host or Port is missing.
	ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")
	// ErrNoRecipients is returned when To is empty.
	ErrNoRecipients = errors.New("mail: no recipients")
	// ErrNoSender is returned when neither the message nor the config sets From.
	ErrNoSender = errors.New("mail: no sender")
)

// SMTPConfig configures NewSMTP.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTP sends mail through a relay with optional PLAIN auth.
type SMTP struct {
	addr string
	from string
	auth smtp.Auth
	now  func() time.Time
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTP validates cfg and returns an SMTP sender.
func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	s := &SMTP{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: cfg.From,
		now:  time.Now,
		send: smtp.SendMail,
	}
	if cfg.Username != "" && cfg.Password != "" {
		s.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return s, nil
}

// Send composes msg and hands it to the relay.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	if msg.From == "" {
		msg.From = s.from
	}
	if msg.From == "" {
		return ErrNoSender
	}

	raw := compose(msg, s.now(), randomToken())
	return s.send(s.addr, s.auth, msg.From, msg.To, raw)
}

func (s *SMTP) Close() error { return nil }

func compose(msg Message, at time.Time, token string) []byte {
	var b strings.Builder

	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }
	header("From", msg.From)
	header("To", strings.Join(msg.To, ", "))
	header("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header("Date", at.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")

	switch {
	case msg.HTML != "" && msg.Text != "":
		boundary := "alt-" + token
		header("Content-Type", "multipart/alternative; boundary="+boundary)
		b.WriteString("\r\n")
		for _, part := range []struct{ ct, body string }{
			{"text/plain; charset=UTF-8", msg.Text},
			{"text/html; charset=UTF-8", msg.HTML},
		} {
			fmt.Fprintf(&b, "--%s\r\nContent-Type: %s\r\n\r\n%s\r\n", boundary, part.ct, part.body)
		}
		fmt.Fprintf(&b, "--%s--\r\n", boundary)
	case msg.HTML != "":
		header("Content-Type", "text/html; charset=UTF-8")
		b.WriteString("\r\n" + msg.HTML)
	default:
		header("Content-Type", "text/plain; charset=UTF-8")
		b.WriteString("\r\n" + msg.Text)
	}

	return []byte(b.String())
}

func randomToken() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf[:])
}
