package otp

import (
	"testing"
	"time"

	pqotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

func TestProvisioner(t *testing.T) {
	t.Run("GeneratedSecretMatchesReferenceImplementation", func(t *testing.T) {
		// Arrange
		p := NewProvisioner("Authenticator", 0, Params{})
		at := time.Unix(1_700_000_000, 0)

		// Act
		secret, uri, err := p.Generate("alice@example.com")

		// Assert
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(DecodeBase32(secret)) != 20 {
			t.Fatalf("expected a 20 byte secret, got %q", secret)
		}
		rec := ParseURL(uri)
		if rec == nil || rec.Secret != secret || rec.AccountName != "alice@example.com" {
			t.Fatalf("expected uri to round trip, got %+v from %s", rec, uri)
		}

		got, _ := Generate(secret, at, Params{})
		want, err := totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
			Period:    30,
			Digits:    pqotp.DigitsSix,
			Algorithm: pqotp.AlgorithmSHA1,
		})
		if err != nil {
			t.Fatalf("reference implementation failed: %v", err)
		}
		if got != want {
			t.Fatalf("got %s, reference says %s", got, want)
		}
	})

	t.Run("MissingAccount", func(t *testing.T) {
		// Arrange
		p := NewProvisioner("Authenticator", 0, Params{})

		// Act
		_, _, err := p.Generate("")

		// Assert
		if err != ErrMissingAccount {
			t.Fatalf("expected ErrMissingAccount, got %v", err)
		}
	})
}

func TestURI(t *testing.T) {
	// Arrange
	rec := ProvisioningRecord{Secret: "jbsw y3dp ehpk 3pxp", Issuer: "Example", AccountName: "alice@example.com"}

	// Act
	uri := URI(rec, Params{Step: 60, Digits: 8})
	got := ParseURL(uri)

	// Assert
	want := ProvisioningRecord{Secret: "JBSWY3DPEHPK3PXP", Issuer: "Example", AccountName: "alice@example.com"}
	if got == nil || *got != want {
		t.Fatalf("got %+v from %s, want %+v", got, uri, want)
	}
}
