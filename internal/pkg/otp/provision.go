package otp

import (
	"errors"

	"github.com/creachadair/otp/otpauth"
	pqotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// ErrMissingAccount is returned when a provisioning request has no account name.
var ErrMissingAccount = errors.New("otp: account name is required")

// Provisioner creates new shared secrets and their provisioning URIs.
type Provisioner struct {
	issuer     string
	secretSize uint
	params     Params
}

// NewProvisioner returns a Provisioner. A zero secretSize means 20 bytes, the
// RFC 4226 recommendation for SHA-1.
func NewProvisioner(issuer string, secretSize uint, p Params) *Provisioner {
	if secretSize == 0 {
		secretSize = 20
	}

	return &Provisioner{
		issuer:     issuer,
		secretSize: secretSize,
		params:     Params{Step: p.step(), Digits: p.digits()},
	}
}

// Generate creates a random secret for accountName and returns it with its
// otpauth URI.
func (p *Provisioner) Generate(accountName string) (secret string, uri string, err error) {
	if accountName == "" {
		return "", "", ErrMissingAccount
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      p.issuer,
		AccountName: accountName,
		Period:      p.params.Step,
		SecretSize:  p.secretSize,
		Digits:      pqotp.Digits(p.params.Digits),
		Algorithm:   pqotp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

// URI returns the otpauth URI for an existing record, suitable for QR export.
func URI(rec ProvisioningRecord, p Params) string {
	u := otpauth.URL{
		Type:      "totp",
		Issuer:    rec.Issuer,
		Account:   rec.AccountName,
		RawSecret: EncodeBase32(DecodeBase32(rec.Secret)),
		Digits:    p.digits(),
		Period:    int(p.step()),
	}

	return u.String()
}
