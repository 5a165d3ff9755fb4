package otp

import (
	"net/url"
	"strings"
)

const (
	phoneFactorIssuer = "Microsoft"
	minSecretLength   = 10
)

// PhoneFactorParser parses Microsoft activation links:
//
//	phonefactor://activate_account?code=NUMBER&url=PERCENT_ENCODED_URL
//
// The secret is the last path segment of the decoded activation URL.
type PhoneFactorParser struct{}

func (PhoneFactorParser) Parse(raw string) *ProvisioningRecord {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "phonefactor" {
		return nil
	}

	q := u.Query()
	code, activation := q.Get("code"), q.Get("url")
	if code == "" || activation == "" {
		return nil
	}

	// Some issuers encode the activation URL twice.
	activation, err = url.PathUnescape(activation)
	if err != nil {
		return nil
	}

	parts := strings.Split(activation, "/")
	secret := parts[len(parts)-1]
	if len(secret) < minSecretLength {
		return nil
	}

	return &ProvisioningRecord{
		Secret:      secret,
		Issuer:      phoneFactorIssuer,
		AccountName: phoneFactorIssuer + " Account (" + code + ")",
	}
}
