package otp

import (
	"net/url"
	"strings"
)

// OTPAuthParser parses the Key URI format used by most authenticator apps:
//
//	otpauth://TYPE/LABEL?secret=BASE32&issuer=ISSUER
//
// The issuer query value wins over the label. A label of the form
// "Issuer:Account" is split at the first colon.
type OTPAuthParser struct{}

func (OTPAuthParser) Parse(raw string) *ProvisioningRecord {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme != "otpauth" {
		return nil
	}

	q := u.Query()
	secret := q.Get("secret")
	if secret == "" {
		return nil
	}

	labelIssuer, account, ok := splitLabel(u.EscapedPath())
	if !ok {
		return nil
	}

	issuer := q.Get("issuer")
	if issuer == "" {
		issuer = labelIssuer
	}

	return &ProvisioningRecord{
		Secret:      secret,
		Issuer:      issuer,
		AccountName: account,
	}
}

// splitLabel returns the issuer and account encoded in an escaped path. With
// two or more segments they are the first and second segment. A single
// segment holding a colon is split there. Otherwise the segment only names
// the issuer.
func splitLabel(escaped string) (issuer, account string, ok bool) {
	segments := strings.Split(strings.TrimPrefix(escaped, "/"), "/")
	for i, s := range segments {
		v, err := url.PathUnescape(s)
		if err != nil {
			return "", "", false
		}
		segments[i] = v
	}

	if len(segments) >= 2 {
		return segments[0], segments[1], true
	}

	if before, after, found := strings.Cut(segments[0], ":"); found {
		return strings.TrimSpace(before), strings.TrimSpace(after), true
	}

	return segments[0], "", true
}
