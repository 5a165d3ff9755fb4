package otp

import "log/slog"

// ProvisioningRecord is the normalized result of parsing a provisioning URL.
type ProvisioningRecord struct {
	Secret      string `json:"secret"`
	Issuer      string `json:"issuer"`
	AccountName string `json:"account_name"`
}

// Parser recognizes one provisioning URL scheme. Parse returns nil when raw is
// not in its format.
type Parser interface {
	Parse(raw string) *ProvisioningRecord
}

// Dispatcher tries parsers in order and returns the first match.
type Dispatcher struct {
	parsers []Parser
}

// NewDispatcher returns a Dispatcher over parsers. With no arguments it uses
// the otpauth parser followed by the phonefactor parser.
func NewDispatcher(parsers ...Parser) *Dispatcher {
	if len(parsers) == 0 {
		parsers = []Parser{OTPAuthParser{}, PhoneFactorParser{}}
	}

	return &Dispatcher{parsers: parsers}
}

// Parse implements Parser. A panicking parser counts as a failed parse.
func (d *Dispatcher) Parse(raw string) *ProvisioningRecord {
	for _, p := range d.parsers {
		if rec := tryParse(p, raw); rec != nil {
			return rec
		}
	}

	return nil
}

func tryParse(p Parser, raw string) (rec *ProvisioningRecord) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("provisioning url parser panicked", "parser", p, "panic", r)
			rec = nil
		}
	}()

	return p.Parse(raw)
}

var defaultDispatcher = NewDispatcher()

// ParseURL parses raw with the default parser list. It returns nil when no
// parser recognizes the URL.
func ParseURL(raw string) *ProvisioningRecord {
	return defaultDispatcher.Parse(raw)
}
