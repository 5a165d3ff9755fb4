package otp

import (
	"time"

	"github.com/h7ml/denoAuthenticator/internal/pkg/clock"
)

// DefaultStep is the TOTP time step in seconds used when none is configured.
const DefaultStep uint = 30

// Params controls code generation. Zero fields fall back to DefaultStep and
// DefaultDigits.
type Params struct {
	Step   uint
	Digits int
}

func (p Params) step() uint {
	if p.Step == 0 {
		return DefaultStep
	}
	return p.Step
}

func (p Params) digits() int {
	if p.Digits <= 0 {
		return DefaultDigits
	}
	return p.Digits
}

// merge fills zero fields of p from def.
func (p Params) merge(def Params) Params {
	if p.Step == 0 {
		p.Step = def.Step
	}
	if p.Digits <= 0 {
		p.Digits = def.Digits
	}
	return p
}

// Counter returns the RFC 6238 moving factor for at. Times before the epoch
// are treated as the epoch.
func Counter(at time.Time, step uint) uint64 {
	if step == 0 {
		step = DefaultStep
	}

	ms := at.UnixMilli()
	if ms < 0 {
		return 0
	}

	return uint64(ms) / 1000 / uint64(step)
}

// Generate returns the TOTP code for a Base32 secret at the given time.
func Generate(secret string, at time.Time, p Params) (string, error) {
	return HOTP(DecodeBase32(secret), Counter(at, p.step()), p.digits())
}

// RemainingSeconds returns how long the code for now stays valid, in the
// range [1, step]. A bucket boundary belongs to the new bucket.
func RemainingSeconds(now time.Time, step uint) int {
	if step == 0 {
		step = DefaultStep
	}

	s := int64(step)
	mod := now.Unix() % s
	if mod < 0 {
		mod += s
	}

	return int(s - mod)
}

// TOTP binds code generation and verification to a clock and a set of
// default parameters.
type TOTP struct {
	clock    clock.Clocker
	defaults Params
	window   int
}

// NewTOTP returns a TOTP engine. Zero fields in defaults fall back to the
// package defaults and a negative window is treated as zero.
func NewTOTP(clk clock.Clocker, defaults Params, window int) *TOTP {
	if clk == nil {
		clk = clock.New()
	}
	if window < 0 {
		window = 0
	}

	return &TOTP{
		clock:    clk,
		defaults: Params{Step: defaults.step(), Digits: defaults.digits()},
		window:   window,
	}
}

// Code returns the current code for secret.
func (t *TOTP) Code(secret string, p Params) (string, error) {
	return t.CodeAt(secret, t.clock.Now(), p)
}

// CodeAt returns the code for secret at the given time.
func (t *TOTP) CodeAt(secret string, at time.Time, p Params) (string, error) {
	return Generate(secret, at, p.merge(t.defaults))
}

// Remaining returns the seconds left in the current step.
func (t *TOTP) Remaining(step uint) int {
	if step == 0 {
		step = t.defaults.Step
	}
	return RemainingSeconds(t.clock.Now(), step)
}

// Verify reports whether code matches secret within the engine window.
func (t *TOTP) Verify(secret, code string, p Params) bool {
	return Verify(secret, code, t.clock.Now(), p.merge(t.defaults), t.window)
}
