// Package clock lets code read the time through an interface so tests can pin
// it. TOTP codes and session expiry both depend on it.
package clock
