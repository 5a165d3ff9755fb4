// Package otp implements the one-time password core used by the authenticator
// module: a lenient Base32 codec, HOTP (RFC 4226), TOTP (RFC 6238), a windowed
// verifier, and parsers for authenticator provisioning URLs.
//
// Everything here is pure and safe for concurrent use. Only SHA-1 is
// supported, which is what authenticator apps use in practice.
//
// Base32 decoding never fails. Characters outside the RFC 4648 alphabet are
// dropped without notice, so a mistyped secret silently decodes to a different
// key. Callers that accept user input should check the result is non-empty.
package otp
