package otp

import (
	"strings"
	"unicode"
)

const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// base32Index maps a byte to its 5-bit value, or -1 when it is not part of
// the alphabet. Lowercase letters map like their uppercase form.
var base32Index = func() [256]int8 {
	var idx [256]int8
	for i := range idx {
		idx[i] = -1
	}
	for i := 0; i < len(base32Alphabet); i++ {
		c := base32Alphabet[i]
		idx[c] = int8(i)
		if c >= 'A' && c <= 'Z' {
			idx[c+'a'-'A'] = int8(i)
		}
	}
	return idx
}()

// EncodeBase32 encodes b with the RFC 4648 alphabet. The last group is padded
// with zero bits and no '=' characters are appended.
func EncodeBase32(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow((len(b)*8 + 4) / 5)

	var buf uint32
	bits := 0
	for _, c := range b {
		buf = buf<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			sb.WriteByte(base32Alphabet[(buf>>uint(bits))&0x1f])
		}
		buf &= 1<<uint(bits) - 1
	}
	if bits > 0 {
		sb.WriteByte(base32Alphabet[(buf<<uint(5-bits))&0x1f])
	}

	return sb.String()
}

// DecodeBase32 decodes s leniently. Whitespace and characters outside the
// alphabet are skipped, case is ignored, and only whole bytes are returned.
func DecodeBase32(s string) []byte {
	out := make([]byte, 0, len(s)*5/8)

	var buf uint32
	bits := 0
	for _, r := range s {
		if r > unicode.MaxLatin1 || unicode.IsSpace(r) {
			continue
		}
		v := base32Index[byte(r)]
		if v < 0 {
			continue
		}
		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>uint(bits)))
			buf &= 1<<uint(bits) - 1
		}
	}

	return out
}
