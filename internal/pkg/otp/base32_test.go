package otp

import (
	"bytes"
	"testing"
)

func TestEncodeBase32(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Empty", in: "", want: ""},
		{name: "OneByte", in: "f", want: "MY"},
		{name: "TwoBytes", in: "fo", want: "MZXQ"},
		{name: "FiveBytes", in: "fooba", want: "MZXW6YTB"},
		{name: "SixBytes", in: "foobar", want: "MZXW6YTBOI"},
		{name: "HelloBang", in: "Hello!\xde\xad\xbe\xef", want: "JBSWY3DPEHPK3PXP"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := EncodeBase32([]byte(tt.in))

			// Assert
			if got != tt.want {
				t.Fatalf("EncodeBase32(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeBase32(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "Canonical", in: "MZXW6YTBOI", want: "foobar"},
		{name: "Lowercase", in: "mzxw6ytboi", want: "foobar"},
		{name: "Whitespace", in: " MZXW 6YTB\tOI\n", want: "foobar"},
		{name: "PaddingIgnored", in: "MY======", want: "f"},
		{name: "InvalidCharactersSkipped", in: "M1Z8X0W6-YTBOI", want: "foobar"},
		{name: "PartialByteDropped", in: "B", want: ""},
		{name: "OnlyJunk", in: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := DecodeBase32(tt.in)

			// Assert
			if string(got) != tt.want {
				t.Fatalf("DecodeBase32(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBase32RoundTrip(t *testing.T) {
	t.Run("AllLengths", func(t *testing.T) {
		for n := 0; n <= 64; n++ {
			// Arrange
			in := make([]byte, n)
			for i := range in {
				in[i] = byte(i*37 + n)
			}

			// Act
			got := DecodeBase32(EncodeBase32(in))

			// Assert
			if !bytes.Equal(got, in) {
				t.Fatalf("round trip of %d bytes = %x, want %x", n, got, in)
			}
		}
	})

	t.Run("NonCanonicalTextIsNotPreserved", func(t *testing.T) {
		// Arrange
		in := "B"

		// Act
		got := EncodeBase32(DecodeBase32(in))

		// Assert
		if got != "" {
			t.Fatalf("expected a lone character to vanish, got %q", got)
		}
	})
}
