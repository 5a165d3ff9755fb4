package otp

import "testing"

type panicParser struct{}

func (panicParser) Parse(string) *ProvisioningRecord { panic("boom") }

func TestParseURL(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *ProvisioningRecord
	}{
		{
			name: "OTPAuthIssuerQuery",
			raw:  "otpauth://totp/Example:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Example",
			want: &ProvisioningRecord{Secret: "JBSWY3DPEHPK3PXP", Issuer: "Example", AccountName: "alice@example.com"},
		},
		{
			name: "OTPAuthIssuerFromLabel",
			raw:  "otpauth://totp/ACME%20Co:john.doe@email.com?secret=HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ&period=30",
			want: &ProvisioningRecord{Secret: "HXDMVJECJJWSRB3HWIZR4IFUGFTMXBOZ", Issuer: "ACME Co", AccountName: "john.doe@email.com"},
		},
		{
			name: "OTPAuthTwoSegments",
			raw:  "otpauth://totp/GitHub/octo%20cat?secret=JBSWY3DPEHPK3PXP",
			want: &ProvisioningRecord{Secret: "JBSWY3DPEHPK3PXP", Issuer: "GitHub", AccountName: "octo cat"},
		},
		{
			name: "OTPAuthQueryIssuerWins",
			raw:  "otpauth://totp/Old:bob?secret=JBSWY3DPEHPK3PXP&issuer=New",
			want: &ProvisioningRecord{Secret: "JBSWY3DPEHPK3PXP", Issuer: "New", AccountName: "bob"},
		},
		{
			name: "OTPAuthMissingSecret",
			raw:  "otpauth://totp/Example:alice@example.com?issuer=Example",
			want: nil,
		},
		{
			name: "PhoneFactor",
			raw:  "phonefactor://activate_account?code=12345&url=https%3A%2F%2Fexample.com%2Fact%2FSECRETVALUE123",
			want: &ProvisioningRecord{Secret: "SECRETVALUE123", Issuer: "Microsoft", AccountName: "Microsoft Account (12345)"},
		},
		{
			name: "PhoneFactorDoubleEncoded",
			raw:  "phonefactor://activate_account?code=7&url=https%253A%252F%252Fexample.com%252Fact%252FSECRETVALUE123",
			want: &ProvisioningRecord{Secret: "SECRETVALUE123", Issuer: "Microsoft", AccountName: "Microsoft Account (7)"},
		},
		{
			name: "PhoneFactorShortSecret",
			raw:  "phonefactor://activate_account?code=12345&url=https%3A%2F%2Fexample.com%2Fact%2Fshort",
			want: nil,
		},
		{
			name: "PhoneFactorMissingCode",
			raw:  "phonefactor://activate_account?url=https%3A%2F%2Fexample.com%2Fact%2FSECRETVALUE123",
			want: nil,
		},
		{name: "UnknownScheme", raw: "https://not-a-valid-scheme", want: nil},
		{name: "Empty", raw: "", want: nil},
		{name: "Junk", raw: "%%%::::", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			got := ParseURL(tt.raw)

			// Assert
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected nil, got %+v", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected %+v, got nil", *tt.want)
			}
			if *got != *tt.want {
				t.Fatalf("got %+v, want %+v", *got, *tt.want)
			}
		})
	}
}

func TestDispatcher(t *testing.T) {
	t.Run("PanickingParserIsSkipped", func(t *testing.T) {
		// Arrange
		d := NewDispatcher(panicParser{}, OTPAuthParser{})

		// Act
		got := d.Parse("otpauth://totp/A:b?secret=JBSWY3DPEHPK3PXP")

		// Assert
		if got == nil || got.AccountName != "b" {
			t.Fatalf("expected the second parser to win, got %+v", got)
		}
	})

	t.Run("OrderMatters", func(t *testing.T) {
		// Arrange
		d := NewDispatcher(PhoneFactorParser{})

		// Act
		got := d.Parse("otpauth://totp/A:b?secret=JBSWY3DPEHPK3PXP")

		// Assert
		if got != nil {
			t.Fatalf("expected nil without an otpauth parser, got %+v", *got)
		}
	})
}
