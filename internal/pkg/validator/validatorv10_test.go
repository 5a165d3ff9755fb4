package validator

import (
	"errors"
	"testing"
)

type registerInput struct {
	Username string `validate:"required,username"`
	Password string `validate:"required,password"`
	Secret   string `validate:"omitempty,base32"`
}

func TestV10Validator(t *testing.T) {
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("Valid", func(t *testing.T) {
		// Act
		err := v.Validate(registerInput{Username: "alice_01", Password: "secret", Secret: "JBSWY3DPEHPK3PXP"})

		// Assert
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("CustomRulesFail", func(t *testing.T) {
		// Act
		err := v.Validate(registerInput{Username: "a!", Password: "12345", Secret: "!!!"})

		// Assert
		var verr V10ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected V10ValidationError, got %T", err)
		}
		want := map[string]string{
			"username": "Username must be 3-32 letters, digits or underscores",
			"password": "Password must be 6-72 characters",
			"secret":   "Secret must be a base32 encoded secret",
		}
		for field, msg := range want {
			if verr.Values()[field] != msg {
				t.Fatalf("field %s: got %q, want %q", field, verr.Values()[field], msg)
			}
		}
	})

	t.Run("Required", func(t *testing.T) {
		// Act
		err := v.Validate(registerInput{})

		// Assert
		var verr V10ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected V10ValidationError, got %T", err)
		}
		if verr["username"] != "Username is a required field" {
			t.Fatalf("got %q", verr["username"])
		}
		if _, ok := verr["secret"]; ok {
			t.Fatalf("expected optional secret to be skipped")
		}
	})
}
