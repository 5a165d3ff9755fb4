package uid

import (
	"testing"

	"github.com/google/uuid"
)

func TestSnowflake(t *testing.T) {
	t.Run("Increasing", func(t *testing.T) {
		// Arrange
		gen, err := NewSnowflakeWithNode(1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Act
		a := gen.Generate()
		b := gen.Generate()

		// Assert
		if a <= 0 || b <= a {
			t.Fatalf("expected positive increasing ids, got %d then %d", a, b)
		}
	})

	t.Run("InvalidNode", func(t *testing.T) {
		// Act
		_, err := NewSnowflakeWithNode(1 << 20)

		// Assert
		if err == nil {
			t.Fatalf("expected error for out of range node")
		}
	})
}

func TestObjectIDGenerator(t *testing.T) {
	// Arrange
	gen, err := NewObjectIDGenerator()
	if err != nil {
		t.Skipf("no stable node identity: %v", err)
	}

	// Act
	a := gen.Generate()
	b := gen.Generate()

	// Assert
	if len(a) != 48 || len(b) != 48 {
		t.Fatalf("expected 48 hex characters, got %d and %d", len(a), len(b))
	}
	if a == b {
		t.Fatalf("expected unique ids, got %s twice", a)
	}
}

func TestUUID(t *testing.T) {
	// Act
	id := NewUUID().Generate()

	// Assert
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected version 7, got %d", parsed.Version())
	}
}
