// Package uid generates identifiers for rows, sessions and stored objects.
package uid

// NumberID generates sortable int64 identifiers.
type NumberID interface {
	Generate() int64
}

// StringID generates string identifiers.
type StringID interface {
	Generate() string
}
