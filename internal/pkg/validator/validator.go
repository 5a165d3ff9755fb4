package validator

// Validator validates a struct and returns a field error map on failure.
type Validator interface {
	Validate(data any) error
}
