// Package validator validates request structs through struct tags.
//
// Use cases depend on the Validator interface. Failures come back as
// V10ValidationError, a map of snake_case field names to English messages
// that the router renders under the "error" key.
package validator
