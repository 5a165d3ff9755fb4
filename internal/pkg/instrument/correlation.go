package instrument

import "context"

// InvalidCorrelationID is returned by GetCorrelationID when ctx carries none.
const InvalidCorrelationID = "[invalid_chain_id]"

type correlationKey struct{}

// SetCorrelationID returns a copy of ctx carrying id. It is attached to every
// log line and forwarded in message headers.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// GetCorrelationID returns the id stored by SetCorrelationID, or
// InvalidCorrelationID.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return InvalidCorrelationID
	}

	id, ok := ctx.Value(correlationKey{}).(string)
	if !ok || id == "" {
		return InvalidCorrelationID
	}

	return id
}
