package messaging

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
)

const (
	// DriverNATS selects NATS.
	DriverNATS = "nats"
	// DriverMemory selects the in-process broker.
	DriverMemory = "memory"
)

// ErrUnknownDriver indicates an unsupported messaging driver.
var ErrUnknownDriver = errors.New("messaging: unknown driver")

// FactoryOptions configures NewFromDriver.
type FactoryOptions struct {
	NATSURL  string
	ClientID string
}

// NewFromDriver builds a Messaging by driver name.
func NewFromDriver(driver string, opts FactoryOptions) (Messaging, error) {
	switch strings.TrimSpace(driver) {
	case DriverNATS:
		return NewNATS(NATSConfig{
			URL: opts.NATSURL,
			Options: []nats.Option{
				nats.Name(opts.ClientID),
				nats.MaxReconnects(-1),
				nats.ReconnectWait(2 * time.Second),
			},
		})
	case DriverMemory, "":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}
}
