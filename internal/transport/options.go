package transport

import (
	"fmt"
	"strings"
	"time"
)

// ConnectorOptions contains optional configuration for a Connector.
// NewConnectorOptions should be used to create instances of ConnectorOptions.
type ConnectorOptions struct {
	// GOOS selects launcher normalization rules, the running platform when empty.
	GOOS string

	// Timeout bounds a whole attempt: spawn, handshake and tool query.
	Timeout time.Duration
}

// ConnectorOption defines a functional option for configuring ConnectorOptions.
type ConnectorOption func(*ConnectorOptions) error

// NewConnectorOptions creates ConnectorOptions with optional configurations applied.
func NewConnectorOptions(opts ...ConnectorOption) (ConnectorOptions, error) {
	options := ConnectorOptions{
		Timeout: DefaultConnectTimeout(),
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return ConnectorOptions{}, err
		}
	}

	return options, nil
}

// WithConnectTimeout configures how long a single connection attempt may take.
func WithConnectTimeout(timeout time.Duration) ConnectorOption {
	return func(o *ConnectorOptions) error {
		if timeout <= 0 {
			return fmt.Errorf("connect timeout must be positive, got %v", timeout)
		}
		o.Timeout = timeout
		return nil
	}
}

// WithGOOS overrides the platform used for launcher normalization.
func WithGOOS(goos string) ConnectorOption {
	return func(o *ConnectorOptions) error {
		goos = strings.TrimSpace(goos)
		if goos == "" {
			return fmt.Errorf("GOOS cannot be empty")
		}
		o.GOOS = goos
		return nil
	}
}

// DefaultConnectTimeout is the default time allowed for one connection attempt.
func DefaultConnectTimeout() time.Duration {
	return 30 * time.Second
}
