package daemon

import (
	"fmt"
)

// ManagerOptions contains optional configuration for the Manager.
// NewManagerOptions should be used to create instances of ManagerOptions.
type ManagerOptions struct {
	// Listeners are called, in order, with the payload of every completed pass.
	Listeners []Listener
}

// ManagerOption defines a functional option for configuring ManagerOptions.
// Options are applied in order, with later options overriding earlier ones.
type ManagerOption func(*ManagerOptions) error

// NewManagerOptions creates ManagerOptions with optional configurations applied.
func NewManagerOptions(opts ...ManagerOption) (ManagerOptions, error) {
	options := ManagerOptions{}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return ManagerOptions{}, err
		}
	}

	return options, nil
}

// WithListener adds a listener notified after every pass.
func WithListener(l Listener) ManagerOption {
	return func(o *ManagerOptions) error {
		if l == nil {
			return fmt.Errorf("listener cannot be nil")
		}
		o.Listeners = append(o.Listeners, l)
		return nil
	}
}
