package daemon

// Options contains optional configuration for the daemon.
// NewOptions should be used to create instances of Options.
type Options struct {
	// APIOptions contains functional options for the API server.
	APIOptions []APIOption

	// EagerLoad connects every configured server before the API starts serving.
	EagerLoad bool
}

// Option defines a functional option for configuring Options.
// Options are applied in order, with later options overriding earlier ones.
type Option func(*Options) error

// NewOptions creates Options with optional configurations applied.
// Starts with default values, then applies options in order with later options overriding earlier ones.
func NewOptions(opts ...Option) (Options, error) {
	options := defaultOptions()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&options); err != nil {
			return Options{}, err
		}
	}

	return options, nil
}

// WithAPIOptions configures API server options.
// Replaces all previous API configuration including CORS settings.
func WithAPIOptions(apiOpts ...APIOption) Option {
	return func(o *Options) error {
		o.APIOptions = apiOpts
		return nil
	}
}

// WithEagerLoad configures whether servers are connected at startup rather than on the first request.
func WithEagerLoad(eager bool) Option {
	return func(o *Options) error {
		o.EagerLoad = eager
		return nil
	}
}

// DefaultEagerLoad reports whether servers are connected at startup by default.
func DefaultEagerLoad() bool {
	return true
}

// defaultOptions returns Options with default values.
func defaultOptions() Options {
	return Options{
		EagerLoad: DefaultEagerLoad(),
	}
}
