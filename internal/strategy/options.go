package strategy

// Option configures a windowed strategy.
type Option func(*options)

type options struct {
	window int
}

func defaultOptions() options {
	return options{window: DefaultConfig().Window}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if o.window < 2 {
		o.window = 2
	}

	return o
}

// WithWindow overrides the lookback in bars. Values below 2 are raised to 2.
func WithWindow(window int) Option {
	return func(o *options) {
		o.window = window
	}
}
