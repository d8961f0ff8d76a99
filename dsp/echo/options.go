package echo

type config struct {
	delayMs  float64
	feedback float64
	mix      float64
	voices   int
}

// Option overrides an engine default at construction. Values go through
// the same clamps as the setters.
type Option func(*config)

func defaultConfig() config {
	return config{
		delayMs:  defaultDelayMs,
		feedback: defaultFeedback,
		mix:      defaultMix,
		voices:   defaultVoices,
	}
}

// WithDelayTime sets the initial delay time in milliseconds.
func WithDelayTime(ms float64) Option {
	return func(cfg *config) {
		cfg.delayMs = ms
	}
}

// WithFeedback sets the initial feedback amount.
func WithFeedback(v float64) Option {
	return func(cfg *config) {
		cfg.feedback = v
	}
}

// WithMix sets the initial wet amount.
func WithMix(v float64) Option {
	return func(cfg *config) {
		cfg.mix = v
	}
}

// WithVoices sets the initial tap count.
func WithVoices(n int) Option {
	return func(cfg *config) {
		cfg.voices = n
	}
}

func applyOptions(opts ...Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
