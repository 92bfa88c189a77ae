package flowweb

// WeightMode selects which weight function FlowWeb.Analyze optimizes
// (spec.md §4.2).
type WeightMode int

const (
	// WeightTime sums timestamp deltas (saturating) between adjacent nodes
	// on a path. This is the default: it requires no counter backend.
	WeightTime WeightMode = iota
	// WeightInstructions sums each node's Len (an instruction-count delta).
	WeightInstructions
)

// config holds FlowWeb construction options.
type config struct {
	windowNs    uint64
	hasWindow   bool
	weightMode  WeightMode
	counter     InstructionCounter
	logger      Logger
}

// Option configures a FlowWeb at construction time, or via FlowWeb.SetWindow
// / FlowWeb.SetWeightMode afterward for the two that expose setters per
// SPEC_FULL.md §6 ("Exposed operations").
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithWindow sets the retention horizon. A zero or omitted window disables
// windowing: nodes live until Clear.
func WithWindow(windowNs uint64) Option {
	return optionFunc(func(c *config) {
		c.windowNs = windowNs
		c.hasWindow = windowNs != 0
	})
}

// WithWeightMode selects which weight Analyze optimizes.
func WithWeightMode(mode WeightMode) Option {
	return optionFunc(func(c *config) {
		c.weightMode = mode
	})
}

// WithCounterBackend injects the InstructionCounter capability. Omitting
// this (or passing nil) is equivalent to a null stub that always returns a
// zero delta, per spec.md §4.3.
func WithCounterBackend(counter InstructionCounter) Option {
	return optionFunc(func(c *config) {
		c.counter = counter
	})
}

// WithLogger injects a diagnostic Logger. Omitting this is equivalent to a
// no-op logger; FlowWeb never fails or blocks because of logging.
func WithLogger(logger Logger) Option {
	return optionFunc(func(c *config) {
		c.logger = logger
	})
}

func resolveConfig(opts []Option) *config {
	cfg := &config{
		weightMode: WeightTime,
		logger:     NewNoopLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = NewNoopLogger()
	}
	return cfg
}
