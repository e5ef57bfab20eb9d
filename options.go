package neptune

// Option configures a Compositor during creation.
//
// Example:
//
//	// GOMAXPROCS workers, adaptive chunking
//	c := neptune.NewCompositor()
//
//	// Four workers, 256 descriptors per task
//	c := neptune.NewCompositor(neptune.WithWorkers(4), neptune.WithGrain(256))
type Option func(*options)

// options holds optional configuration for Compositor creation.
type options struct {
	workers int
	grain   int
}

// defaultOptions returns the default compositor options.
func defaultOptions() options {
	return options{
		workers: 0, // GOMAXPROCS
		grain:   0, // adaptive, see Compositor.grainFor
	}
}

// WithWorkers sets the number of worker goroutines.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithGrain sets how many descriptors one parallel task composes.
// Zero or negative selects a size from the batch length and worker count.
//
// A grain of 1 gives every task exactly one slot, which is mostly useful
// for exercising the scheduler in tests.
func WithGrain(n int) Option {
	return func(o *options) {
		o.grain = n
	}
}
