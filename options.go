package pixproc

// EngineOption configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// One worker per CPU (default)
//	e := pixproc.NewEngine()
//
//	// Fixed worker count
//	e := pixproc.NewEngine(pixproc.WithWorkers(4))
type EngineOption func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	workers int
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		workers: 0, // GOMAXPROCS
	}
}

// WithWorkers sets the number of worker goroutines.
// Zero or a negative value selects GOMAXPROCS.
func WithWorkers(n int) EngineOption {
	return func(o *engineOptions) {
		o.workers = n
	}
}

// RunOption configures a single Engine.Run call.
type RunOption func(*runOptions)

// runOptions holds optional configuration for Engine.Run.
type runOptions struct {
	bandHeight int
	progress   func(Progress)
}

// defaultRunOptions returns the default run options.
func defaultRunOptions() runOptions {
	return runOptions{
		bandHeight: 0, // whole span in one call
		progress:   nil,
	}
}

// WithBandHeight tiles the run into consecutive calls of at most h rows.
// Each band is processed to completion before the next one starts.
// Zero or a negative value processes the whole span in one call.
func WithBandHeight(h int) RunOption {
	return func(o *runOptions) {
		o.bandHeight = h
	}
}

// WithProgress registers a handler that receives a snapshot after every
// processed row. The handler is called from worker goroutines and must be
// safe for concurrent use.
func WithProgress(fn func(Progress)) RunOption {
	return func(o *runOptions) {
		o.progress = fn
	}
}
