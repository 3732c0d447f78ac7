package rdf

import "context"

const (
	// DefaultMaxDepth bounds element nesting for untrusted input.
	DefaultMaxDepth = 1 << 10
	// DefaultMaxTriples bounds the number of emitted triples.
	DefaultMaxTriples = int64(1) << 30
)

// Option configures parser behavior.
type Option func(*Options)

// Options configures parser behavior and limits.
// Zero values use defaults. Use negative values to disable specific limits.
type Options struct {
	// Context provides cancellation for decoding work.
	Context context.Context

	// BaseURI resolves relative references.
	BaseURI string

	// Security limits for untrusted input.
	MaxDepth   int
	MaxTriples int64

	// WarningHandler receives recoverable data errors (dropped statements).
	// If nil, warnings are collected and available via Decoder.Warnings or
	// the parser's Warnings method.
	WarningHandler func(error)
}

// OptContext sets the context for cancellation and timeouts.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptBaseURI sets the base URI used for resolving relative references.
func OptBaseURI(base string) Option {
	return func(opts *Options) {
		opts.BaseURI = base
	}
}

// OptMaxDepth sets the maximum element nesting depth limit.
func OptMaxDepth(maxDepth int) Option {
	return func(opts *Options) {
		opts.MaxDepth = maxDepth
	}
}

// OptMaxTriples sets the maximum number of triples to emit.
func OptMaxTriples(maxTriples int64) Option {
	return func(opts *Options) {
		opts.MaxTriples = maxTriples
	}
}

// OptWarningHandler routes recoverable data errors to fn as they occur.
func OptWarningHandler(fn func(error)) Option {
	return func(opts *Options) {
		opts.WarningHandler = fn
	}
}

func defaultOptions() Options {
	return Options{
		MaxDepth:   DefaultMaxDepth,
		MaxTriples: DefaultMaxTriples,
	}
}

func normalizeOptions(opts Options) Options {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.MaxTriples == 0 {
		opts.MaxTriples = DefaultMaxTriples
	}
	return opts
}
