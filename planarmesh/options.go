package planarmesh

import "go.uber.org/zap"

const (
	// DefaultTolerance is the relative slack of the on-edge test.
	DefaultTolerance = 1e-8
	// DefaultPointDistanceTolerance is the distance below which two points
	// are the same vertex.
	DefaultPointDistanceTolerance = 1e-6
	// DefaultMaxInsertEdgeRetries bounds the flip passes of InsertEdge.
	DefaultMaxInsertEdgeRetries = 64
)

type options struct {
	tolerance              float64
	pointDistanceTolerance float64
	maxInsertEdgeRetries   int
	logger                 *zap.Logger
}

func defaultOptions() options {
	return options{
		tolerance:              DefaultTolerance,
		pointDistanceTolerance: DefaultPointDistanceTolerance,
		maxInsertEdgeRetries:   DefaultMaxInsertEdgeRetries,
		logger:                 zap.NewNop(),
	}
}

// Option configures a mesh at construction.
type Option func(*options)

// WithTolerance sets the relative tolerance used to decide that a point lies
// on an edge.
func WithTolerance(tolerance float64) Option {
	if tolerance < 0 {
		panic("planarmesh: tolerance must be non-negative")
	}
	return func(o *options) {
		o.tolerance = tolerance
	}
}

// WithPointDistanceTolerance sets the distance under which an inserted point
// is merged with an existing vertex.
func WithPointDistanceTolerance(distance float64) Option {
	if distance < 0 {
		panic("planarmesh: point distance tolerance must be non-negative")
	}
	return func(o *options) {
		o.pointDistanceTolerance = distance
	}
}

// WithMaxInsertEdgeRetries bounds the number of flip passes InsertEdge may
// make before giving up with ErrRetryLimit.
func WithMaxInsertEdgeRetries(n int) Option {
	if n < 1 {
		panic("planarmesh: at least one insert edge attempt is required")
	}
	return func(o *options) {
		o.maxInsertEdgeRetries = n
	}
}

// WithLogger sets the logger receiving debug events. Nil keeps the no-op
// logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
