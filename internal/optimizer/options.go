package optimizer

// Options configures a single solve call. Configuration is passed per
// call rather than held in package state so that concurrent solves stay
// independent.
type Options struct {
	// Solver runs the binary assignment problem built by
	// CheapestFlight. Defaults to an exact branch-and-bound with
	// DefaultNodeBudget.
	Solver Solver
}

// Option is a functional option for a solve call.
type Option func(*Options)

// WithSolver substitutes the assignment solver. Any solver capable of
// binary variables with linear equality/inequality constraints
// satisfies the contract.
func WithSolver(s Solver) Option {
	return func(o *Options) {
		o.Solver = s
	}
}

// WithNodeBudget caps the search effort of the default solver.
func WithNodeBudget(n int) Option {
	return func(o *Options) {
		o.Solver = &BranchBound{NodeBudget: n}
	}
}

func buildOptions(opts []Option) Options {
	cfg := Options{Solver: &BranchBound{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
