package optimizer

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by solvers.
var (
	// ErrInfeasible indicates no assignment satisfies the constraints.
	// Callers treat this as the expected "no result" outcome, not a
	// failure.
	ErrInfeasible = errors.New("optimizer: no feasible assignment")

	// ErrNodeBudget indicates the solver exhausted its node budget
	// before proving optimality. Unlike infeasibility this is a
	// resource failure and must not be read as "no result".
	ErrNodeBudget = errors.New("optimizer: node budget exhausted")

	// ErrNegativeCost indicates a negative objective coefficient.
	// Cost bounding assumes non-negative costs; validation upstream
	// should have rejected negative prices already.
	ErrNegativeCost = errors.New("optimizer: negative cost coefficient")
)

// Solution reports which variables were assigned 1, in ascending index
// order, and the objective value achieved.
type Solution struct {
	Selected []int
	Cost     float64
}

// Solver finds a minimum-cost satisfying assignment for a Problem.
// Implementations must be safe for concurrent use across independent
// Problem instances.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (Solution, error)
}

// DefaultNodeBudget bounds the search tree of the branch-and-bound
// solver. Integer-program solve time is not polynomially bounded in
// general, so every solve carries an explicit limit.
const DefaultNodeBudget = 1 << 20

// BranchBound is an exact depth-first branch-and-bound solver for
// binary assignment problems with non-negative costs. It prunes on the
// incumbent cost and on per-constraint attainability bounds, checks
// context cancellation periodically, and keeps the first optimum found
// so that ties resolve to the lowest variable indices deterministically.
type BranchBound struct {
	// NodeBudget caps the number of search nodes. Zero means
	// DefaultNodeBudget.
	NodeBudget int
}

func (s *BranchBound) Solve(ctx context.Context, p *Problem) (Solution, error) {
	for v, c := range p.costs {
		if c < 0 {
			return Solution{}, fmt.Errorf("%w: variable %d cost %v", ErrNegativeCost, v, c)
		}
	}

	budget := s.NodeBudget
	if budget <= 0 {
		budget = DefaultNodeBudget
	}

	r := newBnbRun(p, budget)
	if err := r.search(ctx, 0, 0); err != nil {
		return Solution{}, err
	}
	if !r.found {
		return Solution{}, ErrInfeasible
	}

	return Solution{Selected: r.best, Cost: r.bestCost}, nil
}

// bnbRun holds the mutable state of one branch-and-bound execution.
type bnbRun struct {
	p      *Problem
	budget int
	nodes  int

	assigned []bool // variable assigned 1 on the current path

	// Per-constraint running state: sum of coefficients of variables
	// assigned 1, plus the largest and smallest totals still reachable
	// from the unassigned tail.
	sum     []float64
	maxRest []float64
	minRest []float64

	found    bool
	best     []int
	bestCost float64
}

func newBnbRun(p *Problem, budget int) *bnbRun {
	r := &bnbRun{
		p:        p,
		budget:   budget,
		assigned: make([]bool, p.NumVars()),
		sum:      make([]float64, len(p.constraints)),
		maxRest:  make([]float64, len(p.constraints)),
		minRest:  make([]float64, len(p.constraints)),
		bestCost: math.Inf(1),
	}
	for ci, c := range p.constraints {
		for _, t := range c.Terms {
			if t.Coeff > 0 {
				r.maxRest[ci] += t.Coeff
			} else {
				r.minRest[ci] += t.Coeff
			}
		}
	}
	return r
}

// attainable reports whether every constraint can still be satisfied by
// some completion of the current partial assignment.
func (r *bnbRun) attainable() bool {
	for ci, c := range r.p.constraints {
		lo := r.sum[ci] + r.minRest[ci]
		hi := r.sum[ci] + r.maxRest[ci]
		switch c.Relation {
		case RelationEQ:
			if lo > c.Bound || hi < c.Bound {
				return false
			}
		case RelationLE:
			if lo > c.Bound {
				return false
			}
		case RelationGE:
			if hi < c.Bound {
				return false
			}
		}
	}
	return true
}

// takeVar removes variable v from the "rest" ranges and, if selected,
// adds its coefficients to the running sums. Returns an undo closure.
func (r *bnbRun) takeVar(v int, selected bool) func() {
	type delta struct {
		ci    int
		coeff float64
	}
	var touched []delta
	for ci, c := range r.p.constraints {
		for _, t := range c.Terms {
			if t.Var != v {
				continue
			}
			touched = append(touched, delta{ci, t.Coeff})
			if t.Coeff > 0 {
				r.maxRest[ci] -= t.Coeff
			} else {
				r.minRest[ci] -= t.Coeff
			}
			if selected {
				r.sum[ci] += t.Coeff
			}
		}
	}
	r.assigned[v] = selected
	return func() {
		for _, d := range touched {
			if d.coeff > 0 {
				r.maxRest[d.ci] += d.coeff
			} else {
				r.minRest[d.ci] += d.coeff
			}
			if selected {
				r.sum[d.ci] -= d.coeff
			}
		}
		r.assigned[v] = false
	}
}

func (r *bnbRun) search(ctx context.Context, v int, cost float64) error {
	r.nodes++
	if r.nodes > r.budget {
		return fmt.Errorf("%w: limit %d", ErrNodeBudget, r.budget)
	}
	if r.nodes&1023 == 0 {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("optimizer: solve canceled: %w", err)
		}
	}

	// Incumbent bound. Strict ">=" keeps the first optimum found, so
	// equal-cost solutions resolve to the lowest selected indices.
	if r.found && cost >= r.bestCost {
		return nil
	}
	if !r.attainable() {
		return nil
	}

	if v == r.p.NumVars() {
		r.found = true
		r.bestCost = cost
		sel := make([]int, 0, r.p.NumVars())
		for i, on := range r.assigned {
			if on {
				sel = append(sel, i)
			}
		}
		r.best = sel
		return nil
	}

	// Branch "selected" first: with ascending variable order this
	// discovers low-index selections before equal-cost alternatives.
	undo := r.takeVar(v, true)
	err := r.search(ctx, v+1, cost+r.p.costs[v])
	undo()
	if err != nil {
		return err
	}

	undo = r.takeVar(v, false)
	err = r.search(ctx, v+1, cost)
	undo()
	return err
}
