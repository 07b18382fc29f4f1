// Package optimizer selects optimal itineraries from a candidate set of
// priced flights. It offers two entry points: CheapestFlight picks the
// single minimum-price flight subject to secondary constraints, and
// CheapestRoute finds the minimum-price chain of flights connecting two
// cities. Both are pure functions of their inputs; no state survives a
// call, so concurrent solves are independent by construction.
package optimizer

import "fmt"

// Relation compares a constraint's weighted sum against its bound.
type Relation int

const (
	RelationEQ Relation = iota
	RelationLE
	RelationGE
)

func (r Relation) String() string {
	switch r {
	case RelationEQ:
		return "=="
	case RelationLE:
		return "<="
	case RelationGE:
		return ">="
	}
	return "?"
}

// Term couples a decision variable index with its coefficient.
type Term struct {
	Var   int
	Coeff float64
}

// Constraint is a linear condition over the binary decision variables:
// sum(Coeff_i * x_i) Relation Bound.
type Constraint struct {
	Name     string
	Terms    []Term
	Relation Relation
	Bound    float64
}

// Problem is a binary assignment program: one 0/1 "selected" decision
// per candidate, a linear cost objective to minimize, and linear
// constraints. A Problem is built for a single solve and discarded.
type Problem struct {
	costs       []float64
	constraints []Constraint
}

// NewProblem creates a problem with one binary variable per cost entry.
// Costs must be non-negative; the solver relies on that for bounding.
func NewProblem(costs []float64) *Problem {
	return &Problem{costs: costs}
}

// NumVars returns the number of decision variables.
func (p *Problem) NumVars() int {
	return len(p.costs)
}

// Cost returns the objective coefficient of variable v.
func (p *Problem) Cost(v int) float64 {
	return p.costs[v]
}

// AddConstraint appends a linear constraint. Variable indices outside
// [0, NumVars) are rejected.
func (p *Problem) AddConstraint(name string, terms []Term, rel Relation, bound float64) error {
	for _, t := range terms {
		if t.Var < 0 || t.Var >= len(p.costs) {
			return fmt.Errorf("optimizer: constraint %q references variable %d outside problem of size %d", name, t.Var, len(p.costs))
		}
	}
	p.constraints = append(p.constraints, Constraint{Name: name, Terms: terms, Relation: rel, Bound: bound})
	return nil
}

// SelectExactlyOne adds the classic "choose exactly one candidate"
// constraint over all variables.
func (p *Problem) SelectExactlyOne() error {
	terms := make([]Term, len(p.costs))
	for i := range p.costs {
		terms[i] = Term{Var: i, Coeff: 1}
	}
	return p.AddConstraint("select_one", terms, RelationEQ, 1)
}

// Constraints returns the constraint list. Callers must not mutate it.
func (p *Problem) Constraints() []Constraint {
	return p.constraints
}
