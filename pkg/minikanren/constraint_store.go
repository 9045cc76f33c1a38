// Constraint system infrastructure. Constraints live in a store attached
// to each state; domain modules group constraints of one kind and are
// re-checked in a fixed order whenever the substitution grows, so that
// constraint semantics are independent of goal order.
package minikanren

import (
	"strings"
)

// ConstraintResult represents the outcome of evaluating a constraint.
// Constraints can be satisfied (droppable), violated (the state must be
// discarded), or pending (still restricting future bindings).
type ConstraintResult int

const (
	// ConstraintSatisfied indicates the constraint can never be violated
	// again and may be dropped from the store.
	ConstraintSatisfied ConstraintResult = iota

	// ConstraintViolated indicates the constraint has been violated and
	// the state must not be exposed.
	ConstraintViolated

	// ConstraintPending indicates the constraint cannot be decided yet
	// due to unbound variables, but is not currently violated.
	ConstraintPending
)

// String returns a human-readable representation of the constraint result.
func (cr ConstraintResult) String() string {
	switch cr {
	case ConstraintSatisfied:
		return "satisfied"
	case ConstraintViolated:
		return "violated"
	case ConstraintPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Constraint is a single stored constraint. Implementations are
// immutable: re-evaluation that narrows a constraint produces a new
// constraint value rather than mutating the old one.
type Constraint interface {
	// Tag returns the domain tag this constraint belongs to ("tree",
	// "fd", or a user domain tag).
	Tag() string

	// Operands returns the terms the constraint ranges over. Used to
	// decide which constraints a narrowed variable re-awakens.
	Operands() []Term

	// Run re-evaluates the constraint against the state's current
	// substitution. The constraint has already been removed from the
	// store when Run is called; a still-pending constraint re-adds
	// itself (possibly narrowed) to the returned state. Run returns
	// false when the constraint is violated.
	Run(sv *Solver, st *State) (*State, bool)

	// String returns a human-readable representation for debugging.
	String() string
}

// ConstraintStore holds the constraints of a state in posting order.
// Like the substitution it is persistent: With and Without return a new
// store sharing structure with the old one. Deterministic iteration
// order is what makes answer order reproducible, so the store is a
// slice, never a map.
type ConstraintStore struct {
	constraints []Constraint
}

// NewConstraintStore creates an empty constraint store.
func NewConstraintStore() *ConstraintStore {
	return &ConstraintStore{}
}

// With returns a store extended with c.
func (cs *ConstraintStore) With(c Constraint) *ConstraintStore {
	constraints := make([]Constraint, len(cs.constraints)+1)
	copy(constraints, cs.constraints)
	constraints[len(cs.constraints)] = c
	return &ConstraintStore{constraints: constraints}
}

// Without returns a store with the given constraint removed, comparing
// by identity. The second result reports whether it was present.
func (cs *ConstraintStore) Without(c Constraint) (*ConstraintStore, bool) {
	for i, stored := range cs.constraints {
		if stored == c {
			constraints := make([]Constraint, 0, len(cs.constraints)-1)
			constraints = append(constraints, cs.constraints[:i]...)
			constraints = append(constraints, cs.constraints[i+1:]...)
			return &ConstraintStore{constraints: constraints}, true
		}
	}
	return cs, false
}

// Contains reports whether c is in the store, comparing by identity.
func (cs *ConstraintStore) Contains(c Constraint) bool {
	for _, stored := range cs.constraints {
		if stored == c {
			return true
		}
	}
	return false
}

// All returns the stored constraints in posting order. The returned
// slice must not be modified.
func (cs *ConstraintStore) All() []Constraint {
	return cs.constraints
}

// Tagged returns the stored constraints of one domain, in posting order.
func (cs *ConstraintStore) Tagged(tag string) []Constraint {
	var out []Constraint
	for _, c := range cs.constraints {
		if c.Tag() == tag {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of stored constraints.
func (cs *ConstraintStore) Len() int {
	return len(cs.constraints)
}

// String returns a human-readable representation of the store.
func (cs *ConstraintStore) String() string {
	parts := make([]string, len(cs.constraints))
	for i, c := range cs.constraints {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// DomainModule is the pluggable interface of a constraint domain. The
// two built-in domains are tree disequality and finite domains; user
// domains registered through SolverConfig.ExtraDomains are checked after
// the built-in ones, in registration order. The fixed order makes
// answers deterministic.
type DomainModule interface {
	// Tag returns the unique domain tag.
	Tag() string

	// Check re-evaluates this domain's constraints after the
	// substitution grew by ext. It drops constraints that are now
	// satisfied, narrows those partially decided, and returns false if
	// any is violated.
	Check(sv *Solver, st *State, ext []Binding) (*State, bool)

	// Reify expresses the residual constraints of this domain on the
	// given query variable, for inclusion in the final answer. The
	// returned terms are rendered under the answer's placeholder
	// naming by the query driver.
	Reify(v *Var, st *State) []Term
}
