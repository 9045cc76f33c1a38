// Package minikanren implements a relational logic programming engine in Go.
//
// The engine follows the core principles of the miniKanren family of
// languages: logic programs are built from a small set of goal
// combinators, and running a goal against a state produces a lazy stream
// of answer states. On top of the relational core, two constraint
// domains are built in:
//   - Tree disequality (Neq): terms constrained to never become equal
//   - Finite domains (InFd, PlusFd, ...): integer variables restricted
//     to finite sets of values, narrowed by propagators
//
// Additional constraint domains can be registered through SolverConfig.
//
// The search is single-threaded and cooperative. Goals produce lazy
// streams whose unevaluated tails are forced one layer at a time as the
// consumer pulls answers; interleaving of disjunct streams guarantees
// that an answer reachable in finitely many steps is eventually
// produced. A depth-first strategy can be selected per query for
// programs whose clause order matters more than completeness.
//
// A minimal program:
//
//	q := NewQuery([]string{"q"}, func(vars []*Var) Goal {
//	    return Disj(Eq(vars[0], NewAtom(1)), Eq(vars[0], NewAtom(2)))
//	})
//	it := q.Run()
//	for it.Next() {
//	    fmt.Println(it.Answer()["q"].Term)
//	}
package minikanren

import (
	"fmt"
	"strings"
)

// Term represents any value in the logic-term universe. A term is one of
// four kinds: a logic variable (Var), a primitive value (Atom), a cons
// cell (Pair), or a named constructor with children (Compound). Terms
// are immutable after construction; cyclic structures can only arise
// through a substitution, never through the constructors.
type Term interface {
	// String returns a human-readable representation of the term.
	String() string

	// Equal checks if this term is structurally equal to another term.
	// This is a strict equality check, not unification: variables are
	// equal only to themselves.
	Equal(other Term) bool

	// IsVar returns true if this term is a logic variable.
	IsVar() bool
}

// Var represents a logic variable. Variables can be bound to values
// through unification. Each variable has an identifier unique within its
// query; two variables are the same variable exactly when their
// identifiers match.
//
// Variables are allocated by the solver (see Fresh and Query), never
// constructed directly, so that identifiers stay monotonic within a
// query and reification remains deterministic.
type Var struct {
	id   int64  // Unique within the query
	name string // Optional name for debugging
}

// ID returns the variable's unique identifier.
func (v *Var) ID() int64 {
	return v.id
}

// Name returns the variable's debug name, which may be empty.
func (v *Var) Name() string {
	return v.name
}

// String returns a string representation of the variable.
func (v *Var) String() string {
	if v.name != "" {
		return fmt.Sprintf("_%s_%d", v.name, v.id)
	}
	return fmt.Sprintf("_%d", v.id)
}

// Equal checks if two variables are the same variable.
func (v *Var) Equal(other Term) bool {
	if otherVar, ok := other.(*Var); ok {
		return v.id == otherVar.id
	}
	return false
}

// IsVar always returns true for variables.
func (v *Var) IsVar() bool {
	return true
}

// Atom represents an atomic ground value: a boolean, an integer, a
// symbol (string), or the empty-list marker Nil. Atoms are immutable and
// represent themselves.
type Atom struct {
	value interface{}
}

// NewAtom creates a new atom from a Go value. The value must be
// comparable with ==.
func NewAtom(value interface{}) *Atom {
	return &Atom{value: value}
}

// Nil is the empty-list marker. Lists are right-nested pairs ending in
// Nil.
var Nil = NewAtom(nil)

// String returns a string representation of the atom.
func (a *Atom) String() string {
	if a.value == nil {
		return "()"
	}
	return fmt.Sprintf("%v", a.value)
}

// Equal checks if two atoms have the same value.
func (a *Atom) Equal(other Term) bool {
	if otherAtom, ok := other.(*Atom); ok {
		return a.value == otherAtom.value
	}
	return false
}

// IsVar always returns false for atoms.
func (a *Atom) IsVar() bool {
	return false
}

// Value returns the underlying Go value.
func (a *Atom) Value() interface{} {
	return a.value
}

// Pair represents a cons cell. Pairs build lists and other recursive
// structures: the list (1 2 3) is NewPair(1, NewPair(2, NewPair(3, Nil))).
type Pair struct {
	car Term
	cdr Term
}

// NewPair creates a new pair with the given car and cdr.
func NewPair(car, cdr Term) *Pair {
	return &Pair{car: car, cdr: cdr}
}

// Car returns the first element of the pair.
func (p *Pair) Car() Term {
	return p.car
}

// Cdr returns the rest of the pair.
func (p *Pair) Cdr() Term {
	return p.cdr
}

// String returns a string representation of the pair. Proper lists are
// printed in list notation, improper tails in dotted notation.
func (p *Pair) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(p.car.String())
	rest := p.cdr
	for {
		switch t := rest.(type) {
		case *Pair:
			sb.WriteByte(' ')
			sb.WriteString(t.car.String())
			rest = t.cdr
		case *Atom:
			if t.value == nil {
				sb.WriteByte(')')
				return sb.String()
			}
			sb.WriteString(" . ")
			sb.WriteString(t.String())
			sb.WriteByte(')')
			return sb.String()
		default:
			sb.WriteString(" . ")
			sb.WriteString(rest.String())
			sb.WriteByte(')')
			return sb.String()
		}
	}
}

// Equal checks if two pairs are structurally equal.
func (p *Pair) Equal(other Term) bool {
	if otherPair, ok := other.(*Pair); ok {
		return p.car.Equal(otherPair.car) && p.cdr.Equal(otherPair.cdr)
	}
	return false
}

// IsVar always returns false for pairs.
func (p *Pair) IsVar() bool {
	return false
}

// Compound represents a named constructor carrying an ordered sequence
// of child terms. Compounds encode user-defined structured data that is
// not naturally a list, e.g. NewCompound("point", x, y).
type Compound struct {
	functor string
	args    []Term
}

// NewCompound creates a compound term with the given constructor name
// and children.
func NewCompound(functor string, args ...Term) *Compound {
	return &Compound{functor: functor, args: args}
}

// Functor returns the constructor name.
func (c *Compound) Functor() string {
	return c.functor
}

// Arity returns the number of children.
func (c *Compound) Arity() int {
	return len(c.args)
}

// Arg returns the i-th child term.
func (c *Compound) Arg(i int) Term {
	return c.args[i]
}

// Args returns the children. The returned slice must not be modified.
func (c *Compound) Args() []Term {
	return c.args
}

// String returns a string representation of the compound.
func (c *Compound) String() string {
	parts := make([]string, len(c.args))
	for i, a := range c.args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.functor, strings.Join(parts, ", "))
}

// Equal checks if two compounds have the same constructor and
// structurally equal children.
func (c *Compound) Equal(other Term) bool {
	otherCompound, ok := other.(*Compound)
	if !ok || c.functor != otherCompound.functor || len(c.args) != len(otherCompound.args) {
		return false
	}
	for i, a := range c.args {
		if !a.Equal(otherCompound.args[i]) {
			return false
		}
	}
	return true
}

// IsVar always returns false for compounds.
func (c *Compound) IsVar() bool {
	return false
}

// List creates a proper list (a chain of pairs terminated by Nil) from
// the given terms.
//
// Example:
//
//	lst := List(NewAtom(1), NewAtom(2), NewAtom(3))
//	// Creates: (1 2 3)
func List(terms ...Term) Term {
	return ListWithTail(Nil, terms...)
}

// ListWithTail creates a pair chain over the given terms ending in tail.
// With a variable tail this builds a partial list, the building block of
// most recursive list relations.
func ListWithTail(tail Term, terms ...Term) Term {
	result := tail
	for i := len(terms) - 1; i >= 0; i-- {
		result = NewPair(terms[i], result)
	}
	return result
}

// Atoms converts a slice of Go values into a list term of atoms. It is a
// convenience for building test fixtures and example programs.
func Atoms(values ...interface{}) Term {
	terms := make([]Term, len(values))
	for i, v := range values {
		terms[i] = NewAtom(v)
	}
	return List(terms...)
}
