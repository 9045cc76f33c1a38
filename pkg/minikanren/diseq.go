// Tree disequality, the CLP(Tree) domain. A disequality constraint is
// stored as the prefix of bindings that unifying the two terms would
// have added: the original inequality holds as long as at least one of
// those bindings stays contradicted or undecided. Every substitution
// extension re-checks the prefix — if all of it has become entailed the
// state is rejected, if part of it has become impossible the constraint
// is dropped, and otherwise the narrowed prefix is stored back.
package minikanren

import (
	"strings"
)

// TagTree is the domain tag of the tree-disequality module.
const TagTree = "tree"

// Neq creates a disequality goal constraining two terms to never become
// equal. The goal succeeds immediately when the terms cannot unify,
// fails immediately when they are already equal, and otherwise posts a
// constraint that future unifications must respect.
//
// Example:
//
//	Fresh(1, func(vars []*Var) Goal {
//	    x := vars[0]
//	    return Conj(Neq(x, NewAtom(1)), Eq(x, NewAtom(2))) // succeeds
//	})
func Neq(u, v Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		st2, ok := sv.Disunify(st, u, v)
		if !ok {
			return emptyStream()
		}
		return unitStream(st2)
	})
}

// Disunify posts the disequality u ≠ v. Disunification is implemented
// in terms of unification: the attempt's extension becomes the stored
// constraint prefix.
func (sv *Solver) Disunify(st *State, u, v Term) (*State, bool) {
	var ext []Binding
	sub := unify(st.sub, &ext, u, v, !sv.cfg.DisableOccursCheck)
	if sub == nil {
		// The terms can never be equal; the disequality already holds.
		return st, true
	}
	if len(ext) == 0 {
		// Unification succeeded without extending the substitution: the
		// terms are already equal and the disequality is violated.
		return nil, false
	}
	return st.WithConstraint(&disequalityConstraint{prefix: ext}), true
}

// disequalityConstraint holds the unification prefix of a posted
// disequality. The represented constraint is the negation of the
// prefix's conjunction: it is violated only if every binding in the
// prefix becomes entailed by the substitution.
type disequalityConstraint struct {
	prefix []Binding
}

// Tag returns the tree-disequality domain tag.
func (c *disequalityConstraint) Tag() string {
	return TagTree
}

// Operands returns the terms on both sides of the stored prefix.
func (c *disequalityConstraint) Operands() []Term {
	out := make([]Term, 0, 2*len(c.prefix))
	for _, b := range c.prefix {
		out = append(out, b.Var, b.Term)
	}
	return out
}

// Run re-checks the prefix against the current substitution. Re-unifying
// the prefix classifies the constraint: failure means some inequation
// can never hold again (satisfied, drop); an empty extension means the
// whole prefix is entailed (violated); otherwise the narrowed extension
// becomes the new prefix.
func (c *disequalityConstraint) Run(sv *Solver, st *State) (*State, bool) {
	sub := st.sub
	var ext []Binding
	for _, b := range c.prefix {
		sub = unify(sub, &ext, b.Var, b.Term, !sv.cfg.DisableOccursCheck)
		if sub == nil {
			return st, true
		}
	}
	if len(ext) == 0 {
		return nil, false
	}
	return st.WithConstraint(&disequalityConstraint{prefix: ext}), true
}

// String returns a human-readable representation of the constraint.
func (c *disequalityConstraint) String() string {
	parts := make([]string, len(c.prefix))
	for i, b := range c.prefix {
		parts[i] = b.Var.String() + " != " + b.Term.String()
	}
	return "(" + strings.Join(parts, " or ") + ")"
}

// treeModule is the built-in tree-disequality domain module.
type treeModule struct{}

// Tag returns the tree-disequality domain tag.
func (treeModule) Tag() string {
	return TagTree
}

// Check re-runs every stored disequality after a substitution
// extension.
func (treeModule) Check(sv *Solver, st *State, ext []Binding) (*State, bool) {
	return sv.runConstraints(st, TagTree)
}

// Reify reports the residual disequalities mentioning v as `=/=`
// compounds whose children are two-element (lhs rhs) lists.
func (treeModule) Reify(v *Var, st *State) []Term {
	var out []Term
	for _, c := range st.store.Tagged(TagTree) {
		dc, ok := c.(*disequalityConstraint)
		if !ok {
			continue
		}
		mentions := false
		pairs := make([]Term, 0, len(dc.prefix))
		for _, b := range dc.prefix {
			lhs := st.sub.DeepWalk(b.Var)
			rhs := st.sub.DeepWalk(b.Term)
			if termMentionsVar(lhs, v.id) || termMentionsVar(rhs, v.id) {
				mentions = true
			}
			pairs = append(pairs, List(lhs, rhs))
		}
		if mentions {
			out = append(out, NewCompound("=/=", pairs...))
		}
	}
	return out
}

func termMentionsVar(t Term, id int64) bool {
	switch t := t.(type) {
	case *Var:
		return t.id == id
	case *Pair:
		return termMentionsVar(t.car, id) || termMentionsVar(t.cdr, id)
	case *Compound:
		for _, a := range t.args {
			if termMentionsVar(a, id) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
