package minikanren

import (
	"fmt"
	"sort"
	"strings"
)

// Substitution represents a persistent mapping from variables to terms.
// Extensions return a new substitution and leave the receiver intact, so
// sibling branches of the search can keep diverging views of the same
// prefix without copying terms.
//
// A substitution built through unification with the occurs check enabled
// is acyclic: walking any term reaches either a non-variable or an
// unbound variable in finitely many steps.
type Substitution struct {
	bindings map[int64]Term
}

// Binding is a single variable-to-term association. Unification reports
// the bindings it added (the extension) as a slice of Bindings, and the
// disequality store keeps constraint prefixes in the same form.
type Binding struct {
	Var  *Var
	Term Term
}

// NewSubstitution creates an empty substitution.
func NewSubstitution() *Substitution {
	return &Substitution{bindings: make(map[int64]Term)}
}

// Lookup returns the term bound to a variable, or nil if unbound.
func (s *Substitution) Lookup(v *Var) Term {
	return s.bindings[v.id]
}

// Bind returns a new substitution extended with v -> term. The receiver
// is unchanged.
func (s *Substitution) Bind(v *Var, term Term) *Substitution {
	newBindings := make(map[int64]Term, len(s.bindings)+1)
	for k, t := range s.bindings {
		newBindings[k] = t
	}
	newBindings[v.id] = term
	return &Substitution{bindings: newBindings}
}

// Size returns the number of bindings in the substitution.
func (s *Substitution) Size() int {
	return len(s.bindings)
}

// Walk traverses the binding chain starting at term until it reaches a
// non-variable or an unbound variable.
func (s *Substitution) Walk(term Term) Term {
	for {
		v, ok := term.(*Var)
		if !ok {
			return term
		}
		bound := s.bindings[v.id]
		if bound == nil {
			return term
		}
		term = bound
	}
}

// DeepWalk resolves term fully: it walks the term and then recurses into
// pair and compound structure, producing a tree whose leaves are all
// walked. Used for reification and projection.
func (s *Substitution) DeepWalk(term Term) Term {
	t := s.Walk(term)
	switch t := t.(type) {
	case *Pair:
		return NewPair(s.DeepWalk(t.car), s.DeepWalk(t.cdr))
	case *Compound:
		args := make([]Term, len(t.args))
		for i, a := range t.args {
			args[i] = s.DeepWalk(a)
		}
		return NewCompound(t.functor, args...)
	default:
		return t
	}
}

// Occurs reports whether variable x occurs in term v under the current
// substitution. It is the test behind the occurs check: binding x to a
// term containing x would make the substitution cyclic.
func (s *Substitution) Occurs(x *Var, v Term) bool {
	t := s.Walk(v)
	switch t := t.(type) {
	case *Var:
		return t.id == x.id
	case *Pair:
		return s.Occurs(x, t.car) || s.Occurs(x, t.cdr)
	case *Compound:
		for _, a := range t.args {
			if s.Occurs(x, a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// String returns a representation of the substitution with bindings
// ordered by variable id.
func (s *Substitution) String() string {
	if len(s.bindings) == 0 {
		return "{}"
	}
	ids := make([]int64, 0, len(s.bindings))
	for id := range s.bindings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var sb strings.Builder
	sb.WriteByte('{')
	for i, id := range ids {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "_%d=%s", id, s.bindings[id].String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// unify implements the unification algorithm over a bare substitution.
// Bindings added along the way are appended to *ext; callers feed that
// extension to the constraint domains afterwards. Returns the extended
// substitution, or nil if the terms cannot be unified.
//
// With occursCheck enabled, binding a variable to a term that contains
// it fails, keeping the substitution acyclic.
func unify(s *Substitution, ext *[]Binding, u, v Term, occursCheck bool) *Substitution {
	uw := s.Walk(u)
	vw := s.Walk(v)

	if uw.Equal(vw) {
		return s
	}
	if uvar, ok := uw.(*Var); ok {
		return bindChecked(s, ext, uvar, vw, occursCheck)
	}
	if vvar, ok := vw.(*Var); ok {
		return bindChecked(s, ext, vvar, uw, occursCheck)
	}
	if up, ok := uw.(*Pair); ok {
		if vp, ok := vw.(*Pair); ok {
			s = unify(s, ext, up.car, vp.car, occursCheck)
			if s == nil {
				return nil
			}
			return unify(s, ext, up.cdr, vp.cdr, occursCheck)
		}
		return nil
	}
	if uc, ok := uw.(*Compound); ok {
		if vc, ok := vw.(*Compound); ok {
			if uc.functor != vc.functor || len(uc.args) != len(vc.args) {
				return nil
			}
			for i := range uc.args {
				s = unify(s, ext, uc.args[i], vc.args[i], occursCheck)
				if s == nil {
					return nil
				}
			}
			return s
		}
		return nil
	}
	// Distinct atoms, or an atom against a pair/compound.
	return nil
}

func bindChecked(s *Substitution, ext *[]Binding, v *Var, term Term, occursCheck bool) *Substitution {
	if occursCheck && s.Occurs(v, term) {
		return nil
	}
	*ext = append(*ext, Binding{Var: v, Term: term})
	return s.Bind(v, term)
}
