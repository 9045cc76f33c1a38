package minikanren

import (
	"fmt"
)

// State is the unit a goal consumes and produces: a snapshot of the
// search holding the substitution, the constraint store, the
// finite-domain store, and the opaque user state. All four parts are
// persistent values; the with-methods return a new State sharing
// structure with the old one, so sibling branches never observe one
// another's extensions.
type State struct {
	sub   *Substitution
	store *ConstraintStore
	doms  map[int64]*FiniteDomain
	user  UserState
}

// NewState creates an initial empty state carrying the given user state
// (which may be nil).
func NewState(user UserState) *State {
	return &State{
		sub:   NewSubstitution(),
		store: NewConstraintStore(),
		doms:  make(map[int64]*FiniteDomain),
		user:  user,
	}
}

// Substitution returns the state's substitution.
func (st *State) Substitution() *Substitution {
	return st.sub
}

// Store returns the state's constraint store.
func (st *State) Store() *ConstraintStore {
	return st.store
}

// User returns the state's user state, which may be nil.
func (st *State) User() UserState {
	return st.user
}

// WithUser returns a state carrying the given user state. User state is
// per-state and immutable: branches share the value structurally and
// replace it wholesale, they never mutate it in place.
func (st *State) WithUser(user UserState) *State {
	s := *st
	s.user = user
	return &s
}

// Domain returns the finite domain attached to v, if any.
func (st *State) Domain(v *Var) (*FiniteDomain, bool) {
	d, ok := st.doms[v.id]
	return d, ok
}

// DomainVarIDs returns the ids of all domain-constrained variables in
// ascending order. Ascending id order is creation order, which keeps
// domain enumeration deterministic.
func (st *State) DomainVarIDs() []int64 {
	ids := make([]int64, 0, len(st.doms))
	for id := range st.doms {
		ids = append(ids, id)
	}
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
	return ids
}

func (st *State) withSub(sub *Substitution) *State {
	s := *st
	s.sub = sub
	return &s
}

func (st *State) withStore(store *ConstraintStore) *State {
	s := *st
	s.store = store
	return &s
}

func (st *State) withDomain(id int64, d *FiniteDomain) *State {
	doms := make(map[int64]*FiniteDomain, len(st.doms)+1)
	for k, v := range st.doms {
		doms[k] = v
	}
	doms[id] = d
	s := *st
	s.doms = doms
	return &s
}

func (st *State) withoutDomain(id int64) *State {
	if _, ok := st.doms[id]; !ok {
		return st
	}
	doms := make(map[int64]*FiniteDomain, len(st.doms)-1)
	for k, v := range st.doms {
		if k != id {
			doms[k] = v
		}
	}
	s := *st
	s.doms = doms
	return &s
}

// WithConstraint returns a state whose store is extended with c.
func (st *State) WithConstraint(c Constraint) *State {
	return st.withStore(st.store.With(c))
}

// TakeConstraint returns a state with c removed from the store, and
// whether it was present.
func (st *State) TakeConstraint(c Constraint) (*State, bool) {
	store, ok := st.store.Without(c)
	if !ok {
		return st, false
	}
	return st.withStore(store), true
}

// String returns a compact representation of the state for debugging.
func (st *State) String() string {
	return fmt.Sprintf("State{sub: %s, constraints: %d, domains: %d}",
		st.sub, st.store.Len(), len(st.doms))
}

// Unify attempts to unify u and v in st. On success the extension (the
// set of bindings the unification added) is handed to every registered
// constraint domain in fixed order; any domain may veto the transition.
// Returns false when unification or a constraint check fails.
func (sv *Solver) Unify(st *State, u, v Term) (*State, bool) {
	var ext []Binding
	sub := unify(st.sub, &ext, u, v, !sv.cfg.DisableOccursCheck)
	if sub == nil {
		return nil, false
	}
	return sv.processExtension(st.withSub(sub), ext)
}

// processExtension runs every registered domain module, in fixed order,
// over the freshly added bindings, then the user-state hook. A state in
// which some domain rejects is never exposed.
func (sv *Solver) processExtension(st *State, ext []Binding) (*State, bool) {
	if len(ext) == 0 {
		return st, true
	}
	var ok bool
	for _, m := range sv.modules {
		st, ok = m.Check(sv, st, ext)
		if !ok {
			return nil, false
		}
	}
	if hook, isHook := st.user.(ExtensionProcessor); isHook {
		st, ok = hook.ProcessExtension(sv, st, ext)
		if !ok {
			return nil, false
		}
	}
	return st, true
}

// runConstraints re-runs every stored constraint of one domain against
// the current substitution. Each constraint is removed from the store
// before running; still-pending constraints re-add themselves.
func (sv *Solver) runConstraints(st *State, tag string) (*State, bool) {
	constraints := st.store.Tagged(tag)
	for _, c := range constraints {
		st2, present := st.TakeConstraint(c)
		if !present {
			// An earlier constraint's re-run already removed it.
			continue
		}
		var ok bool
		st, ok = c.Run(sv, st2)
		if !ok {
			return nil, false
		}
	}
	return st, true
}
