// Finite domains, the CLP(FD) constraint domain. Variables carry finite
// integer domains in the state's domain store; arithmetic and ordering
// constraints are propagators that narrow those domains. Propagation
// runs in a worklist: a propagator is re-awakened whenever a domain it
// watches narrows, and the fixpoint is reached when the worklist
// empties. Consistency is at the bounds/domain level — the propagators
// never search; enumeration is the engine's job, at reification time.
package minikanren

// TagFd is the domain tag of the finite-domain module.
const TagFd = "fd"

// fdModule is the built-in finite-domain module.
type fdModule struct{}

// Tag returns the finite-domain tag.
func (fdModule) Tag() string {
	return TagFd
}

// Check processes a substitution extension: for every newly bound
// variable that carried a domain, the domain is transferred onto the
// bound term (rejecting values outside it), then the propagators run to
// fixpoint.
func (fdModule) Check(sv *Solver, st *State, ext []Binding) (*State, bool) {
	for _, b := range ext {
		d, ok := st.Domain(b.Var)
		if !ok {
			continue
		}
		st = st.withoutDomain(b.Var.id)
		var accepted bool
		st, accepted = sv.processDomain(st, b.Term, d)
		if !accepted {
			return nil, false
		}
	}
	return sv.propagateAll(st)
}

// Reify reports a residual unforced domain on v as a `dom` compound.
// Under the default configuration domains are forced into enumerated
// answers before reification, so residuals only appear with
// SolverConfig.KeepDomains.
func (fdModule) Reify(v *Var, st *State) []Term {
	w := st.sub.Walk(v)
	wv, ok := w.(*Var)
	if !ok {
		return nil
	}
	d, ok := st.Domain(wv)
	if !ok {
		return nil
	}
	values := d.Values()
	atoms := make([]Term, len(values))
	for i, n := range values {
		atoms[i] = NewAtom(n)
	}
	return []Term{NewCompound("dom", wv, List(atoms...))}
}

// processDomain intersects the domain of term t with d. A variable
// gets the narrowed domain attached (or is bound outright when the
// domain shrinks to a singleton); an integer atom is checked for
// membership. Non-integer terms in domain position are a usage error
// and abort the query.
func (sv *Solver) processDomain(st *State, t Term, d *FiniteDomain) (*State, bool) {
	if d == nil {
		return nil, false
	}
	w := st.sub.Walk(t)
	switch w := w.(type) {
	case *Var:
		if old, ok := st.Domain(w); ok {
			d = old.Intersect(d)
			if d == nil {
				return nil, false
			}
		}
		return sv.storeDomain(st, w, d)
	case *Atom:
		n, ok := atomInt(w)
		if !ok {
			sv.Fail(usageErrorf("finite-domain constraint over non-integer term %s", w))
			return nil, false
		}
		return st, d.Has(n)
	default:
		sv.Fail(usageErrorf("finite-domain constraint over non-integer term %s", w))
		return nil, false
	}
}

// storeDomain replaces v's domain with d. A singleton domain is
// promoted to a substitution binding, which re-enters the full
// extension pipeline so that every domain re-checks the new binding.
func (sv *Solver) storeDomain(st *State, v *Var, d *FiniteDomain) (*State, bool) {
	if d == nil {
		return nil, false
	}
	if n, single := d.SingletonValue(); single {
		value := NewAtom(n)
		st2 := st.withoutDomain(v.id).withSub(st.sub.Bind(v, value))
		return sv.processExtension(st2, []Binding{{Var: v, Term: value}})
	}
	return st.withDomain(v.id, d), true
}

// propagateAll seeds the worklist with every stored finite-domain
// propagator and runs to fixpoint. Each propagator is removed from the
// store before running; pending propagators re-add themselves. When a
// run narrows an operand's domain, the propagators watching that
// variable are re-awakened.
func (sv *Solver) propagateAll(st *State) (*State, bool) {
	queue := append([]Constraint(nil), st.store.Tagged(TagFd)...)
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		st2, present := st.TakeConstraint(c)
		if !present {
			// Dropped or replaced by an earlier run in this round.
			continue
		}
		before := operandDomains(st2, c)
		var ok bool
		st, ok = c.Run(sv, st2)
		if !ok {
			return nil, false
		}
		for _, id := range narrowedVarIDs(st, before) {
			for _, w := range st.store.Tagged(TagFd) {
				if constraintWatches(st, w, id) {
					queue = append(queue, w)
				}
			}
		}
	}
	return st, true
}

// operandDomains snapshots the domains of a constraint's variable
// operands, keyed by variable id.
func operandDomains(st *State, c Constraint) map[int64]*FiniteDomain {
	out := make(map[int64]*FiniteDomain)
	for _, t := range c.Operands() {
		if v, ok := st.sub.Walk(t).(*Var); ok {
			if d, has := st.Domain(v); has {
				out[v.id] = d
			}
		}
	}
	return out
}

// narrowedVarIDs compares a domain snapshot against the current state
// and returns the ids whose domains narrowed or were promoted to
// bindings, in ascending id order.
func narrowedVarIDs(st *State, before map[int64]*FiniteDomain) []int64 {
	var out []int64
	for id, old := range before {
		now, has := st.doms[id]
		if !has || !now.Equal(old) {
			out = append(out, id)
		}
	}
	// Map iteration order is not deterministic; sort so the worklist
	// order, and with it any usage-error attribution, is reproducible.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// constraintWatches reports whether one of c's operands walks to the
// variable with the given id.
func constraintWatches(st *State, c Constraint, id int64) bool {
	for _, t := range c.Operands() {
		if v, ok := st.sub.Walk(t).(*Var); ok && v.id == id {
			return true
		}
	}
	return false
}

// atomInt extracts the integer payload of an atom.
func atomInt(a *Atom) (int, bool) {
	n, ok := a.value.(int)
	return n, ok
}

// fdView resolves a propagator operand to a domain view: a bound
// integer appears as a singleton domain, a domain-carrying variable as
// its domain, and a domainless variable as nil (the propagator stays
// pending). Any other term is a usage error.
func (sv *Solver) fdView(st *State, t Term) (*FiniteDomain, bool) {
	w := st.sub.Walk(t)
	switch w := w.(type) {
	case *Var:
		if d, ok := st.Domain(w); ok {
			return d, true
		}
		return nil, true
	case *Atom:
		n, ok := atomInt(w)
		if !ok {
			sv.Fail(usageErrorf("finite-domain propagator over non-integer term %s", w))
			return nil, false
		}
		return SingletonDomain(n), true
	default:
		sv.Fail(usageErrorf("finite-domain propagator over non-integer term %s", w))
		return nil, false
	}
}

// narrowOperand intersects the domain of an operand with d. Bound
// integers are checked, variables narrowed (with singleton promotion).
func (sv *Solver) narrowOperand(st *State, t Term, d *FiniteDomain) (*State, bool) {
	return sv.processDomain(st, t, d)
}
