// Answer enforcement and reification. Before a state is turned into an
// answer, the finite-domain store is enforced: every domain-constrained
// variable reachable from the query tuple is expanded into one answer
// per remaining value, and every variable mentioned by a finite-domain
// propagator must carry a domain. Reification then resolves the query
// variables and names the still-unbound ones `_.0`, `_.1`, ... in
// left-to-right discovery order.
package minikanren

// forceAnswers expands the finite domains reachable from t into
// enumerated answers: a domain-constrained variable becomes one branch
// per domain value, in ascending order.
func forceAnswers(t Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		w := st.sub.Walk(t)
		switch w := w.(type) {
		case *Var:
			d, ok := st.Domain(w)
			if !ok {
				return unitStream(st)
			}
			values := d.Values()
			goals := make([]Goal, len(values))
			for i, n := range values {
				goals[i] = Eq(w, NewAtom(n))
			}
			return Disj(goals...).Solve(sv, st)
		case *Pair:
			return Conj(forceAnswers(w.car), forceAnswers(w.cdr)).Solve(sv, st)
		case *Compound:
			goals := make([]Goal, len(w.args))
			for i, a := range w.args {
				goals[i] = forceAnswers(a)
			}
			return Conj(goals...).Solve(sv, st)
		default:
			return unitStream(st)
		}
	})
}

// enforceFd forces the domains reachable from root, verifies that every
// variable mentioned by a remaining finite-domain propagator carries a
// domain (a domainless propagator operand is a usage error: the
// propagator could never be decided), and then commits to the first
// assignment of the remaining domain-constrained variables so hidden
// variables do not multiply the visible answers.
func enforceFd(root Term) Goal {
	return Conj(
		forceAnswers(root),
		GoalFunc(func(sv *Solver, st *State) *Stream {
			for _, c := range st.store.Tagged(TagFd) {
				for _, op := range c.Operands() {
					w := st.sub.Walk(op)
					if v, ok := w.(*Var); ok {
						if _, has := st.Domain(v); !has {
							sv.Fail(usageErrorf("variable %s of %s is not bound to any domain", v, c))
							return emptyStream()
						}
					}
				}
			}
			ids := st.DomainVarIDs()
			if len(ids) == 0 {
				return unitStream(st)
			}
			remaining := make([]Term, len(ids))
			for i, id := range ids {
				remaining[i] = &Var{id: id}
			}
			return Onceo(forceAnswers(List(remaining...))).Solve(sv, st)
		}),
	)
}

// reifier assigns placeholder names to unbound variables in discovery
// order, shared across the whole answer tuple so that the same variable
// reifies to the same placeholder everywhere it appears.
type reifier struct {
	names   map[int64]Term
	counter int
}

func newReifier() *reifier {
	return &reifier{names: make(map[int64]Term)}
}

// rename replaces every variable in a fully walked term with its
// placeholder atom, assigning fresh placeholders left to right.
func (r *reifier) rename(t Term) Term {
	switch t := t.(type) {
	case *Var:
		if name, ok := r.names[t.id]; ok {
			return name
		}
		name := NewAtom(placeholderName(r.counter))
		r.counter++
		r.names[t.id] = name
		return name
	case *Pair:
		// Car first: placeholder numbering follows term order.
		car := r.rename(t.car)
		cdr := r.rename(t.cdr)
		return NewPair(car, cdr)
	case *Compound:
		args := make([]Term, len(t.args))
		for i, a := range t.args {
			args[i] = r.rename(a)
		}
		return NewCompound(t.functor, args...)
	default:
		return t
	}
}

func placeholderName(n int) string {
	// _.0, _.1, ... like the printed form of classical miniKanren.
	const digits = "0123456789"
	if n == 0 {
		return "_.0"
	}
	var buf [24]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = digits[n%10]
		n /= 10
	}
	return "_." + string(buf[i:])
}

// reifyState renders one delivered state into an answer record: each
// query variable's resolved term plus the residual constraints the
// domain modules report for it, all under the shared placeholder
// naming.
func reifyState(sv *Solver, st *State, names []string, vars []*Var) Answer {
	r := newReifier()
	answer := make(Answer, len(vars))
	for i, v := range vars {
		walked := st.sub.DeepWalk(v)
		renamed := r.rename(walked)
		var constraints map[string][]Term
		for _, m := range sv.modules {
			residual := m.Reify(v, st)
			if len(residual) == 0 {
				continue
			}
			renamedResidual := make([]Term, len(residual))
			for j, res := range residual {
				renamedResidual[j] = r.rename(st.sub.DeepWalk(res))
			}
			if constraints == nil {
				constraints = make(map[string][]Term)
			}
			constraints[m.Tag()] = renamedResidual
		}
		answer[names[i]] = Result{Term: renamed, Constraints: constraints}
	}
	return answer
}
