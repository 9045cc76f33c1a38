// Core goal combinators: unification, conjunction, disjunction, fresh
// variable introduction, committed choice, and projection.
package minikanren

// Eq creates a unification goal constraining two terms to be equal.
// This is the fundamental operation of the engine: it attempts to make
// the two terms identical by binding variables as needed, and every
// binding it adds is checked against the registered constraint domains
// before the successor state is exposed.
//
// Unification rules:
//   - Atom == Atom: succeeds if the atoms have the same value
//   - Var == Term: binds the variable (subject to the occurs check)
//   - Pair == Pair: recursively unifies cars and cdrs
//   - Compound == Compound: requires equal constructor and arity, then
//     unifies children pairwise
//   - Otherwise: fails
func Eq(u, v Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		st2, ok := sv.Unify(st, u, v)
		if !ok {
			return emptyStream()
		}
		return unitStream(st2)
	})
}

// Conj creates a conjunction: all goals must succeed, each running in
// the states produced by its predecessor. Answers of the combined goal
// are merged by the active search strategy.
func Conj(goals ...Goal) Goal {
	if len(goals) == 0 {
		return Succeed
	}
	if len(goals) == 1 {
		return goals[0]
	}
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		s := goals[0].Solve(sv, st)
		for _, g := range goals[1:] {
			s = sv.bind(s, g)
		}
		return s
	})
}

// Disj creates a disjunction: the goal succeeds every way any of the
// goals succeeds. Each arm is suspended rather than run eagerly, so a
// disjunction over a recursive relation stays productive. Under the
// interleaving strategy the arms take turns delivering answers; under
// depth-first search they run in clause order.
func Disj(goals ...Goal) Goal {
	if len(goals) == 0 {
		return Fail
	}
	if len(goals) == 1 {
		return goals[0]
	}
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		susp := pauseSusp(st, goals[len(goals)-1])
		for i := len(goals) - 2; i >= 0; i-- {
			susp = mplusSusp(pauseSusp(st, goals[i]), susp)
		}
		return lazyStream(susp)
	})
}

// Conde is the classical miniKanren disjunction of clauses. Each clause
// is an implicit conjunction:
//
//	Conde(
//	    Clause(Eq(x, NewAtom(1))),
//	    Clause(Eq(x, NewAtom(2)), Eq(y, NewAtom(3))),
//	)
func Conde(clauses ...ConjClause) Goal {
	goals := make([]Goal, len(clauses))
	for i, c := range clauses {
		goals[i] = Conj(c...)
	}
	return Disj(goals...)
}

// ConjClause is one clause of Conde, Conda, or Condu: a sequence of
// goals combined by conjunction, whose first goal is the clause head.
type ConjClause []Goal

// Clause builds a ConjClause from goals.
func Clause(goals ...Goal) ConjClause {
	return goals
}

// Fresh introduces n fresh logic variables scoped to the goal the body
// builds. The variables are allocated when the goal runs, from the
// query's allocator, so identifiers stay monotonic across the whole
// search.
//
// Example:
//
//	Fresh(2, func(vars []*Var) Goal {
//	    x, y := vars[0], vars[1]
//	    return Conj(Eq(x, y), Eq(y, NewAtom(1)))
//	})
func Fresh(n int, body func(vars []*Var) Goal) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		return body(sv.freshVars(n)).Solve(sv, st)
	})
}

// Conda is the soft-cut disjunction: clauses are tried in order, and
// the first clause whose head produces an answer commits — the
// remaining clauses are abandoned, while the committed clause keeps
// backtracking through all answers of its head.
//
// Committing requires peeking one answer from the head, so a head that
// suspends forever without producing an answer makes Conda suspend with
// it; bound that with SolverConfig.MaxSteps.
func Conda(clauses ...ConjClause) Goal {
	return condChoice(clauses, false)
}

// Condu is like Conda but also restricts the committed head to its
// first answer (once): at most one answer of the head feeds the clause
// body.
func Condu(clauses ...ConjClause) Goal {
	return condChoice(clauses, true)
}

func condChoice(clauses []ConjClause, once bool) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		for _, clause := range clauses {
			if len(clause) == 0 {
				continue
			}
			head := clause[0]
			rest := Conj(clause[1:]...)
			first, s, ok := sv.peek(head.Solve(sv, st))
			if sv.err != nil {
				return emptyStream()
			}
			if !ok {
				continue
			}
			if once {
				return sv.bind(unitStream(first), rest)
			}
			return sv.bind(s, rest)
		}
		return emptyStream()
	})
}

// Ifte is if-then-else with commitment to the first answer of the
// condition: if cond succeeds, commit to that answer and run then;
// otherwise run els against the original state.
func Ifte(cond, then, els Goal) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		first, _, ok := sv.peek(cond.Solve(sv, st))
		if sv.err != nil {
			return emptyStream()
		}
		if !ok {
			return els.Solve(sv, st)
		}
		return sv.bind(unitStream(first), then)
	})
}

// Onceo prunes a goal's stream to its first answer.
func Onceo(g Goal) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		first, _, ok := sv.peek(g.Solve(sv, st))
		if !ok {
			return emptyStream()
		}
		return unitStream(first)
	})
}

// Anyo retries a goal infinitely: it succeeds every way g succeeds, any
// number of times. The recursive arm is deferred, so the stream stays
// productive; Anyo over an unsatisfiable goal suspends forever and is
// only useful under a step budget or with a finite take.
func Anyo(g Goal) Goal {
	return Disj(g, Defer(func() Goal { return Anyo(g) }))
}

// Project resolves the listed variables against the current
// substitution and passes their values — fully walked, possibly still
// containing unbound variables — to body, which builds the goal to run.
// Projection is the escape hatch for host-language computation over
// ground values.
func Project(vars []*Var, body func(values []Term) Goal) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		values := make([]Term, len(vars))
		for i, v := range vars {
			values[i] = st.sub.DeepWalk(v)
		}
		return body(values).Solve(sv, st)
	})
}

// ProjectGround is Project with a grounding requirement: if any
// projected value still contains a variable, the whole query is aborted
// with a usage error, because the host computation's demand for ground
// input reflects programmer intent rather than search exhaustion.
func ProjectGround(vars []*Var, body func(values []Term) Goal) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		values := make([]Term, len(vars))
		for i, v := range vars {
			values[i] = st.sub.DeepWalk(v)
			if containsVar(values[i]) {
				sv.Fail(usageErrorf("projected value %s is not ground", values[i]))
				return emptyStream()
			}
		}
		return body(values).Solve(sv, st)
	})
}

func containsVar(t Term) bool {
	switch t := t.(type) {
	case *Var:
		return true
	case *Pair:
		return containsVar(t.car) || containsVar(t.cdr)
	case *Compound:
		for _, a := range t.args {
			if containsVar(a) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
