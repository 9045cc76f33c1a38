// Pattern matching operators over terms. A match compiles to the goal
// primitives: each clause introduces its pattern variables fresh,
// unifies the pattern with the scrutinee, and runs its body goals —
// there is no separate runtime construct.
//
//   - Matche: exhaustive matching (disjunction over all matching clauses)
//   - Matcha: soft-cut matching (first clause whose pattern matches commits)
//   - Matchu: committed-choice matching (like Matcha, and the committed
//     pattern match is restricted to one answer)
package minikanren

// PatternClause is a single clause of Matche, Matcha, or Matchu. Build
// receives Arity fresh variables for the positions the pattern binds by
// name and returns the pattern term plus the body goals to run when the
// pattern matches.
type PatternClause struct {
	Arity int
	Build func(vars []*Var) (pattern Term, body []Goal)
}

// NewClause creates a pattern clause with arity fresh pattern
// variables.
//
// Example:
//
//	// ( (head . tail) -> Eq(out, head) )
//	NewClause(2, func(vars []*Var) (Term, []Goal) {
//	    head, tail := vars[0], vars[1]
//	    return NewPair(head, tail), []Goal{Eq(out, head)}
//	})
func NewClause(arity int, build func(vars []*Var) (Term, []Goal)) PatternClause {
	return PatternClause{Arity: arity, Build: build}
}

// Matche matches the scrutinee against every clause, combining the
// matching clauses' bodies by interleaving disjunction, like Conde.
func Matche(scrutinee Term, clauses ...PatternClause) Goal {
	goals := make([]Goal, len(clauses))
	for i, c := range clauses {
		clause := c
		goals[i] = GoalFunc(func(sv *Solver, st *State) *Stream {
			pattern, body := clause.Build(sv.freshVars(clause.Arity))
			return Conj(append([]Goal{Eq(scrutinee, pattern)}, body...)...).Solve(sv, st)
		})
	}
	return Disj(goals...)
}

// Matcha is soft-cut matching: clauses are tried in order and the first
// clause whose pattern unifies with the scrutinee commits; its body
// runs for every way the pattern matches, and later clauses are
// abandoned.
func Matcha(scrutinee Term, clauses ...PatternClause) Goal {
	return matchCommit(scrutinee, clauses, false)
}

// Matchu is committed-choice matching: like Matcha, and additionally
// only the first answer of the committed pattern match feeds the body.
func Matchu(scrutinee Term, clauses ...PatternClause) Goal {
	return matchCommit(scrutinee, clauses, true)
}

func matchCommit(scrutinee Term, clauses []PatternClause, once bool) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		for _, clause := range clauses {
			pattern, body := clause.Build(sv.freshVars(clause.Arity))
			first, s, ok := sv.peek(Eq(scrutinee, pattern).Solve(sv, st))
			if sv.err != nil {
				return emptyStream()
			}
			if !ok {
				continue
			}
			rest := Conj(body...)
			if once {
				return sv.bind(unitStream(first), rest)
			}
			return sv.bind(s, rest)
		}
		return emptyStream()
	})
}
