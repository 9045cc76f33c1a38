package minikanren

import (
	"testing"
)

// lengthClass classifies a list as empty, singleton, or multiple using
// pattern clauses.
func lengthClass(list Term, result Term) []PatternClause {
	return []PatternClause{
		NewClause(0, func(vars []*Var) (Term, []Goal) {
			return Nil, []Goal{Eq(result, NewAtom("empty"))}
		}),
		NewClause(1, func(vars []*Var) (Term, []Goal) {
			return List(vars[0]), []Goal{Eq(result, NewAtom("singleton"))}
		}),
		NewClause(3, func(vars []*Var) (Term, []Goal) {
			x, y, rest := vars[0], vars[1], vars[2]
			return ListWithTail(rest, x, y), []Goal{Eq(result, NewAtom("multiple"))}
		}),
	}
}

func TestMatcheClassifiesLists(t *testing.T) {
	tests := []struct {
		name string
		list Term
		want []string
	}{
		{"empty", Nil, []string{"empty"}},
		{"singleton", Atoms(1), []string{"singleton"}},
		{"multiple", Atoms(1, 2, 3), []string{"multiple"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := runStrings(t, 10, func(q *Var) Goal {
				return Matche(tt.list, lengthClass(tt.list, q)...)
			})
			diffStrings(t, tt.want, got)
		})
	}
}

func TestMatcheTriesAllMatchingClauses(t *testing.T) {
	// An unbound scrutinee matches every pattern.
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(1, func(vars []*Var) Goal {
			return Matche(vars[0], lengthClass(vars[0], q)...)
		})
	})
	diffStrings(t, []string{"empty", "singleton", "multiple"}, got)
}

func TestMatchaCommitsToFirstMatch(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(1, func(vars []*Var) Goal {
			return Matcha(vars[0], lengthClass(vars[0], q)...)
		})
	})
	diffStrings(t, []string{"empty"}, got)
}

func TestMatchaFallsThroughNonMatchingPatterns(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Matcha(Atoms(1, 2), lengthClass(Atoms(1, 2), q)...)
	})
	diffStrings(t, []string{"multiple"}, got)
}

func TestMatchuRestrictsToOneMatch(t *testing.T) {
	// The pattern (head . rest) matches the two-element list one way
	// only, so Matchu yields exactly one answer, binding q to the head.
	// With a deterministic pattern like this one Matcha behaves alike.
	got := runStrings(t, 10, func(q *Var) Goal {
		return Matchu(Atoms(1, 2),
			NewClause(2, func(vars []*Var) (Term, []Goal) {
				head, rest := vars[0], vars[1]
				return NewPair(head, rest), []Goal{Eq(q, head)}
			}),
		)
	})
	diffStrings(t, []string{"1"}, got)
}

func TestMatchePatternVariablesBind(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Matche(Atoms("a", "b", "c"),
			NewClause(2, func(vars []*Var) (Term, []Goal) {
				head, rest := vars[0], vars[1]
				return NewPair(head, rest), []Goal{Eq(q, List(head, rest))}
			}),
		)
	})
	diffStrings(t, []string{"(a (b c))"}, got)
}
