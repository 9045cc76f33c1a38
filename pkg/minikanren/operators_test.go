package minikanren

import (
	"errors"
	"testing"
)

func TestDisjEnumeratesInOrder(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Disj(Eq(q, NewAtom(1)), Eq(q, NewAtom(2)), Eq(q, NewAtom(3)))
	})
	diffStrings(t, []string{"1", "2", "3"}, got)
}

func TestDisjOrderFollowsClauseOrder(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Disj(Eq(q, NewAtom(2)), Eq(q, NewAtom(1)))
	})
	diffStrings(t, []string{"2", "1"}, got)
}

func TestConjAllMustHold(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(2, func(vars []*Var) Goal {
			x, y := vars[0], vars[1]
			return Conj(
				Eq(x, NewAtom(1)),
				Eq(y, NewAtom(2)),
				Eq(q, List(x, y)),
			)
		})
	})
	diffStrings(t, []string{"(1 2)"}, got)
}

func TestConjFailurePrunesBranch(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Conj(Eq(q, NewAtom(1)), Eq(q, NewAtom(2)))
	})
	if len(got) != 0 {
		t.Errorf("contradictory conjunction must fail, got %v", got)
	}
}

func TestCondeClauses(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(1, func(vars []*Var) Goal {
			x := vars[0]
			return Conde(
				Clause(Eq(x, NewAtom("tea")), Eq(q, List(x, NewAtom("cup")))),
				Clause(Eq(x, NewAtom("soup")), Eq(q, List(x, NewAtom("bowl")))),
			)
		})
	})
	diffStrings(t, []string{"(tea cup)", "(soup bowl)"}, got)
}

func TestCondaCommitsToFirstSucceedingHead(t *testing.T) {
	// From W. Byrd's dissertation: conda commits to the olive clause and
	// never tries oil.
	got := runStrings(t, 10, func(x *Var) Goal {
		return Conda(
			Clause(Eq(NewAtom("olive"), x)),
			Clause(Eq(NewAtom("oil"), x)),
		)
	})
	diffStrings(t, []string{"olive"}, got)
}

func TestCondaCommittedClauseFailureIsFinal(t *testing.T) {
	// The virgin clause head succeeds, so conda commits to it; the
	// clause body then fails, and the remaining clauses must not run.
	got := runStrings(t, 10, func(x *Var) Goal {
		return Conda(
			Clause(Eq(NewAtom("virgin"), x), Fail),
			Clause(Eq(NewAtom("olive"), x)),
			Clause(Eq(NewAtom("oil"), x)),
		)
	})
	if len(got) != 0 {
		t.Errorf("conda must not fall through a committed clause, got %v", got)
	}
}

func TestCondaFailedHeadFallsThrough(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(3, func(vars []*Var) Goal {
			x, y, z := vars[0], vars[1], vars[2]
			return Conj(
				Eq(q, List(x, y)),
				Membero(z, Atoms(5, 6)),
				Conda(
					Clause(Fail, Eq(y, NewAtom(2))),
					Clause(Eq(x, z), Eq(y, NewAtom(4))),
				),
			)
		})
	})
	diffStrings(t, []string{"(5 4)", "(6 4)"}, got)
}

func TestCondaBacktracksThroughCommittedHead(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(3, func(vars []*Var) Goal {
			x, y, z := vars[0], vars[1], vars[2]
			return Conj(
				Eq(q, List(x, y)),
				Membero(z, Atoms(5, 6)),
				Conda(
					Clause(Eq(x, z), Eq(y, NewAtom(2))),
					Clause(Eq(x, z), Eq(y, NewAtom(4))),
				),
			)
		})
	})
	diffStrings(t, []string{"(5 2)", "(6 2)"}, got)
}

func TestConduRestrictsHeadToOneAnswer(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Condu(
			Clause(Membero(q, Atoms(1, 2, 3)), Succeed),
		)
	})
	diffStrings(t, []string{"1"}, got)
}

func TestConduOverAlwayso(t *testing.T) {
	got := runStrings(t, 5, func(q *Var) Goal {
		return Conj(
			Condu(Clause(Alwayso(), Succeed)),
			Eq(q, NewAtom("once")),
		)
	})
	diffStrings(t, []string{"once"}, got)
}

func TestOnceoPrunesToFirstAnswer(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Onceo(Disj(Eq(q, NewAtom(1)), Eq(q, NewAtom(2))))
	})
	diffStrings(t, []string{"1"}, got)
}

func TestIfte(t *testing.T) {
	t.Run("condition succeeds", func(t *testing.T) {
		got := runStrings(t, 10, func(q *Var) Goal {
			return Fresh(1, func(vars []*Var) Goal {
				x := vars[0]
				return Ifte(Eq(x, NewAtom(1)), Eq(q, x), Eq(q, NewAtom("none")))
			})
		})
		diffStrings(t, []string{"1"}, got)
	})
	t.Run("condition fails", func(t *testing.T) {
		got := runStrings(t, 10, func(q *Var) Goal {
			return Ifte(Fail, Eq(q, NewAtom("then")), Eq(q, NewAtom("else")))
		})
		diffStrings(t, []string{"else"}, got)
	})
}

func TestProjectPassesWalkedValues(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(1, func(vars []*Var) Goal {
			x := vars[0]
			return Conj(
				Eq(x, NewAtom(5)),
				Project([]*Var{x}, func(values []Term) Goal {
					n := values[0].(*Atom).Value().(int)
					return Eq(q, NewAtom(n*n))
				}),
			)
		})
	})
	diffStrings(t, []string{"25"}, got)
}

func TestProjectGroundRejectsUnbound(t *testing.T) {
	_, err := Run(1, func(q *Var) Goal {
		return ProjectGround([]*Var{q}, func(values []Term) Goal {
			return Succeed
		})
	})
	if !errors.Is(err, ErrUsage) {
		t.Errorf("err = %v, want ErrUsage", err)
	}
}

func TestFreshScopesVariables(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(2, func(vars []*Var) Goal {
			x, y := vars[0], vars[1]
			return Conj(Eq(x, y), Eq(y, NewAtom(7)), Eq(q, x))
		})
	})
	diffStrings(t, []string{"7"}, got)
}

func TestSucceedAndFail(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Conj(Succeed, Eq(q, NewAtom(1)))
	})
	diffStrings(t, []string{"1"}, got)

	got = runStrings(t, 10, func(q *Var) Goal {
		return Conj(Fail, Eq(q, NewAtom(1)))
	})
	if len(got) != 0 {
		t.Errorf("Fail in a conjunction must produce no answers, got %v", got)
	}
}
