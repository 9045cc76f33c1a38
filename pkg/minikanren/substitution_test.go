package minikanren

import (
	"testing"
)

func TestWalkChains(t *testing.T) {
	sv := NewSolver(nil)
	x, y, z := sv.NewVar("x"), sv.NewVar("y"), sv.NewVar("z")

	sub := NewSubstitution().Bind(x, y).Bind(y, z).Bind(z, NewAtom(42))
	if got := sub.Walk(x); !got.Equal(NewAtom(42)) {
		t.Errorf("Walk(x) = %s, want 42", got)
	}

	unbound := sv.NewVar("u")
	if got := sub.Walk(unbound); got != Term(unbound) {
		t.Errorf("Walk of an unbound variable must return the variable, got %s", got)
	}
}

func TestDeepWalkResolvesStructure(t *testing.T) {
	sv := NewSolver(nil)
	x, y := sv.NewVar("x"), sv.NewVar("y")
	sub := NewSubstitution().Bind(x, NewAtom(1)).Bind(y, List(x, NewAtom(2)))

	got := sub.DeepWalk(List(x, y))
	want := "(1 (1 2))"
	if got.String() != want {
		t.Errorf("DeepWalk = %s, want %s", got, want)
	}
}

func TestBindIsPersistent(t *testing.T) {
	sv := NewSolver(nil)
	x := sv.NewVar("x")

	base := NewSubstitution()
	left := base.Bind(x, NewAtom("left"))
	right := base.Bind(x, NewAtom("right"))

	if base.Size() != 0 {
		t.Error("binding must not mutate the base substitution")
	}
	if !left.Walk(x).Equal(NewAtom("left")) || !right.Walk(x).Equal(NewAtom("right")) {
		t.Error("sibling substitutions must keep independent views")
	}
}

func TestUnifySymmetry(t *testing.T) {
	build := func(sv *Solver) (a, b Term) {
		x, y := sv.NewVar("x"), sv.NewVar("y")
		return List(x, NewAtom(2), y), List(NewAtom(1), y, NewAtom(2))
	}
	left, err := Run(10, func(q *Var) Goal {
		return GoalFunc(func(sv *Solver, st *State) *Stream {
			a, b := build(sv)
			return Conj(Eq(a, b), Eq(q, a)).Solve(sv, st)
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	right, err := Run(10, func(q *Var) Goal {
		return GoalFunc(func(sv *Solver, st *State) *Stream {
			a, b := build(sv)
			return Conj(Eq(b, a), Eq(q, a)).Solve(sv, st)
		})
	})
	if err != nil {
		t.Fatal(err)
	}
	diffStrings(t, termStrings(left), termStrings(right))
}

func TestEqIdempotence(t *testing.T) {
	once := runStrings(t, 10, func(q *Var) Goal {
		return Eq(q, Atoms(1, 2))
	})
	twice := runStrings(t, 10, func(q *Var) Goal {
		return Conj(Eq(q, Atoms(1, 2)), Eq(q, Atoms(1, 2)))
	})
	diffStrings(t, once, twice)
}

func TestOccursCheck(t *testing.T) {
	got := runStrings(t, 1, func(q *Var) Goal {
		return Eq(q, NewPair(q, Nil))
	})
	if len(got) != 0 {
		t.Errorf("unifying a variable with a term containing it must fail, got %v", got)
	}
}

func TestOccursCheckDisabled(t *testing.T) {
	cfg := DefaultSolverConfig()
	cfg.DisableOccursCheck = true
	// The cyclic binding is confined to a variable the answer never
	// touches, so reification stays safe.
	got := runStringsWithConfig(t, cfg, 1, func(q *Var) Goal {
		return Fresh(1, func(vars []*Var) Goal {
			x := vars[0]
			return Conj(Eq(x, NewPair(x, Nil)), Eq(q, NewAtom("ok")))
		})
	})
	diffStrings(t, []string{"ok"}, got)
}

func TestUnifyCompound(t *testing.T) {
	got := runStrings(t, 2, func(q *Var) Goal {
		return Fresh(2, func(vars []*Var) Goal {
			x, y := vars[0], vars[1]
			return Conj(
				Eq(NewCompound("point", x, NewAtom(1)), NewCompound("point", NewAtom(2), y)),
				Eq(q, List(x, y)),
			)
		})
	})
	diffStrings(t, []string{"(2 1)"}, got)
}

func TestUnifyCompoundMismatch(t *testing.T) {
	got := runStrings(t, 1, func(q *Var) Goal {
		return Eq(NewCompound("point", q), NewCompound("pixel", q))
	})
	if len(got) != 0 {
		t.Errorf("compounds with different constructors must not unify, got %v", got)
	}
}
