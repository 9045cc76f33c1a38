package minikanren

import (
	"testing"
)

func TestConsoBothDirections(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Conso(NewAtom(1), Atoms(2, 3), q)
	})
	diffStrings(t, []string{"(1 2 3)"}, got)

	got = runStrings(t, 10, func(q *Var) Goal {
		return Fresh(2, func(vars []*Var) Goal {
			head, tail := vars[0], vars[1]
			return Conj(
				Conso(head, tail, Atoms(1, 2, 3)),
				Eq(q, List(head, tail)),
			)
		})
	})
	diffStrings(t, []string{"(1 (2 3))"}, got)
}

func TestFirstoResto(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Firsto(Atoms("a", "b"), q)
	})
	diffStrings(t, []string{"a"}, got)

	got = runStrings(t, 10, func(q *Var) Goal {
		return Resto(Atoms("a", "b"), q)
	})
	diffStrings(t, []string{"(b)"}, got)
}

func TestEmptyo(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Emptyo(q)
	})
	diffStrings(t, []string{"()"}, got)
}

func TestAppendoForward(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Appendo(Atoms(1, 2), Atoms(3, 4), q)
	})
	diffStrings(t, []string{"(1 2 3 4)"}, got)
}

func TestAppendoBackward(t *testing.T) {
	// Enumerates every split of the list, in split order.
	got := runStrings(t, 10, func(q *Var) Goal {
		return Fresh(2, func(vars []*Var) Goal {
			a, b := vars[0], vars[1]
			return Conj(
				Appendo(a, b, Atoms(1, 2)),
				Eq(q, List(a, b)),
			)
		})
	})
	diffStrings(t, []string{"(() (1 2))", "((1) (2))", "((1 2) ())"}, got)
}

func TestAppendoMiddleArgument(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Appendo(Atoms(1), q, Atoms(1, 2, 3))
	})
	diffStrings(t, []string{"(2 3)"}, got)
}

func TestMemberoEnumerates(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Membero(q, Atoms("a", "b", "c"))
	})
	diffStrings(t, []string{"a", "b", "c"}, got)
}

func TestMemberoChecksMembership(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Conj(Membero(NewAtom("b"), Atoms("a", "b")), Eq(q, NewAtom("yes")))
	})
	diffStrings(t, []string{"yes"}, got)

	got = runStrings(t, 10, func(q *Var) Goal {
		return Conj(Membero(NewAtom("z"), Atoms("a", "b")), Eq(q, NewAtom("yes")))
	})
	if len(got) != 0 {
		t.Errorf("membero over a non-member must fail, got %v", got)
	}
}

func TestRembero(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Rembero(NewAtom("b"), Atoms("a", "b", "c", "b"), q)
	})
	if len(got) == 0 || got[0] != "(a c b)" {
		t.Errorf("first answer = %v, want (a c b)", got)
	}
}

func TestDistincto(t *testing.T) {
	got := runStrings(t, 10, func(q *Var) Goal {
		return Conj(Distincto(Atoms(1, 2, 3)), Eq(q, NewAtom("ok")))
	})
	diffStrings(t, []string{"ok"}, got)

	got = runStrings(t, 10, func(q *Var) Goal {
		return Conj(Distincto(Atoms(1, 2, 1)), Eq(q, NewAtom("ok")))
	})
	if len(got) != 0 {
		t.Errorf("a list with duplicates must not be distinct, got %v", got)
	}
}
