// Relational list library: the classical miniKanren relations over
// proper lists, written against the core combinators.
package minikanren

// Conso relates a head, a tail, and the pair they form: (head . tail)
// == out. It is the relational counterpart of NewPair and works in
// every direction.
func Conso(head, tail, out Term) Goal {
	return Eq(NewPair(head, tail), out)
}

// Firsto relates a list and its first element.
func Firsto(list, first Term) Goal {
	return Fresh(1, func(vars []*Var) Goal {
		return Conso(first, vars[0], list)
	})
}

// Resto relates a list and its tail.
func Resto(list, rest Term) Goal {
	return Fresh(1, func(vars []*Var) Goal {
		return Conso(vars[0], rest, list)
	})
}

// Emptyo constrains a term to be the empty list.
func Emptyo(list Term) Goal {
	return Eq(list, Nil)
}

// Appendo relates three lists where the third is the first followed by
// the second. Like all relations here it runs in any direction:
// Appendo(a, b, List(...)) enumerates every split of the list.
func Appendo(l1, l2, l3 Term) Goal {
	return Disj(
		Conj(Emptyo(l1), Eq(l2, l3)),
		Fresh(3, func(vars []*Var) Goal {
			head, tail, rest := vars[0], vars[1], vars[2]
			return Conj(
				Conso(head, tail, l1),
				Conso(head, rest, l3),
				Defer(func() Goal { return Appendo(tail, l2, rest) }),
			)
		}),
	)
}

// Membero relates an element and a list containing it. Enumerates the
// list's elements on backtracking, in order.
func Membero(x, list Term) Goal {
	return Fresh(2, func(vars []*Var) Goal {
		head, tail := vars[0], vars[1]
		return Conj(
			Conso(head, tail, list),
			Disj(
				Eq(head, x),
				Defer(func() Goal { return Membero(x, tail) }),
			),
		)
	})
}

// Rembero relates an element x, a list, and the list with the first
// occurrence of x removed.
func Rembero(x, list, out Term) Goal {
	return Disj(
		Conj(Emptyo(list), Emptyo(out)),
		Fresh(1, func(vars []*Var) Goal {
			tail := vars[0]
			return Conj(Conso(x, tail, list), Eq(tail, out))
		}),
		Fresh(3, func(vars []*Var) Goal {
			head, tail, rest := vars[0], vars[1], vars[2]
			return Conj(
				Conso(head, tail, list),
				Neq(head, x),
				Conso(head, rest, out),
				Defer(func() Goal { return Rembero(x, tail, rest) }),
			)
		}),
	)
}

// Distincto constrains all elements of a list term to be pairwise
// distinct trees, by posting Neq between every element and the rest.
func Distincto(list Term) Goal {
	return Disj(
		Emptyo(list),
		Fresh(1, func(vars []*Var) Goal {
			return Conso(vars[0], Nil, list)
		}),
		Fresh(3, func(vars []*Var) Goal {
			first, second, rest := vars[0], vars[1], vars[2]
			return Conj(
				Eq(list, ListWithTail(rest, first, second)),
				Neq(first, second),
				Defer(func() Goal { return Distincto(NewPair(first, rest)) }),
				Defer(func() Goal { return Distincto(NewPair(second, rest)) }),
			)
		}),
	)
}

// Alwayso succeeds an unbounded number of times. Useful for exercising
// fair interleaving and bounded takes.
func Alwayso() Goal {
	return Disj(Succeed, Defer(Alwayso))
}

// Nevero never succeeds but never finishes failing either: its stream
// stays immature forever. The canonical test subject for stream
// fairness and step budgets.
func Nevero() Goal {
	return Anyo(Fail)
}
