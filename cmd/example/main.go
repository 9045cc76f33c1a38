// Command example is a guided tour of the kanrencore relational engine:
// unification, list relations, disequality, and finite-domain
// constraints, each run as a query with its answers printed.
package main

import (
	"fmt"

	"github.com/fatih/color"

	mk "github.com/gitrdm/kanrencore/pkg/minikanren"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	answer  = color.New(color.FgGreen)
	note    = color.New(color.Faint)
)

func show(title string, n int, goalFunc func(q *mk.Var) mk.Goal) {
	heading.Printf("== %s\n", title)
	terms, err := mk.Run(n, goalFunc)
	if err != nil {
		color.Red("error: %v", err)
		return
	}
	if len(terms) == 0 {
		note.Println("no answers")
	}
	for _, term := range terms {
		answer.Printf("  %s\n", term)
	}
	fmt.Println()
}

func main() {
	show("membership enumerates", 10, func(q *mk.Var) mk.Goal {
		return mk.Membero(q, mk.Atoms("tea", "coffee", "water"))
	})

	show("appendo runs backwards", 10, func(q *mk.Var) mk.Goal {
		return mk.Fresh(2, func(vars []*mk.Var) mk.Goal {
			a, b := vars[0], vars[1]
			return mk.Conj(
				mk.Appendo(a, b, mk.Atoms(1, 2, 3)),
				mk.Eq(q, mk.List(a, b)),
			)
		})
	})

	show("disequality prunes branches", 10, func(q *mk.Var) mk.Goal {
		return mk.Conj(
			mk.Neq(q, mk.NewAtom("coffee")),
			mk.Membero(q, mk.Atoms("tea", "coffee", "water")),
		)
	})

	show("interleaving is fair to infinite streams", 6, func(q *mk.Var) mk.Goal {
		return mk.Disj(evens(q, 0), odds(q, 1))
	})

	show("finite domains propagate before they enumerate", 20, func(q *mk.Var) mk.Goal {
		return mk.Fresh(2, func(vars []*mk.Var) mk.Goal {
			x, y := vars[0], vars[1]
			return mk.Conj(
				mk.Eq(q, mk.List(x, y)),
				mk.InFd(mk.NewIntervalDomain(1, 4), x, y),
				mk.LtFd(x, y),
				mk.PlusFd(x, y, mk.NewAtom(5)),
			)
		})
	})
}

func evens(q mk.Term, n int) mk.Goal {
	return mk.Disj(
		mk.Eq(q, mk.NewAtom(n)),
		mk.Defer(func() mk.Goal { return evens(q, n+2) }),
	)
}

func odds(q mk.Term, n int) mk.Goal {
	return mk.Disj(
		mk.Eq(q, mk.NewAtom(n)),
		mk.Defer(func() mk.Goal { return odds(q, n+2) }),
	)
}
