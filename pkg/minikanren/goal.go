package minikanren

// Goal represents a relation. Applied to a state through a solver, a
// goal yields a lazy stream of states, one per way the relation can be
// satisfied. Goals are values: they can be stored, passed around, and
// combined with the operators in this package before ever being run.
type Goal interface {
	// Solve applies the goal to a state, producing a stream of
	// successor states.
	Solve(sv *Solver, st *State) *Stream
}

// GoalFunc adapts a plain function to the Goal interface.
type GoalFunc func(sv *Solver, st *State) *Stream

// Solve calls the function itself.
func (f GoalFunc) Solve(sv *Solver, st *State) *Stream {
	return f(sv, st)
}

type succeedGoal struct{}

func (succeedGoal) Solve(sv *Solver, st *State) *Stream {
	return unitStream(st)
}

type failGoal struct{}

func (failGoal) Solve(sv *Solver, st *State) *Stream {
	return emptyStream()
}

// Succeed is the goal that always succeeds, passing the state through
// unchanged. Fail is the goal that never succeeds. Both are recognized
// by the stream combinators and short-circuit, so they are free to use
// as padding in generated conjunctions and disjunctions.
var (
	Succeed Goal = succeedGoal{}
	Fail    Goal = failGoal{}
)

// deferredGoal constructs its underlying goal on first solve.
type deferredGoal struct {
	build func() Goal
	goal  Goal
}

func (d *deferredGoal) Solve(sv *Solver, st *State) *Stream {
	if d.goal == nil {
		d.goal = d.build()
	}
	return d.goal.Solve(sv, st)
}

// Defer wraps a goal constructor so that the goal value is only built
// when first solved. Recursive relations must wrap their recursive call
// in Defer (or an equivalent closure) so that constructing the relation
// terminates; the search itself stays productive either way because
// disjunction suspends its arms.
//
// Example:
//
//	func Alwayso() Goal {
//	    return Disj(Succeed, Defer(Alwayso))
//	}
func Defer(build func() Goal) Goal {
	return &deferredGoal{build: build}
}
