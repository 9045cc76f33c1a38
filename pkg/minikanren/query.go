package minikanren

// Result is the reified value of one query variable: the resolved term
// (with `_.N` placeholders for still-unbound variables) plus any
// residual constraints, keyed by domain tag.
type Result struct {
	Term        Term
	Constraints map[string][]Term
}

// Answer is one solution of a query, keyed by query variable name.
type Answer map[string]Result

// Query binds a tuple of named fresh variables to a goal. Running the
// query evaluates the goal against an initial empty state and exposes
// the answers as a terminable iterator.
type Query struct {
	names []string
	build func(vars []*Var) Goal
}

// NewQuery creates a query over the named variables. The build function
// receives the fresh query variables, in name order, and returns the
// goal to solve.
//
// Example:
//
//	q := NewQuery([]string{"x", "y"}, func(vars []*Var) Goal {
//	    return Conj(Eq(vars[0], NewAtom(1)), Neq(vars[1], vars[0]))
//	})
func NewQuery(names []string, build func(vars []*Var) Goal) *Query {
	return &Query{names: names, build: build}
}

// Run starts the query with the default configuration.
func (q *Query) Run() *ResultIterator {
	return q.RunWithConfig(nil)
}

// RunWithConfig starts the query with the given solver configuration.
// Each run gets its own solver, variable allocator, and step budget, so
// runs are isolated and reproducible.
func (q *Query) RunWithConfig(cfg *SolverConfig) *ResultIterator {
	sv := NewSolver(cfg)
	vars := make([]*Var, len(q.names))
	varTerms := make([]Term, len(q.names))
	for i, name := range q.names {
		vars[i] = sv.NewVar(name)
		varTerms[i] = vars[i]
	}
	goal := q.build(vars)
	if !sv.cfg.KeepDomains {
		goal = Conj(goal, enforceFd(List(varTerms...)))
	}
	stream := goal.Solve(sv, NewState(sv.cfg.User))
	return &ResultIterator{
		sv:     sv,
		names:  q.names,
		vars:   vars,
		stream: stream,
	}
}

// ResultIterator delivers the answers of a running query one at a time.
// Each Next call drives the search just far enough to produce the next
// answer. Dropping the iterator (or calling Stop) cancels the query: no
// further stream forcing occurs and partially constructed states are
// discarded.
//
// The iteration idiom:
//
//	it := query.Run()
//	for it.Next() {
//	    use(it.Answer())
//	}
//	if err := it.Err(); err != nil {
//	    // usage error or exhausted budget, not search exhaustion
//	}
type ResultIterator struct {
	sv     *Solver
	names  []string
	vars   []*Var
	stream *Stream
	answer Answer
	err    error
	done   bool
}

// Next advances to the next answer. It returns false when the stream is
// exhausted, the query was stopped, or a fatal error occurred; Err
// distinguishes the error case from exhaustion.
func (it *ResultIterator) Next() bool {
	if it.done {
		return false
	}
	state, rest, ok := it.sv.next(it.stream)
	it.stream = rest
	if err := it.sv.Err(); err != nil {
		it.err = err
		it.done = true
		return false
	}
	if !ok {
		it.done = true
		return false
	}
	it.answer = reifyState(it.sv, state, it.names, it.vars)
	return true
}

// Answer returns the answer produced by the last successful Next call.
func (it *ResultIterator) Answer() Answer {
	return it.answer
}

// Err returns the fatal error that terminated the query, if any. A nil
// error after Next returns false means ordinary search exhaustion.
func (it *ResultIterator) Err() error {
	return it.err
}

// Stop cancels the query. Subsequent Next calls return false
// immediately and no further search work happens.
func (it *ResultIterator) Stop() {
	it.done = true
	it.stream = emptyStream()
}

// Run executes a goal over a single query variable and returns up to n
// reified terms. It is the quick entry point for tests and examples; use
// NewQuery for multiple variables, residual constraints, or custom
// configuration.
//
// Example:
//
//	terms, err := Run(5, func(q *Var) Goal {
//	    return Eq(q, NewAtom("hello"))
//	})
func Run(n int, goalFunc func(q *Var) Goal) ([]Term, error) {
	return RunWithConfig(nil, n, goalFunc)
}

// RunWithConfig is Run with a custom solver configuration.
func RunWithConfig(cfg *SolverConfig, n int, goalFunc func(q *Var) Goal) ([]Term, error) {
	q := NewQuery([]string{"q"}, func(vars []*Var) Goal {
		return goalFunc(vars[0])
	})
	it := q.RunWithConfig(cfg)
	var results []Term
	for len(results) < n && it.Next() {
		results = append(results, it.Answer()["q"].Term)
	}
	return results, it.Err()
}

// RunStar executes a goal and returns all solutions.
//
// WARNING: this runs forever on goals with infinite answer streams; set
// SolverConfig.MaxSteps or use Run with a bound for safety.
func RunStar(goalFunc func(q *Var) Goal) ([]Term, error) {
	return RunStarWithConfig(nil, goalFunc)
}

// RunStarWithConfig is RunStar with a custom solver configuration.
func RunStarWithConfig(cfg *SolverConfig, goalFunc func(q *Var) Goal) ([]Term, error) {
	q := NewQuery([]string{"q"}, func(vars []*Var) Goal {
		return goalFunc(vars[0])
	})
	it := q.RunWithConfig(cfg)
	var results []Term
	for it.Next() {
		results = append(results, it.Answer()["q"].Term)
	}
	return results, it.Err()
}
