package minikanren

// SearchStrategy selects how the stream combinators merge answer
// streams. The strategy is a property of the solver, not of goals: the
// same goal value runs under either strategy.
type SearchStrategy int

const (
	// InterleavingSearch is the complete interleaving strategy: disjunct
	// streams take turns producing answers, so any answer reachable in
	// finitely many steps is eventually produced even in the presence of
	// infinite sibling streams.
	InterleavingSearch SearchStrategy = iota

	// DepthFirstSearch explores disjuncts strictly in clause order,
	// Prolog-style. It needs fewer live suspensions but loses
	// completeness on infinite disjunctions.
	DepthFirstSearch
)

// String returns the strategy name.
func (s SearchStrategy) String() string {
	switch s {
	case InterleavingSearch:
		return "interleaving"
	case DepthFirstSearch:
		return "depth-first"
	default:
		return "unknown"
	}
}

// SolverConfig holds per-query solver parameters. The zero value is the
// standard configuration, the same one DefaultSolverConfig returns.
type SolverConfig struct {
	// Strategy selects the search strategy for the whole query.
	Strategy SearchStrategy

	// DisableOccursCheck turns the occurs check off for speed. With the
	// check disabled, adversarial programs can build cyclic
	// substitutions on which term resolution diverges.
	DisableOccursCheck bool

	// MaxSteps bounds how many suspension layers the solver may force
	// over the lifetime of the query; 0 means unbounded. Exceeding the
	// budget terminates the query with ErrStepLimit, which is how a
	// consumer bounds goals like Anyo(Fail) that suspend forever
	// without producing answers.
	MaxSteps int64

	// KeepDomains skips the pre-reification forcing of finite domains.
	// By default every answer enumerates domain-constrained variables
	// into concrete integers; with KeepDomains set, unforced domains
	// are reported as residual constraints instead.
	KeepDomains bool

	// ExtraDomains registers user constraint domains. They are checked
	// after the built-in tree and finite-domain modules, in slice
	// order; the fixed order keeps answers deterministic.
	ExtraDomains []DomainModule

	// User is the initial user state threaded through the search.
	User UserState
}

// DefaultSolverConfig returns the standard configuration: interleaving
// search, occurs check on, unbounded steps, domains forced before
// reification, no user domains.
func DefaultSolverConfig() *SolverConfig {
	return &SolverConfig{Strategy: InterleavingSearch}
}

// Solver drives one query: it owns the variable allocator, the step
// budget, the registered constraint domains, and the first fatal error.
// A solver is single-threaded and must not be shared across queries;
// the per-query allocator is what makes reification naming and tests
// reproducible.
type Solver struct {
	cfg        *SolverConfig
	modules    []DomainModule
	varCounter int64
	steps      int64
	err        error
}

// NewSolver creates a solver for one query run. A nil config selects
// DefaultSolverConfig.
func NewSolver(cfg *SolverConfig) *Solver {
	if cfg == nil {
		cfg = DefaultSolverConfig()
	}
	modules := make([]DomainModule, 0, 2+len(cfg.ExtraDomains))
	modules = append(modules, treeModule{}, fdModule{})
	modules = append(modules, cfg.ExtraDomains...)
	return &Solver{cfg: cfg, modules: modules}
}

// Config returns the solver's configuration.
func (sv *Solver) Config() *SolverConfig {
	return sv.cfg
}

// NewVar allocates a fresh variable with an optional debug name. The
// identifier is unique within the query and monotonically increasing.
func (sv *Solver) NewVar(name string) *Var {
	id := sv.varCounter
	sv.varCounter++
	return &Var{id: id, name: name}
}

func (sv *Solver) freshVars(n int) []*Var {
	vars := make([]*Var, n)
	for i := range vars {
		vars[i] = sv.NewVar("")
	}
	return vars
}

// Fail records the first fatal error of the query. Goals that detect a
// usage error call Fail and return an empty stream; the iterator then
// surfaces the error instead of "no more answers". Once set, the
// solver stops forcing streams.
func (sv *Solver) Fail(err error) {
	if sv.err == nil {
		sv.err = err
	}
}

// Err returns the query's fatal error, if any.
func (sv *Solver) Err() error {
	return sv.err
}

// Steps returns how many suspension layers have been forced so far.
func (sv *Solver) Steps() int64 {
	return sv.steps
}

// chargeStep counts one forced suspension layer against the budget.
func (sv *Solver) chargeStep() bool {
	sv.steps++
	if sv.cfg.MaxSteps > 0 && sv.steps > sv.cfg.MaxSteps {
		sv.Fail(ErrStepLimit)
		return false
	}
	return true
}
