// Finite-domain goals and propagators: domain declaration, disequality,
// ordering, and arithmetic over domain variables.
package minikanren

import (
	"fmt"
	"strings"
)

// DomFd constrains t to the finite domain d: t's domain is intersected
// with d, rejecting on an empty intersection and binding t outright
// when a single value remains.
//
// Example:
//
//	DomFd(x, NewIntervalDomain(1, 9))
func DomFd(t Term, d *FiniteDomain) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		st2, ok := sv.processDomain(st, t, d)
		if !ok {
			return emptyStream()
		}
		st3, ok := sv.propagateAll(st2)
		if !ok {
			return emptyStream()
		}
		return unitStream(st3)
	})
}

// InFd constrains every given term to the finite domain d.
func InFd(d *FiniteDomain, terms ...Term) Goal {
	goals := make([]Goal, len(terms))
	for i, t := range terms {
		goals[i] = DomFd(t, d)
	}
	return Conj(goals...)
}

// postFd posts a finite-domain propagator: it runs once immediately
// (normalizing against the current substitution), then propagation runs
// to fixpoint.
func postFd(c Constraint) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		st2, ok := c.Run(sv, st)
		if !ok {
			return emptyStream()
		}
		st3, ok := sv.propagateAll(st2)
		if !ok {
			return emptyStream()
		}
		return unitStream(st3)
	})
}

// NeqFd constrains two domain terms to be different integers.
func NeqFd(u, v Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		return postFd(&neqFdConstraint{u: u, v: v}).Solve(sv, st)
	})
}

// LtFd constrains u < v over finite domains.
func LtFd(u, v Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		return postFd(&ordFdConstraint{u: u, v: v, strict: true}).Solve(sv, st)
	})
}

// LteFd constrains u <= v over finite domains.
func LteFd(u, v Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		return postFd(&ordFdConstraint{u: u, v: v}).Solve(sv, st)
	})
}

// PlusFd constrains x + y = z over finite domains.
func PlusFd(x, y, z Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		return postFd(&plusFdConstraint{x: x, y: y, z: z}).Solve(sv, st)
	})
}

// MinusFd constrains x - y = z over finite domains. It is the plus
// propagator rearranged: x - y = z holds exactly when y + z = x.
func MinusFd(x, y, z Term) Goal {
	return PlusFd(y, z, x)
}

// TimesFd constrains x * y = z over finite domains.
func TimesFd(x, y, z Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		return postFd(&timesFdConstraint{x: x, y: y, z: z}).Solve(sv, st)
	})
}

// DistinctFd constrains the given domain terms to take pairwise
// distinct integers. Fixed values are excluded from the domains of the
// still-unresolved terms: the same pruning as pairwise NeqFd
// constraints, done by one propagator instead of a quadratic number.
func DistinctFd(terms ...Term) Goal {
	return GoalFunc(func(sv *Solver, st *State) *Stream {
		return postFd(&distinctFdConstraint{terms: terms}).Solve(sv, st)
	})
}

// neqFdConstraint enforces u != v over finite domains.
type neqFdConstraint struct {
	u, v Term
}

func (c *neqFdConstraint) Tag() string      { return TagFd }
func (c *neqFdConstraint) Operands() []Term { return []Term{c.u, c.v} }

func (c *neqFdConstraint) Run(sv *Solver, st *State) (*State, bool) {
	du, ok := sv.fdView(st, c.u)
	if !ok {
		return nil, false
	}
	dv, ok := sv.fdView(st, c.v)
	if !ok {
		return nil, false
	}
	if du != nil && dv != nil {
		un, uFixed := du.SingletonValue()
		vn, vFixed := dv.SingletonValue()
		switch {
		case uFixed && vFixed:
			if un == vn {
				return nil, false
			}
			return st, true // satisfied, drop
		case uFixed:
			// u is decided: excluding it from v's domain entails the
			// constraint, so it is dropped either way.
			narrowed := dv.Diff(SingletonDomain(un))
			if narrowed == nil {
				return nil, false
			}
			if !narrowed.Equal(dv) {
				return sv.narrowVarTo(st, c.v, narrowed)
			}
			return st, true
		case vFixed:
			narrowed := du.Diff(SingletonDomain(vn))
			if narrowed == nil {
				return nil, false
			}
			if !narrowed.Equal(du) {
				return sv.narrowVarTo(st, c.u, narrowed)
			}
			return st, true
		}
		// Disjoint domains can never produce equal values.
		if du.Intersect(dv) == nil {
			return st, true
		}
	}
	return st.WithConstraint(c), true
}

func (c *neqFdConstraint) String() string {
	return fmt.Sprintf("%s =/=fd %s", c.u, c.v)
}

// narrowVarTo replaces the domain of the variable t walks to with d,
// then re-adds nothing: callers re-add their constraint around this
// when still pending. Narrowing to a singleton binds the variable.
func (sv *Solver) narrowVarTo(st *State, t Term, d *FiniteDomain) (*State, bool) {
	w := st.sub.Walk(t)
	v, ok := w.(*Var)
	if !ok {
		// The operand is already a value; membership was checked by the
		// caller through fdView.
		return st, true
	}
	return sv.storeDomain(st, v, d)
}

// ordFdConstraint enforces u <= v, or u < v when strict, by bounds
// narrowing: u loses values above v's maximum, v loses values below
// u's minimum.
type ordFdConstraint struct {
	u, v   Term
	strict bool
}

func (c *ordFdConstraint) Tag() string      { return TagFd }
func (c *ordFdConstraint) Operands() []Term { return []Term{c.u, c.v} }

func (c *ordFdConstraint) Run(sv *Solver, st *State) (*State, bool) {
	du, ok := sv.fdView(st, c.u)
	if !ok {
		return nil, false
	}
	dv, ok := sv.fdView(st, c.v)
	if !ok {
		return nil, false
	}
	if du == nil || dv == nil {
		return st.WithConstraint(c), true
	}
	margin := 0
	if c.strict {
		margin = 1
	}
	uCap := du.RemoveAbove(dv.Max() - margin)
	if uCap == nil {
		return nil, false
	}
	if !uCap.Equal(du) {
		st2, ok := sv.narrowOperand(st, c.u, uCap)
		if !ok {
			return nil, false
		}
		st = st2
		du = uCap
	}
	vFloor := dv.RemoveBelow(du.Min() + margin)
	if vFloor == nil {
		return nil, false
	}
	if !vFloor.Equal(dv) {
		st2, ok := sv.narrowOperand(st, c.v, vFloor)
		if !ok {
			return nil, false
		}
		st = st2
		dv = vFloor
	}
	if du.Max()+margin <= dv.Min() {
		return st, true // entailed, drop
	}
	return st.WithConstraint(c), true
}

func (c *ordFdConstraint) String() string {
	op := "<=fd"
	if c.strict {
		op = "<fd"
	}
	return fmt.Sprintf("%s %s %s", c.u, op, c.v)
}

// plusFdConstraint enforces x + y = z by interval narrowing on all
// three operands.
type plusFdConstraint struct {
	x, y, z Term
}

func (c *plusFdConstraint) Tag() string      { return TagFd }
func (c *plusFdConstraint) Operands() []Term { return []Term{c.x, c.y, c.z} }

func (c *plusFdConstraint) Run(sv *Solver, st *State) (*State, bool) {
	dx, ok := sv.fdView(st, c.x)
	if !ok {
		return nil, false
	}
	dy, ok := sv.fdView(st, c.y)
	if !ok {
		return nil, false
	}
	dz, ok := sv.fdView(st, c.z)
	if !ok {
		return nil, false
	}
	if dx == nil || dy == nil || dz == nil {
		return st.WithConstraint(c), true
	}

	type bound struct {
		term   Term
		lo, hi int
	}
	bounds := []bound{
		{c.z, dx.Min() + dy.Min(), dx.Max() + dy.Max()},
		{c.x, dz.Min() - dy.Max(), dz.Max() - dy.Min()},
		{c.y, dz.Min() - dx.Max(), dz.Max() - dx.Min()},
	}
	for _, b := range bounds {
		window := NewIntervalDomain(b.lo, b.hi)
		if window == nil {
			return nil, false
		}
		st2, ok := sv.narrowOperand(st, b.term, window)
		if !ok {
			return nil, false
		}
		st = st2
	}

	// Re-read the views: narrowing may have bound some operands.
	dx, _ = sv.fdView(st, c.x)
	dy, _ = sv.fdView(st, c.y)
	dz, _ = sv.fdView(st, c.z)
	if dx != nil && dy != nil && dz != nil {
		xn, xFixed := dx.SingletonValue()
		yn, yFixed := dy.SingletonValue()
		zn, zFixed := dz.SingletonValue()
		if xFixed && yFixed && zFixed {
			if xn+yn != zn {
				return nil, false
			}
			return st, true // entailed, drop
		}
	}
	return st.WithConstraint(c), true
}

func (c *plusFdConstraint) String() string {
	return fmt.Sprintf("%s +fd %s == %s", c.x, c.y, c.z)
}

// timesFdConstraint enforces x * y = z. Bounds for z come from the
// endpoint products of x and y; x and y themselves are only resolved
// once the other two operands are fixed, keeping the propagator sound
// over domains that may contain zero or negative values.
type timesFdConstraint struct {
	x, y, z Term
}

func (c *timesFdConstraint) Tag() string      { return TagFd }
func (c *timesFdConstraint) Operands() []Term { return []Term{c.x, c.y, c.z} }

func (c *timesFdConstraint) Run(sv *Solver, st *State) (*State, bool) {
	dx, ok := sv.fdView(st, c.x)
	if !ok {
		return nil, false
	}
	dy, ok := sv.fdView(st, c.y)
	if !ok {
		return nil, false
	}
	dz, ok := sv.fdView(st, c.z)
	if !ok {
		return nil, false
	}
	if dx == nil || dy == nil || dz == nil {
		return st.WithConstraint(c), true
	}

	lo, hi := productBounds(dx, dy)
	window := NewIntervalDomain(lo, hi)
	st2, ok := sv.narrowOperand(st, c.z, window)
	if !ok {
		return nil, false
	}
	st = st2

	dx, _ = sv.fdView(st, c.x)
	dy, _ = sv.fdView(st, c.y)
	dz, _ = sv.fdView(st, c.z)
	if dx == nil || dy == nil || dz == nil {
		return st.WithConstraint(c), true
	}
	xn, xFixed := dx.SingletonValue()
	yn, yFixed := dy.SingletonValue()
	zn, zFixed := dz.SingletonValue()
	switch {
	case xFixed && yFixed:
		st2, ok := sv.narrowOperand(st, c.z, SingletonDomain(xn*yn))
		if !ok {
			return nil, false
		}
		return st2, true // fully determined, drop
	case xFixed && zFixed:
		return c.resolveFactor(sv, st, xn, zn, c.y)
	case yFixed && zFixed:
		return c.resolveFactor(sv, st, yn, zn, c.x)
	}
	return st.WithConstraint(c), true
}

// resolveFactor handles fixed * other = fixed product.
func (c *timesFdConstraint) resolveFactor(sv *Solver, st *State, factor, product int, other Term) (*State, bool) {
	if factor == 0 {
		if product != 0 {
			return nil, false
		}
		// 0 * other = 0 holds for every value of other.
		return st, true
	}
	if product%factor != 0 {
		return nil, false
	}
	st2, ok := sv.narrowOperand(st, other, SingletonDomain(product/factor))
	if !ok {
		return nil, false
	}
	return st2, true
}

func (c *timesFdConstraint) String() string {
	return fmt.Sprintf("%s *fd %s == %s", c.x, c.y, c.z)
}

// productBounds returns the minimum and maximum of the endpoint
// products of two domains.
func productBounds(dx, dy *FiniteDomain) (int, int) {
	products := [4]int{
		dx.Min() * dy.Min(),
		dx.Min() * dy.Max(),
		dx.Max() * dy.Min(),
		dx.Max() * dy.Max(),
	}
	lo, hi := products[0], products[0]
	for _, p := range products[1:] {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}
	return lo, hi
}

// distinctFdConstraint enforces pairwise distinctness: fixed values are
// collected and excluded from the domains of the unresolved operands.
type distinctFdConstraint struct {
	terms []Term
}

func (c *distinctFdConstraint) Tag() string      { return TagFd }
func (c *distinctFdConstraint) Operands() []Term { return c.terms }

func (c *distinctFdConstraint) Run(sv *Solver, st *State) (*State, bool) {
	fixed := make(map[int]bool)
	var unresolved []Term
	for _, t := range c.terms {
		d, ok := sv.fdView(st, t)
		if !ok {
			return nil, false
		}
		if d != nil {
			if n, single := d.SingletonValue(); single {
				if fixed[n] {
					return nil, false
				}
				fixed[n] = true
				continue
			}
		}
		unresolved = append(unresolved, t)
	}
	if len(unresolved) == 0 {
		return st, true // all fixed and distinct, drop
	}
	if len(fixed) > 0 {
		values := make([]int, 0, len(fixed))
		for n := range fixed {
			values = append(values, n)
		}
		exclude := NewSparseDomain(values...)
		for _, t := range unresolved {
			d, _ := sv.fdView(st, t)
			if d == nil {
				continue
			}
			narrowed := d.Diff(exclude)
			if narrowed == nil {
				return nil, false
			}
			if !narrowed.Equal(d) {
				st2, ok := sv.narrowVarTo(st, t, narrowed)
				if !ok {
					return nil, false
				}
				st = st2
			}
		}
	}
	return st.WithConstraint(c), true
}

func (c *distinctFdConstraint) String() string {
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		parts[i] = t.String()
	}
	return "distinctfd(" + strings.Join(parts, ", ") + ")"
}
