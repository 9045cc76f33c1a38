// Lazy answer streams. A goal applied to a state yields a Stream, which
// is either mature (its next answer, if any, has been computed) or
// immature (a suspension the solver forces one layer at a time).
// Immature streams are what keep recursion productive: a recursive
// relation suspends its recursive arm, and the suspension is only
// stepped when the consumer asks for more answers.
package minikanren

// streamKind enumerates the four stream shapes.
type streamKind uint8

const (
	streamEmpty streamKind = iota // no more answers
	streamUnit                    // exactly one answer
	streamCons                    // an answer followed by a suspension
	streamLazy                    // a suspension only
)

// Stream is a lazy sequence of states.
type Stream struct {
	kind streamKind
	head *State      // for unit and cons
	tail *suspension // for cons and lazy
}

// suspensionKind enumerates the suspension shapes. Each represents a
// deferred stream computation the solver performs in a single step.
type suspensionKind uint8

const (
	suspPause suspensionKind = iota // apply goal to state
	suspMPlus                       // merge two suspensions
	suspBind                        // feed a suspension's answers to a goal
	suspDelay                       // an already-built stream, deferred once
)

// suspension is the unevaluated tail of a stream.
type suspension struct {
	kind   suspensionKind
	left   *suspension // mplus, bind
	right  *suspension // mplus
	goal   Goal        // pause, bind
	state  *State      // pause
	stream *Stream     // delay
}

func emptyStream() *Stream {
	return &Stream{kind: streamEmpty}
}

func unitStream(st *State) *Stream {
	return &Stream{kind: streamUnit, head: st}
}

func consStream(st *State, tail *suspension) *Stream {
	return &Stream{kind: streamCons, head: st, tail: tail}
}

func lazyStream(tail *suspension) *Stream {
	return &Stream{kind: streamLazy, tail: tail}
}

func pauseSusp(st *State, g Goal) *suspension {
	return &suspension{kind: suspPause, state: st, goal: g}
}

func mplusSusp(left, right *suspension) *suspension {
	return &suspension{kind: suspMPlus, left: left, right: right}
}

func bindSusp(left *suspension, g Goal) *suspension {
	return &suspension{kind: suspBind, left: left, goal: g}
}

func delaySusp(s *Stream) *suspension {
	return &suspension{kind: suspDelay, stream: s}
}

// pauseStream defers applying g to st until the stream is forced.
func pauseStream(st *State, g Goal) *Stream {
	return lazyStream(pauseSusp(st, g))
}

// IsMature reports whether the stream's next element has been computed.
func (s *Stream) IsMature() bool {
	return s.kind != streamLazy
}

// mplus merges an already-stepped stream with a pending suspension.
//
// Under the interleaving strategy the pending suspension is queued in
// front of the stepped stream's own tail, so forcing alternates between
// the two sources and neither infinite stream starves the other. Under
// depth-first search the stepped stream keeps priority and the pending
// suspension only runs once it is exhausted.
func (sv *Solver) mplus(s *Stream, pending *suspension) *Stream {
	switch s.kind {
	case streamEmpty:
		return lazyStream(pending)
	case streamUnit:
		return consStream(s.head, pending)
	case streamCons:
		if sv.cfg.Strategy == DepthFirstSearch {
			return consStream(s.head, mplusSusp(s.tail, pending))
		}
		return consStream(s.head, mplusSusp(pending, s.tail))
	default: // streamLazy
		if sv.cfg.Strategy == DepthFirstSearch {
			return lazyStream(mplusSusp(s.tail, pending))
		}
		return lazyStream(mplusSusp(pending, s.tail))
	}
}

// bind feeds every answer of s to g, merging the resulting streams by
// the active strategy. Succeed and Fail short-circuit.
func (sv *Solver) bind(s *Stream, g Goal) *Stream {
	if g == Succeed {
		return s
	}
	if g == Fail {
		return emptyStream()
	}
	switch s.kind {
	case streamEmpty:
		return emptyStream()
	case streamUnit:
		return pauseStream(s.head, g)
	case streamCons:
		return lazyStream(mplusSusp(pauseSusp(s.head, g), bindSusp(s.tail, g)))
	default: // streamLazy
		return lazyStream(bindSusp(s.tail, g))
	}
}

// step forces one layer of a suspension, producing a stream that may
// itself still be immature. Each step is bounded work; the consumer
// regains control after every layer.
func (sv *Solver) step(susp *suspension) *Stream {
	switch susp.kind {
	case suspPause:
		return susp.goal.Solve(sv, susp.state)
	case suspMPlus:
		return sv.mplus(sv.step(susp.left), susp.right)
	case suspBind:
		return sv.bind(sv.step(susp.left), susp.goal)
	default: // suspDelay
		return susp.stream
	}
}

// next forces s until it either delivers a mature answer or is
// exhausted. Every forced layer counts against the step budget; when
// the budget runs out the solver records ErrStepLimit and the stream is
// reported exhausted.
func (sv *Solver) next(s *Stream) (*State, *Stream, bool) {
	for {
		if sv.err != nil {
			return nil, emptyStream(), false
		}
		switch s.kind {
		case streamEmpty:
			return nil, s, false
		case streamUnit:
			return s.head, emptyStream(), true
		case streamCons:
			return s.head, lazyStream(s.tail), true
		default: // streamLazy
			if !sv.chargeStep() {
				return nil, emptyStream(), false
			}
			s = sv.step(s.tail)
		}
	}
}

// peek forces s until its first answer (or exhaustion) and returns the
// matured stream with that answer still at its head. Used by the
// committed-choice operators, which must observe one answer before
// deciding. A non-productive infinite head makes peek spin until the
// step budget intervenes.
func (sv *Solver) peek(s *Stream) (*State, *Stream, bool) {
	head, rest, ok := sv.next(s)
	if !ok {
		return nil, emptyStream(), false
	}
	switch rest.kind {
	case streamEmpty:
		return head, unitStream(head), true
	default:
		return head, consStream(head, delaySusp(rest)), true
	}
}
