package minikanren

// UserState is an opaque value the host threads through the search. It
// is carried per-state with structural sharing: forking a state shares
// the value, a goal replaces it with State.WithUser, and a failed branch
// simply drops its view. There is no shared mutation between branches.
//
// A UserState may additionally implement ExtensionProcessor to observe
// substitution growth, which is how host applications keep derived
// indexes or their own constraint books consistent with the search.
type UserState interface{}

// ExtensionProcessor is an optional hook on a UserState. It is invoked
// after the built-in and registered constraint domains accepted a
// substitution extension, and may veto the transition by returning
// false, or return a state carrying an updated user value.
type ExtensionProcessor interface {
	ProcessExtension(sv *Solver, st *State, ext []Binding) (*State, bool)
}
