package selectors

import (
	"github.com/google/uuid"

	"github.com/on-the-ground/select_ive_go/params"
)

// StateSelector is the bound form of a selector: one argument set has been
// fixed, state goes in, a result comes out.
type StateSelector[S, R any] func(state S) R

// Input is one dependency of a combinator, applied in declared order before
// the combiner runs. Only selectors built by this package implement it, so a
// combinator can rely on every input honoring the two-stage contract.
type Input[S any] interface {
	evalAny(args params.Params, state S) any
	input()
}

var _ Input[struct{}] = Selector[struct{}, int]{}

// Selector is a parameterized selector: a derivation that must be bound to
// an argument set before it can read state. Selectors are cheap handles;
// copying one shares its identity and any cache behind it.
type Selector[S, R any] struct {
	id   string
	name string
	bind func(args params.Params) StateSelector[S, R]
	size func() int
	drop func()
}

// Bind fixes one argument set and returns the state selector for it. For a
// caching combinator, binding equal argument sets returns a selector backed
// by the same instance, so memoization persists across handles.
func (s Selector[S, R]) Bind(args params.Params) StateSelector[S, R] {
	if s.bind == nil {
		panic("selectors: use of zero-value Selector")
	}
	return s.bind(args)
}

// Select binds args and reads state in one call.
func (s Selector[S, R]) Select(args params.Params, state S) R {
	return s.Bind(args)(state)
}

// ID returns the selector's unique identity, assigned at construction.
func (s Selector[S, R]) ID() string {
	return s.id
}

// Name returns the configured name, or a short form of the identity when no
// name was configured.
func (s Selector[S, R]) Name() string {
	return s.name
}

// Size returns the number of live cached instances. Leaves and uncached
// combinators always report zero.
func (s Selector[S, R]) Size() int {
	if s.size == nil {
		return 0
	}
	return s.size()
}

// Reset drops every cached instance, abandoning all referential-stability
// history. Subsequent binds start fresh. A no-op for leaves and uncached
// combinators.
func (s Selector[S, R]) Reset() {
	if s.drop != nil {
		s.drop()
	}
}

func (s Selector[S, R]) evalAny(args params.Params, state S) any {
	return s.Select(args, state)
}

func (s Selector[S, R]) input() {}

// New wraps a binding function as a parameterized selector, for leaf
// projections this package does not already provide. The state selectors
// returned by bind should be pure reads; caching belongs to the combinators
// built on top.
func New[S, R any](name string, bind func(args params.Params) StateSelector[S, R]) Selector[S, R] {
	if bind == nil {
		panic("bind cannot be nil")
	}
	return Selector[S, R]{
		id:   uuid.New().String(),
		name: name,
		bind: bind,
	}
}

// Func wraps a plain state function as a selector that ignores arguments.
func Func[S, R any](name string, fn func(S) R) Selector[S, R] {
	if fn == nil {
		panic("fn cannot be nil")
	}
	sel := StateSelector[S, R](fn)
	return New(name, func(params.Params) StateSelector[S, R] {
		return sel
	})
}

// Root returns the identity selector: it ignores arguments and yields the
// state value itself. Every composite selector bottoms out in Root,
// Argument, or New leaves.
func Root[S any]() Selector[S, S] {
	return Func("root", func(state S) S { return state })
}

// Argument returns a selector that projects one named call-time parameter
// and ignores state entirely. Binding an argument set that lacks the key
// yields params.None rather than failing; tolerating absence is the
// combiner's call.
func Argument[S any](key string) Selector[S, params.Value] {
	return New("argument("+key+")", func(args params.Params) StateSelector[S, params.Value] {
		v := args.Get(key)
		return func(S) params.Value { return v }
	})
}
