package fire

// Optional holds a value that may be absent. Absence is distinct from the
// zero value: an unset flag, a missing default and a missing named value are
// all represented as an empty Optional.
type Optional[T any] struct {
	value   T
	present bool
}

func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) Has() bool {
	return o.present
}

// Value returns the contained value. Accessing an empty Optional is a
// programmer-side fatal error.
func (o Optional[T]) Value() T {
	instantAssert(o.present, "accessing unassigned optional", true)
	return o.value
}

func (o Optional[T]) ValueOr(def T) T {
	if o.present {
		return o.value
	}
	return def
}
