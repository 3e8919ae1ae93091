package types

// Choice is either Unselected or Selected(value). Construct it with Unselect or
// Select and consume it with Match so both branches are always handled.
type Choice[T any] struct {
	value    T
	selected bool
}

// Unselect returns the empty choice.
func Unselect[T any]() Choice[T] {
	return Choice[T]{}
}

// Select wraps v as a selected choice.
func Select[T any](v T) Choice[T] {
	return Choice[T]{value: v, selected: true}
}

// Get returns the value and whether it was selected.
func (c Choice[T]) Get() (T, bool) {
	return c.value, c.selected
}

// Selected reports whether a value is present.
func (c Choice[T]) Selected() bool {
	return c.selected
}

// Match folds a choice into R, calling exactly one of the two branches.
func Match[T, R any](c Choice[T], unselected func() R, selected func(T) R) R {
	if c.selected {
		return selected(c.value)
	}
	return unselected()
}
