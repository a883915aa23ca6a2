package linear

import "iter"

// Sequence is the contract shared by the linked and the array sequence
// containers. Iterator based operations are container specific and are
// not part of it.
// Note that none of the implementations is thread safe.
type Sequence[T any] interface {
	IsEmpty() bool
	Len() int64
	// Append adds item after the last element.
	Append(item T)
	// Prepend adds item before the first element.
	Prepend(item T)
	// PopFirst removes and returns the first element or ErrEmptyContainer.
	PopFirst() (T, error)
	// PopLast removes and returns the last element or ErrEmptyContainer.
	PopLast() (T, error)
	Clear()
	Values() iter.Seq[T]
	ToSlice() []T
}
