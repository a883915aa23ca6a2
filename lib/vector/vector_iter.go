package vector

import "github.com/benz9527/xlinear/lib/linear"

// cursor is the position handle shared by Iterator and ConstIterator.
// It records an index by value, so a cursor denotes whatever element sits
// at that index after a mutation.
type cursor[T any] struct {
	owner *Vector[T]
	index int64
}

func (c cursor[T]) position() cursor[T] {
	return c
}

func (c cursor[T]) readable() bool {
	return c.owner != nil && c.index >= 0 && c.index < c.owner.count
}

// offset returns the cursor d steps away. The result has to lie in
// [Begin, End].
func (c cursor[T]) offset(d int64) (cursor[T], error) {
	if c.owner == nil {
		return c, linear.ErrOutOfBounds
	}
	idx := c.index + d
	if idx < 0 || idx > c.owner.count {
		return c, linear.ErrOutOfBounds
	}
	return cursor[T]{owner: c.owner, index: idx}, nil
}

func (c cursor[T]) Index() int64 {
	return c.index
}

// Value returns the element at the position. End has no element.
func (c cursor[T]) Value() (T, error) {
	if !c.readable() {
		var zero T
		return zero, linear.ErrOutOfBounds
	}
	return c.owner.data[c.index], nil
}

// Next moves the position one step towards End. Stepping from End fails.
func (c *cursor[T]) Next() error {
	if c.owner == nil || c.index >= c.owner.count {
		return linear.ErrOutOfBounds
	}
	c.index++
	return nil
}

// Prev moves the position one step towards Begin. Stepping from Begin fails.
func (c *cursor[T]) Prev() error {
	if c.owner == nil || c.index <= 0 {
		return linear.ErrOutOfBounds
	}
	c.index--
	return nil
}

type ConstIterator[T any] struct {
	cursor[T]
}

// Add returns the iterator d elements forward.
func (it ConstIterator[T]) Add(d int64) (ConstIterator[T], error) {
	c, err := it.offset(d)
	return ConstIterator[T]{c}, err
}

// Sub returns the iterator d elements backward.
func (it ConstIterator[T]) Sub(d int64) (ConstIterator[T], error) {
	c, err := it.offset(-d)
	return ConstIterator[T]{c}, err
}

// Iterator is a ConstIterator which allows to update the element in place.
type Iterator[T any] struct {
	cursor[T]
}

func (it Iterator[T]) Add(d int64) (Iterator[T], error) {
	c, err := it.offset(d)
	return Iterator[T]{c}, err
}

func (it Iterator[T]) Sub(d int64) (Iterator[T], error) {
	c, err := it.offset(-d)
	return Iterator[T]{c}, err
}

// Set replaces the element at the position.
func (it Iterator[T]) Set(v T) error {
	if !it.readable() {
		return linear.ErrOutOfBounds
	}
	it.owner.data[it.index] = v
	return nil
}

// Ref returns a pointer to the element slot. It is valid until the next
// growth event of the vector.
func (it Iterator[T]) Ref() (*T, error) {
	if !it.readable() {
		return nil, linear.ErrOutOfBounds
	}
	return &it.owner.data[it.index], nil
}

func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it.cursor}
}
