package list

import "github.com/benz9527/xlinear/lib/linear"

// cursor is the position handle shared by Iterator and ConstIterator.
// Two cursors are equal only if they refer to the same node of the same
// sequence.
type cursor[T any] struct {
	owner *LinkedSeq[T]
	node  *seqNode[T]
}

func (c cursor[T]) position() cursor[T] {
	return c
}

func (c cursor[T]) valid() bool {
	return c.owner != nil && c.owner.owns(c.node)
}

func (c cursor[T]) atEnd() bool {
	return c.node == c.owner.tail
}

// Value returns the element at the position. End has no element.
func (c cursor[T]) Value() (T, error) {
	if !c.valid() || c.atEnd() {
		var zero T
		return zero, linear.ErrOutOfBounds
	}
	return c.node.value, nil
}

// Next moves the position one step towards End. Stepping from End fails.
func (c *cursor[T]) Next() error {
	if !c.valid() || c.atEnd() {
		return linear.ErrOutOfBounds
	}
	c.node = c.node.next
	return nil
}

// Prev moves the position one step towards Begin. Stepping from Begin fails.
func (c *cursor[T]) Prev() error {
	if !c.valid() || c.node == c.owner.head {
		return linear.ErrOutOfBounds
	}
	c.node = c.node.prev
	return nil
}

// ConstIterator is a read-only bidirectional position of a LinkedSeq.
// There is no arbitrary offset arithmetic, stepping is one node at a time.
type ConstIterator[T any] struct {
	cursor[T]
}

// Iterator is a bidirectional position of a LinkedSeq which allows to
// update the element in place.
type Iterator[T any] struct {
	cursor[T]
}

// Set replaces the element at the position.
func (it Iterator[T]) Set(v T) error {
	if !it.valid() || it.atEnd() {
		return linear.ErrOutOfBounds
	}
	it.node.value = v
	return nil
}

// Ref returns a pointer to the element at the position. It is valid
// until the element is removed.
func (it Iterator[T]) Ref() (*T, error) {
	if !it.valid() || it.atEnd() {
		return nil, linear.ErrOutOfBounds
	}
	return &it.node.value, nil
}

// Const returns the read-only view of the same position.
func (it Iterator[T]) Const() ConstIterator[T] {
	return ConstIterator[T]{it.cursor}
}
