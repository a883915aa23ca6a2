package list

import (
	"iter"

	"github.com/benz9527/xlinear/lib/linear"
)

// LinkedSeq is a doubly linked sequence container.
//
// The chain always ends with a sentinel node (tail) which holds no value
// and marks the one-past-the-last position. The head is the first real
// node, or the sentinel itself when the sequence is empty. The prev of the
// head and the next of the sentinel are nil.
//
// The zero value is an empty sequence ready to use. LinkedSeq is not
// thread safe.
//
// Every structural change goes through linkBefore and unlink.
type LinkedSeq[T any] struct {
	head  *seqNode[T]
	tail  *seqNode[T]
	count int64
}

// NewLinkedSeq returns a sequence holding items in the given order.
func NewLinkedSeq[T any](items ...T) *LinkedSeq[T] {
	l := new(LinkedSeq[T]).init()
	for _, item := range items {
		l.Append(item)
	}
	return l
}

func (l *LinkedSeq[T]) init() *LinkedSeq[T] {
	sentinel := newSentinel[T]()
	l.head, l.tail, l.count = sentinel, sentinel, 0
	return l
}

func (l *LinkedSeq[T]) lazyInit() {
	if l.tail == nil {
		l.init()
	}
}

// owns reports whether n is a node, sentinel included, of the chain l holds.
func (l *LinkedSeq[T]) owns(n *seqNode[T]) bool {
	return n != nil && l.tail != nil && n.endRef == l.tail
}

// resolve returns the node denoted by pos if pos was taken from l and
// still denotes a node of l.
func (l *LinkedSeq[T]) resolve(pos Position[T]) (*seqNode[T], bool) {
	if pos == nil {
		return nil, false
	}
	c := pos.position()
	if c.owner != l || !l.owns(c.node) {
		return nil, false
	}
	return c.node, true
}

// linkBefore splices n in front of at. If at was the head, n becomes the
// new head.
func (l *LinkedSeq[T]) linkBefore(at, n *seqNode[T]) {
	n.endRef = l.tail
	n.prev, n.next = at.prev, at
	if at == l.head {
		l.head = n
	} else {
		at.prev.next = n
	}
	at.prev = n
	l.count++
}

// unlink splices the neighbours of n together and releases n.
// n must be a real node of l.
func (l *LinkedSeq[T]) unlink(n *seqNode[T]) T {
	v := n.value
	n.next.prev = n.prev
	if n == l.head {
		l.head = n.next
	} else {
		n.prev.next = n.next
	}
	n.release()
	l.count--
	return v
}

func (l *LinkedSeq[T]) IsEmpty() bool {
	return l.tail == nil || l.head == l.tail
}

func (l *LinkedSeq[T]) Len() int64 {
	return l.count
}

func (l *LinkedSeq[T]) Append(item T) {
	l.lazyInit()
	l.linkBefore(l.tail, newSeqNode(item))
}

func (l *LinkedSeq[T]) Prepend(item T) {
	l.lazyInit()
	l.linkBefore(l.head, newSeqNode(item))
}

// Insert inserts item immediately before the node pos denotes. Inserting
// before End appends.
func (l *LinkedSeq[T]) Insert(pos Position[T], item T) error {
	at, ok := l.resolve(pos)
	if !ok {
		return linear.ErrInvalidPosition
	}
	l.linkBefore(at, newSeqNode(item))
	return nil
}

func (l *LinkedSeq[T]) PopFirst() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	return l.unlink(l.head), nil
}

func (l *LinkedSeq[T]) PopLast() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	return l.unlink(l.tail.prev), nil
}

// Erase removes the element pos denotes. Erasing End is rejected.
func (l *LinkedSeq[T]) Erase(pos Position[T]) error {
	if l.IsEmpty() {
		return linear.ErrInvalidPosition
	}
	n, ok := l.resolve(pos)
	if !ok || n == l.tail {
		return linear.ErrInvalidPosition
	}
	l.unlink(n)
	return nil
}

// EraseRange removes the half-open run [first, last). The run is validated
// before any node is touched, last has to be reachable from first.
func (l *LinkedSeq[T]) EraseRange(first, last Position[T]) error {
	from, ok := l.resolve(first)
	if !ok {
		return linear.ErrInvalidPosition
	}
	to, ok := l.resolve(last)
	if !ok {
		return linear.ErrInvalidPosition
	}
	for n := from; n != to; n = n.next {
		if n == l.tail {
			return linear.ErrInvalidPosition
		}
	}
	for n := from; n != to; {
		next := n.next
		l.unlink(n)
		n = next
	}
	return nil
}

func (l *LinkedSeq[T]) Front() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	return l.head.value, nil
}

func (l *LinkedSeq[T]) Back() (T, error) {
	if l.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	return l.tail.prev.value, nil
}

// Clear releases all the nodes front to back. The sentinel is kept.
func (l *LinkedSeq[T]) Clear() {
	if l.tail == nil {
		return
	}
	for n := l.head; n != l.tail; {
		next := n.next
		n.release()
		n = next
	}
	l.head = l.tail
	l.tail.prev = nil
	l.count = 0
}

// Clone returns a deep, element-wise copy of l.
func (l *LinkedSeq[T]) Clone() *LinkedSeq[T] {
	dst := new(LinkedSeq[T]).init()
	dst.appendFrom(l)
	return dst
}

// CopyFrom replaces the content of l with a copy of src. A nil src
// empties l.
func (l *LinkedSeq[T]) CopyFrom(src *LinkedSeq[T]) {
	if src == l {
		return
	}
	l.Clear()
	l.lazyInit()
	l.appendFrom(src)
}

func (l *LinkedSeq[T]) appendFrom(src *LinkedSeq[T]) {
	if src == nil || src.tail == nil {
		return
	}
	for n := src.head; n != src.tail; n = n.next {
		l.linkBefore(l.tail, newSeqNode(n.value))
	}
}

// Move transfers the chain of l to a new sequence and leaves l empty.
// Iterators taken from l are no longer valid for either sequence.
func (l *LinkedSeq[T]) Move() *LinkedSeq[T] {
	dst := &LinkedSeq[T]{
		head:  l.head,
		tail:  l.tail,
		count: l.count,
	}
	l.init()
	return dst
}

// MoveFrom releases the content of l, takes over the chain of src and
// leaves src empty.
func (l *LinkedSeq[T]) MoveFrom(src *LinkedSeq[T]) {
	if src == nil || src == l {
		return
	}
	l.Clear()
	l.head, l.tail, l.count = src.head, src.tail, src.count
	if l.tail == nil {
		l.init()
	}
	src.init()
}

// Values iterates the elements front to back.
func (l *LinkedSeq[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.tail == nil {
			return
		}
		for n := l.head; n != l.tail; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// All iterates the elements front to back with their indices.
func (l *LinkedSeq[T]) All() iter.Seq2[int64, T] {
	return func(yield func(int64, T) bool) {
		if l.tail == nil {
			return
		}
		var idx int64
		for n := l.head; n != l.tail; n = n.next {
			if !yield(idx, n.value) {
				return
			}
			idx++
		}
	}
}

// Backward iterates the elements back to front with their indices.
func (l *LinkedSeq[T]) Backward() iter.Seq2[int64, T] {
	return func(yield func(int64, T) bool) {
		if l.IsEmpty() {
			return
		}
		idx := l.count - 1
		for n := l.tail.prev; n != nil; n = n.prev {
			if !yield(idx, n.value) {
				return
			}
			idx--
		}
	}
}

func (l *LinkedSeq[T]) ToSlice() []T {
	s := make([]T, 0, l.count)
	for v := range l.Values() {
		s = append(s, v)
	}
	return s
}

func (l *LinkedSeq[T]) Begin() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{cursor[T]{owner: l, node: l.head}}
}

func (l *LinkedSeq[T]) End() Iterator[T] {
	l.lazyInit()
	return Iterator[T]{cursor[T]{owner: l, node: l.tail}}
}

func (l *LinkedSeq[T]) CBegin() ConstIterator[T] {
	l.lazyInit()
	return ConstIterator[T]{cursor[T]{owner: l, node: l.head}}
}

func (l *LinkedSeq[T]) CEnd() ConstIterator[T] {
	l.lazyInit()
	return ConstIterator[T]{cursor[T]{owner: l, node: l.tail}}
}
