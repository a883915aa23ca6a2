package vector

import (
	"iter"

	"github.com/benz9527/xlinear/lib/linear"
)

const defaultCapacity = 8

// ErrNegativeCapacity is returned by NewVectorWithCapacity.
const ErrNegativeCapacity linear.SeqErr = "[vector] negative capacity"

// Vector is a sequence container over one contiguous buffer.
//
// len(data) is the capacity, the first count slots hold the elements.
// When an insertion finds no free slot, the elements are copied into a
// buffer of twice the capacity (defaultCapacity when growing from zero).
// The old buffer is never written to, it is simply dropped once the copy
// is complete and the new element goes into the new buffer. The capacity
// never shrinks.
//
// Iterators keep an index, any insertion or removal may shift the element
// they denote. Vector is not thread safe.
type Vector[T any] struct {
	data  []T
	count int64
}

// NewVector returns a vector holding items in the given order. Without
// items the default capacity is allocated, otherwise exactly len(items).
func NewVector[T any](items ...T) *Vector[T] {
	if len(items) == 0 {
		return &Vector[T]{data: make([]T, defaultCapacity)}
	}
	v := &Vector[T]{data: make([]T, len(items))}
	for _, item := range items {
		v.Append(item)
	}
	return v
}

func NewVectorWithCapacity[T any](capacity int64) (*Vector[T], error) {
	if capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	return &Vector[T]{data: make([]T, capacity)}, nil
}

func (v *Vector[T]) nextCapacity() int64 {
	if len(v.data) == 0 {
		return defaultCapacity
	}
	return int64(len(v.data)) * 2
}

func (v *Vector[T]) noSpace() bool {
	return v.count >= int64(len(v.data))
}

func (v *Vector[T]) IsEmpty() bool {
	return v.count == 0
}

func (v *Vector[T]) Len() int64 {
	return v.count
}

// Cap returns the number of allocated slots.
func (v *Vector[T]) Cap() int64 {
	return int64(len(v.data))
}

func (v *Vector[T]) Append(item T) {
	if v.noSpace() {
		grown := make([]T, v.nextCapacity())
		copy(grown, v.data[:v.count])
		v.data = grown
	}
	v.data[v.count] = item
	v.count++
}

func (v *Vector[T]) Prepend(item T) {
	v.insertAt(0, item)
}

// Insert shifts the elements at and after pos one slot right and writes
// item at pos. Inserting at End appends.
func (v *Vector[T]) Insert(pos Position[T], item T) error {
	idx, ok := v.resolve(pos, v.count)
	if !ok {
		return linear.ErrInvalidPosition
	}
	v.insertAt(idx, item)
	return nil
}

func (v *Vector[T]) insertAt(idx int64, item T) {
	if v.noSpace() {
		// Copy and shift into the same fresh buffer, the current one is
		// left untouched until the switch.
		grown := make([]T, v.nextCapacity())
		copy(grown, v.data[:idx])
		copy(grown[idx+1:], v.data[idx:v.count])
		grown[idx] = item
		v.data = grown
		v.count++
		return
	}
	copy(v.data[idx+1:v.count+1], v.data[idx:v.count])
	v.data[idx] = item
	v.count++
}

func (v *Vector[T]) PopFirst() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	first := v.data[0]
	v.removeRange(0, 1)
	return first, nil
}

func (v *Vector[T]) PopLast() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	v.count--
	last := v.data[v.count]
	var zero T
	v.data[v.count] = zero
	return last, nil
}

// Erase removes the element at pos. Erasing End is rejected.
func (v *Vector[T]) Erase(pos Position[T]) error {
	if v.IsEmpty() {
		return linear.ErrInvalidPosition
	}
	idx, ok := v.resolve(pos, v.count-1)
	if !ok {
		return linear.ErrInvalidPosition
	}
	v.removeRange(idx, idx+1)
	return nil
}

// EraseRange removes the half-open run [first, last).
func (v *Vector[T]) EraseRange(first, last Position[T]) error {
	from, ok := v.resolve(first, v.count)
	if !ok {
		return linear.ErrInvalidPosition
	}
	to, ok := v.resolve(last, v.count)
	if !ok || from > to {
		return linear.ErrInvalidPosition
	}
	v.removeRange(from, to)
	return nil
}

// removeRange shifts [to, count) left to start at from and zeroes the
// vacated slots.
func (v *Vector[T]) removeRange(from, to int64) {
	if from == to {
		return
	}
	n := copy(v.data[from:], v.data[to:v.count])
	clear(v.data[from+int64(n) : v.count])
	v.count -= to - from
}

// resolve returns the index of pos if pos was taken from v and the index
// lies in [0, maxIdx].
func (v *Vector[T]) resolve(pos Position[T], maxIdx int64) (int64, bool) {
	if pos == nil {
		return 0, false
	}
	c := pos.position()
	if c.owner != v || c.index < 0 || c.index > maxIdx {
		return 0, false
	}
	return c.index, true
}

// At returns the element at index i.
func (v *Vector[T]) At(i int64) (T, error) {
	if i < 0 || i >= v.count {
		var zero T
		return zero, linear.ErrOutOfBounds
	}
	return v.data[i], nil
}

func (v *Vector[T]) Front() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	return v.data[0], nil
}

func (v *Vector[T]) Back() (T, error) {
	if v.IsEmpty() {
		var zero T
		return zero, linear.ErrEmptyContainer
	}
	return v.data[v.count-1], nil
}

// Clear removes all the elements, the capacity is kept.
func (v *Vector[T]) Clear() {
	clear(v.data[:v.count])
	v.count = 0
}

// Clone returns a deep, element-wise copy of v with the same capacity.
func (v *Vector[T]) Clone() *Vector[T] {
	dst := &Vector[T]{data: make([]T, len(v.data))}
	dst.count = int64(copy(dst.data, v.data[:v.count]))
	return dst
}

// CopyFrom replaces the content of v with a copy of src. The buffer is
// reallocated with the capacity of src. A nil src empties v and keeps its
// capacity.
func (v *Vector[T]) CopyFrom(src *Vector[T]) {
	if src == v {
		return
	}
	if src == nil {
		v.Clear()
		return
	}
	data := make([]T, len(src.data))
	v.count = int64(copy(data, src.data[:src.count]))
	v.data = data
}

// Move transfers the buffer of v to a new vector and leaves v empty with
// the default capacity.
func (v *Vector[T]) Move() *Vector[T] {
	dst := &Vector[T]{data: v.data, count: v.count}
	v.reset()
	return dst
}

// MoveFrom takes over the buffer of src and leaves src empty with the
// default capacity.
func (v *Vector[T]) MoveFrom(src *Vector[T]) {
	if src == nil || src == v {
		return
	}
	v.data, v.count = src.data, src.count
	src.reset()
}

func (v *Vector[T]) reset() {
	v.data = make([]T, defaultCapacity)
	v.count = 0
}

// Values iterates the elements front to back.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := int64(0); i < v.count; i++ {
			if !yield(v.data[i]) {
				return
			}
		}
	}
}

// All iterates the elements front to back with their indices.
func (v *Vector[T]) All() iter.Seq2[int64, T] {
	return func(yield func(int64, T) bool) {
		for i := int64(0); i < v.count; i++ {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

// Backward iterates the elements back to front with their indices.
func (v *Vector[T]) Backward() iter.Seq2[int64, T] {
	return func(yield func(int64, T) bool) {
		for i := v.count - 1; i >= 0; i-- {
			if !yield(i, v.data[i]) {
				return
			}
		}
	}
}

func (v *Vector[T]) ToSlice() []T {
	s := make([]T, v.count)
	copy(s, v.data[:v.count])
	return s
}

func (v *Vector[T]) Begin() Iterator[T] {
	return Iterator[T]{cursor[T]{owner: v, index: 0}}
}

func (v *Vector[T]) End() Iterator[T] {
	return Iterator[T]{cursor[T]{owner: v, index: v.count}}
}

func (v *Vector[T]) CBegin() ConstIterator[T] {
	return ConstIterator[T]{cursor[T]{owner: v, index: 0}}
}

func (v *Vector[T]) CEnd() ConstIterator[T] {
	return ConstIterator[T]{cursor[T]{owner: v, index: v.count}}
}
