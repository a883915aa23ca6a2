package list

import "github.com/benz9527/xlinear/lib/linear"

var _ linear.Sequence[struct{}] = (*LinkedSeq[struct{}])(nil) // Type check assertion

var (
	_ Position[struct{}] = Iterator[struct{}]{}
	_ Position[struct{}] = ConstIterator[struct{}]{}
)

// Position is a location inside a LinkedSeq accepted by the mutators.
// Both Iterator and ConstIterator are positions.
type Position[T any] interface {
	position() cursor[T]
}
