package vector

import "github.com/benz9527/xlinear/lib/linear"

var _ linear.Sequence[struct{}] = (*Vector[struct{}])(nil) // Type check assertion

var (
	_ Position[struct{}] = Iterator[struct{}]{}
	_ Position[struct{}] = ConstIterator[struct{}]{}
)

// Position is an index inside a Vector accepted by the mutators.
// Both Iterator and ConstIterator are positions.
type Position[T any] interface {
	position() cursor[T]
}
