package list

type seqNode[T any] struct {
	prev, next *seqNode[T]
	// endRef is the sentinel of the chain that owns the node. The sentinel
	// refers to itself. Removed nodes have no endRef.
	endRef *seqNode[T]
	value  T // The type of value may be a small size type.
	// It should be placed at the end of the struct to avoid taking too much padding.
}

func newSeqNode[T any](v T) *seqNode[T] {
	return &seqNode[T]{
		value: v,
	}
}

func newSentinel[T any]() *seqNode[T] {
	n := &seqNode[T]{}
	n.endRef = n
	return n
}

// release drops every reference held by a node which is no longer in a chain.
func (n *seqNode[T]) release() {
	var zero T
	n.prev, n.next, n.endRef = nil, nil, nil
	n.value = zero
}
