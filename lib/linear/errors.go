package linear

// SeqErr is the error kind returned by the sequence containers.
type SeqErr string

const (
	// ErrEmptyContainer is returned when there is no element to remove or read.
	ErrEmptyContainer SeqErr = "[linear] container is empty"
	// ErrInvalidPosition is returned when a mutator receives a position that
	// does not denote a live element of the container, e.g. erasing end.
	ErrInvalidPosition SeqErr = "[linear] invalid position"
	// ErrOutOfBounds is returned when an iterator is dereferenced or stepped
	// outside the valid element range.
	ErrOutOfBounds SeqErr = "[linear] iterator out of bounds"
)

func (err SeqErr) Error() string {
	return string(err)
}
