package bench

import (
	"strings"

	"github.com/benz9527/xlinear/lib/linear"
	"github.com/benz9527/xlinear/lib/list"
	"github.com/benz9527/xlinear/lib/vector"
)

// Kind names a container implementation under benchmark.
type Kind string

const (
	KindList   Kind = "list"
	KindVector Kind = "vector"
	kindAll    Kind = "all"
)

// Kinds lists every benchmarked container in the order suites run.
var Kinds = []Kind{KindList, KindVector}

func ParseKind(name string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(name))); k {
	case KindList, KindVector:
		return k, nil
	}
	return "", ErrUnknownKind
}

// ParseKinds accepts a single kind or "all".
func ParseKinds(name string) ([]Kind, error) {
	if Kind(strings.ToLower(strings.TrimSpace(name))) == kindAll {
		return append([]Kind(nil), Kinds...), nil
	}
	k, err := ParseKind(name)
	if err != nil {
		return nil, err
	}
	return []Kind{k}, nil
}

// subject is a container under benchmark. The erase operations go through
// the iterator based mutators of each container.
type subject interface {
	linear.Sequence[string]
	eraseFront() error
	eraseBack() error
}

type listSubject struct {
	*list.LinkedSeq[string]
}

func (s listSubject) eraseFront() error {
	return s.Erase(s.Begin())
}

func (s listSubject) eraseBack() error {
	it := s.End()
	if err := it.Prev(); err != nil {
		return err
	}
	return s.Erase(it)
}

type vectorSubject struct {
	*vector.Vector[string]
}

func (s vectorSubject) eraseFront() error {
	return s.Erase(s.Begin())
}

func (s vectorSubject) eraseBack() error {
	it, err := s.End().Sub(1)
	if err != nil {
		return err
	}
	return s.Erase(it)
}

func newSubject(kind Kind) (subject, error) {
	switch kind {
	case KindList:
		return listSubject{list.NewLinkedSeq[string]()}, nil
	case KindVector:
		return vectorSubject{vector.NewVector[string]()}, nil
	}
	return nil, ErrUnknownKind
}
