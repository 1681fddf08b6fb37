// Package workload implements synthesis of operation sequences for
// benchmarking Union-Find (disjoint-set) implementations, together
// with the line-oriented on-disk format the sequences are stored in.
package workload

import "fmt"

// Kind is the kind of a single workload operation.
type Kind int

const (
	// KindUnion requests that two elements' sets be merged.
	KindUnion Kind = 0
	// KindFind requests the representative of a single element.
	KindFind Kind = 1
	// KindSameSet requests whether two elements belong to the same set.
	KindSameSet Kind = 2
)

// String returns the string representation of a Kind.
func (k Kind) String() string {
	switch k {
	case KindUnion:
		return "UNION"
	case KindFind:
		return "FIND"
	case KindSameSet:
		return "SAMESET"
	default:
		return "[unknown]"
	}
}

func kindFromInt(v int) (Kind, error) {
	switch k := Kind(v); k {
	case KindUnion, KindFind, KindSameSet:
		return k, nil
	default:
		return k, fmt.Errorf("workload: invalid operation kind: %d", v)
	}
}

// Op is a single operation in a workload sequence.
//
// B is only meaningful for UNION and SAMESET operations, and is a
// placeholder zero for FIND.
type Op struct {
	Kind Kind
	A    int
	B    int
}
