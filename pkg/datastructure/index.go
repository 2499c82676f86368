package datastructure

import "math"

type Index uint32

const (
	INVALID_INDEX Index = math.MaxUint32
)
