package numeric

import (
	"math"
	"reflect"

	"golang.org/x/exp/constraints"
)

// Weight is the set of types an edge weight can take.
type Weight interface {
	constraints.Integer | constraints.Float
}

/*
Tolerance. comparisons with an absolute epsilon.

every comparison is written so that it never overflows when one side is Infinity[W]() and never
underflows for unsigned integer weights. for integer weights Eps is normally 0.
*/
type Tolerance[W Weight] struct {
	Eps W
}

func NewTolerance[W Weight](eps W) Tolerance[W] {
	return Tolerance[W]{Eps: eps}
}

// Less reports a < b - eps.
func (t Tolerance[W]) Less(a, b W) bool {
	return a < b && b-a > t.Eps
}

// Equal reports |a-b| <= eps.
func (t Tolerance[W]) Equal(a, b W) bool {
	if a > b {
		return a-b <= t.Eps
	}
	return b-a <= t.Eps
}

// IsZero reports a <= eps, for non-negative a.
func (t Tolerance[W]) IsZero(a W) bool {
	return a <= t.Eps
}

// AtLeastHalf reports x >= boundary/2 - eps. it is evaluated as 2x + 2eps >= boundary so integer weights
// are not truncated by the halving.
func (t Tolerance[W]) AtLeastHalf(x, boundary W) bool {
	return x+x+t.Eps+t.Eps >= boundary
}

// AtLeast reports x - eps >= bound.
func (t Tolerance[W]) AtLeast(x, bound W) bool {
	return x >= bound && x-bound >= t.Eps
}

// IsFinite reports whether w is neither NaN nor an infinity. integer weights are always finite.
func IsFinite[W Weight](w W) bool {
	return w-w == 0
}

func Min[W Weight](a, b W) W {
	if a < b {
		return a
	}
	return b
}

// Infinity returns +Inf for float weights and the largest representable value for integer weights.
func Infinity[W Weight]() W {
	var w W
	switch reflect.TypeOf(w).Kind() {
	case reflect.Float32, reflect.Float64:
		inf := math.Inf(1)
		return W(inf)
	case reflect.Int8:
		v := int64(math.MaxInt8)
		return W(v)
	case reflect.Int16:
		v := int64(math.MaxInt16)
		return W(v)
	case reflect.Int32:
		v := int64(math.MaxInt32)
		return W(v)
	case reflect.Int, reflect.Int64:
		v := int64(math.MaxInt64)
		return W(v)
	case reflect.Uint8:
		v := uint64(math.MaxUint8)
		return W(v)
	case reflect.Uint16:
		v := uint64(math.MaxUint16)
		return W(v)
	case reflect.Uint32:
		v := uint64(math.MaxUint32)
		return W(v)
	default:
		v := uint64(math.MaxUint64)
		return W(v)
	}
}
