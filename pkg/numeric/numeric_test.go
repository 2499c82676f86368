package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToleranceFloat(t *testing.T) {
	tol := NewTolerance(1e-6)

	testCases := []struct {
		name string
		got  bool
		want bool
	}{
		{"less strict", tol.Less(1, 2), true},
		{"less within eps", tol.Less(1, 1+1e-7), false},
		{"less than infinity", tol.Less(5, math.Inf(1)), true},
		{"infinity not less than infinity", tol.Less(math.Inf(1), math.Inf(1)), false},
		{"equal", tol.Equal(3, 3+1e-7), true},
		{"not equal", tol.Equal(3, 3.1), false},
		{"zero", tol.IsZero(1e-7), true},
		{"not zero", tol.IsZero(0.5), false},
		{"at least half", tol.AtLeastHalf(1.5, 3), true},
		{"below half", tol.AtLeastHalf(1.4, 3), false},
		{"at least", tol.AtLeast(4, 3), true},
		{"at least inside eps", tol.AtLeast(3+1e-7, 3), false},
		{"at least infinity", tol.AtLeast(1e300, math.Inf(1)), false},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestToleranceInteger(t *testing.T) {
	tol := NewTolerance[int64](0)

	// 3/2 truncates to 1, but 1 is not at least half of 3.
	assert.False(t, tol.AtLeastHalf(1, 3))
	assert.True(t, tol.AtLeastHalf(2, 3))
	assert.True(t, tol.Less(2, Infinity[int64]()))
	assert.True(t, tol.AtLeast(3, 3))

	utol := NewTolerance[uint32](0)
	assert.False(t, utol.Less(3, 2))
	assert.True(t, utol.Equal(3, 3))
	assert.False(t, utol.Equal(2, 3))
	assert.False(t, utol.AtLeast(2, 3))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.5))
	assert.True(t, IsFinite(0.0))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite(math.Inf(1)))
	assert.False(t, IsFinite(float32(math.Inf(-1))))
	assert.True(t, IsFinite(int64(math.MaxInt64)))
	assert.True(t, IsFinite(uint32(0)))
}

func TestInfinity(t *testing.T) {
	assert.True(t, math.IsInf(Infinity[float64](), 1))
	assert.True(t, math.IsInf(float64(Infinity[float32]()), 1))
	assert.Equal(t, int64(math.MaxInt64), Infinity[int64]())
	assert.Equal(t, int32(math.MaxInt32), Infinity[int32]())
	assert.Equal(t, uint16(math.MaxUint16), Infinity[uint16]())
}
