package mincut

import (
	da "github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
	"github.com/lintang-b-s/prmincut/pkg/util"
)

// CutCallback is called with every reported cut below the cutoff. members holds the original ids of one side
// of the cut and is only valid during the call. a non-nil error stops the run.
type CutCallback[W numeric.Weight] func(value W, members []uint32, userParam any) error

// cutReporter keeps the best cut found so far and forwards reported cuts to the callback.
type cutReporter[W numeric.Weight] struct {
	bestValue W
	members   []uint32 // one side of the best cut, empty until a cut is recorded

	callback  CutCallback[W]
	cutoff    W
	userParam any

	scratch []uint32 // side of a reported cut that is not an improvement
}

func newCutReporter[W numeric.Weight](upperBound W, nodeCapacity int) *cutReporter[W] {
	return &cutReporter[W]{
		bestValue: upperBound,
		members:   make([]uint32, 0, nodeCapacity),
	}
}

// record makes the cut whose side is the union of nodes the new best cut.
func (r *cutReporter[W]) record(g *da.ShrinkableGraph[W], value W, nodes []da.Index) error {
	r.bestValue = value
	r.members = r.members[:0]
	for _, x := range nodes {
		r.members = g.AppendMembers(r.members, x)
	}
	if r.callback == nil || !(value < r.cutoff) {
		return nil
	}
	return r.fire(value, r.members)
}

// offer reports a cut that did not improve the best one. the callback still sees it if it is below the cutoff.
func (r *cutReporter[W]) offer(g *da.ShrinkableGraph[W], value W, nodes []da.Index) error {
	if r.callback == nil || !(value < r.cutoff) {
		return nil
	}
	r.scratch = r.scratch[:0]
	for _, x := range nodes {
		r.scratch = g.AppendMembers(r.scratch, x)
	}
	return r.fire(value, r.scratch)
}

func (r *cutReporter[W]) fire(value W, members []uint32) error {
	if err := r.callback(value, members, r.userParam); err != nil {
		return util.WrapErrorf(err, ErrCallbackAborted, "cut of value %v rejected by callback", value)
	}
	return nil
}
