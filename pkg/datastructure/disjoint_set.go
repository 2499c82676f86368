package datastructure

import (
	"github.com/lintang-b-s/prmincut/pkg/util"
)

/*
DisjointNodeSet. union-find over node indices with path halving and union by rank.

the tree shape and the identity of a class are kept apart: Link(a, b) hangs the lower-rank root under the
higher-rank one, and the surviving root is labeled with a, so the caller still decides whose identity
survives a merge. tree height stays below log2(n).
*/
type DisjointNodeSet struct {
	parent []Index
	rank   []uint32
	label  []Index // label[root] is the representative reported for the class
}

func NewDisjointNodeSet(capacity int) *DisjointNodeSet {
	return &DisjointNodeSet{
		parent: make([]Index, 0, capacity),
		rank:   make([]uint32, 0, capacity),
		label:  make([]Index, 0, capacity),
	}
}

// MakeSet adds a new singleton class and returns its index.
func (ds *DisjointNodeSet) MakeSet() Index {
	x := Index(len(ds.parent))
	ds.parent = append(ds.parent, x)
	ds.rank = append(ds.rank, 0)
	ds.label = append(ds.label, x)
	return x
}

func (ds *DisjointNodeSet) Size() int {
	return len(ds.parent)
}

// root walks to the tree root of x. every visited node is pointed to its grandparent (path halving).
func (ds *DisjointNodeSet) root(x Index) Index {
	for {
		p := ds.parent[x]
		if p == x {
			return x
		}
		gp := ds.parent[p]
		ds.parent[x] = gp
		x = gp
	}
}

// Find returns the representative of the class of x.
func (ds *DisjointNodeSet) Find(x Index) Index {
	return ds.label[ds.root(x)]
}

func (ds *DisjointNodeSet) IsRepresentative(x Index) bool {
	return int(x) < len(ds.parent) && ds.Find(x) == x
}

// Link merges the classes of representatives repA and repB and returns repA.
func (ds *DisjointNodeSet) Link(repA, repB Index) (Index, error) {
	if !ds.IsRepresentative(repA) || !ds.IsRepresentative(repB) {
		return INVALID_INDEX, util.WrapErrorf(nil, util.ErrInvariantViolation,
			"link %d and %d: both must be representatives", repA, repB)
	}
	if repA == repB {
		return INVALID_INDEX, util.WrapErrorf(nil, util.ErrInvariantViolation,
			"link %d with itself", repA)
	}

	ra, rb := ds.root(repA), ds.root(repB)
	if ds.rank[ra] < ds.rank[rb] {
		ra, rb = rb, ra
	}
	ds.parent[rb] = ra
	if ds.rank[ra] == ds.rank[rb] {
		ds.rank[ra]++
	}
	ds.label[ra] = repA
	return repA, nil
}
