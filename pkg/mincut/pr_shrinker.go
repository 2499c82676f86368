package mincut

import (
	da "github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
)

// commonNeighbor holds the two edge weights to a node adjacent to both ends of a tested edge.
type commonNeighbor[W numeric.Weight] struct {
	fromN W
	fromM W
}

/*
shrink runs the padberg-rinaldi tests on the nodes queued in the level buckets.

a node popped from bucket l is tested against its neighbors of level <= l. when a neighbor passes, the edge
between them cannot cross any cut lighter than the best one, so the two nodes are identified, the merged node
goes back to bucket 0 and scanning restarts at level 0. a node that passes no test at level l moves to bucket
l+1, after level 4 it is parked. shrink returns when buckets 0..maxLevel are empty or the best cut is zero.

[Padberg & Rinaldi, An efficient algorithm for the minimum capacity cut problem]
*/
func (cg *CutGraph[W]) shrink(maxLevel int) error {
	for !cg.tol.IsZero(cg.reporter.bestValue) {
		contracted, err := cg.scanLevels(maxLevel)
		if err != nil {
			return err
		}
		if !contracted {
			return nil
		}
	}
	return nil
}

func (cg *CutGraph[W]) scanLevels(maxLevel int) (bool, error) {
	if err := cg.testBoundaries(); err != nil {
		return false, err
	}

	for level := 1; level <= maxLevel; level++ {
		for {
			if cg.tol.IsZero(cg.reporter.bestValue) {
				return false, nil
			}
			n, ok := cg.buckets.PopFront(level)
			if !ok {
				break
			}
			cg.stats.Tests[level]++

			m := cg.testNode(n, level)
			if m == da.INVALID_INDEX {
				cg.promote(n, level)
				continue
			}
			if err := cg.contract(n, m); err != nil {
				return false, err
			}
			cg.stats.Contractions[level]++
			return true, nil
		}
	}
	return false, nil
}

// testBoundaries drains bucket 0: every node whose own boundary beats the best cut becomes the best cut.
func (cg *CutGraph[W]) testBoundaries() error {
	for {
		n, ok := cg.buckets.PopFront(0)
		if !ok {
			return nil
		}
		cg.stats.Tests[0]++
		cg.promote(n, 0)

		// a single node left is the whole graph, not a side of a cut
		if cg.graph.NumberOfVertices() < 2 {
			continue
		}
		if w := cg.graph.Weight(n); w < cg.reporter.bestValue {
			cg.stats.Improvements++
			if err := cg.reporter.record(cg.graph, w, []da.Index{n}); err != nil {
				return err
			}
			if cg.tol.IsZero(w) {
				return nil
			}
		}
	}
}

func (cg *CutGraph[W]) promote(n da.Index, level int) {
	if level+1 >= da.NUM_LEVELS {
		cg.buckets.Park(n)
		return
	}
	cg.buckets.PushBack(n, level+1)
}

// contract identifies m into n and queues n for level 0.
func (cg *CutGraph[W]) contract(n, m da.Index) error {
	cg.buckets.Remove(m)
	if _, err := cg.graph.Identify(n, m); err != nil {
		return err
	}
	cg.buckets.PushBack(n, 0)
	return nil
}

// testNode returns a neighbor of n that can be identified with it by the test of level, or INVALID_INDEX.
func (cg *CutGraph[W]) testNode(n da.Index, level int) da.Index {
	switch level {
	case 1:
		return cg.testHeavyEdge(n)
	case 2:
		return cg.testTriangle(n)
	case 3:
		return cg.testCommonNeighbors(n)
	case 4:
		return cg.testTwoTriangles(n)
	}
	return da.INVALID_INDEX
}

func (cg *CutGraph[W]) eligible(m da.Index, level int) bool {
	return cg.buckets.Level(m) <= level
}

// markNeighbors maps every neighbor of n to the weight of its edge to n.
func (cg *CutGraph[W]) markNeighbors(n da.Index) map[da.Index]W {
	marks := make(map[da.Index]W, cg.graph.Degree(n))
	cg.graph.ForEachNeighbor(n, func(y, _ da.Index, w W) {
		marks[y] = w
	})
	return marks
}

// testHeavyEdge. w(N,M) >= w(N)/2 or w(N,M) >= w(M)/2.
func (cg *CutGraph[W]) testHeavyEdge(n da.Index) da.Index {
	dn := cg.graph.Weight(n)
	return cg.graph.FindNeighbor(n, func(m, _ da.Index, wnm W) bool {
		if !cg.eligible(m, 1) {
			return false
		}
		return cg.tol.AtLeastHalf(wnm, dn) || cg.tol.AtLeastHalf(wnm, cg.graph.Weight(m))
	})
}

// testTriangle. some common neighbor X has w(N,M)+w(N,X) >= w(N)/2 and w(N,M)+w(M,X) >= w(M)/2.
func (cg *CutGraph[W]) testTriangle(n da.Index) da.Index {
	marks := cg.markNeighbors(n)
	dn := cg.graph.Weight(n)
	return cg.graph.FindNeighbor(n, func(m, _ da.Index, wnm W) bool {
		if !cg.eligible(m, 2) {
			return false
		}
		dm := cg.graph.Weight(m)
		x := cg.graph.FindNeighbor(m, func(x, _ da.Index, wmx W) bool {
			wnx, common := marks[x]
			return common && cg.tol.AtLeastHalf(wnm+wnx, dn) && cg.tol.AtLeastHalf(wnm+wmx, dm)
		})
		return x != da.INVALID_INDEX
	})
}

// testCommonNeighbors. w(N,M) plus min(w(N,X), w(M,X)) over the common neighbors X is at least the best cut.
func (cg *CutGraph[W]) testCommonNeighbors(n da.Index) da.Index {
	marks := cg.markNeighbors(n)
	best := cg.reporter.bestValue
	return cg.graph.FindNeighbor(n, func(m, _ da.Index, wnm W) bool {
		if !cg.eligible(m, 3) {
			return false
		}
		bound := wnm
		cg.graph.ForEachNeighbor(m, func(x, _ da.Index, wmx W) {
			if wnx, common := marks[x]; common {
				bound += numeric.Min(wnx, wmx)
			}
		})
		return cg.tol.AtLeast(bound, best)
	})
}

/*
testTwoTriangles. some pair of distinct common neighbors X, Y has

	w(N,M)+w(N,X)+w(N,Y) >= w(N)/2 and w(N,M)+w(M,X)+w(M,Y) >= w(M)/2,
	w(N,M)+w(N,X) >= w(N)/2 or w(N,M)+w(M,Y) >= w(M)/2,
	w(N,M)+w(N,Y) >= w(N)/2 or w(N,M)+w(M,X) >= w(M)/2.

time complexity: O(c^2) per tested edge, c the number of common neighbors.
*/
func (cg *CutGraph[W]) testTwoTriangles(n da.Index) da.Index {
	marks := cg.markNeighbors(n)
	dn := cg.graph.Weight(n)
	common := make([]commonNeighbor[W], 0)
	return cg.graph.FindNeighbor(n, func(m, _ da.Index, wnm W) bool {
		if !cg.eligible(m, 4) {
			return false
		}
		dm := cg.graph.Weight(m)
		common = common[:0]
		cg.graph.ForEachNeighbor(m, func(x, _ da.Index, wmx W) {
			if wnx, ok := marks[x]; ok {
				common = append(common, commonNeighbor[W]{fromN: wnx, fromM: wmx})
			}
		})

		for i := 0; i < len(common); i++ {
			x := common[i]
			for j := i + 1; j < len(common); j++ {
				y := common[j]
				if cg.tol.AtLeastHalf(wnm+x.fromN+y.fromN, dn) &&
					cg.tol.AtLeastHalf(wnm+x.fromM+y.fromM, dm) &&
					(cg.tol.AtLeastHalf(wnm+x.fromN, dn) || cg.tol.AtLeastHalf(wnm+y.fromM, dm)) &&
					(cg.tol.AtLeastHalf(wnm+y.fromN, dn) || cg.tol.AtLeastHalf(wnm+x.fromM, dm)) {
					return true
				}
			}
		}
		return false
	})
}
