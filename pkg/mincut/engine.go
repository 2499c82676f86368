package mincut

import (
	"context"

	da "github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/lintang-b-s/prmincut/pkg/maxflow"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"go.uber.org/zap"
)

/*
Run computes the minimum cut.

every node is queued for level 0 and the graph is shrunk with the tests of levels 0..maxLevel. while more
than two nodes and some edge are left, a min s-t cut between a random node s and the node t farthest from it
is computed by the oracle, offered as a candidate cut, and s and t are identified, followed by another
shrinking round. the best cut is then available through BestCutValue and BestCutMembers.
*/
func (cg *CutGraph[W]) Run(ctx context.Context, maxLevel int) error {
	if cg.ran {
		return util.WrapErrorf(nil, ErrInvariantViolation, "run called twice on the same graph")
	}
	if maxLevel < 0 || maxLevel > MAX_LEVEL {
		return util.WrapErrorf(nil, ErrInvariantViolation, "max level %d not in [0, %d]", maxLevel, MAX_LEVEL)
	}
	cg.ran = true

	g := cg.graph
	cg.buckets = da.NewLevelBuckets(g.NumberOfOriginalVertices())
	g.ForEachVertices(func(x da.Index) {
		cg.buckets.PushBack(x, 0)
	})

	cg.logger.Debug("starting min cut",
		zap.Int("nodes", g.NumberOfVertices()),
		zap.Int("edges", g.NumberOfEdges()),
		zap.Any("total_weight", g.TotalWeight()),
		zap.Int("max_level", maxLevel))

	if err := cg.shrink(maxLevel); err != nil {
		return err
	}
	cg.logger.Debug("initial shrinking done",
		zap.Int("nodes", g.NumberOfVertices()),
		zap.Any("best_cut", cg.reporter.bestValue))

	for g.NumberOfVertices() > 2 && g.NumberOfEdges() > 0 && !cg.tol.IsZero(cg.reporter.bestValue) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := cg.oracleRound(ctx); err != nil {
			return err
		}
		if err := cg.shrink(maxLevel); err != nil {
			return err
		}

		cg.progress.Do(func() {
			cg.logger.Info("min cut progress",
				zap.Int("nodes", g.NumberOfVertices()),
				zap.Int("oracle_calls", cg.stats.OracleCalls),
				zap.Any("best_cut", cg.reporter.bestValue))
		})
	}

	cg.logger.Debug("min cut done",
		zap.Any("best_cut", cg.reporter.bestValue),
		zap.Int("best_cut_size", len(cg.reporter.members)),
		zap.Int("oracle_calls", cg.stats.OracleCalls),
		zap.Ints("contractions", cg.stats.Contractions[:]))
	return nil
}

// oracleRound computes one min s-t cut on the current graph and identifies s with t.
func (cg *CutGraph[W]) oracleRound(ctx context.Context) error {
	vertices := cg.graph.GetVertices()
	net := cg.buildFlowNetwork(vertices)

	s := da.Index(cg.rnd.Intn(len(vertices)))
	t := net.FarthestFrom(s)
	if t == s {
		// s is isolated, any other node separates
		t = (s + 1) % da.Index(len(vertices))
	}

	cut, err := cg.oracle.MinSTCut(ctx, net, s, t)
	cg.stats.OracleCalls++
	if err != nil {
		return util.WrapErrorf(err, ErrOracleFailure, "min cut between nodes %d and %d",
			cg.graph.ID(vertices[s]), cg.graph.ID(vertices[t]))
	}

	sourceSide := make([]da.Index, 0, len(vertices)-cut.GetNumNodesInPartitionTwo())
	for i, x := range vertices {
		if cut.GetFlag(da.Index(i)) {
			sourceSide = append(sourceSide, x)
		}
	}

	value := cut.GetMinCut()
	if cg.tol.Less(value, cg.reporter.bestValue) {
		cg.stats.Improvements++
		err = cg.reporter.record(cg.graph, value, sourceSide)
	} else {
		err = cg.reporter.offer(cg.graph, value, sourceSide)
	}
	if err != nil {
		return err
	}

	if err := cg.contract(vertices[s], vertices[t]); err != nil {
		return err
	}
	cg.stats.OracleContractions++
	return nil
}

// buildFlowNetwork maps the live nodes to 0..len(vertices)-1 and adds every edge as two opposite arcs.
func (cg *CutGraph[W]) buildFlowNetwork(vertices []da.Index) *maxflow.FlowNetwork[W] {
	position := make(map[da.Index]da.Index, len(vertices))
	for i, x := range vertices {
		position[x] = da.Index(i)
	}

	net := maxflow.NewFlowNetwork[W](len(vertices))
	for i, x := range vertices {
		cg.graph.ForEachNeighbor(x, func(y, _ da.Index, w W) {
			// every edge is seen from both ends, add it once
			if j := position[y]; da.Index(i) < j {
				net.AddEdge(da.Index(i), j, w)
			}
		})
	}
	return net
}
