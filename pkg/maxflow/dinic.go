package maxflow

import (
	"container/list"
	"context"

	"github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
)

const (
	INVALID_LEVEL = -1
)

type DinicMaxFlow[W numeric.Weight] struct {
	eps W

	net      *FlowNetwork[W]
	level    []int
	lastEdge []int
}

// NewDinicMaxFlow returns a dinic oracle. residual capacities <= eps are treated as saturated.
func NewDinicMaxFlow[W numeric.Weight](eps W) *DinicMaxFlow[W] {
	return &DinicMaxFlow[W]{eps: eps}
}

func (dmf *DinicMaxFlow[W]) bfsLevelGraph(
	source, target datastructure.Index) bool {

	for v := range dmf.level {
		dmf.level[v] = INVALID_LEVEL
	}

	levelQueue := list.New()
	levelQueue.PushBack(source)
	dmf.level[source] = 0

	for levelQueue.Len() > 0 {
		u := levelQueue.Front().Value.(datastructure.Index)
		levelQueue.Remove(levelQueue.Front())

		level := dmf.level[u] + 1
		if u == target {
			break
		}

		dmf.net.ForEachVertexEdges(u, func(edge *MaxFlowEdge[W]) {
			v := edge.GetTo()
			if edge.GetResidual() > dmf.eps && dmf.level[v] == INVALID_LEVEL {
				dmf.level[v] = level
				levelQueue.PushBack(v)
			}
		})
	}
	return dmf.level[target] != INVALID_LEVEL
}

func (dmf *DinicMaxFlow[W]) dfsAugmentPath(u datastructure.Index, t datastructure.Index, f W) W {
	// termination
	if u == t || f == 0 {
		return f
	}

	for ; dmf.lastEdge[u] < len(dmf.net.adj[u]); dmf.lastEdge[u]++ {
		j := dmf.lastEdge[u]
		edge := &dmf.net.adj[u][j]
		v := edge.GetTo()
		residual := edge.GetResidual()
		if residual <= dmf.eps || dmf.level[v] != dmf.level[u]+1 {
			continue
		}

		if pushed := dmf.dfsAugmentPath(v, t, numeric.Min(residual, f)); pushed > 0 {
			dmf.net.push(u, j, pushed)
			return pushed
		}
	}

	return 0
}

func (dmf *DinicMaxFlow[W]) resetCurrentEdges() {
	for i := range dmf.lastEdge {
		dmf.lastEdge[i] = 0
	}
}

/*
MinSTCut. runs dinic on net from s to t, then marks as source side every node reachable from s in the
residual network. the cut value is recomputed from the arc capacities across that side.

time complexity: O(N^2 * M).
*/
func (dmf *DinicMaxFlow[W]) MinSTCut(ctx context.Context, net *FlowNetwork[W], s, t datastructure.Index) (*MinCut[W], error) {
	if err := validateTerminals(net, s, t); err != nil {
		return nil, err
	}
	net.Reset()
	dmf.net = net
	dmf.level = make([]int, net.NumberOfVertices())
	dmf.lastEdge = make([]int, net.NumberOfVertices())
	defer func() {
		dmf.net = nil
	}()

	inf := numeric.Infinity[W]()
	for dmf.bfsLevelGraph(s, t) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dmf.resetCurrentEdges()

		for {
			flow := dmf.dfsAugmentPath(s, t, inf)
			if flow == 0 {
				break
			}
		}
	}

	return dmf.makeMinCutFlags(), nil
}

func (dmf *DinicMaxFlow[W]) makeMinCutFlags() *MinCut[W] {
	flags := make([]bool, dmf.net.NumberOfVertices())
	for u := range flags {
		flags[u] = dmf.level[u] != INVALID_LEVEL
	}
	return newMinCutFromFlags(dmf.net, flags)
}
