package maxflow

import (
	"context"
	"errors"

	"github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
)

var (
	ErrSourceEqualsSink = errors.New("maxflow: source equals sink")
	ErrNodeOutOfRange   = errors.New("maxflow: terminal out of range")
)

// Oracle computes a minimum s-t cut of a flow network.
type Oracle[W numeric.Weight] interface {
	MinSTCut(ctx context.Context, net *FlowNetwork[W], s, t datastructure.Index) (*MinCut[W], error)
}

type MaxFlowEdge[W numeric.Weight] struct {
	to       datastructure.Index
	rev      int // index of the reverse arc in the adjacency of to
	capacity W
	residual W
}

func (e *MaxFlowEdge[W]) GetTo() datastructure.Index {
	return e.to
}

func (e *MaxFlowEdge[W]) GetResidual() W {
	return e.residual
}

/*
FlowNetwork. directed network stored as adjacency lists of arcs, every arc has a paired reverse arc.
an undirected edge of capacity c is the pair (u->v, c), (v->u, c), each the reverse of the other.
residual capacities are kept instead of flows so that unsigned weights never go negative.
*/
type FlowNetwork[W numeric.Weight] struct {
	adj     [][]MaxFlowEdge[W]
	numArcs int
}

func NewFlowNetwork[W numeric.Weight](numberOfVertices int) *FlowNetwork[W] {
	return &FlowNetwork[W]{adj: make([][]MaxFlowEdge[W], numberOfVertices)}
}

func (fn *FlowNetwork[W]) NumberOfVertices() int {
	return len(fn.adj)
}

func (fn *FlowNetwork[W]) NumberOfArcs() int {
	return fn.numArcs
}

// AddEdge adds an undirected edge, i.e. two opposite arcs of equal capacity.
func (fn *FlowNetwork[W]) AddEdge(u, v datastructure.Index, capacity W) {
	fn.addPair(u, v, capacity, capacity)
}

// addArc adds a directed arc u->v, its reverse arc has capacity zero.
func (fn *FlowNetwork[W]) addArc(u, v datastructure.Index, capacity W) {
	fn.addPair(u, v, capacity, 0)
}

func (fn *FlowNetwork[W]) addPair(u, v datastructure.Index, forward, backward W) {
	fu, fv := len(fn.adj[u]), len(fn.adj[v])
	fn.adj[u] = append(fn.adj[u], MaxFlowEdge[W]{to: v, rev: fv, capacity: forward, residual: forward})
	fn.adj[v] = append(fn.adj[v], MaxFlowEdge[W]{to: u, rev: fu, capacity: backward, residual: backward})
	fn.numArcs += 2
}

func (fn *FlowNetwork[W]) ForEachVertexEdges(u datastructure.Index, handle func(edge *MaxFlowEdge[W])) {
	for i := range fn.adj[u] {
		handle(&fn.adj[u][i])
	}
}

func (fn *FlowNetwork[W]) push(u datastructure.Index, i int, amount W) {
	e := &fn.adj[u][i]
	e.residual -= amount
	fn.adj[e.to][e.rev].residual += amount
}

// Reset restores every residual capacity to the arc capacity. every oracle resets the network before solving.
func (fn *FlowNetwork[W]) Reset() {
	for u := range fn.adj {
		for i := range fn.adj[u] {
			fn.adj[u][i].residual = fn.adj[u][i].capacity
		}
	}
}

// CutValue sums the capacities of the arcs leaving the source side.
func (fn *FlowNetwork[W]) CutValue(sourceSide []bool) W {
	var value W
	for u := range fn.adj {
		if !sourceSide[u] {
			continue
		}
		for i := range fn.adj[u] {
			if !sourceSide[fn.adj[u][i].to] {
				value += fn.adj[u][i].capacity
			}
		}
	}
	return value
}

// FarthestFrom returns the node with the largest bfs hop distance from s over arcs of positive capacity,
// the first one found wins ties.
func (fn *FlowNetwork[W]) FarthestFrom(s datastructure.Index) datastructure.Index {
	dist := make([]int, len(fn.adj))
	for i := range dist {
		dist[i] = -1
	}
	dist[s] = 0
	queue := make([]datastructure.Index, 0, len(fn.adj))
	queue = append(queue, s)
	farthest := s
	for head := 0; head < len(queue); head++ {
		u := queue[head]
		if dist[u] > dist[farthest] {
			farthest = u
		}
		for i := range fn.adj[u] {
			e := &fn.adj[u][i]
			if e.capacity > 0 && dist[e.to] < 0 {
				dist[e.to] = dist[u] + 1
				queue = append(queue, e.to)
			}
		}
	}
	return farthest
}

func validateTerminals[W numeric.Weight](net *FlowNetwork[W], s, t datastructure.Index) error {
	n := datastructure.Index(net.NumberOfVertices())
	if s >= n || t >= n {
		return ErrNodeOutOfRange
	}
	if s == t {
		return ErrSourceEqualsSink
	}
	return nil
}

// MinCut. result of an oracle call: flags[u] is true if u is on the source side.
type MinCut[W numeric.Weight] struct {
	flags                  []bool
	numNodesInPartitionTwo int // number of nodes on the sink side
	minCut                 W
}

func (mc *MinCut[W]) GetFlag(u datastructure.Index) bool {
	return mc.flags[u]
}

func (mc *MinCut[W]) GetFlags() []bool {
	return mc.flags
}

func (mc *MinCut[W]) GetNumNodesInPartitionTwo() int {
	return mc.numNodesInPartitionTwo
}

func (mc *MinCut[W]) GetMinCut() W {
	return mc.minCut
}

func newMinCutFromFlags[W numeric.Weight](net *FlowNetwork[W], flags []bool) *MinCut[W] {
	mc := &MinCut[W]{flags: flags}
	for _, f := range flags {
		if !f {
			mc.numNodesInPartitionTwo++
		}
	}
	mc.minCut = net.CutValue(flags)
	return mc
}
