package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/prmincut/pkg/numeric"
	"github.com/lintang-b-s/prmincut/pkg/util"
)

type shrinkNode[W numeric.Weight] struct {
	id     uint32
	weight W       // sum of the weights of the incident edges
	adj    []Index // incident edges
	alive  bool
	gen    uint32

	memberNext  Index // next original node in the member chain of the representative
	memberTail  Index // last node of the chain starting at this node
	memberCount int
}

type shrinkEdge[W numeric.Weight] struct {
	id     uint32
	weight W
	ends   [2]Index
	pos    [2]int // position of this edge in the adjacency of ends[i]
	alive  bool
}

func (e *shrinkEdge[W]) side(x Index) int {
	if e.ends[0] == x {
		return 0
	}
	return 1
}

func (e *shrinkEdge[W]) other(x Index) Index {
	if e.ends[0] == x {
		return e.ends[1]
	}
	return e.ends[0]
}

// NodeHandle refers to a node of a ShrinkableGraph. it stops resolving once the node has been absorbed.
type NodeHandle struct {
	index Index
	gen   uint32
}

func (h NodeHandle) Index() Index {
	return h.index
}

/*
ShrinkableGraph. undirected graph with positive weights whose only mutation after construction is Identify,
which merges two nodes. node and edge storage are arenas addressed by Index, a merged node keeps the ids of
every original node it absorbed in its member chain.
*/
type ShrinkableGraph[W numeric.Weight] struct {
	nodes   []shrinkNode[W]
	edges   []shrinkEdge[W]
	uf      *DisjointNodeSet
	idIndex map[uint32]Index

	numAliveNodes int
	numAliveEdges int
}

func NewShrinkableGraph[W numeric.Weight](nodeCapacity, edgeCapacity int) *ShrinkableGraph[W] {
	return &ShrinkableGraph[W]{
		nodes:   make([]shrinkNode[W], 0, nodeCapacity),
		edges:   make([]shrinkEdge[W], 0, edgeCapacity),
		uf:      NewDisjointNodeSet(nodeCapacity),
		idIndex: make(map[uint32]Index, nodeCapacity),
	}
}

func (g *ShrinkableGraph[W]) AddNode(id uint32) (Index, error) {
	if _, exists := g.idIndex[id]; exists {
		return INVALID_INDEX, util.WrapErrorf(nil, util.ErrInvariantViolation, "duplicate node id %d", id)
	}
	x := g.uf.MakeSet()
	g.nodes = append(g.nodes, shrinkNode[W]{
		id:          id,
		alive:       true,
		memberNext:  INVALID_INDEX,
		memberTail:  x,
		memberCount: 1,
	})
	g.idIndex[id] = x
	g.numAliveNodes++
	return x, nil
}

// AddEdge connects u and v. a second edge between the same pair is folded into the first one.
func (g *ShrinkableGraph[W]) AddEdge(id uint32, u, v Index, w W) error {
	if !g.Alive(u) || !g.Alive(v) {
		return util.WrapErrorf(nil, util.ErrInvariantViolation, "edge %d: endpoint %d or %d is not a live node", id, u, v)
	}
	if u == v {
		return util.WrapErrorf(nil, util.ErrInvariantViolation, "edge %d: self-loop on node %d", id, g.nodes[u].id)
	}
	if w < 0 || !numeric.IsFinite(w) {
		return util.WrapErrorf(nil, util.ErrInvariantViolation, "edge %d: weight %v is not a finite non-negative number", id, w)
	}

	g.nodes[u].weight += w
	g.nodes[v].weight += w

	if e := g.EdgeBetween(u, v); e != INVALID_INDEX {
		g.edges[e].weight += w
		return nil
	}

	e := Index(len(g.edges))
	g.edges = append(g.edges, shrinkEdge[W]{
		id:     id,
		weight: w,
		ends:   [2]Index{u, v},
		pos:    [2]int{len(g.nodes[u].adj), len(g.nodes[v].adj)},
		alive:  true,
	})
	g.nodes[u].adj = append(g.nodes[u].adj, e)
	g.nodes[v].adj = append(g.nodes[v].adj, e)
	g.numAliveEdges++
	return nil
}

// EdgeBetween returns the edge joining u and v, or INVALID_INDEX.
func (g *ShrinkableGraph[W]) EdgeBetween(u, v Index) Index {
	a, b := u, v
	if len(g.nodes[b].adj) < len(g.nodes[a].adj) {
		a, b = b, a
	}
	for _, e := range g.nodes[a].adj {
		if g.edges[e].other(a) == b {
			return e
		}
	}
	return INVALID_INDEX
}

/*
Identify merges absorb into keep and returns keep.

every edge of absorb is repointed to keep. an edge that now duplicates an edge of keep is folded into it
(weights summed), the keep-absorb edges become self-loops and are dropped. the weight of keep becomes
w(keep) + w(absorb) - 2*w(keep, absorb), the boundary of the merged node. absorb and its member chain are
appended to the member chain of keep.

time complexity: O(deg(keep) + deg(absorb)).
*/
func (g *ShrinkableGraph[W]) Identify(keep, absorb Index) (Index, error) {
	if !g.Alive(keep) || !g.Alive(absorb) {
		return INVALID_INDEX, util.WrapErrorf(nil, util.ErrInvariantViolation,
			"identify %d and %d: both nodes must be alive", keep, absorb)
	}
	if keep == absorb {
		return INVALID_INDEX, util.WrapErrorf(nil, util.ErrInvariantViolation, "identify node %d with itself", keep)
	}

	kn := &g.nodes[keep]
	marked := make(map[Index]Index, len(kn.adj)) // neighbor of keep -> edge to it
	for _, e := range kn.adj {
		marked[g.edges[e].other(keep)] = e
	}

	var inner W // total weight of the keep-absorb edges
	for len(g.nodes[absorb].adj) > 0 {
		an := &g.nodes[absorb]
		e := an.adj[len(an.adj)-1]
		edge := &g.edges[e]
		other := edge.other(absorb)

		if other == keep {
			inner += edge.weight
			g.removeEdge(e)
			continue
		}
		if f, ok := marked[other]; ok {
			g.edges[f].weight += edge.weight
			g.removeEdge(e)
			continue
		}

		an.adj = an.adj[:len(an.adj)-1]
		s := edge.side(absorb)
		edge.ends[s] = keep
		edge.pos[s] = len(g.nodes[keep].adj)
		g.nodes[keep].adj = append(g.nodes[keep].adj, e)
		marked[other] = e
	}

	kn = &g.nodes[keep]
	an := &g.nodes[absorb]
	weight := kn.weight + an.weight - inner - inner
	if weight < 0 {
		// rounding of float weights, the exact value is never negative
		weight = 0
	}
	kn.weight = weight

	if _, err := g.uf.Link(keep, absorb); err != nil {
		return INVALID_INDEX, err
	}

	g.nodes[kn.memberTail].memberNext = absorb
	kn.memberTail = an.memberTail
	kn.memberCount += an.memberCount

	an.alive = false
	an.gen++
	an.adj = nil
	an.weight = 0
	g.numAliveNodes--

	return keep, nil
}

func (g *ShrinkableGraph[W]) removeEdge(e Index) {
	edge := &g.edges[e]
	for s := 0; s < 2; s++ {
		x := edge.ends[s]
		adj := g.nodes[x].adj
		p := edge.pos[s]
		last := adj[len(adj)-1]
		adj[p] = last
		le := &g.edges[last]
		le.pos[le.side(x)] = p
		g.nodes[x].adj = adj[:len(adj)-1]
	}
	edge.alive = false
	g.numAliveEdges--
}

func (g *ShrinkableGraph[W]) Alive(x Index) bool {
	return int(x) < len(g.nodes) && g.nodes[x].alive
}

func (g *ShrinkableGraph[W]) Handle(x Index) NodeHandle {
	return NodeHandle{index: x, gen: g.nodes[x].gen}
}

// Resolve returns the index of h, failing if the node it named has been absorbed.
func (g *ShrinkableGraph[W]) Resolve(h NodeHandle) (Index, error) {
	if !g.Alive(h.index) || g.nodes[h.index].gen != h.gen {
		return INVALID_INDEX, util.WrapErrorf(nil, util.ErrInvariantViolation, "stale node handle %d", h.index)
	}
	return h.index, nil
}

func (g *ShrinkableGraph[W]) Lookup(id uint32) (Index, bool) {
	x, ok := g.idIndex[id]
	return x, ok
}

// Find returns the live node that currently contains the original node x.
func (g *ShrinkableGraph[W]) Find(x Index) Index {
	return g.uf.Find(x)
}

func (g *ShrinkableGraph[W]) ID(x Index) uint32 {
	return g.nodes[x].id
}

func (g *ShrinkableGraph[W]) Weight(x Index) W {
	return g.nodes[x].weight
}

func (g *ShrinkableGraph[W]) Degree(x Index) int {
	return len(g.nodes[x].adj)
}

func (g *ShrinkableGraph[W]) EdgeWeight(e Index) W {
	return g.edges[e].weight
}

func (g *ShrinkableGraph[W]) NumberOfVertices() int {
	return g.numAliveNodes
}

func (g *ShrinkableGraph[W]) NumberOfEdges() int {
	return g.numAliveEdges
}

func (g *ShrinkableGraph[W]) NumberOfOriginalVertices() int {
	return len(g.nodes)
}

func (g *ShrinkableGraph[W]) TotalWeight() W {
	var total W
	for i := range g.edges {
		if g.edges[i].alive {
			total += g.edges[i].weight
		}
	}
	return total
}

// ForEachNeighbor calls handle for every edge of x. the graph must not be modified inside handle.
func (g *ShrinkableGraph[W]) ForEachNeighbor(x Index, handle func(y Index, e Index, w W)) {
	for _, e := range g.nodes[x].adj {
		edge := &g.edges[e]
		handle(edge.other(x), e, edge.weight)
	}
}

// FindNeighbor returns the first neighbor y of x with match(y, e, w), or INVALID_INDEX.
// the graph must not be modified inside match.
func (g *ShrinkableGraph[W]) FindNeighbor(x Index, match func(y Index, e Index, w W) bool) Index {
	for _, e := range g.nodes[x].adj {
		edge := &g.edges[e]
		if y := edge.other(x); match(y, e, edge.weight) {
			return y
		}
	}
	return INVALID_INDEX
}

// ForEachVertices calls handle for every live node in index order.
func (g *ShrinkableGraph[W]) ForEachVertices(handle func(x Index)) {
	for i := range g.nodes {
		if g.nodes[i].alive {
			handle(Index(i))
		}
	}
}

func (g *ShrinkableGraph[W]) GetVertices() []Index {
	vertices := make([]Index, 0, g.numAliveNodes)
	g.ForEachVertices(func(x Index) {
		vertices = append(vertices, x)
	})
	return vertices
}

func (g *ShrinkableGraph[W]) MemberCount(x Index) int {
	return g.nodes[x].memberCount
}

// AppendMembers appends the original ids merged into x to dst: the id of x first, then its member chain.
func (g *ShrinkableGraph[W]) AppendMembers(dst []uint32, x Index) []uint32 {
	for m := x; m != INVALID_INDEX; m = g.nodes[m].memberNext {
		dst = append(dst, g.nodes[m].id)
	}
	return dst
}

/*
CheckInvariants verifies the bookkeeping of the graph: every live node's weight is the sum of its incident
edge weights (within eps), edges are live, positive, without self-loops or parallel copies, and the alive
counters match the arenas.
*/
func (g *ShrinkableGraph[W]) CheckInvariants(eps W) error {
	tol := numeric.NewTolerance(eps)
	aliveNodes, adjEntries := 0, 0
	for i := range g.nodes {
		x := Index(i)
		n := &g.nodes[i]
		if !n.alive {
			if len(n.adj) != 0 {
				return fmt.Errorf("absorbed node %d still has %d edges: %w", n.id, len(n.adj), util.ErrInvariantViolation)
			}
			continue
		}
		aliveNodes++
		if g.uf.Find(x) != x {
			return fmt.Errorf("live node %d is not a representative: %w", n.id, util.ErrInvariantViolation)
		}
		if n.weight < 0 {
			return fmt.Errorf("node %d has negative weight %v: %w", n.id, n.weight, util.ErrInvariantViolation)
		}

		var sum W
		seen := make(map[Index]struct{}, len(n.adj))
		for p, e := range n.adj {
			edge := &g.edges[e]
			if !edge.alive {
				return fmt.Errorf("node %d references dead edge %d: %w", n.id, edge.id, util.ErrInvariantViolation)
			}
			if edge.pos[edge.side(x)] != p {
				return fmt.Errorf("edge %d has a stale position at node %d: %w", edge.id, n.id, util.ErrInvariantViolation)
			}
			y := edge.other(x)
			if y == x {
				return fmt.Errorf("self-loop on node %d: %w", n.id, util.ErrInvariantViolation)
			}
			if _, dup := seen[y]; dup {
				return fmt.Errorf("parallel edges between %d and %d: %w", n.id, g.nodes[y].id, util.ErrInvariantViolation)
			}
			seen[y] = struct{}{}
			sum += edge.weight
		}
		adjEntries += len(n.adj)
		if !tol.Equal(sum, n.weight) {
			return fmt.Errorf("node %d weight %v, incident edges sum to %v: %w", n.id, n.weight, sum, util.ErrInvariantViolation)
		}

		count := 0
		for m := x; m != INVALID_INDEX; m = g.nodes[m].memberNext {
			count++
		}
		if count != n.memberCount {
			return fmt.Errorf("node %d member chain has %d entries, expected %d: %w", n.id, count, n.memberCount, util.ErrInvariantViolation)
		}
	}
	if aliveNodes != g.numAliveNodes {
		return fmt.Errorf("%d live nodes, counter says %d: %w", aliveNodes, g.numAliveNodes, util.ErrInvariantViolation)
	}
	if adjEntries != 2*g.numAliveEdges {
		return fmt.Errorf("%d adjacency entries for %d edges: %w", adjEntries, g.numAliveEdges, util.ErrInvariantViolation)
	}
	return nil
}
