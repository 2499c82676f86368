package verify

import (
	"errors"
	"sort"

	"github.com/lintang-b-s/prmincut/pkg/graphio"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var (
	ErrInvalidSide = errors.New("verify: invalid cut side")
	ErrCutMismatch = errors.New("verify: reported cut value does not match the graph")
)

// Checker recomputes cut weights on a gonum copy of the input graph, independently of the min cut engine.
type Checker struct {
	g *simple.WeightedUndirectedGraph
	n int
}

func NewChecker(el *graphio.EdgeList) *Checker {
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < el.NumNodes; i++ {
		g.AddNode(simple.Node(int64(i)))
	}
	for _, e := range el.Edges {
		u, v := int64(e.U), int64(e.V)
		w := e.Weight
		if old := g.WeightedEdge(u, v); old != nil {
			w += old.Weight()
		}
		g.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(u), T: simple.Node(v), W: w})
	}
	return &Checker{g: g, n: el.NumNodes}
}

// CutWeight returns the total weight of the edges with exactly one end in side.
func (c *Checker) CutWeight(side []uint32) (float64, error) {
	if len(side) == 0 || len(side) >= c.n {
		return 0, util.WrapErrorf(nil, ErrInvalidSide, "side of %d nodes in a graph of %d nodes", len(side), c.n)
	}
	in := make(map[int64]bool, len(side))
	for _, x := range side {
		if int(x) >= c.n {
			return 0, util.WrapErrorf(nil, ErrInvalidSide, "node %d out of range", x)
		}
		if in[int64(x)] {
			return 0, util.WrapErrorf(nil, ErrInvalidSide, "node %d listed twice", x)
		}
		in[int64(x)] = true
	}

	var weight float64
	for u := range in {
		to := c.g.From(u)
		for to.Next() {
			v := to.Node().ID()
			if !in[v] {
				weight += c.g.WeightedEdge(u, v).Weight()
			}
		}
	}
	return weight, nil
}

// CheckCut fails unless side is a proper non-empty node set whose cut weighs value within eps.
func (c *Checker) CheckCut(value float64, side []uint32, eps float64) error {
	weight, err := c.CutWeight(side)
	if err != nil {
		return err
	}
	if !numeric.NewTolerance(eps).Equal(weight, value) {
		return util.WrapErrorf(nil, ErrCutMismatch, "reported %v, recomputed %v", value, weight)
	}
	return nil
}

// Components returns the connected components of the graph, each sorted, ordered by smallest node.
func (c *Checker) Components() [][]uint32 {
	ccs := topo.ConnectedComponents(c.g)
	components := make([][]uint32, 0, len(ccs))
	for _, cc := range ccs {
		comp := make([]uint32, 0, len(cc))
		for _, node := range cc {
			comp = append(comp, uint32(node.ID()))
		}
		sort.Slice(comp, func(i, j int) bool { return comp[i] < comp[j] })
		components = append(components, comp)
	}
	sort.Slice(components, func(i, j int) bool { return components[i][0] < components[j][0] })
	return components
}
