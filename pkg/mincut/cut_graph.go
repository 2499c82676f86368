package mincut

import (
	"time"

	da "github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/lintang-b-s/prmincut/pkg/maxflow"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/time/rate"
)

const (
	MAX_LEVEL = da.NUM_LEVELS - 1
)

// RandomSource picks the source node of every oracle call.
type RandomSource interface {
	Intn(n int) int
}

type globalRandom struct{}

func (globalRandom) Intn(n int) int {
	return rand.Intn(n)
}

type Stats struct {
	OracleCalls        int
	OracleContractions int
	Contractions       [da.NUM_LEVELS]int // padberg-rinaldi contractions per level
	Tests              [da.NUM_LEVELS]int // nodes tested per level
	Improvements       int
}

/*
CutGraph. global minimum cut of an undirected graph with non-negative edge weights.

the graph is built with AddNode and AddEdge, then Run shrinks it with the padberg-rinaldi tests and contracts
min s-t cuts found by the oracle until at most two nodes are left. Run can only be called once.
*/
type CutGraph[W numeric.Weight] struct {
	graph    *da.ShrinkableGraph[W]
	buckets  *da.LevelBuckets
	tol      numeric.Tolerance[W]
	reporter *cutReporter[W]

	oracle maxflow.Oracle[W]
	rnd    RandomSource
	logger *zap.Logger

	progress rate.Sometimes

	nodeCount int
	edgeCount int
	addedEdge int
	ran       bool
	stats     Stats
}

type Option[W numeric.Weight] func(cg *CutGraph[W])

// WithEpsilon sets the absolute tolerance of every weight comparison.
func WithEpsilon[W numeric.Weight](eps W) Option[W] {
	return func(cg *CutGraph[W]) {
		cg.tol = numeric.NewTolerance(eps)
	}
}

// WithUpperBound only cuts strictly lighter than bound are recorded.
func WithUpperBound[W numeric.Weight](bound W) Option[W] {
	return func(cg *CutGraph[W]) {
		cg.reporter.bestValue = bound
	}
}

func WithOracle[W numeric.Weight](oracle maxflow.Oracle[W]) Option[W] {
	return func(cg *CutGraph[W]) {
		cg.oracle = oracle
	}
}

func WithRandomSource[W numeric.Weight](rnd RandomSource) Option[W] {
	return func(cg *CutGraph[W]) {
		cg.rnd = rnd
	}
}

func WithLogger[W numeric.Weight](logger *zap.Logger) Option[W] {
	return func(cg *CutGraph[W]) {
		cg.logger = logger
	}
}

// WithCallback calls fn with every cut lighter than cutoff that the run finds.
func WithCallback[W numeric.Weight](cutoff W, userParam any, fn CutCallback[W]) Option[W] {
	return func(cg *CutGraph[W]) {
		cg.reporter.cutoff = cutoff
		cg.reporter.userParam = userParam
		cg.reporter.callback = fn
	}
}

// NewCutGraph returns an empty graph that accepts up to nodeCount nodes and edgeCount edges.
func NewCutGraph[W numeric.Weight](nodeCount, edgeCount int, opts ...Option[W]) *CutGraph[W] {
	cg := &CutGraph[W]{
		graph:     da.NewShrinkableGraph[W](nodeCount, edgeCount),
		reporter:  newCutReporter(numeric.Infinity[W](), nodeCount),
		rnd:       globalRandom{},
		logger:    zap.NewNop(),
		progress:  rate.Sometimes{First: 1, Interval: time.Second},
		nodeCount: nodeCount,
		edgeCount: edgeCount,
	}
	for _, opt := range opts {
		opt(cg)
	}
	if cg.oracle == nil {
		cg.oracle = maxflow.NewPushRelabel(cg.tol.Eps)
	}
	return cg
}

func (cg *CutGraph[W]) AddNode(id uint32) (da.NodeHandle, error) {
	if cg.ran {
		return da.NodeHandle{}, util.WrapErrorf(nil, ErrInvariantViolation, "add node %d after run", id)
	}
	if cg.graph.NumberOfOriginalVertices() >= cg.nodeCount {
		return da.NodeHandle{}, util.WrapErrorf(nil, ErrInvariantViolation,
			"add node %d: graph was created for %d nodes", id, cg.nodeCount)
	}
	x, err := cg.graph.AddNode(id)
	if err != nil {
		return da.NodeHandle{}, err
	}
	return cg.graph.Handle(x), nil
}

func (cg *CutGraph[W]) AddEdge(id uint32, u, v da.NodeHandle, w W) error {
	if cg.ran {
		return util.WrapErrorf(nil, ErrInvariantViolation, "add edge %d after run", id)
	}
	if cg.addedEdge >= cg.edgeCount {
		return util.WrapErrorf(nil, ErrInvariantViolation,
			"add edge %d: graph was created for %d edges", id, cg.edgeCount)
	}
	ux, err := cg.graph.Resolve(u)
	if err != nil {
		return err
	}
	vx, err := cg.graph.Resolve(v)
	if err != nil {
		return err
	}
	if err := cg.graph.AddEdge(id, ux, vx, w); err != nil {
		return err
	}
	cg.addedEdge++
	return nil
}

// AddEdgeBetween adds an edge between the nodes with the given ids.
func (cg *CutGraph[W]) AddEdgeBetween(id, uID, vID uint32, w W) error {
	ux, ok := cg.graph.Lookup(uID)
	if !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d: unknown node id %d", id, uID)
	}
	vx, ok := cg.graph.Lookup(vID)
	if !ok {
		return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d: unknown node id %d", id, vID)
	}
	return cg.AddEdge(id, cg.graph.Handle(ux), cg.graph.Handle(vx), w)
}

// BestCutValue returns the weight of the lightest cut found, or the upper bound if none was found.
func (cg *CutGraph[W]) BestCutValue() W {
	return cg.reporter.bestValue
}

// BestCutMembers returns the original ids of one side of the best cut.
func (cg *CutGraph[W]) BestCutMembers() []uint32 {
	members := make([]uint32, len(cg.reporter.members))
	copy(members, cg.reporter.members)
	return members
}

func (cg *CutGraph[W]) BestCutSize() int {
	return len(cg.reporter.members)
}

func (cg *CutGraph[W]) Stats() Stats {
	return cg.stats
}

func (cg *CutGraph[W]) NumberOfVertices() int {
	return cg.graph.NumberOfOriginalVertices()
}

func (cg *CutGraph[W]) NumberOfEdges() int {
	return cg.addedEdge
}
