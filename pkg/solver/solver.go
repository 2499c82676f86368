package solver

import (
	"context"
	"time"

	"github.com/lintang-b-s/prmincut/pkg/concurrent"
	"github.com/lintang-b-s/prmincut/pkg/graphio"
	"github.com/lintang-b-s/prmincut/pkg/maxflow"
	"github.com/lintang-b-s/prmincut/pkg/mincut"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"github.com/lintang-b-s/prmincut/pkg/verify"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

type Options struct {
	MaxLevel int
	Epsilon  float64
	Seed     uint64
	Oracle   string
	Cutoff   float64 // cuts lighter than this are passed to OnCut, 0 disables
	Verify   bool
	Logger   *zap.Logger

	OnCut func(name string, value float64, members []uint32)
}

func OptionsFromConfig(cfg *util.Config, logger *zap.Logger) Options {
	return Options{
		MaxLevel: cfg.MaxLevel,
		Epsilon:  cfg.Epsilon,
		Seed:     cfg.Seed,
		Oracle:   cfg.Oracle,
		Cutoff:   cfg.Cutoff,
		Verify:   cfg.Verify,
		Logger:   logger,
	}
}

type Result struct {
	Name     string
	NumNodes int
	NumEdges int
	Value    float64
	Members  []uint32
	// Components and Connected are only computed with Options.Verify.
	Components int
	Connected  bool
	Stats      mincut.Stats
	Elapsed    time.Duration
	Err        error
}

func newOracle(name string, eps float64) (maxflow.Oracle[float64], error) {
	switch name {
	case util.ORACLE_PUSH_RELABEL, "":
		return maxflow.NewPushRelabel(eps), nil
	case util.ORACLE_DINIC:
		return maxflow.NewDinicMaxFlow(eps), nil
	}
	return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown oracle %q", name)
}

// Solve computes the minimum cut of el.
func Solve(ctx context.Context, el *graphio.EdgeList, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	oracle, err := newOracle(opts.Oracle, opts.Epsilon)
	if err != nil {
		return nil, err
	}

	cgOpts := []mincut.Option[float64]{
		mincut.WithEpsilon(opts.Epsilon),
		mincut.WithOracle(oracle),
		mincut.WithRandomSource[float64](rand.New(rand.NewSource(opts.Seed))),
		mincut.WithLogger[float64](logger.With(zap.String("graph", el.Name))),
	}
	if opts.OnCut != nil && opts.Cutoff > 0 {
		cgOpts = append(cgOpts, mincut.WithCallback(opts.Cutoff, any(el.Name),
			func(value float64, members []uint32, userParam any) error {
				opts.OnCut(userParam.(string), value, members)
				return nil
			}))
	}

	cg := mincut.NewCutGraph(el.NumNodes, len(el.Edges), cgOpts...)
	for i := 0; i < el.NumNodes; i++ {
		if _, err := cg.AddNode(uint32(i)); err != nil {
			return nil, err
		}
	}
	for i, e := range el.Edges {
		if err := cg.AddEdgeBetween(uint32(i), e.U, e.V, e.Weight); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	if err := cg.Run(ctx, opts.MaxLevel); err != nil {
		return nil, err
	}
	res := &Result{
		Name:      el.Name,
		NumNodes:  el.NumNodes,
		NumEdges:  len(el.Edges),
		Value:     cg.BestCutValue(),
		Members:   cg.BestCutMembers(),
		Stats:     cg.Stats(),
		Elapsed:   time.Since(start),
	}

	if opts.Verify {
		checker := verify.NewChecker(el)
		components := checker.Components()
		res.Components = len(components)
		res.Connected = len(components) <= 1
		tol := numeric.NewTolerance(opts.Epsilon * float64(len(el.Edges)+1))
		if len(res.Members) > 0 {
			if err := checker.CheckCut(res.Value, res.Members, tol.Eps); err != nil {
				return nil, err
			}
		}
		if !res.Connected && !tol.IsZero(res.Value) {
			return nil, util.WrapErrorf(nil, verify.ErrCutMismatch,
				"%s has %d components but the reported min cut is %v", el.Name, res.Components, res.Value)
		}
		logger.Debug("min cut verified",
			zap.String("graph", el.Name),
			zap.Int("components", res.Components))
	}

	logger.Info("min cut computed",
		zap.String("graph", el.Name),
		zap.Float64("value", res.Value),
		zap.Int("size", len(res.Members)),
		zap.Int("oracle_calls", res.Stats.OracleCalls),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// SolveAll solves every graph on a pool of workers. the i-th result belongs to graphs[i], a failed graph
// has Err set.
func SolveAll(ctx context.Context, graphs []*graphio.EdgeList, opts Options, workers int) []*Result {
	return concurrent.Map(workers, graphs, func(el *graphio.EdgeList) *Result {
		res, err := Solve(ctx, el, opts)
		if err != nil {
			return &Result{Name: el.Name, NumNodes: el.NumNodes, NumEdges: len(el.Edges), Err: err}
		}
		return res
	})
}
