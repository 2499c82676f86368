package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/lintang-b-s/prmincut/pkg/graphio"
	log "github.com/lintang-b-s/prmincut/pkg/logger"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
	"github.com/lintang-b-s/prmincut/pkg/solver"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"go.uber.org/zap"
)

var (
	epsilon = flag.Float64("epsilon", 1e-9, "absolute tolerance of weight comparisons")
	seed    = flag.Uint64("seed", 1, "seed of the source node choice")
	output  = flag.String("out", "levels.csv", "csv output file")
)

// cutsAgree compares two cut values of a graph with numEdges edges. contraction orders differ between runs,
// so the sums may differ in the last bits.
func cutsAgree(reference, value, epsilon float64, numEdges int) bool {
	return numeric.NewTolerance(epsilon * float64(numEdges+1)).Equal(reference, value)
}

// compares every test level and oracle on the given graph files, all runs must agree on the cut value.
func main() {
	flag.Parse()
	logger, err := log.New()
	if err != nil {
		panic(err)
	}

	graphs, err := graphio.ReadAll(context.Background(), flag.Args())
	if err != nil {
		panic(err)
	}

	f, err := os.Create(*output)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"graph", "nodes", "edges", "oracle", "max_level", "value", "oracle_calls"}
	for level := 0; level <= 4; level++ {
		header = append(header, fmt.Sprintf("contractions_l%d", level))
	}
	header = append(header, "elapsed_ms")
	if err := w.Write(header); err != nil {
		panic(err)
	}

	for _, el := range graphs {
		var reference *float64
		for _, oracle := range []string{util.ORACLE_PUSH_RELABEL, util.ORACLE_DINIC} {
			for level := 0; level <= 4; level++ {
				res, err := solver.Solve(context.Background(), el, solver.Options{
					MaxLevel: level,
					Epsilon:  *epsilon,
					Seed:     *seed,
					Oracle:   oracle,
					Verify:   true,
				})
				if err != nil {
					logger.Fatal("solve", zap.String("graph", el.Name), zap.Error(err))
				}
				if reference == nil {
					reference = &res.Value
				} else if !cutsAgree(*reference, res.Value, *epsilon, len(el.Edges)) {
					logger.Error("cut values differ", zap.String("graph", el.Name),
						zap.Float64("expected", *reference), zap.Float64("got", res.Value),
						zap.String("oracle", oracle), zap.Int("max_level", level))
				}

				row := []string{el.Name, strconv.Itoa(res.NumNodes), strconv.Itoa(res.NumEdges), oracle,
					strconv.Itoa(level), strconv.FormatFloat(res.Value, 'g', -1, 64),
					strconv.Itoa(res.Stats.OracleCalls)}
				for _, c := range res.Stats.Contractions {
					row = append(row, strconv.Itoa(c))
				}
				row = append(row, strconv.FormatInt(res.Elapsed.Milliseconds(), 10))
				if err := w.Write(row); err != nil {
					panic(err)
				}
			}
		}
		logger.Info("evaluated", zap.String("graph", el.Name))
	}
}
