package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/lintang-b-s/prmincut/pkg/graphio"
	"github.com/lintang-b-s/prmincut/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	numGraphs = flag.Int("graphs", 10, "number of graphs to generate")
	numNodes  = flag.Int("nodes", 1000, "nodes per graph")
	degree    = flag.Float64("degree", 8, "average degree")
	maxWeight = flag.Int("max_weight", 100, "edge weights are drawn from 1..max_weight")
	clusters  = flag.Int("clusters", 2, "dense clusters joined by a few light edges, 1 for a uniform random graph")
	seed      = flag.Uint64("seed", 1, "random seed")
	outDir    = flag.String("out", "./data", "output directory")
	compress  = flag.Bool("bz2", true, "write bzip2 compressed files")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	rd := rand.New(rand.NewSource(*seed))
	for i := 0; i < *numGraphs; i++ {
		el := generate(rd, *numNodes, *degree, *maxWeight, *clusters)
		name := fmt.Sprintf("random_%d_%d.graph", *numNodes, i)
		if *compress {
			name += graphio.BZIP2_SUFFIX
		}
		path := filepath.Join(*outDir, name)
		if err := graphio.WriteFile(path, el); err != nil {
			panic(err)
		}
		logger.Info("graph written", zap.String("file", path), zap.Int("edges", len(el.Edges)))
	}
}

// generate draws a random graph whose nodes are split into clusters. edges inside a cluster are heavy, a
// handful of light edges connect consecutive clusters so the min cut is likely between two of them.
func generate(rd *rand.Rand, n int, degree float64, maxWeight, clusters int) *graphio.EdgeList {
	el := graphio.NewEdgeList("", n)
	if clusters < 1 {
		clusters = 1
	}
	size := (n + clusters - 1) / clusters
	if size < 2 {
		return el
	}

	m := int(degree * float64(n) / 2)
	for e := 0; e < m; e++ {
		c := rd.Intn(clusters)
		lo := c * size
		hi := lo + size
		if hi > n {
			hi = n
		}
		if hi-lo < 2 {
			continue
		}
		u := lo + rd.Intn(hi-lo)
		v := lo + rd.Intn(hi-lo)
		if u == v {
			continue
		}
		el.AddEdge(uint32(u), uint32(v), float64(1+rd.Intn(maxWeight)))
	}

	for c := 0; c+1 < clusters; c++ {
		next := (c + 1) * size
		if next >= n {
			break
		}
		for k := 0; k < 2; k++ {
			u := c*size + rd.Intn(size)
			v := next + rd.Intn(size)
			if v >= n {
				v = n - 1
			}
			el.AddEdge(uint32(u), uint32(v), float64(1+rd.Intn(maxWeight)/10))
		}
	}
	return el
}
