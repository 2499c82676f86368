package maxflow

import (
	"context"
	"errors"
	"testing"

	da "github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func oracles() map[string]Oracle[int64] {
	return map[string]Oracle[int64]{
		"push_relabel": NewPushRelabel[int64](0),
		"dinic":        NewDinicMaxFlow[int64](0),
	}
}

func TestMinSTCutDirected(t *testing.T) {
	testCases := []struct {
		name     string
		n        int
		arcs     [][3]int64
		s, t     da.Index
		expected int64
	}{
		{
			name:     "single arc",
			n:        2,
			arcs:     [][3]int64{{0, 1, 7}},
			s:        0,
			t:        1,
			expected: 7,
		},
		{
			name:     "linear chain",
			n:        4,
			arcs:     [][3]int64{{0, 1, 10}, {1, 2, 5}, {2, 3, 10}},
			s:        0,
			t:        3,
			expected: 5,
		},
		{
			name:     "diamond",
			n:        4,
			arcs:     [][3]int64{{0, 1, 10}, {0, 2, 10}, {1, 3, 10}, {2, 3, 10}},
			s:        0,
			t:        3,
			expected: 20,
		},
		{
			name:     "S A B C T",
			n:        5,
			arcs:     [][3]int64{{0, 1, 2}, {0, 2, 1}, {1, 3, 1}, {2, 3, 1}, {3, 4, 2}},
			s:        0,
			t:        4,
			expected: 2,
		},
		{
			name:     "unreachable sink",
			n:        3,
			arcs:     [][3]int64{{0, 1, 3}},
			s:        0,
			t:        2,
			expected: 0,
		},
	}

	for name, oracle := range oracles() {
		for _, tt := range testCases {
			t.Run(name+"/"+tt.name, func(t *testing.T) {
				net := NewFlowNetwork[int64](tt.n)
				for _, a := range tt.arcs {
					net.addArc(da.Index(a[0]), da.Index(a[1]), a[2])
				}
				cut, err := oracle.MinSTCut(context.Background(), net, tt.s, tt.t)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, cut.GetMinCut())
				assert.True(t, cut.GetFlag(tt.s))
				assert.False(t, cut.GetFlag(tt.t))
			})
		}
	}
}

func TestMinSTCutUndirectedBarbell(t *testing.T) {
	// triangles {0,1,2} and {3,4,5} joined by 2-3
	edges := [][3]int64{{0, 1, 1}, {1, 2, 1}, {0, 2, 1}, {3, 4, 1}, {4, 5, 1}, {3, 5, 1}, {2, 3, 1}}
	for name, oracle := range oracles() {
		t.Run(name, func(t *testing.T) {
			net := NewFlowNetwork[int64](6)
			for _, e := range edges {
				net.AddEdge(da.Index(e[0]), da.Index(e[1]), e[2])
			}
			assert.Equal(t, 14, net.NumberOfArcs())
			// 4 and 5 are both three hops away, 4 is found first
			assert.Equal(t, da.Index(4), net.FarthestFrom(0))

			cut, err := oracle.MinSTCut(context.Background(), net, 0, 5)
			require.NoError(t, err)
			assert.Equal(t, int64(1), cut.GetMinCut())
			assert.Equal(t, []bool{true, true, true, false, false, false}, cut.GetFlags())
			assert.Equal(t, 3, cut.GetNumNodesInPartitionTwo())
		})
	}
}

func TestMinSTCutReusesNetwork(t *testing.T) {
	edges := [][3]int64{{0, 1, 4}, {1, 3, 2}, {0, 2, 3}, {2, 3, 5}, {1, 2, 1}}
	for name, oracle := range oracles() {
		t.Run(name, func(t *testing.T) {
			net := NewFlowNetwork[int64](4)
			for _, e := range edges {
				net.AddEdge(da.Index(e[0]), da.Index(e[1]), e[2])
			}
			for round := 0; round < 3; round++ {
				cut, err := oracle.MinSTCut(context.Background(), net, 0, 3)
				require.NoError(t, err)
				assert.Equal(t, int64(6), cut.GetMinCut(), "round %d", round)
			}
			cut, err := oracle.MinSTCut(context.Background(), net, 3, 0)
			require.NoError(t, err)
			assert.Equal(t, int64(6), cut.GetMinCut())
		})
	}
}

func TestMinSTCutErrors(t *testing.T) {
	net := NewFlowNetwork[int64](3)
	net.AddEdge(0, 1, 1)
	for name, oracle := range oracles() {
		t.Run(name, func(t *testing.T) {
			_, err := oracle.MinSTCut(context.Background(), net, 1, 1)
			assert.True(t, errors.Is(err, ErrSourceEqualsSink))
			_, err = oracle.MinSTCut(context.Background(), net, 0, 9)
			assert.True(t, errors.Is(err, ErrNodeOutOfRange))
		})
	}
}

// bruteForceSTCut enumerates every bipartition with s on one side and t on the other.
func bruteForceSTCut(n int, edges [][3]int64, s, t int) int64 {
	best := int64(-1)
	for mask := 0; mask < 1<<n; mask++ {
		if mask&(1<<s) == 0 || mask&(1<<t) != 0 {
			continue
		}
		var value int64
		for _, e := range edges {
			inU := mask&(1<<e[0]) != 0
			inV := mask&(1<<e[1]) != 0
			if inU != inV {
				value += e[2]
			}
		}
		if best < 0 || value < best {
			best = value
		}
	}
	return best
}

func TestMinSTCutRandomAgainstBruteForce(t *testing.T) {
	rd := rand.New(rand.NewSource(42))
	for round := 0; round < 60; round++ {
		n := 2 + rd.Intn(9)
		edges := make([][3]int64, 0)
		for u := 0; u < n; u++ {
			for v := u + 1; v < n; v++ {
				if rd.Float64() < 0.5 {
					edges = append(edges, [3]int64{int64(u), int64(v), int64(1 + rd.Intn(9))})
				}
			}
		}
		s := rd.Intn(n)
		tt := rd.Intn(n)
		if s == tt {
			continue
		}
		expected := bruteForceSTCut(n, edges, s, tt)

		for name, oracle := range oracles() {
			net := NewFlowNetwork[int64](n)
			for _, e := range edges {
				net.AddEdge(da.Index(e[0]), da.Index(e[1]), e[2])
			}
			cut, err := oracle.MinSTCut(context.Background(), net, da.Index(s), da.Index(tt))
			require.NoError(t, err)
			assert.Equal(t, expected, cut.GetMinCut(), "%s round %d", name, round)
			assert.True(t, cut.GetFlag(da.Index(s)))
			assert.False(t, cut.GetFlag(da.Index(tt)))
		}
	}
}

func TestMinSTCutFloat(t *testing.T) {
	net := NewFlowNetwork[float64](4)
	net.AddEdge(0, 1, 0.5)
	net.AddEdge(1, 3, 0.25)
	net.AddEdge(0, 2, 1.5)
	net.AddEdge(2, 3, 0.125)

	pr, err := NewPushRelabel(1e-12).MinSTCut(context.Background(), net, 0, 3)
	require.NoError(t, err)
	// the second oracle starts from the capacities, not from the residuals left by the first
	dn, err := NewDinicMaxFlow(1e-12).MinSTCut(context.Background(), net, 0, 3)
	require.NoError(t, err)

	assert.InDelta(t, 0.375, pr.GetMinCut(), 1e-12)
	assert.InDelta(t, 0.375, dn.GetMinCut(), 1e-12)
}

func TestMinSTCutCanceled(t *testing.T) {
	n := 200
	net := NewFlowNetwork[int64](n)
	for i := 0; i+1 < n; i++ {
		net.AddEdge(da.Index(i), da.Index(i+1), 1)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDinicMaxFlow[int64](0).MinSTCut(ctx, net, 0, da.Index(n-1))
	assert.True(t, errors.Is(err, context.Canceled))
}
