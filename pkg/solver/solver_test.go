package solver

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/lintang-b-s/prmincut/pkg/graphio"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barbell(bridge float64) *graphio.EdgeList {
	el := graphio.NewEdgeList("barbell", 6)
	el.AddEdge(0, 1, 2)
	el.AddEdge(1, 2, 2)
	el.AddEdge(0, 2, 2)
	el.AddEdge(3, 4, 2)
	el.AddEdge(4, 5, 2)
	el.AddEdge(3, 5, 2)
	el.AddEdge(2, 3, bridge)
	return el
}

func defaultOptions() Options {
	return Options{MaxLevel: 4, Epsilon: 1e-9, Seed: 1, Oracle: util.ORACLE_PUSH_RELABEL, Verify: true}
}

func TestSolve(t *testing.T) {
	for _, oracle := range []string{util.ORACLE_PUSH_RELABEL, util.ORACLE_DINIC} {
		for maxLevel := 0; maxLevel <= 4; maxLevel++ {
			opts := defaultOptions()
			opts.Oracle = oracle
			opts.MaxLevel = maxLevel

			res, err := Solve(context.Background(), barbell(1.5), opts)
			require.NoError(t, err)
			assert.Equal(t, 1.5, res.Value)
			assert.True(t, res.Connected)
			assert.Equal(t, 1, res.Components)

			members := append([]uint32(nil), res.Members...)
			sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
			assert.Contains(t, [][]uint32{{0, 1, 2}, {3, 4, 5}}, members)
		}
	}
}

func TestSolveDisconnected(t *testing.T) {
	el := graphio.NewEdgeList("split", 4)
	el.AddEdge(0, 1, 1)
	el.AddEdge(2, 3, 1)

	res, err := Solve(context.Background(), el, defaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Value)
	assert.False(t, res.Connected)
	assert.Equal(t, 2, res.Components)
}

func TestSolveWithoutVerifyLeavesConnectivityUnset(t *testing.T) {
	opts := defaultOptions()
	opts.Verify = false

	res, err := Solve(context.Background(), barbell(1), opts)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Value)
	assert.False(t, res.Connected)
	assert.Equal(t, 0, res.Components)
}

func TestSolveCallback(t *testing.T) {
	opts := defaultOptions()
	opts.Cutoff = 100
	var values []float64
	opts.OnCut = func(name string, value float64, members []uint32) {
		assert.Equal(t, "barbell", name)
		values = append(values, value)
	}

	res, err := Solve(context.Background(), barbell(1), opts)
	require.NoError(t, err)
	require.NotEmpty(t, values)
	assert.Contains(t, values, res.Value)
	for _, v := range values {
		assert.GreaterOrEqual(t, v, res.Value)
	}
}

func TestSolveUnknownOracle(t *testing.T) {
	opts := defaultOptions()
	opts.Oracle = "simplex"
	_, err := Solve(context.Background(), barbell(1), opts)
	assert.True(t, errors.Is(err, util.ErrBadParamInput))
}

func TestSolveAll(t *testing.T) {
	graphs := []*graphio.EdgeList{barbell(1), barbell(3), barbell(0.5), barbell(7)}
	var mu sync.Mutex
	calls := 0
	opts := defaultOptions()
	opts.Cutoff = 0.75
	opts.OnCut = func(string, float64, []uint32) {
		mu.Lock()
		calls++
		mu.Unlock()
	}

	results := SolveAll(context.Background(), graphs, opts, 3)
	require.Len(t, results, 4)
	expected := []float64{1, 3, 0.5, 4}
	for i, res := range results {
		require.NoError(t, res.Err)
		assert.Equal(t, expected[i], res.Value, "graph %d", i)
	}
	assert.Greater(t, calls, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts.MaxLevel = 0
	results = SolveAll(ctx, []*graphio.EdgeList{barbell(1)}, opts, 1)
	assert.True(t, errors.Is(results[0].Err, context.Canceled))
}
