package graphio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	input := `# barbell
c two triangles
6 7
0 1 1
1 2 1
0 2 1

3 4 1
4 5 1
3 5 1
2 3 0.5`

	el, err := Read(strings.NewReader(input), "barbell")
	require.NoError(t, err)
	assert.Equal(t, "barbell", el.Name)
	assert.Equal(t, 6, el.NumNodes)
	require.Len(t, el.Edges, 7)
	assert.Equal(t, Edge{U: 2, V: 3, Weight: 0.5}, el.Edges[6])
}

func TestReadMalformed(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		msg   string
	}{
		{"empty", "", "missing header"},
		{"header", "3\n", "line 1"},
		{"node count", "x 1\n", "node count"},
		{"short edge", "3 1\n0 1\n", "line 2"},
		{"node range", "3 1\n0 3 1\n", "out of range"},
		{"self-loop", "3 1\n1 1 1\n", "self-loop"},
		{"negative weight", "3 1\n0 1 -2\n", "non-negative"},
		{"nan weight", "3 1\n0 1 NaN\n", "finite non-negative"},
		{"infinite weight", "3 1\n0 1 +Inf\n", "finite non-negative"},
		{"negative infinite weight", "3 1\n0 1 -Inf\n", "finite non-negative"},
		{"missing edges", "3 2\n0 1 1\n", "expected 2 edges, found 1"},
		{"oversized edge count", "2 4294967295\n0 1 1\n", "expected 4294967295 edges, found 1"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), "g")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedGraph))
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestWriteFileReadFile(t *testing.T) {
	el := NewEdgeList("", 4)
	el.AddEdge(0, 1, 2.5)
	el.AddEdge(1, 2, 1)
	el.AddEdge(2, 3, 0.125)

	dir := t.TempDir()
	for _, name := range []string{"g.txt", "g.txt.bz2"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteFile(path, el))

		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, path, got.Name)
		assert.Equal(t, el.NumNodes, got.NumNodes)
		assert.Equal(t, el.Edges, got.Edges)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "g.txt.bz2"))
	require.NoError(t, err)
	assert.Equal(t, "BZh", string(raw[:3]))
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 0)
	for i := 2; i <= 5; i++ {
		el := NewEdgeList("", i)
		for u := 0; u+1 < i; u++ {
			el.AddEdge(uint32(u), uint32(u+1), 1)
		}
		path := filepath.Join(dir, "path"+string(rune('0'+i))+".txt")
		require.NoError(t, WriteFile(path, el))
		paths = append(paths, path)
	}

	graphs, err := ReadAll(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, graphs, 4)
	for i, g := range graphs {
		assert.Equal(t, paths[i], g.Name)
		assert.Equal(t, i+2, g.NumNodes)
		assert.Len(t, g.Edges, i+1)
	}

	_, err = ReadAll(context.Background(), append(paths, filepath.Join(dir, "absent.txt")))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
