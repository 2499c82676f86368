package graphio

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/prmincut/pkg/util"
	"golang.org/x/sync/errgroup"
)

const (
	BZIP2_SUFFIX = ".bz2"

	MAX_PREALLOCATED_EDGES = 1 << 20
)

var ErrMalformedGraph = errors.New("graphio: malformed graph file")

type Edge struct {
	U      uint32
	V      uint32
	Weight float64
}

// EdgeList. undirected weighted graph over the nodes 0..NumNodes-1.
type EdgeList struct {
	Name     string
	NumNodes int
	Edges    []Edge
}

func NewEdgeList(name string, numNodes int) *EdgeList {
	return &EdgeList{Name: name, NumNodes: numNodes, Edges: make([]Edge, 0)}
}

func (el *EdgeList) AddEdge(u, v uint32, w float64) {
	el.Edges = append(el.Edges, Edge{U: u, V: v, Weight: w})
}

/*
Read parses a graph in the format

	n m
	u v w   (m lines, 0 <= u, v < n, w >= 0)

blank lines and lines starting with '#' or 'c' are skipped.
*/
func Read(r io.Reader, name string) (*EdgeList, error) {
	br := bufio.NewReader(r)
	lineNo := 0

	nextLine := func() ([]string, error) {
		for {
			line, err := br.ReadString('\n')
			if err != nil && !(errors.Is(err, io.EOF) && line != "") {
				return nil, err
			}
			lineNo++
			line = strings.TrimSpace(line)
			if line == "" || line[0] == '#' || line[0] == 'c' {
				continue
			}
			return strings.Fields(line), nil
		}
	}
	malformed := func(format string, a ...interface{}) error {
		return util.WrapErrorf(nil, ErrMalformedGraph, "%s line %d: %s", name, lineNo, fmt.Sprintf(format, a...))
	}

	header, err := nextLine()
	if err != nil {
		return nil, util.WrapErrorf(err, ErrMalformedGraph, "%s: missing header", name)
	}
	if len(header) != 2 {
		return nil, malformed("header must be \"n m\", got %q", strings.Join(header, " "))
	}
	n, err := strconv.ParseUint(header[0], 10, 32)
	if err != nil {
		return nil, malformed("node count %q", header[0])
	}
	m, err := strconv.ParseUint(header[1], 10, 32)
	if err != nil {
		return nil, malformed("edge count %q", header[1])
	}

	el := NewEdgeList(name, int(n))
	// the header is not trusted for the allocation, a short file fails below
	el.Edges = make([]Edge, 0, min(m, MAX_PREALLOCATED_EDGES))
	for i := uint64(0); i < m; i++ {
		tokens, err := nextLine()
		if errors.Is(err, io.EOF) {
			return nil, util.WrapErrorf(err, ErrMalformedGraph, "%s: expected %d edges, found %d", name, m, i)
		}
		if err != nil {
			return nil, err
		}
		if len(tokens) != 3 {
			return nil, malformed("edge must be \"u v w\", got %q", strings.Join(tokens, " "))
		}
		u, err := strconv.ParseUint(tokens[0], 10, 32)
		if err != nil || u >= n {
			return nil, malformed("node %q out of range [0, %d)", tokens[0], n)
		}
		v, err := strconv.ParseUint(tokens[1], 10, 32)
		if err != nil || v >= n {
			return nil, malformed("node %q out of range [0, %d)", tokens[1], n)
		}
		if u == v {
			return nil, malformed("self-loop on node %d", u)
		}
		w, err := strconv.ParseFloat(tokens[2], 64)
		if err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, malformed("weight %q must be a finite non-negative number", tokens[2])
		}
		el.AddEdge(uint32(u), uint32(v), w)
	}
	return el, nil
}

// ReadFile reads a graph file, bzip2 compressed if its name ends in .bz2.
func ReadFile(filename string) (*EdgeList, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, BZIP2_SUFFIX) {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}
	return Read(r, filename)
}

// ReadAll reads every file concurrently. the first error cancels the rest.
func ReadAll(ctx context.Context, filenames []string) ([]*EdgeList, error) {
	graphs := make([]*EdgeList, len(filenames))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, filename := range filenames {
		i, filename := i, filename
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			el, err := ReadFile(filename)
			if err != nil {
				return err
			}
			graphs[i] = el
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return graphs, nil
}

func Write(w io.Writer, el *EdgeList) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d\n", el.NumNodes, len(el.Edges))
	for _, e := range el.Edges {
		weightF := strconv.FormatFloat(e.Weight, 'f', -1, 64)
		fmt.Fprintf(bw, "%d %d %s\n", e.U, e.V, weightF)
	}
	return bw.Flush()
}

// WriteFile writes el to filename, bzip2 compressed if its name ends in .bz2.
func WriteFile(filename string, el *EdgeList) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	if !strings.HasSuffix(filename, BZIP2_SUFFIX) {
		return Write(f, el)
	}

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	if err := Write(bz, el); err != nil {
		bz.Close()
		return err
	}
	return bz.Close()
}
