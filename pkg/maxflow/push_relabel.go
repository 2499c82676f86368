package maxflow

import (
	"context"

	"github.com/lintang-b-s/prmincut/pkg/datastructure"
	"github.com/lintang-b-s/prmincut/pkg/numeric"
)

/*
PushRelabel. fifo preflow push-relabel with the gap heuristic and periodic global relabeling.

only the first phase runs: a node stops being active once its distance label reaches n. after that phase the
nodes that still reach t in the residual network form the sink side, a final global relabel assigns label n to
every other node, and "label >= n" is the source side flag.

[A New Approach to the Maximum Flow Problem, Goldberg & Tarjan]
*/
type PushRelabel[W numeric.Weight] struct {
	eps W

	net      *FlowNetwork[W]
	n        int
	label    []int
	excess   []W
	current  []int
	count    []int // number of nodes per label below n
	inQueue  []bool
	queue    []datastructure.Index
	relabels int
}

func NewPushRelabel[W numeric.Weight](eps W) *PushRelabel[W] {
	return &PushRelabel[W]{eps: eps}
}

func (pr *PushRelabel[W]) MinSTCut(ctx context.Context, net *FlowNetwork[W], s, t datastructure.Index) (*MinCut[W], error) {
	if err := validateTerminals(net, s, t); err != nil {
		return nil, err
	}
	net.Reset()
	pr.init(net)
	defer func() {
		pr.net = nil
	}()

	pr.globalRelabel(s, t)

	for i := range net.adj[s] {
		e := &net.adj[s][i]
		if e.residual <= 0 {
			continue
		}
		amount := e.residual
		net.push(s, i, amount)
		pr.excess[e.to] += amount
		pr.enqueue(e.to, s, t)
	}

	pops := 0
	for head := 0; head < len(pr.queue); head++ {
		pops++
		if pops%pr.n == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		u := pr.queue[head]
		pr.inQueue[u] = false
		pr.discharge(u, s, t)

		if pr.relabels >= pr.n {
			pr.relabels = 0
			pr.globalRelabel(s, t)
			pr.queue = pr.queue[head+1:]
			head = -1
			// nodes dropped to label n by the relabel stay out of the queue
			for v := range pr.inQueue {
				x := datastructure.Index(v)
				if !pr.inQueue[v] && pr.excess[v] > 0 && x != s && x != t && pr.label[v] < pr.n {
					pr.inQueue[v] = true
					pr.queue = append(pr.queue, x)
				}
			}
		}
	}

	pr.globalRelabel(s, t)
	flags := make([]bool, pr.n)
	for u := range flags {
		flags[u] = pr.label[u] >= pr.n
	}
	return newMinCutFromFlags(net, flags), nil
}

func (pr *PushRelabel[W]) init(net *FlowNetwork[W]) {
	n := net.NumberOfVertices()
	pr.net = net
	pr.n = n
	pr.label = make([]int, n)
	pr.excess = make([]W, n)
	pr.current = make([]int, n)
	pr.count = make([]int, n+1)
	pr.inQueue = make([]bool, n)
	pr.queue = make([]datastructure.Index, 0, n)
	pr.relabels = 0
}

func (pr *PushRelabel[W]) enqueue(v, s, t datastructure.Index) {
	if v == s || v == t || pr.inQueue[v] || pr.label[v] >= pr.n || pr.excess[v] <= 0 {
		return
	}
	pr.inQueue[v] = true
	pr.queue = append(pr.queue, v)
}

// globalRelabel sets every label to the exact residual hop distance to t, or n if t is unreachable.
func (pr *PushRelabel[W]) globalRelabel(s, t datastructure.Index) {
	for v := range pr.label {
		pr.label[v] = pr.n
		pr.current[v] = 0
	}
	for l := range pr.count {
		pr.count[l] = 0
	}

	pr.label[t] = 0
	pr.count[0] = 1
	bfs := make([]datastructure.Index, 0, pr.n)
	bfs = append(bfs, t)
	for head := 0; head < len(bfs); head++ {
		v := bfs[head]
		for i := range pr.net.adj[v] {
			e := &pr.net.adj[v][i]
			w := e.to
			// w can reach v if the arc w->v still has residual capacity
			if w == s || pr.label[w] < pr.n || pr.net.adj[w][e.rev].residual <= pr.eps {
				continue
			}
			pr.label[w] = pr.label[v] + 1
			pr.count[pr.label[w]]++
			bfs = append(bfs, w)
		}
	}
}

func (pr *PushRelabel[W]) discharge(u, s, t datastructure.Index) {
	for pr.excess[u] > 0 && pr.label[u] < pr.n {
		arcs := pr.net.adj[u]
		for pr.current[u] < len(arcs) && pr.excess[u] > 0 {
			i := pr.current[u]
			e := &arcs[i]
			if e.residual > pr.eps && pr.label[u] == pr.label[e.to]+1 {
				amount := numeric.Min(pr.excess[u], e.residual)
				pr.net.push(u, i, amount)
				pr.excess[u] -= amount
				pr.excess[e.to] += amount
				pr.enqueue(e.to, s, t)
				if pr.excess[u] == 0 {
					break
				}
			}
			pr.current[u]++
		}

		if pr.excess[u] > 0 && pr.current[u] >= len(arcs) {
			pr.relabel(u)
		}
	}
}

func (pr *PushRelabel[W]) relabel(u datastructure.Index) {
	pr.relabels++
	old := pr.label[u]
	newLabel := pr.n
	for i := range pr.net.adj[u] {
		e := &pr.net.adj[u][i]
		if e.residual > pr.eps && pr.label[e.to]+1 < newLabel {
			newLabel = pr.label[e.to] + 1
		}
	}

	pr.count[old]--
	pr.current[u] = 0
	if pr.count[old] == 0 {
		// gap: nothing between old and n can reach t any more
		for v := range pr.label {
			if pr.label[v] > old && pr.label[v] < pr.n {
				pr.count[pr.label[v]]--
				pr.label[v] = pr.n
			}
		}
		pr.label[u] = pr.n
		return
	}

	pr.label[u] = newLabel
	if newLabel < pr.n {
		pr.count[newLabel]++
	}
}
