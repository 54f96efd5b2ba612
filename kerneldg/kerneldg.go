// Package kerneldg builds the dependency graph over an annotated kernel
// (§4.5): which instruction forms feed which later forms via a register or
// indexed-addressing base-register write, from which the critical path and
// loop-carried dependency chains are derived.
package kerneldg

import (
	"errors"

	"github.com/jdomke/OSACA/instrform"
	"github.com/jdomke/OSACA/isa"
	"github.com/jdomke/OSACA/operand"
)

// ErrCyclic is returned by CriticalPath and LoopCarriedDependencies when
// the single-kernel graph contains a cycle — per §7, this must never
// happen for a genuine straight-line kernel, since edges only ever run
// from an earlier line number to a later one.
var ErrCyclic = errors.New("kerneldg: dependency graph is cyclic")

type graphEdge struct {
	to      int
	latency float64
}

// Graph is the adjacency-by-line-number dependency graph of §9's design
// note: nodes are bare line numbers, with a side table mapping each to its
// owned Form, avoiding any ownership cycle between the graph and the
// kernel it was built from.
type Graph struct {
	kernel    []*instrform.Form
	semantics isa.Semantics
	nodes     map[int]*instrform.Form
	edges     map[int][]graphEdge
	order     []int
}

// NewGraph builds the dependency graph of kernel, which must already be
// annotated (throughput/latency assigned) and given in ascending
// line-number / program order.
func NewGraph(kernel []*instrform.Form, semantics isa.Semantics) *Graph {
	return buildGraph(kernel, semantics)
}

func buildGraph(kernel []*instrform.Form, semantics isa.Semantics) *Graph {
	g := &Graph{
		kernel:    kernel,
		semantics: semantics,
		nodes:     make(map[int]*instrform.Form, len(kernel)),
		edges:     make(map[int][]graphEdge, len(kernel)),
	}
	for i, u := range kernel {
		g.nodes[u.LineNumber] = u
		g.order = append(g.order, u.LineNumber)
		for _, dep := range g.findDepending(u, kernel[i+1:]) {
			g.addEdge(u.LineNumber, dep.LineNumber, u.Latency)
		}
	}
	return g
}

func (g *Graph) addEdge(from, to int, latency float64) {
	for _, e := range g.edges[from] {
		if e.to == to {
			return
		}
	}
	g.edges[from] = append(g.edges[from], graphEdge{to: to, latency: latency})
}

// findDepending implements §4.5: for every register u writes (in its
// destination/src_dst, or as the base of a pre/post-indexed Memory write),
// walk tail in program order yielding every form that reads it, stopping
// after the first form that writes it (a form that reads and writes it is
// yielded; a form that only writes it is not).
func (g *Graph) findDepending(u *instrform.Form, tail []*instrform.Form) []*instrform.Form {
	if u.Operands == nil {
		return nil
	}
	var deps []*instrform.Form
	written := append(append([]operand.Operand{}, u.Operands.Destination...), u.Operands.SrcDst...)
	for _, dst := range written {
		switch d := dst.(type) {
		case operand.Register:
			deps = append(deps, g.walkForRegister(d, tail)...)
		case operand.Memory:
			if (d.PreIndexed || d.PostIndexed) && d.Base != nil {
				deps = append(deps, g.walkForRegister(*d.Base, tail)...)
			}
		}
	}
	return deps
}

func (g *Graph) walkForRegister(r operand.Register, tail []*instrform.Form) []*instrform.Form {
	var deps []*instrform.Form
	for _, v := range tail {
		if g.isRead(r, v) {
			deps = append(deps, v)
			if g.isWritten(r, v) {
				break
			}
			continue
		}
		if g.isWritten(r, v) {
			break
		}
	}
	return deps
}

// isRead implements §4.5.1.
func (g *Graph) isRead(r operand.Register, v *instrform.Form) bool {
	if v.Operands == nil {
		return false
	}
	read := false
	sources := append(append([]operand.Operand{}, v.Operands.Source...), v.Operands.SrcDst...)
	for _, op := range sources {
		switch o := op.(type) {
		case operand.Register:
			if g.semantics.IsRegDependentOf(r, o) {
				read = true
			}
		case operand.Memory:
			if o.Base != nil && g.semantics.IsRegDependentOf(r, *o.Base) {
				read = true
			}
			if o.Index != nil && g.semantics.IsRegDependentOf(r, *o.Index) {
				read = true
			}
		}
	}
	writes := append(append([]operand.Operand{}, v.Operands.Destination...), v.Operands.SrcDst...)
	for _, op := range writes {
		if m, ok := op.(operand.Memory); ok {
			if m.Base != nil && g.semantics.IsRegDependentOf(r, *m.Base) {
				read = true
			}
			if m.Index != nil && g.semantics.IsRegDependentOf(r, *m.Index) {
				read = true
			}
		}
	}
	return read
}

// isWritten implements §4.5.1.
func (g *Graph) isWritten(r operand.Register, v *instrform.Form) bool {
	if v.Operands == nil {
		return false
	}
	written := false
	writes := append(append([]operand.Operand{}, v.Operands.Destination...), v.Operands.SrcDst...)
	for _, op := range writes {
		switch o := op.(type) {
		case operand.Register:
			if g.semantics.IsRegDependentOf(r, o) {
				written = true
			}
		case operand.Memory:
			if (o.PreIndexed || o.PostIndexed) && o.Base != nil && g.semantics.IsRegDependentOf(r, *o.Base) {
				written = true
			}
		}
	}
	sources := append(append([]operand.Operand{}, v.Operands.Source...), v.Operands.SrcDst...)
	for _, op := range sources {
		if m, ok := op.(operand.Memory); ok {
			if (m.PreIndexed || m.PostIndexed) && m.Base != nil && g.semantics.IsRegDependentOf(r, *m.Base) {
				written = true
			}
		}
	}
	return written
}

// DependentInstructionForms returns the line numbers of every form with a
// direct dependency edge from lineNumber.
func (g *Graph) DependentInstructionForms(lineNumber int) []int {
	edges := g.edges[lineNumber]
	out := make([]int, len(edges))
	for i, e := range edges {
		out[i] = e.to
	}
	return out
}

func (g *Graph) hasCycle() bool {
	const (
		white = iota
		gray
		black
	)
	color := make(map[int]int, len(g.order))
	var visit func(n int) bool
	visit = func(n int) bool {
		color[n] = gray
		for _, e := range g.edges[n] {
			switch color[e.to] {
			case gray:
				return true
			case white:
				if visit(e.to) {
					return true
				}
			}
		}
		color[n] = black
		return false
	}
	for _, n := range g.order {
		if color[n] == white {
			if visit(n) {
				return true
			}
		}
	}
	return false
}

// CriticalPath returns the longest path by summed edge latency (§4.5),
// assuming kernel was supplied to NewGraph in ascending line-number order.
// Ties are broken by earliest starting node, then lexicographically on
// the path's line numbers.
func (g *Graph) CriticalPath() ([]*instrform.Form, error) {
	if g.hasCycle() {
		return nil, ErrCyclic
	}
	if len(g.order) == 0 {
		return nil, nil
	}

	dist := make(map[int]float64, len(g.order))
	path := make(map[int][]int, len(g.order))
	for _, n := range g.order {
		dist[n] = 0
		path[n] = []int{n}
	}
	for _, u := range g.order {
		for _, e := range g.edges[u] {
			cand := dist[u] + e.latency
			candPath := append(append([]int{}, path[u]...), e.to)
			switch {
			case cand > dist[e.to]:
				dist[e.to] = cand
				path[e.to] = candPath
			case cand == dist[e.to] && betterPath(candPath, path[e.to]):
				path[e.to] = candPath
			}
		}
	}

	best := g.order[0]
	for _, n := range g.order[1:] {
		if dist[n] > dist[best] || (dist[n] == dist[best] && betterPath(path[n], path[best])) {
			best = n
		}
	}

	out := make([]*instrform.Form, 0, len(path[best]))
	for _, ln := range path[best] {
		out = append(out, g.nodes[ln])
	}
	return out, nil
}

// betterPath reports whether a is the preferred tie-break candidate over
// b: smaller starting line number wins, then lexicographically smaller
// line-number sequence.
func betterPath(a, b []int) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// LoopCarriedDependency is one root node's cross-iteration dependency
// chain.
type LoopCarriedDependency struct {
	Root         *instrform.Form
	Dependencies []*instrform.Form
}

// LoopCarriedDependencies implements the doubled-kernel technique of §4.5
// and §9: build K2 = K ++ K' with K' a copy of K whose line numbers are
// multiplied by M = |K|+1, find every simple path from an original node n
// to its copy n*M, and resolve the copied-range nodes of that path back
// to their original forms.
func (g *Graph) LoopCarriedDependencies() (map[int]LoopCarriedDependency, error) {
	if g.hasCycle() {
		return nil, ErrCyclic
	}
	result := make(map[int]LoopCarriedDependency)
	if len(g.kernel) == 0 {
		return result, nil
	}

	m := len(g.kernel) + 1
	firstLine := g.kernel[0].LineNumber
	threshold := firstLine * m

	doubled := make([]*instrform.Form, 0, len(g.kernel)*2)
	doubled = append(doubled, g.kernel...)
	for _, f := range g.kernel {
		cp := *f
		cp.LineNumber = f.LineNumber * m
		doubled = append(doubled, &cp)
	}
	dg := buildGraph(doubled, g.semantics)

	for _, n := range dg.order {
		if n >= threshold {
			continue
		}
		target := n * m
		if _, ok := dg.nodes[target]; !ok {
			continue
		}
		for _, p := range dg.allSimplePaths(n, target) {
			var deps []*instrform.Form
			for _, ln := range p {
				if ln >= threshold {
					if f, ok := g.nodes[ln/m]; ok {
						deps = append(deps, f)
					}
				}
			}
			result[n] = LoopCarriedDependency{Root: g.nodes[n], Dependencies: deps}
		}
	}
	return result, nil
}

// allSimplePaths enumerates every simple path (no repeated node) from
// from to to. Kernels are small (§5) so exhaustive DFS is acceptable.
func (g *Graph) allSimplePaths(from, to int) [][]int {
	var results [][]int
	visited := make(map[int]bool, len(g.order))
	var path []int
	var dfs func(cur int)
	dfs = func(cur int) {
		visited[cur] = true
		path = append(path, cur)
		if cur == to {
			results = append(results, append([]int{}, path...))
		} else {
			for _, e := range g.edges[cur] {
				if !visited[e.to] {
					dfs(e.to)
				}
			}
		}
		path = path[:len(path)-1]
		visited[cur] = false
	}
	dfs(from)
	return results
}
