package depgraph

import (
	"fmt"
	"sort"
	"strings"
)

// VertexState represents the visitation state of a node during the sort.
const (
	White = iota // White: the node has not been visited yet.
	Gray         // Gray: the node is on the current path (visiting).
	Black        // Black: the node and all its dependents have been ordered.
)

// Graph is an immutable, validated dependency graph.
type Graph struct {
	nodes      []string
	dependents map[string][]string
	deps       map[string][]string
	order      []string
}

// New builds the graph of names where refs maps a dependent to the names it
// reads. Names without an entry in refs have no dependencies.
func New(names []string, refs map[string][]string) (*Graph, error) {
	g := &Graph{
		nodes:      make([]string, 0, len(names)),
		dependents: make(map[string][]string, len(names)),
		deps:       make(map[string][]string, len(refs)),
	}
	for _, n := range names {
		if _, dup := g.dependents[n]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, n)
		}
		g.dependents[n] = nil
		g.nodes = append(g.nodes, n)
	}
	sort.Strings(g.nodes)

	dependentNames := make([]string, 0, len(refs))
	for d := range refs {
		dependentNames = append(dependentNames, d)
	}
	sort.Strings(dependentNames)
	for _, d := range dependentNames {
		if _, ok := g.dependents[d]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, d)
		}
		seen := make(map[string]bool, len(refs[d]))
		for _, r := range refs[d] {
			switch {
			case r == d:
				return nil, fmt.Errorf("%w: %q", ErrSelfReference, d)
			case !g.has(r):
				return nil, fmt.Errorf("%w: %q references %q", ErrMissingReference, d, r)
			case seen[r]:
				continue
			}
			seen[r] = true
			g.dependents[r] = append(g.dependents[r], d)
			g.deps[d] = append(g.deps[d], r)
		}
		sort.Strings(g.deps[d])
	}
	for n := range g.dependents {
		sort.Strings(g.dependents[n])
	}

	if err := g.sort(); err != nil {
		return nil, err
	}

	return g, nil
}

func (g *Graph) has(name string) bool {
	_, ok := g.dependents[name]
	return ok
}

// sorter carries the traversal state of one topological sort.
type sorter struct {
	g     *Graph
	state map[string]int
	path  []string
	post  []string
}

func (g *Graph) sort() error {
	s := &sorter{
		g:     g,
		state: make(map[string]int, len(g.nodes)),
		path:  make([]string, 0, len(g.nodes)),
		post:  make([]string, 0, len(g.nodes)),
	}
	for _, n := range g.nodes {
		if s.state[n] == White {
			if err := s.visit(n); err != nil {
				return err
			}
		}
	}
	for i, j := 0, len(s.post)-1; i < j; i, j = i+1, j-1 {
		s.post[i], s.post[j] = s.post[j], s.post[i]
	}
	g.order = s.post

	return nil
}

func (s *sorter) visit(id string) error {
	s.state[id] = Gray
	s.path = append(s.path, id)
	for _, next := range s.g.dependents[id] {
		switch s.state[next] {
		case White:
			if err := s.visit(next); err != nil {
				return err
			}
		case Gray:
			return fmt.Errorf("%w: %s", ErrCycleDetected, strings.Join(s.cycle(next), " -> "))
		}
	}
	s.path = s.path[:len(s.path)-1]
	s.state[id] = Black
	s.post = append(s.post, id)

	return nil
}

// cycle returns the closed path from start back to start.
func (s *sorter) cycle(start string) []string {
	i := len(s.path) - 1
	for i > 0 && s.path[i] != start {
		i--
	}
	out := append([]string(nil), s.path[i:]...)

	return append(out, start)
}

// Nodes returns all names, sorted.
func (g *Graph) Nodes() []string {
	return append([]string(nil), g.nodes...)
}

// Order returns every node after all of its dependencies.
func (g *Graph) Order() []string {
	return append([]string(nil), g.order...)
}

// Dependencies returns the names that name reads directly, sorted.
func (g *Graph) Dependencies(name string) ([]string, error) {
	if !g.has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}

	return append([]string(nil), g.deps[name]...), nil
}

// Dependents returns the names that read name directly, sorted.
func (g *Graph) Dependents(name string) ([]string, error) {
	if !g.has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}

	return append([]string(nil), g.dependents[name]...), nil
}

// Affected returns every node that transitively reads name, in evaluation
// order. name itself is not included.
func (g *Graph) Affected(name string) ([]string, error) {
	if !g.has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	reach := make(map[string]bool)
	stack := []string{name}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range g.dependents[n] {
			if !reach[d] {
				reach[d] = true
				stack = append(stack, d)
			}
		}
	}
	out := make([]string, 0, len(reach))
	for _, n := range g.order {
		if reach[n] {
			out = append(out, n)
		}
	}

	return out, nil
}
