package config

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/katalvlaran/wavechain/depgraph"
	"github.com/katalvlaran/wavechain/derived"
	"github.com/katalvlaran/wavechain/waveform"
)

// Entry describes one named waveform of the tree. Exactly one of Waveform
// and Source is set.
type Entry struct {
	Name     string
	Group    *Group
	Waveform *waveform.Waveform
	Source   string
	Line     int

	// Expression is nil until the tree is resolved.
	Expression *derived.Expression
}

// Derived reports whether the entry is an expression.
func (e Entry) Derived() bool { return e.Waveform == nil }

// Option configures New.
type Option func(*Tree)

// WithLogger sets the logger used for resolve diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(t *Tree) {
		if l != nil {
			t.logger = l
		}
	}
}

// Tree is the configuration tree.
type Tree struct {
	mu      sync.RWMutex
	root    *Group
	entries map[string]*Entry
	names   []string
	graph   *depgraph.Graph
	logger  *slog.Logger
}

// New returns an empty tree.
func New(opts ...Option) *Tree {
	t := &Tree{
		entries: make(map[string]*Entry),
		logger:  slog.Default(),
	}
	t.root = &Group{mu: &t.mu}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Root returns the root group.
func (t *Tree) Root() *Group { return t.root }

// AddGroup creates a child group of parent (the root when parent is nil).
func (t *Tree) AddGroup(parent *Group, name string) (*Group, error) {
	switch {
	case name == "":
		return nil, ErrEmptyGroupName
	case strings.Contains(name, "/"):
		return nil, configErrorf(ErrInvalidGroupName, "%q", name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if parent == nil {
		parent = t.root
	}
	if parent.child(name) != nil {
		return nil, configErrorf(ErrDuplicateGroup, "%q in %q", name, parent.path)
	}
	g := &Group{mu: &t.mu, name: name, path: joinPath(parent.path, name), parent: parent}
	parent.groups = append(parent.groups, g)

	return g, nil
}

// Group finds a group by its slash-delimited path; "" is the root.
func (t *Tree) Group(path string) (*Group, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	g := t.root
	if path == "" {
		return g, nil
	}
	for _, part := range strings.Split(path, "/") {
		if g = g.child(part); g == nil {
			return nil, configErrorf(ErrUnknownGroup, "%q", path)
		}
	}

	return g, nil
}

// AddWaveform places w in group g (the root when g is nil).
func (t *Tree) AddWaveform(g *Group, w *waveform.Waveform) error {
	if w == nil {
		return ErrNilWaveform
	}

	return t.add(g, &Entry{Name: w.Name(), Waveform: w})
}

// AddDerived places a derived waveform defined by source in group g. The
// expression is compiled by Resolve.
func (t *Tree) AddDerived(g *Group, name, source string, line int) error {
	return t.add(g, &Entry{Name: name, Source: source, Line: line})
}

func (t *Tree) add(g *Group, e *Entry) error {
	if !strings.Contains(e.Name, "/") {
		return configErrorf(ErrNameWithoutSlash, "%q", e.Name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.entries[e.Name]; dup {
		return configErrorf(ErrDuplicateWaveform, "%q", e.Name)
	}
	if g == nil {
		g = t.root
	}
	e.Group = g
	g.waveforms = append(g.waveforms, e.Name)
	t.entries[e.Name] = e
	t.names = append(t.names, e.Name)
	t.graph = nil

	return nil
}

// Names returns every waveform name in insertion order.
func (t *Tree) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return append([]string(nil), t.names...)
}

// Lookup returns a copy of the entry for name.
func (t *Tree) Lookup(name string) (Entry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	e, ok := t.entries[name]
	if !ok {
		return Entry{}, configErrorf(ErrUnknownWaveform, "%q", name)
	}

	return *e, nil
}

// Resolve compiles every derived expression and orders the tree by its
// dependencies. The first error aborts and leaves the tree unresolved.
func (t *Tree) Resolve() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	known := func(ref string) bool {
		_, ok := t.entries[ref]
		return ok
	}
	refs := make(map[string][]string)
	for _, name := range t.names {
		e := t.entries[name]
		if !e.Derived() {
			continue
		}
		expr, err := derived.Compile(name, e.Source, known)
		if err != nil {
			t.graph = nil
			return fmt.Errorf("config: line %d: %w", e.Line, err)
		}
		e.Expression = expr
		refs[name] = expr.References()
	}
	g, err := depgraph.New(t.names, refs)
	if err != nil {
		t.graph = nil
		return fmt.Errorf("config: %w", err)
	}
	t.graph = g
	t.logger.Debug("config resolved",
		slog.Int("waveforms", len(t.names)),
		slog.Int("derived", len(refs)))

	return nil
}

// Resolved reports whether Resolve succeeded since the last mutation.
func (t *Tree) Resolved() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.graph != nil
}

// Graph returns the dependency graph built by Resolve.
func (t *Tree) Graph() (*depgraph.Graph, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.graph == nil {
		return nil, ErrUnresolved
	}

	return t.graph, nil
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}

	return parent + "/" + name
}
