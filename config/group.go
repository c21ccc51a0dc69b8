package config

import "sync"

// Group is a named node of the tree. The root group has an empty name.
// Children are guarded by the owning tree's lock.
type Group struct {
	mu        *sync.RWMutex
	name      string
	path      string
	parent    *Group
	groups    []*Group
	waveforms []string
}

// Name returns the group's own name.
func (g *Group) Name() string { return g.name }

// Path returns the slash-joined names from the root, "" for the root.
func (g *Group) Path() string { return g.path }

// Parent returns the enclosing group, nil for the root.
func (g *Group) Parent() *Group { return g.parent }

// Groups returns the child groups in insertion order.
func (g *Group) Groups() []*Group {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]*Group(nil), g.groups...)
}

// Waveforms returns the names of the waveforms directly in g, in insertion
// order.
func (g *Group) Waveforms() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return append([]string(nil), g.waveforms...)
}

func (g *Group) child(name string) *Group {
	for _, c := range g.groups {
		if c.name == name {
			return c
		}
	}

	return nil
}
