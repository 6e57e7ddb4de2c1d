// Package registry indexes the action nodes available to the process.
//
// Discovery is a one-time scan at startup: callers register every node
// variant explicitly, then freeze the registry before serving lookups.
package registry

import (
	"fmt"
	"sync"

	"github.com/orchestron-dev/orchestron/pkg/domain"
	"github.com/orchestron-dev/orchestron/pkg/ports"
)

// Registry manages the available nodes, keyed by descriptor name.
type Registry struct {
	mu     sync.RWMutex
	nodes  map[string]ports.Node
	order  []string
	frozen bool
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{nodes: make(map[string]ports.Node)}
}

// Register adds a node under its descriptor name. A colliding name fails with
// domain.ErrDuplicateNode; registering after Freeze fails with
// domain.ErrRegistryFrozen. Both are programmer errors and fatal at startup.
func (r *Registry) Register(node ports.Node) error {
	name := node.Describe().Name
	if name == "" {
		return fmt.Errorf("node registered with empty name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return fmt.Errorf("register %q: %w", name, domain.ErrRegistryFrozen)
	}
	if _, exists := r.nodes[name]; exists {
		return fmt.Errorf("register %q: %w", name, domain.ErrDuplicateNode)
	}
	r.nodes[name] = node
	r.order = append(r.order, name)
	return nil
}

// Freeze marks startup discovery as complete. The registry is read-only from
// here on.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Resolve looks up a node by exact, case-sensitive name.
func (r *Registry) Resolve(name string) (ports.Node, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	node, ok := r.nodes[name]
	if !ok {
		return nil, fmt.Errorf("resolve %q: %w", name, domain.ErrNodeNotFound)
	}
	return node, nil
}

// Descriptors returns all registered descriptors in registration order.
func (r *Registry) Descriptors() []domain.Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.nodes[name].Describe())
	}
	return out
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
