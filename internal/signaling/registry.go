package signaling

import (
	"sort"
	"sync"
)

// Registry maps each identity to its single live connection. It is the
// source of truth for which identities are online and which connection
// currently owns each one.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register binds identity to c. It returns false when the identity is
// already held by a different live connection; the caller is expected to
// terminate the incoming connection and leave the original session
// untouched. Re-registering the same connection rebinds and succeeds.
func (r *Registry) Register(identity string, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.clients[identity]; ok && existing.ID != c.ID {
		return false
	}
	r.clients[identity] = c
	return true
}

func (r *Registry) Resolve(identity string) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[identity]
	return c, ok
}

// Unregister removes the mapping only while it still points at c. A
// disconnect event for a superseded connection must not erase a newer
// binding of the same identity.
func (r *Registry) Unregister(identity string, c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.clients[identity]
	if !ok || existing.ID != c.ID {
		return false
	}
	delete(r.clients, identity)
	return true
}

// Others returns a snapshot of every registered client except identity's.
func (r *Registry) Others(identity string) []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.clients))
	for id, c := range r.clients {
		if id != identity {
			out = append(out, c)
		}
	}
	return out
}

// Identities returns the sorted list of identities currently online.
func (r *Registry) Identities() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.clients))
	for id := range r.clients {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
