package signaling

import "sync"

// Calls tracks active calls as symmetric pairings. Both directions are
// inserted and removed in one critical section, so a disconnect racing an
// accept can never observe a one-sided entry. An identity appears as a
// key in at most one pairing at a time.
type Calls struct {
	mu    sync.Mutex
	peers map[string]string
}

func NewCalls() *Calls {
	return &Calls{peers: make(map[string]string)}
}

// Start marks a and b as in a call with each other.
func (t *Calls) Start(a, b string) {
	t.mu.Lock()
	t.peers[a] = b
	t.peers[b] = a
	t.mu.Unlock()
}

// PeerOf reports the identity id is currently in a call with.
func (t *Calls) PeerOf(id string) (string, bool) {
	t.mu.Lock()
	peer, ok := t.peers[id]
	t.mu.Unlock()
	return peer, ok
}

// End removes both directions of id's call and returns the former peer.
// Ending a call that no longer exists is a no-op.
func (t *Calls) End(id string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	peer, ok := t.peers[id]
	if !ok {
		return "", false
	}
	delete(t.peers, id)
	delete(t.peers, peer)
	return peer, true
}
