package signaling

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/f1stly/call-signaling/internal/presence"
)

const defaultPresenceTimeout = 2 * time.Second

// Relay persists status changes best-effort and fans them out to every
// other online identity. The broadcast never waits on the store.
type Relay struct {
	store    presence.Store
	registry *Registry
	timeout  time.Duration
}

func NewRelay(store presence.Store, registry *Registry, timeout time.Duration) *Relay {
	if timeout <= 0 {
		timeout = defaultPresenceTimeout
	}
	return &Relay{store: store, registry: registry, timeout: timeout}
}

// SetStatus records identity's status and broadcasts it to everyone else.
// Persistence failures degrade durability only: they are logged and never
// block or suppress the broadcast. The identity never receives its own
// update.
func (p *Relay) SetStatus(identity, status string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.store.SetStatus(ctx, identity, status); err != nil {
			log.Warn().Err(err).Str("identity", identity).Str("status", status).Msg("presence persistence failed")
		}
	}()

	msg := Message{Type: EventPresenceUpdate, UserID: identity, Status: status}
	for _, c := range p.registry.Others(identity) {
		c.send(msg)
	}
}
