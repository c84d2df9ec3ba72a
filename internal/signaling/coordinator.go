package signaling

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/f1stly/call-signaling/internal/presence"
)

// Coordinator owns the session registry and the active-call table and
// drives the call lifecycle for every connection. Calls become active on
// accept; there is no server-side ringing state, so the busy check only
// fires against already-active calls and an invite whose caller vanishes
// mid-ring simply lapses.
type Coordinator struct {
	registry *Registry
	calls    *Calls
	presence *Relay
}

func NewCoordinator(store presence.Store, presenceTimeout time.Duration) *Coordinator {
	registry := NewRegistry()
	return &Coordinator{
		registry: registry,
		calls:    NewCalls(),
		presence: NewRelay(store, registry, presenceTimeout),
	}
}

// Registry exposes the session registry for read-only consumers such as
// the sessions API.
func (co *Coordinator) Registry() *Registry {
	return co.registry
}

// HandleMessage routes one inbound frame. Unknown types and frames with
// missing routing fields are dropped; a bad message never takes the
// handler down.
func (co *Coordinator) HandleMessage(c *Client, msg Message) {
	switch msg.Type {
	case EventUpdateStatus:
		co.handleUpdateStatus(c, msg)
	case EventCallInvite:
		co.handleInvite(c, msg)
	case EventCallAccepted:
		co.handleAccept(c, msg)
	case EventCallRejected:
		co.handleReject(c, msg)
	case EventICECandidate:
		co.handleCandidate(c, msg)
	case EventEndCall:
		co.handleEnd(c, msg)
	default:
		log.Warn().Str("connId", c.ID).Str("event", string(msg.Type)).Msg("unknown message type")
	}
}

// handleUpdateStatus binds the identity to this connection (rejecting
// duplicates) and relays the new status.
func (co *Coordinator) handleUpdateStatus(c *Client, msg Message) {
	if msg.UserID == "" {
		return
	}

	if !co.registry.Register(msg.UserID, c) {
		c.send(Message{
			Type:    EventDuplicateSession,
			Message: "User already logged in from another browser",
		})
		c.Close()
		log.Info().Str("connId", c.ID).Str("identity", msg.UserID).Msg("duplicate session rejected")
		return
	}

	c.Identity = msg.UserID
	co.presence.SetStatus(msg.UserID, msg.Status)
}

func (co *Coordinator) handleInvite(c *Client, msg Message) {
	if msg.CallerID == "" || msg.TargetUserID == "" {
		return
	}

	target, ok := co.registry.Resolve(msg.TargetUserID)
	if !ok {
		c.send(Message{Type: EventUserOffline, TargetUserID: msg.TargetUserID})
		return
	}

	if _, busy := co.calls.PeerOf(msg.TargetUserID); busy {
		c.send(Message{Type: EventUserBusy, TargetUserID: msg.TargetUserID})
		return
	}

	target.send(Message{
		Type:         EventIncomingCall,
		CallerID:     msg.CallerID,
		TargetUserID: msg.TargetUserID,
		Offer:        msg.Offer,
	})
}

// handleAccept activates the call. If the caller vanished mid-ring the
// accept is dropped silently and no pairing is recorded.
func (co *Coordinator) handleAccept(c *Client, msg Message) {
	if msg.CallerID == "" || msg.TargetUserID == "" {
		return
	}

	caller, ok := co.registry.Resolve(msg.CallerID)
	if !ok {
		return
	}

	co.calls.Start(msg.CallerID, msg.TargetUserID)
	caller.send(Message{Type: EventCallAccepted, Answer: msg.Answer})
}

func (co *Coordinator) handleReject(c *Client, msg Message) {
	if msg.CallerID == "" {
		return
	}

	if caller, ok := co.registry.Resolve(msg.CallerID); ok {
		caller.send(Message{Type: EventCallEnded, Reason: ReasonRejected})
	}
}

// handleCandidate relays fire-and-forget: no state check, no ack, and a
// missing target drops the candidate silently.
func (co *Coordinator) handleCandidate(c *Client, msg Message) {
	if msg.TargetUserID == "" {
		return
	}

	if target, ok := co.registry.Resolve(msg.TargetUserID); ok {
		target.send(Message{Type: EventICECandidate, Candidate: msg.Candidate})
	}
}

// handleEnd tears down the caller's current call. The call table is
// authoritative; the targetUserId argument may be stale and is ignored.
// Ending an already-ended call is a no-op.
func (co *Coordinator) handleEnd(c *Client, msg Message) {
	if msg.CallerID == "" {
		return
	}

	peer, ok := co.calls.End(msg.CallerID)
	if !ok {
		return
	}

	if peerClient, ok := co.registry.Resolve(peer); ok {
		peerClient.send(Message{Type: EventCallEnded, Reason: ReasonEnded})
	}
}

// HandleDisconnect runs when a connection's read loop exits. It releases
// the identity, ends any active call, notifies the peer and pushes an
// offline presence update. A connection that was superseded by a newer
// login, or never bound an identity, cleans up nothing.
func (co *Coordinator) HandleDisconnect(c *Client) {
	if c.Identity == "" {
		log.Debug().Str("connId", c.ID).Msg("anonymous client disconnected")
		return
	}

	if !co.registry.Unregister(c.Identity, c) {
		return
	}

	if peer, ok := co.calls.End(c.Identity); ok {
		if peerClient, ok := co.registry.Resolve(peer); ok {
			peerClient.send(Message{Type: EventCallEnded, Reason: ReasonDisconnected})
		}
	}

	co.presence.SetStatus(c.Identity, "offline")
	log.Info().Str("connId", c.ID).Str("identity", c.Identity).Msg("client disconnected")
}
