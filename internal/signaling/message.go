package signaling

import "encoding/json"

// EventType identifies a signaling event on the wire
type EventType string

// Client -> server events
const (
	EventUpdateStatus EventType = "update_status"
	EventCallInvite   EventType = "call_invite"
	EventCallAccepted EventType = "call_accepted"
	EventCallRejected EventType = "call_rejected"
	EventICECandidate EventType = "ice_candidate"
	EventEndCall      EventType = "end_call"
)

// Server -> client events (call_accepted and ice_candidate are echoed
// back under the same name)
const (
	EventPresenceUpdate   EventType = "presence_update"
	EventIncomingCall     EventType = "incoming_call"
	EventUserOffline      EventType = "user_offline"
	EventUserBusy         EventType = "user_busy"
	EventCallEnded        EventType = "call_ended"
	EventDuplicateSession EventType = "duplicate_session"
)

// Reasons carried by call_ended
const (
	ReasonRejected     = "rejected"
	ReasonEnded        = "ended"
	ReasonDisconnected = "disconnected"
)

// Message is the single wire envelope for all signaling traffic. Offer,
// answer and candidate are opaque session-negotiation blobs; the server
// relays them byte-for-byte and never inspects them.
type Message struct {
	Type         EventType       `json:"type"`
	UserID       string          `json:"userId,omitempty"`
	CallerID     string          `json:"callerId,omitempty"`
	TargetUserID string          `json:"targetUserId,omitempty"`
	Status       string          `json:"status,omitempty"`
	Offer        json.RawMessage `json:"offer,omitempty"`
	Answer       json.RawMessage `json:"answer,omitempty"`
	Candidate    json.RawMessage `json:"candidate,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	Message      string          `json:"message,omitempty"`
}
