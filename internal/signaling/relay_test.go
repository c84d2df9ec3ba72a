package signaling

import (
	"context"
	"errors"
	"testing"
	"time"
)

type statusWrite struct {
	identity string
	status   string
}

// fakeStore records writes on a channel so tests can wait for the
// asynchronous persistence attempt.
type fakeStore struct {
	err    error
	writes chan statusWrite
}

func (s *fakeStore) SetStatus(ctx context.Context, identity, status string) error {
	if s.writes != nil {
		s.writes <- statusWrite{identity, status}
	}
	return s.err
}

func (s *fakeStore) Close() error { return nil }

func TestRelay_PersistsStatus(t *testing.T) {
	store := &fakeStore{writes: make(chan statusWrite, 1)}
	registry := NewRegistry()
	relay := NewRelay(store, registry, time.Second)

	relay.SetStatus("alice", "busy")

	select {
	case w := <-store.writes:
		if w.identity != "alice" || w.status != "busy" {
			t.Fatalf("unexpected write %+v", w)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected a persistence attempt")
	}
}

func TestRelay_StoreFailureDoesNotSuppressBroadcast(t *testing.T) {
	store := &fakeStore{err: errors.New("redis down"), writes: make(chan statusWrite, 1)}
	registry := NewRegistry()
	relay := NewRelay(store, registry, time.Second)

	alice := NewClient("conn-a", nil)
	bob := NewClient("conn-b", nil)
	registry.Register("alice", alice)
	registry.Register("bob", bob)

	relay.SetStatus("alice", "online")

	got := recv(t, bob)
	if got.Type != EventPresenceUpdate || got.UserID != "alice" || got.Status != "online" {
		t.Fatalf("expected broadcast despite store failure, got %+v", got)
	}
	expectNone(t, alice)
}

func TestRelay_BroadcastDoesNotWaitOnStore(t *testing.T) {
	// A store with no reader on its writes channel blocks the persist
	// goroutine; the broadcast must still be delivered immediately.
	store := &fakeStore{writes: make(chan statusWrite)}
	registry := NewRegistry()
	relay := NewRelay(store, registry, time.Second)

	bob := NewClient("conn-b", nil)
	registry.Register("alice", NewClient("conn-a", nil))
	registry.Register("bob", bob)

	done := make(chan struct{})
	go func() {
		relay.SetStatus("alice", "online")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("SetStatus stalled on the persistence path")
	}

	got := recv(t, bob)
	if got.Type != EventPresenceUpdate {
		t.Fatalf("expected presence_update, got %+v", got)
	}
	<-store.writes // release the goroutine
}
