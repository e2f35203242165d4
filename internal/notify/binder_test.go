package notify

import (
	"testing"
	"time"

	"studio-notify/internal/event"
)

func TestBinderConnectsOnLogin(t *testing.T) {
	dialer := &fakeDialer{}
	connected := make(chan struct{}, 1)
	c := newTestClient(
		Config{AutoReconnect: true},
		Callbacks{OnConnect: func() { connected <- struct{}{} }},
		dialer,
	)
	defer c.Close()

	source := NewMemorySource()
	b := NewBinder(c, source, &testLogger{})
	defer b.Close()

	// Logged out: nothing happens.
	time.Sleep(20 * time.Millisecond)
	if dialer.dialCount() != 0 {
		t.Fatalf("expected no dial while logged out, got %d", dialer.dialCount())
	}
	if _, ok := b.Identity(); ok {
		t.Fatal("expected no identity while logged out")
	}

	source.Set(&Session{
		Identity: Identity{UserID: 7, Roles: []string{event.RolePhotographer}},
		Token:    "tok-7",
	})

	select {
	case <-connected:
	case <-time.After(time.Second):
		t.Fatal("binder did not connect after login")
	}

	id, ok := b.Identity()
	if !ok || id.UserID != 7 {
		t.Errorf("unexpected bound identity: %+v ok=%v", id, ok)
	}
}

func TestBinderDisconnectsOnLogout(t *testing.T) {
	dialer := &fakeDialer{}
	connected := make(chan struct{}, 1)
	c := newTestClient(
		Config{AutoReconnect: true, ReconnectDelay: 10 * time.Millisecond},
		Callbacks{OnConnect: func() { connected <- struct{}{} }},
		dialer,
	)
	defer c.Close()

	source := NewMemorySource()
	source.Set(&Session{
		Identity: Identity{UserID: 7, Roles: []string{event.RolePhotographer}},
		Token:    "tok-7",
	})

	b := NewBinder(c, source, &testLogger{})
	defer b.Close()

	select {
	case <-connected:
	case <-time.After(time.Second):
		t.Fatal("binder did not connect from initial session")
	}

	source.Set(nil)

	if !waitFor(t, time.Second, func() bool { return c.State() == StateDisconnected }) {
		t.Fatalf("binder did not disconnect on logout, state %s", c.State())
	}

	// Logout must not be treated as an unexpected close: no reconnects.
	time.Sleep(50 * time.Millisecond)
	if got := dialer.dialCount(); got != 1 {
		t.Errorf("expected no reconnect after logout, got %d dials", got)
	}
	if _, ok := b.Identity(); ok {
		t.Error("expected identity cleared after logout")
	}
}

func TestBinderIgnoresSessionWithoutToken(t *testing.T) {
	dialer := &fakeDialer{}
	c := newTestClient(Config{}, Callbacks{}, dialer)
	defer c.Close()

	source := NewMemorySource()
	b := NewBinder(c, source, &testLogger{})
	defer b.Close()

	source.Set(&Session{Identity: Identity{UserID: 9}})

	time.Sleep(20 * time.Millisecond)
	if dialer.dialCount() != 0 {
		t.Errorf("expected no dial for tokenless session, got %d", dialer.dialCount())
	}
}
