package notify

import (
	"context"
	"sync"

	"studio-notify/pkg/log"
)

// Session is the authenticated identity plus its bearer token, as exposed by
// the surrounding application's auth state.
type Session struct {
	Identity Identity
	Token    string
}

// Source provides read-only access to the current session and notifies
// subscribers when it changes. A nil session means logged out.
type Source interface {
	// Current returns the session at the time of the call.
	Current() *Session

	// Subscribe registers a change listener and returns a cancel function.
	// The listener is invoked with the new session (nil on logout).
	Subscribe(fn func(*Session)) (cancel func())
}

// Binder ties authentication state to the connection lifecycle: it connects
// the client when an identity appears and disconnects it when the identity is
// cleared. It is the only component reacting to auth transitions; it never
// looks at message content.
type Binder struct {
	client *Client
	source Source
	logger log.Logger

	mu          sync.Mutex
	identity    Identity
	loggedIn    bool
	unsubscribe func()
}

// NewBinder creates a binder and immediately applies the source's current
// session.
func NewBinder(client *Client, source Source, logger log.Logger) *Binder {
	b := &Binder{
		client: client,
		source: source,
		logger: logger,
	}
	b.unsubscribe = source.Subscribe(b.apply)
	b.apply(source.Current())
	return b
}

// Identity returns the recipient identity of the bound session. The second
// result is false while logged out.
func (b *Binder) Identity() (Identity, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identity, b.loggedIn
}

// Close stops watching the session source and tears the connection down.
func (b *Binder) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
	}
	b.client.Disconnect()
}

func (b *Binder) apply(sess *Session) {
	if sess == nil || sess.Token == "" {
		b.mu.Lock()
		wasLoggedIn := b.loggedIn
		b.identity = Identity{}
		b.loggedIn = false
		b.mu.Unlock()

		if wasLoggedIn {
			b.logger.Info(context.Background(), "session cleared, closing notification stream")
		}
		b.client.Disconnect()
		return
	}

	b.mu.Lock()
	wasLoggedIn := b.loggedIn
	b.identity = sess.Identity
	b.loggedIn = true
	b.mu.Unlock()

	if wasLoggedIn {
		// Identity switch: drop the old stream before opening a new one.
		b.client.Disconnect()
	}

	b.logger.Infof(context.Background(), "session available for user %d, opening notification stream", sess.Identity.UserID)
	b.client.SetToken(sess.Token)
	b.client.Connect()
}
