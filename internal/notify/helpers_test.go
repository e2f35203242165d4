package notify

import (
	"context"
	"sync"
)

// testLogger implements log.Logger for testing.
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// recordingSink captures shown notifications.
type recordingSink struct {
	mu    sync.Mutex
	shown []*Notification
}

func (s *recordingSink) Show(n *Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = append(s.shown, n)
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shown)
}

func (s *recordingSink) last() *Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.shown) == 0 {
		return nil
	}
	return s.shown[len(s.shown)-1]
}

// countingChime counts playbacks and optionally fails.
type countingChime struct {
	mu    sync.Mutex
	plays int
	err   error
}

func (c *countingChime) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.plays++
	return c.err
}

func (c *countingChime) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.plays
}
