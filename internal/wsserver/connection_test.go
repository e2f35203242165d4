package wsserver

import (
	"sync"
	"testing"
)

func TestConnectionCloseConcurrent(t *testing.T) {
	hub := NewHub(logger(), 100)
	conn := newTestConnection(hub, 1, "admin")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn.Close()
		}()
	}
	wg.Wait()

	select {
	case <-conn.done:
	default:
		t.Error("done channel should be closed after Close")
	}

	// A late straggler is still a no-op.
	conn.Close()
}
