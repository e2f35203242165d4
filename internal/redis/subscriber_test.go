package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"studio-notify/internal/event"
	"studio-notify/internal/wsserver"
	"studio-notify/pkg/redis"
)

// subLogger for subscriber tests
type subLogger struct{}

func (t *subLogger) Debug(ctx context.Context, arg ...any)                   {}
func (t *subLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (t *subLogger) Info(ctx context.Context, arg ...any)                    {}
func (t *subLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (t *subLogger) Warn(ctx context.Context, arg ...any)                    {}
func (t *subLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (t *subLogger) Error(ctx context.Context, arg ...any)                   {}
func (t *subLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (t *subLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (t *subLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

func setupSubscriber(t *testing.T) (*miniredis.Miniredis, *wsserver.Hub, *Subscriber) {
	t.Helper()

	mr := miniredis.NewMiniRedis()
	if err := mr.Start(); err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewFromClient(goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	}))

	hub := wsserver.NewHub(&subLogger{}, 100)
	go hub.Run()
	t.Cleanup(func() { hub.Shutdown(context.Background()) })

	sub := NewSubscriber(client, hub, "studio:notifications", &subLogger{})
	if err := sub.Start(); err != nil {
		t.Fatalf("subscriber start: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		sub.Shutdown(ctx)
	})

	return mr, hub, sub
}

func waitForEvents(t *testing.T, hub *wsserver.Hub, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hub.GetStats().TotalEventsReceived == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("TotalEventsReceived = %d, want %d", hub.GetStats().TotalEventsReceived, want)
}

func TestSubscriberRelaysEventToHub(t *testing.T) {
	mr, hub, _ := setupSubscriber(t)

	frame, err := event.NewInbound(event.TypeOrderStatusChange, event.OrderStatusChangeData{
		OrderID:   7,
		OrderNo:   "ORD-0007",
		OldStatus: 2,
		NewStatus: 3,
	})
	if err != nil {
		t.Fatalf("NewInbound: %v", err)
	}
	data, err := frame.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	mr.Publish("studio:notifications", string(data))
	waitForEvents(t, hub, 1)
}

func TestSubscriberSkipsMalformedPayload(t *testing.T) {
	mr, hub, _ := setupSubscriber(t)

	mr.Publish("studio:notifications", `{"data":{}}`) // missing type
	mr.Publish("studio:notifications", `not json at all`)

	frame, err := event.NewInbound(event.TypeCapacityAlert, event.CapacityAlertData{
		EmployeeName: "Bob",
		CurrentLoad:  9,
		MaxLoad:      10,
		AlertLevel:   "warning",
	})
	if err != nil {
		t.Fatalf("NewInbound: %v", err)
	}
	data, _ := frame.Encode()
	mr.Publish("studio:notifications", string(data))

	// Only the valid frame reaches the hub.
	waitForEvents(t, hub, 1)
}

func TestSubscriberIgnoresOtherChannels(t *testing.T) {
	mr, hub, _ := setupSubscriber(t)

	frame, _ := event.NewInbound(event.TypePaymentCreated, event.PaymentCreatedData{Amount: 100})
	data, _ := frame.Encode()
	mr.Publish("some:other:channel", string(data))

	time.Sleep(50 * time.Millisecond)
	if got := hub.GetStats().TotalEventsReceived; got != 0 {
		t.Errorf("TotalEventsReceived = %d, want 0", got)
	}
}

func TestSubscriberHealthInfo(t *testing.T) {
	mr, hub, sub := setupSubscriber(t)

	active, lastMsg, channel := sub.HealthInfo()
	if !active {
		t.Error("subscriber should be active after Start")
	}
	if !lastMsg.IsZero() {
		t.Error("lastMessageAt should be zero before any message")
	}
	if channel != "studio:notifications" {
		t.Errorf("channel = %q", channel)
	}

	frame, _ := event.NewInbound(event.TypeConnected, event.ConnectedData{Message: "hello"})
	data, _ := frame.Encode()
	mr.Publish("studio:notifications", string(data))
	waitForEvents(t, hub, 1)

	_, lastMsg, _ = sub.HealthInfo()
	if lastMsg.IsZero() {
		t.Error("lastMessageAt should be set after a message")
	}
}

func TestSubscriberShutdown(t *testing.T) {
	_, _, sub := setupSubscriber(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sub.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	active, _, _ := sub.HealthInfo()
	if active {
		t.Error("subscriber should be inactive after Shutdown")
	}
}
