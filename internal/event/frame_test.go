package event

import (
	"encoding/json"
	"testing"
)

func TestJoinRoomRoundTrip(t *testing.T) {
	frame := NewJoinRoom("order_42")

	data, err := frame.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := ParseOutbound(data)
	if err != nil {
		t.Fatalf("ParseOutbound failed: %v", err)
	}
	if decoded.Type != TypeJoinRoom {
		t.Errorf("expected type join_room, got %s", decoded.Type)
	}
	room, err := decoded.Room()
	if err != nil {
		t.Fatalf("Room failed: %v", err)
	}
	if room.RoomID != "order_42" {
		t.Errorf("expected roomId order_42, got %s", room.RoomID)
	}
}

func TestPingCarriesTimestamp(t *testing.T) {
	frame := NewPing()

	var payload PingPayload
	if err := json.Unmarshal(frame.Payload, &payload); err != nil {
		t.Fatalf("failed to decode ping payload: %v", err)
	}
	if payload.Timestamp == 0 {
		t.Error("expected non-zero client timestamp")
	}
}

func TestParseInboundRejectsMissingType(t *testing.T) {
	if _, err := ParseInbound([]byte(`{"data":{}}`)); err == nil {
		t.Error("expected error for frame without type")
	}
	if _, err := ParseInbound([]byte(`{broken`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestInboundDataDecode(t *testing.T) {
	frame, err := NewInbound(TypeTaskAssigned, TaskAssignedData{
		TaskID:     101,
		TaskType:   TaskTypeRetouching,
		OrderNo:    "ORD-2026-019",
		AssigneeID: 7,
	})
	if err != nil {
		t.Fatalf("NewInbound failed: %v", err)
	}
	if frame.Timestamp == 0 {
		t.Error("expected server timestamp on inbound frame")
	}

	raw, err := frame.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	parsed, err := ParseInbound(raw)
	if err != nil {
		t.Fatalf("ParseInbound failed: %v", err)
	}

	var data TaskAssignedData
	if err := parsed.DecodeData(&data); err != nil {
		t.Fatalf("DecodeData failed: %v", err)
	}
	if data.AssigneeID != 7 || data.OrderNo != "ORD-2026-019" {
		t.Errorf("unexpected payload: %+v", data)
	}
}

func TestStatusLabels(t *testing.T) {
	if got := OrderStatusText(OrderStatusCompleted); got != "Completed" {
		t.Errorf("unexpected label: %s", got)
	}
	if got := OrderStatusText(99); got != "Unknown" {
		t.Errorf("unexpected label for unknown status: %s", got)
	}
	if got := TaskTypeText(TaskTypePhotography); got != "Photography" {
		t.Errorf("unexpected label: %s", got)
	}
	if got := PaymentMethodText(3); got != "Alipay" {
		t.Errorf("unexpected label: %s", got)
	}
}
