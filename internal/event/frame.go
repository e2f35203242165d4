package event

import (
	"encoding/json"
	"time"
)

// Outbound is the envelope for frames sent by dashboard clients.
type Outbound struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound is the envelope for frames pushed by the notification server.
type Inbound struct {
	Type      Type            `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp,omitempty"`
}

// PingPayload carries the client timestamp of a heartbeat frame.
type PingPayload struct {
	Timestamp int64 `json:"timestamp"`
}

// RoomPayload identifies the room of a subscription-intent frame.
type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// NewOutbound builds an outbound frame with the given payload.
func NewOutbound(frameType Type, payload any) (*Outbound, error) {
	frame := &Outbound{Type: frameType}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		frame.Payload = raw
	}
	return frame, nil
}

// NewPing builds a heartbeat frame with the current client time.
func NewPing() *Outbound {
	frame, _ := NewOutbound(TypePing, PingPayload{Timestamp: time.Now().UnixMilli()})
	return frame
}

// NewJoinRoom builds a join_room frame for the given room.
func NewJoinRoom(roomID string) *Outbound {
	frame, _ := NewOutbound(TypeJoinRoom, RoomPayload{RoomID: roomID})
	return frame
}

// NewLeaveRoom builds a leave_room frame for the given room.
func NewLeaveRoom(roomID string) *Outbound {
	frame, _ := NewOutbound(TypeLeaveRoom, RoomPayload{RoomID: roomID})
	return frame
}

// Encode converts the frame to JSON bytes.
func (o *Outbound) Encode() ([]byte, error) {
	return json.Marshal(o)
}

// ParseOutbound decodes an outbound frame from JSON bytes.
func ParseOutbound(data []byte) (*Outbound, error) {
	var frame Outbound
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	if frame.Type == "" {
		return nil, ErrInvalidFrame
	}
	return &frame, nil
}

// Room decodes the frame payload as a RoomPayload.
func (o *Outbound) Room() (*RoomPayload, error) {
	var payload RoomPayload
	if err := json.Unmarshal(o.Payload, &payload); err != nil {
		return nil, err
	}
	if payload.RoomID == "" {
		return nil, ErrInvalidFrame
	}
	return &payload, nil
}

// NewInbound builds a server push frame with the given data payload.
func NewInbound(frameType Type, data any) (*Inbound, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return &Inbound{
		Type:      frameType,
		Data:      raw,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Encode converts the frame to JSON bytes.
func (i *Inbound) Encode() ([]byte, error) {
	return json.Marshal(i)
}

// ParseInbound decodes an inbound frame from JSON bytes.
func ParseInbound(data []byte) (*Inbound, error) {
	var frame Inbound
	if err := json.Unmarshal(data, &frame); err != nil {
		return nil, err
	}
	if frame.Type == "" {
		return nil, ErrInvalidFrame
	}
	return &frame, nil
}
