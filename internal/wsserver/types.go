package wsserver

import "time"

// WSConfig holds WebSocket connection tuning.
type WSConfig struct {
	PongWait        time.Duration
	PingPeriod      time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
}

// Stats is a snapshot of hub activity counters.
type Stats struct {
	ActiveConnections   int   `json:"activeConnections"`
	UniqueUsers         int   `json:"uniqueUsers"`
	ActiveRooms         int   `json:"activeRooms"`
	TotalEventsReceived int64 `json:"totalEventsReceived"`
	TotalFramesSent     int64 `json:"totalFramesSent"`
	TotalFramesFailed   int64 `json:"totalFramesFailed"`
}
