package model

import "time"

// Database connectivity states
const (
	DBStatusConnected    = "connected"
	DBStatusDisconnected = "disconnected"
)

// DBStatus is the payload of the database-status endpoint
type DBStatus struct {
	Status    string    `json:"status"`
	LatencyMS int64     `json:"latency_ms"`
	CheckedAt time.Time `json:"checked_at"`
	Error     string    `json:"error,omitempty"`
}
