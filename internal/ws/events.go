package ws

import (
	"time"
)

// Event is the envelope written to every connected client. Seq increases by
// one per queued event; a gap tells the client events were dropped.
type Event struct {
	Seq       uint64      `json:"seq"`
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}
