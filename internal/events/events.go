package events

import (
	"encoding/json"
	"time"
)

const (
	TypeRunStarted  = "lead_run_started"
	TypeRunFinished = "lead_run_finished"
	TypePing        = "ping"
)

// Event is the SSE envelope. Data never carries lead payloads.
type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

type RunStarted struct {
	Industry   string `json:"industry"`
	Location   string `json:"location"`
	MaxResults int    `json:"maxResults"`
}

type RunFinished struct {
	Leads      int    `json:"leads"`
	Candidates int    `json:"candidates"`
	Synthetic  int    `json:"synthetic"`
	Reason     string `json:"reason,omitempty"`
	TimedOut   bool   `json:"timedOut,omitempty"`
	Failed     bool   `json:"failed,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

func MakeEvent(reqID, typ string, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	b, _ := json.Marshal(Event{
		Type:      typ,
		Version:   1,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	})
	return string(b)
}
