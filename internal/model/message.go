package model

import (
	"encoding/json"
	"time"
)

// RawMessage is a bank notification as handed over by a message source.
type RawMessage struct {
	Body      string
	Timestamp time.Time
	Sender    string
}

type rawMessageJSON struct {
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"` // epoch millis
	Sender    string `json:"sender"`
}

// MarshalJSON encodes the timestamp as epoch milliseconds.
func (m RawMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(rawMessageJSON{
		Body:      m.Body,
		Timestamp: m.Timestamp.UnixMilli(),
		Sender:    m.Sender,
	})
}

// UnmarshalJSON decodes a message with an epoch-millisecond timestamp.
func (m *RawMessage) UnmarshalJSON(data []byte) error {
	var raw rawMessageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	m.Body = raw.Body
	m.Timestamp = time.UnixMilli(raw.Timestamp).UTC()
	m.Sender = raw.Sender
	return nil
}
