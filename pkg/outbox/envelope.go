package outbox

import (
	"encoding/json"
	"fmt"
	"time"
)

// PayloadEnvelope is the stable payload structure stored in outbox_events.
// Data holds the event-specific body; Version guards decoding when the
// body shape changes.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// DecodeEnvelope parses the stored payload back into an envelope.
func DecodeEnvelope(raw json.RawMessage) (PayloadEnvelope, error) {
	var envelope PayloadEnvelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return PayloadEnvelope{}, fmt.Errorf("decode envelope: %w", err)
	}
	return envelope, nil
}
