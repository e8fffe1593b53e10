package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWrapsPayload(t *testing.T) {
	at := time.Date(2025, 8, 1, 12, 0, 0, 0, time.FixedZone("PDT", -7*3600))

	body, err := Encode(BookingApproved, map[string]string{"bookingId": "b-1"}, at)
	require.NoError(t, err)

	var decoded struct {
		Type       string            `json:"type"`
		OccurredAt time.Time         `json:"occurredAt"`
		Data       map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &decoded))

	assert.Equal(t, BookingApproved, decoded.Type)
	assert.True(t, decoded.OccurredAt.Equal(at))
	assert.Equal(t, "UTC", decoded.OccurredAt.Location().String())
	assert.Equal(t, "b-1", decoded.Data["bookingId"])
}

func TestEncodeRejectsUnmarshalable(t *testing.T) {
	_, err := Encode(BookingCancelled, make(chan int), time.Now())
	assert.Error(t, err)
}

func TestCloseNilPublisher(t *testing.T) {
	var p *Publisher
	assert.NotPanics(t, p.Close)
}
