package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReportEventMessage announces that a category report artifact was written.
// The worker persists these into the report log.
type ReportEventMessage struct {
	ID            string    `json:"id"`
	Category      string    `json:"category"`
	ReferenceDate string    `json:"reference_date"`
	Path          string    `json:"path"`
	RowCount      int       `json:"row_count"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewReportEventMessage creates an event with a fresh identifier.
func NewReportEventMessage(category, referenceDate, path string, rowCount int) *ReportEventMessage {
	return &ReportEventMessage{
		ID:            uuid.NewString(),
		Category:      category,
		ReferenceDate: referenceDate,
		Path:          path,
		RowCount:      rowCount,
		Timestamp:     time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ReportEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReportEventMessageFromJSON creates a message from JSON bytes
func ReportEventMessageFromJSON(data []byte) (*ReportEventMessage, error) {
	var msg ReportEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
