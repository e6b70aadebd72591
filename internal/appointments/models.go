package appointments

import (
	"errors"
	"strings"
	"time"
)

// Appointment is booked by the voice assistant during a call.
// CallID is not checked against stored call reports.
type Appointment struct {
	ID          string    `json:"id"`
	CallID      string    `json:"callId"`
	Date        string    `json:"date"` // ISO date, e.g. 2025-06-30
	Time        string    `json:"time"` // 24h, e.g. 15:00
	PatientName string    `json:"patientName"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// requiredFields are checked for presence, in this order, before storage.
var requiredFields = []string{"id", "callId", "date", "time", "patientName"}

var ErrInvalidPayload = errors.New("Invalid payload")

// MissingFieldsError lists every absent required field.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Missing required fields: " + strings.Join(e.Fields, ", ")
}
