package appointments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Decode validates a raw request body and returns the appointment it describes.
// A required key that is present with a null value counts as present.
func Decode(data []byte) (Appointment, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &fields); err != nil || fields == nil {
		return Appointment{}, ErrInvalidPayload
	}

	var missing []string
	for _, k := range requiredFields {
		if _, ok := fields[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return Appointment{}, &MissingFieldsError{Fields: missing}
	}

	var a Appointment
	if err := json.Unmarshal(data, &a); err != nil {
		return Appointment{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	a.CreatedAt = time.Time{}
	return a, nil
}
