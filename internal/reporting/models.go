package reporting

import "time"

// TimeRange filters by receivedAt. A zero bound is open.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (r TimeRange) contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && !t.Before(r.To) {
		return false
	}
	return true
}

type SummaryRequest struct {
	Range TimeRange `json:"range"`
}

// Summary is the dashboard headline block.
type Summary struct {
	TotalCalls             int `json:"totalCalls"`
	TotalDurationSeconds   int `json:"totalDurationSeconds"`
	AverageDurationSeconds int `json:"averageDurationSeconds"`

	// CallsToday counts reports received on the current UTC date.
	CallsToday int `json:"callsToday"`

	// AnsweredCalls have both a user question and an assistant response.
	AnsweredCalls int     `json:"answeredCalls"`
	AnswerRate    float64 `json:"answerRate"`

	AppointmentsBooked int `json:"appointmentsBooked"`
}
