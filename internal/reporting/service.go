package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"voice-reports/internal/appointments"
	"voice-reports/internal/callreport"
	"voice-reports/internal/transcript"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// CallReportSource is the read side of the call report store.
type CallReportSource interface {
	ListAll(ctx context.Context) ([]callreport.CallReport, error)
}

type AppointmentSource interface {
	ListAll(ctx context.Context) ([]appointments.Appointment, error)
}

// Service aggregates stored records for the dashboard. It never writes.
type Service struct {
	reports      CallReportSource
	appointments AppointmentSource
	clock        func() time.Time
}

func NewService(reports CallReportSource, appts AppointmentSource) *Service {
	return &Service{reports: reports, appointments: appts, clock: time.Now}
}

func (s *Service) Summary(ctx context.Context, req SummaryRequest) (Summary, error) {
	r := req.Range
	if !r.From.IsZero() && !r.To.IsZero() && !r.To.After(r.From) {
		return Summary{}, ErrInvalidRequest
	}
	if s.reports == nil {
		return Summary{}, errors.New("reporting: call report source not configured")
	}

	rows, err := s.reports.ListAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("reporting: list call reports: %w", err)
	}

	today := s.clock().UTC().Format(time.DateOnly)
	var out Summary
	for _, c := range rows {
		if !r.contains(c.ReceivedAt) {
			continue
		}
		out.TotalCalls++
		out.TotalDurationSeconds += c.Payload.Duration
		if c.ReceivedAt.UTC().Format(time.DateOnly) == today {
			out.CallsToday++
		}
		if answered(c.Payload) {
			out.AnsweredCalls++
		}
	}
	if out.TotalCalls > 0 {
		out.AverageDurationSeconds = int(math.Round(float64(out.TotalDurationSeconds) / float64(out.TotalCalls)))
		out.AnswerRate = math.Round(float64(out.AnsweredCalls)*1000/float64(out.TotalCalls)) / 10
	}

	if s.appointments != nil {
		appts, err := s.appointments.ListAll(ctx)
		if err != nil {
			return Summary{}, fmt.Errorf("reporting: list appointments: %w", err)
		}
		for _, a := range appts {
			if r.contains(a.CreatedAt) {
				out.AppointmentsBooked++
			}
		}
	}
	return out, nil
}

func answered(p callreport.EnrichedReport) bool {
	return p.UserQuestion != transcript.NotAvailable && p.AssistantResponse != transcript.NotAvailable
}

// FormatDuration renders seconds as m:ss, e.g. 75 -> "1:15".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		return "-" + FormatDuration(-seconds)
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
