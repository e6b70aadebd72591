package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"voice-reports/internal/appointments"
	"voice-reports/internal/callreport"
	"voice-reports/internal/transcript"
)

type reportList []callreport.CallReport

func (l reportList) ListAll(ctx context.Context) ([]callreport.CallReport, error) { return l, nil }

type apptList []appointments.Appointment

func (l apptList) ListAll(ctx context.Context) ([]appointments.Appointment, error) { return l, nil }

type failingSource struct{}

func (failingSource) ListAll(ctx context.Context) ([]callreport.CallReport, error) {
	return nil, errors.New("store down")
}

func report(id string, at time.Time, duration int, raw string) callreport.CallReport {
	conv := transcript.Segment(raw)
	return callreport.CallReport{
		CallID:     id,
		ReceivedAt: at,
		Payload: callreport.EnrichedReport{
			Duration:          duration,
			UserQuestion:      conv.FirstUser(),
			AssistantResponse: conv.LastAssistant(),
			Conversation:      conv,
		},
	}
}

func TestSummary_Aggregates(t *testing.T) {
	now := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	reports := reportList{
		report("c1", yesterday, 30, "User: hi\nAI: hello"),
		report("c2", now.Add(-time.Hour), 45, "User: hi"),
		report("c3", now, 20, ""),
	}
	appts := apptList{{ID: "a1", CreatedAt: now}, {ID: "a2", CreatedAt: yesterday}}

	svc := NewService(reports, appts)
	svc.clock = func() time.Time { return now }

	out, err := svc.Summary(context.Background(), SummaryRequest{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.TotalCalls != 3 || out.TotalDurationSeconds != 95 {
		t.Fatalf("unexpected totals: %+v", out)
	}
	if out.AverageDurationSeconds != 32 {
		t.Fatalf("expected average 32, got %d", out.AverageDurationSeconds)
	}
	if out.CallsToday != 2 {
		t.Fatalf("expected 2 calls today, got %d", out.CallsToday)
	}
	if out.AnsweredCalls != 1 || out.AnswerRate != 33.3 {
		t.Fatalf("unexpected answered stats: %d %.1f", out.AnsweredCalls, out.AnswerRate)
	}
	if out.AppointmentsBooked != 2 {
		t.Fatalf("expected 2 appointments, got %d", out.AppointmentsBooked)
	}
}

func TestSummary_RangeFilters(t *testing.T) {
	now := time.Date(2025, 6, 2, 15, 0, 0, 0, time.UTC)
	reports := reportList{
		report("old", now.Add(-48*time.Hour), 10, ""),
		report("in", now.Add(-time.Hour), 20, ""),
		report("edge", now, 30, ""),
	}
	svc := NewService(reports, nil)

	out, err := svc.Summary(context.Background(), SummaryRequest{Range: TimeRange{From: now.Add(-2 * time.Hour), To: now}})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.TotalCalls != 1 || out.TotalDurationSeconds != 20 {
		t.Fatalf("expected only the in-range call, got %+v", out)
	}
}

func TestSummary_EmptyAndInvalid(t *testing.T) {
	svc := NewService(reportList{}, apptList{})
	out, err := svc.Summary(context.Background(), SummaryRequest{})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", out)
	}

	now := time.Now()
	_, err = svc.Summary(context.Background(), SummaryRequest{Range: TimeRange{From: now, To: now.Add(-time.Minute)}})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}

	_, err = NewService(failingSource{}, nil).Summary(context.Background(), SummaryRequest{})
	if err == nil {
		t.Fatalf("expected source error")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{0: "0:00", 5: "0:05", 75: "1:15", 600: "10:00", 3725: "62:05", -5: "-0:05"}
	for in, want := range cases {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestExportXLSX_WritesOneRowPerReport(t *testing.T) {
	at := time.Date(2025, 6, 2, 15, 4, 5, 0, time.UTC)
	svc := NewService(reportList{
		report("c1", at, 75, "User: when are you open\nAI: nine to five"),
		report("c1", at, 3, ""),
	}, nil)

	var buf bytes.Buffer
	if err := svc.ExportXLSX(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Call Reports")
	if err != nil {
		t.Fatalf("get rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Call ID" || rows[0][5] != "Assistant Response" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	want := []string{"c1", "2025-06-02T15:04:05Z", "75", "1:15", "when are you open", "nine to five"}
	for i, v := range want {
		if rows[1][i] != v {
			t.Fatalf("row 1 col %d: got %q want %q", i, rows[1][i], v)
		}
	}
	if rows[2][4] != "N/A" || rows[2][5] != "N/A" {
		t.Fatalf("expected N/A placeholders, got %v", rows[2])
	}
}
