package appointments

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDecode_ValidAppointment(t *testing.T) {
	a, err := Decode([]byte(`{"id":"appt-1","callId":"call-1","date":"2025-01-01","time":"10:00","patientName":"Alice","notes":"first visit"}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if a.ID != "appt-1" || a.CallID != "call-1" || a.PatientName != "Alice" || a.Notes != "first visit" {
		t.Fatalf("unexpected appointment: %+v", a)
	}
}

func TestDecode_ListsEveryMissingField(t *testing.T) {
	_, err := Decode([]byte(`{"id":"appt-1","time":"10:00"}`))
	var mf *MissingFieldsError
	if !errors.As(err, &mf) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if got := err.Error(); got != "Missing required fields: callId, date, patientName" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestDecode_EmptyObjectMissesAll(t *testing.T) {
	_, err := Decode([]byte(`{}`))
	if err == nil || err.Error() != "Missing required fields: id, callId, date, time, patientName" {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestDecode_NullCountsAsPresent(t *testing.T) {
	if _, err := Decode([]byte(`{"id":null,"callId":"c","date":"d","time":"t","patientName":"p"}`)); err != nil {
		t.Fatalf("expected null to count as present, got %v", err)
	}
}

func TestDecode_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{`null`, `[]`, `"x"`, `42`, `not json`} {
		if _, err := Decode([]byte(body)); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("body %s: expected ErrInvalidPayload, got %v", body, err)
		}
	}
}

func TestService_CreateStampsAndKeepsOrder(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	now := time.Unix(1700000000, 0)
	svc.clock = func() time.Time { return now }
	ctx := context.Background()

	for _, id := range []string{"a", "b", "a"} {
		if _, err := svc.Create(ctx, Appointment{ID: id, CallID: "missing-call"}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	all, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[1].ID != "b" || all[2].ID != "a" {
		t.Fatalf("expected insertion order with duplicates, got %+v", all)
	}
	if !all[0].CreatedAt.Equal(now) {
		t.Fatalf("expected createdAt stamped")
	}

	all[0].PatientName = "mutated"
	again, _ := svc.ListAll(ctx)
	if again[0].PatientName == "mutated" {
		t.Fatalf("expected independent copy")
	}
}
