package audit

import (
	"context"
	"testing"
	"time"
)

func TestService_AppendRequiresType(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)

	if err := svc.Append(context.Background(), Event{CallID: "c"}); err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.Events()) != 0 {
		t.Fatalf("expected nothing appended")
	}
}

func TestService_AppendFillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	now := time.Unix(1700000000, 0).UTC()
	svc.clock = func() time.Time { return now }

	if err := svc.Append(context.Background(), Event{Type: EventTypeWebhookStored, CallID: "call-1", IPAddress: "1.2.3.4"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	evs := repo.Events()
	if len(evs) != 1 {
		t.Fatalf("expected 1 event")
	}
	if evs[0].ID == "" {
		t.Fatalf("expected generated id")
	}
	if !evs[0].CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, evs[0].CreatedAt)
	}
	if evs[0].IPAddress != "1.2.3.4" {
		t.Fatalf("expected ip captured")
	}
}

func TestService_RecentIsNewestFirst(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := svc.Append(ctx, Event{Type: EventTypeWebhookIgnored, CallID: id}); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}

	evs, err := svc.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(evs) != 2 || evs[0].CallID != "c" || evs[1].CallID != "b" {
		t.Fatalf("unexpected order: %+v", evs)
	}
}
