package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	event := NewBaseEvent("ApplicationSubmitted", "app-123", "LoanApplication")
	after := time.Now().UTC()

	if event.EventID() == "" {
		t.Error("expected non-empty event ID")
	}

	if event.EventType() != "ApplicationSubmitted" {
		t.Errorf("expected event type %q, got %q", "ApplicationSubmitted", event.EventType())
	}

	if event.AggregateID() != "app-123" {
		t.Errorf("expected aggregate ID %q, got %q", "app-123", event.AggregateID())
	}

	if event.AggregateType() != "LoanApplication" {
		t.Errorf("expected aggregate type %q, got %q", "LoanApplication", event.AggregateType())
	}

	if event.OccurredAt().Before(before) || event.OccurredAt().After(after) {
		t.Errorf("expected occurredAt between %v and %v, got %v", before, after, event.OccurredAt())
	}
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestBaseEventSerialisesEnvelope(t *testing.T) {
	event := NewBaseEvent("ApplicationApproved", "app-456", "LoanApplication")

	raw, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal event: %v", err)
	}

	var envelope map[string]any
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("unmarshal event: %v", err)
	}

	for _, key := range []string{"event_id", "event_type", "aggregate_id", "aggregate_type", "occurred_at"} {
		if _, ok := envelope[key]; !ok {
			t.Errorf("expected serialised envelope to contain %q", key)
		}
	}
}
