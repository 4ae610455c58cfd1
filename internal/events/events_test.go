package events

import (
	"context"
	"testing"
)

func TestNewEvent(t *testing.T) {
	event := NewEvent(EventSubscriptionCreated, map[string]any{
		"student_id": "s-1",
		"channel_id": "ch-1",
	})

	if event.ID == "" {
		t.Error("event id should not be empty")
	}
	if event.Type != EventSubscriptionCreated {
		t.Errorf("type = %q, want %q", event.Type, EventSubscriptionCreated)
	}
	if event.Source != "platform-service" {
		t.Errorf("source = %q", event.Source)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
	if event.Data["channel_id"] != "ch-1" {
		t.Errorf("data not carried: %+v", event.Data)
	}
}

func TestMockEventPublisher(t *testing.T) {
	pub := NewMockEventPublisher()
	ctx := context.Background()

	if err := pub.Publish(ctx, NewEvent(EventUserRegistered, nil)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if err := pub.Publish(ctx, NewEvent(EventChannelCreated, nil)); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	got := pub.GetPublishedEvents()
	if len(got) != 2 {
		t.Fatalf("recorded %d events, want 2", len(got))
	}
	if got[0].Type != EventUserRegistered || got[1].Type != EventChannelCreated {
		t.Errorf("unexpected event order: %s, %s", got[0].Type, got[1].Type)
	}

	pub.ClearEvents()
	if len(pub.GetPublishedEvents()) != 0 {
		t.Error("ClearEvents did not reset the recorded events")
	}
}
