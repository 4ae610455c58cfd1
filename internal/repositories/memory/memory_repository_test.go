package memory

import (
	"context"
	"fmt"
	"testing"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
)

func TestUserRepository_EmailIndex(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	user := &models.User{ID: "u1", Name: "Lina", Email: "lina@univ.dz", Role: models.RoleStudent}
	if err := repo.User().Create(ctx, user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.User().Create(ctx, &models.User{
		ID: "u2", Name: "Other", Email: "lina@univ.dz", Role: models.RoleStudent,
	}); !repositories.IsDuplicateError(err) {
		t.Errorf("expected duplicate error for reused email, got %v", err)
	}

	got, err := repo.User().GetByEmail(ctx, "lina@univ.dz")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.ID != "u1" {
		t.Errorf("GetByEmail returned %s, want u1", got.ID)
	}

	// Changing the email frees the old address.
	got.Email = "lina.b@univ.dz"
	if err := repo.User().Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if _, err := repo.User().GetByEmail(ctx, "lina@univ.dz"); !repositories.IsNotFoundError(err) {
		t.Errorf("old email still resolves: %v", err)
	}
	if _, err := repo.User().GetByEmail(ctx, "lina.b@univ.dz"); err != nil {
		t.Errorf("new email does not resolve: %v", err)
	}
}

func TestUserRepository_CopyOnReturn(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.User().Create(ctx, &models.User{
		ID: "u1", Name: "Lina", Email: "lina@univ.dz", Role: models.RoleStudent,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	first, _ := repo.User().GetByID(ctx, "u1")
	first.Name = "mutated"

	second, _ := repo.User().GetByID(ctx, "u1")
	if second.Name != "Lina" {
		t.Errorf("store leaked a mutable reference: name = %q", second.Name)
	}
}

func TestChannelRepository_CounterFloor(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if err := repo.Channel().Create(ctx, &models.Channel{
		ID: "ch1", ProfessorID: "p1", Name: "Analysis", Department: "Math",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.Channel().IncrementSubscribers(ctx, "ch1", -5); err != nil {
		t.Fatalf("IncrementSubscribers failed: %v", err)
	}

	channel, _ := repo.Channel().GetByID(ctx, "ch1")
	if channel.SubscriberCount != 0 {
		t.Errorf("subscriber count = %d, want floor at 0", channel.SubscriberCount)
	}
}

func TestSubscriptionRepository_CascadeDelete(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := repo.Subscription().Create(ctx, &models.Subscription{
			StudentID: fmt.Sprintf("s%d", i),
			ChannelID: "ch1",
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}
	if err := repo.Subscription().Create(ctx, &models.Subscription{
		StudentID: "s0", ChannelID: "ch2",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	removed, err := repo.Subscription().DeleteByChannel(ctx, "ch1")
	if err != nil {
		t.Fatalf("DeleteByChannel failed: %v", err)
	}
	if removed != 4 {
		t.Errorf("removed %d rows, want 4", removed)
	}

	count, _ := repo.Subscription().CountByChannel(ctx, "ch1")
	if count != 0 {
		t.Errorf("count after cascade = %d, want 0", count)
	}

	// The other channel's relation survives.
	remaining, _ := repo.Subscription().ListByStudent(ctx, "s0")
	if len(remaining) != 1 || remaining[0].ChannelID != "ch2" {
		t.Errorf("unexpected remaining subscriptions: %+v", remaining)
	}
}

func TestSubscriptionRepository_DuplicateCreate(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	sub := &models.Subscription{StudentID: "s1", ChannelID: "ch1"}
	if err := repo.Subscription().Create(ctx, sub); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Subscription().Create(ctx, sub); !repositories.IsDuplicateError(err) {
		t.Errorf("expected duplicate error, got %v", err)
	}

	count, _ := repo.Subscription().CountByChannel(ctx, "ch1")
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestMessageRepository_SymmetricOrder(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	pairs := []struct{ from, to, body string }{
		{"a", "b", "m1"},
		{"b", "a", "m2"},
		{"a", "c", "noise"},
		{"a", "b", "m3"},
	}
	for i, p := range pairs {
		if err := repo.Message().Create(ctx, &models.ChatMessage{
			ID: fmt.Sprintf("m%d", i), SenderID: p.from, ReceiverID: p.to, Body: p.body,
		}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	forward, err := repo.Message().ListBetween(ctx, "a", "b")
	if err != nil {
		t.Fatalf("ListBetween failed: %v", err)
	}
	want := []string{"m1", "m2", "m3"}
	if len(forward) != len(want) {
		t.Fatalf("listed %d messages, want %d", len(forward), len(want))
	}
	for i, msg := range forward {
		if msg.Body != want[i] {
			t.Errorf("message %d = %q, want %q", i, msg.Body, want[i])
		}
	}

	backward, _ := repo.Message().ListBetween(ctx, "b", "a")
	for i := range forward {
		if forward[i].ID != backward[i].ID {
			t.Errorf("ListBetween is not symmetric at index %d", i)
		}
	}
}
