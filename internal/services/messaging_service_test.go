package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/edudz/platform-service/internal/validator"
)

func TestSendMessage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")
	student := env.registerStudent(t, "student-lina")

	msg, err := env.services.Messaging.SendMessage(ctx, student.ID, &validator.SendMessageRequest{
		ReceiverID: professor.ID,
		Body:       "Question about lecture 3",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if msg.SenderID != student.ID || msg.ReceiverID != professor.ID {
		t.Errorf("message endpoints wrong: %+v", msg)
	}

	t.Run("self message rejected", func(t *testing.T) {
		if _, err := env.services.Messaging.SendMessage(ctx, student.ID, &validator.SendMessageRequest{
			ReceiverID: student.ID,
			Body:       "note to self",
		}); !errors.Is(err, ErrInvalidParticipant) {
			t.Errorf("expected ErrInvalidParticipant, got %v", err)
		}
	})

	t.Run("unknown receiver", func(t *testing.T) {
		if _, err := env.services.Messaging.SendMessage(ctx, student.ID, &validator.SendMessageRequest{
			ReceiverID: "missing",
			Body:       "hello?",
		}); !errors.Is(err, ErrInvalidParticipant) {
			t.Errorf("expected ErrInvalidParticipant, got %v", err)
		}
	})
}

func TestGetConversation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")
	student := env.registerStudent(t, "student-lina")
	bystander := env.registerStudent(t, "student-sami")

	// Interleaved exchange plus noise from a third user.
	bodies := []struct {
		from, to, body string
	}{
		{student.ID, professor.ID, "q1"},
		{professor.ID, student.ID, "a1"},
		{bystander.ID, professor.ID, "unrelated"},
		{student.ID, professor.ID, "q2"},
		{professor.ID, student.ID, "a2"},
	}
	for _, m := range bodies {
		if _, err := env.services.Messaging.SendMessage(ctx, m.from, &validator.SendMessageRequest{
			ReceiverID: m.to,
			Body:       m.body,
		}); err != nil {
			t.Fatalf("SendMessage %q failed: %v", m.body, err)
		}
	}

	conversation, err := env.services.Messaging.GetConversation(ctx, student.ID, professor.ID)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}

	want := []string{"q1", "a1", "q2", "a2"}
	if len(conversation) != len(want) {
		t.Fatalf("conversation has %d messages, want %d", len(conversation), len(want))
	}
	for i, msg := range conversation {
		if msg.Body != want[i] {
			t.Errorf("message %d body = %q, want %q", i, msg.Body, want[i])
		}
	}

	// Both participants see the identical exchange.
	mirrored, err := env.services.Messaging.GetConversation(ctx, professor.ID, student.ID)
	if err != nil {
		t.Fatalf("GetConversation (mirrored) failed: %v", err)
	}
	if len(mirrored) != len(conversation) {
		t.Fatalf("mirrored conversation has %d messages, want %d", len(mirrored), len(conversation))
	}
	for i := range conversation {
		if conversation[i].ID != mirrored[i].ID {
			t.Errorf("message %d differs between directions", i)
		}
	}
}

func TestConversationOrderIsStable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a := env.registerStudent(t, "student-a")
	b := env.registerStudent(t, "student-b")

	// Messages created in a tight loop often share a timestamp; insertion
	// order must still hold.
	const n = 20
	for i := 0; i < n; i++ {
		if _, err := env.services.Messaging.SendMessage(ctx, a.ID, &validator.SendMessageRequest{
			ReceiverID: b.ID,
			Body:       fmt.Sprintf("msg-%02d", i),
		}); err != nil {
			t.Fatalf("SendMessage %d failed: %v", i, err)
		}
	}

	conversation, err := env.services.Messaging.GetConversation(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("GetConversation failed: %v", err)
	}
	if len(conversation) != n {
		t.Fatalf("conversation has %d messages, want %d", len(conversation), n)
	}
	for i, msg := range conversation {
		if want := fmt.Sprintf("msg-%02d", i); msg.Body != want {
			t.Errorf("message %d body = %q, want %q", i, msg.Body, want)
		}
	}
}
