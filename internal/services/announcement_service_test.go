package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/edudz/platform-service/internal/validator"
)

func TestPublishAnnouncement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")

	ann, err := env.services.Announcement.Publish(ctx, professor.ID, &validator.PublishAnnouncementRequest{
		Title: "Exam moved",
		Body:  "The final exam moves to room B12.",
	})
	if err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	if ann.ProfessorID != professor.ID {
		t.Errorf("announcement owner = %s, want %s", ann.ProfessorID, professor.ID)
	}

	t.Run("students cannot publish", func(t *testing.T) {
		student := env.registerStudent(t, "student-lina")
		if _, err := env.services.Announcement.Publish(ctx, student.ID, &validator.PublishAnnouncementRequest{
			Title: "Party",
			Body:  "Friday at 8",
		}); !errors.Is(err, ErrNotProfessor) {
			t.Errorf("expected ErrNotProfessor, got %v", err)
		}
	})
}

func TestListAnnouncements_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")

	const n = 5
	for i := 0; i < n; i++ {
		if _, err := env.services.Announcement.Publish(ctx, professor.ID, &validator.PublishAnnouncementRequest{
			Title: fmt.Sprintf("post-%d", i),
			Body:  "body",
		}); err != nil {
			t.Fatalf("Publish %d failed: %v", i, err)
		}
		time.Sleep(time.Millisecond)
	}

	announcements, err := env.services.Announcement.ListByProfessor(ctx, professor.ID)
	if err != nil {
		t.Fatalf("ListByProfessor failed: %v", err)
	}
	if len(announcements) != n {
		t.Fatalf("listed %d announcements, want %d", len(announcements), n)
	}
	for i, ann := range announcements {
		if want := fmt.Sprintf("post-%d", n-1-i); ann.Title != want {
			t.Errorf("announcement %d title = %q, want %q", i, ann.Title, want)
		}
	}
}
