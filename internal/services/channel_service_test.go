package services

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/validator"
)

func TestCreateChannel(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")

	channel, err := env.services.Channel.CreateChannel(ctx, professor.ID, &validator.CreateChannelRequest{
		Name:       "Analysis 1",
		Department: "Mathematics",
	})
	if err != nil {
		t.Fatalf("CreateChannel failed: %v", err)
	}

	if channel.Price != models.DefaultChannelPrice {
		t.Errorf("price = %d, want default %d", channel.Price, models.DefaultChannelPrice)
	}
	if channel.StarRating != 0 {
		t.Errorf("rating = %v, want 0 at creation", channel.StarRating)
	}
	if channel.SubscriberCount != 0 {
		t.Errorf("subscriber count = %d, want 0 at creation", channel.SubscriberCount)
	}

	t.Run("students cannot create channels", func(t *testing.T) {
		student := env.registerStudent(t, "student-lina")
		if _, err := env.services.Channel.CreateChannel(ctx, student.ID, &validator.CreateChannelRequest{
			Name:       "Pirate Channel",
			Department: "Mathematics",
		}); !errors.Is(err, ErrNotProfessor) {
			t.Errorf("expected ErrNotProfessor, got %v", err)
		}
	})
}

func TestUpdateChannel_Ownership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.registerProfessor(t, "prof-amine")
	intruder := env.registerProfessor(t, "prof-yacine")
	channel := env.createChannel(t, owner.ID, "Analysis 1")

	name := "Analysis 1 (updated)"
	if _, err := env.services.Channel.UpdateChannel(ctx, intruder.ID, channel.ID, &validator.UpdateChannelRequest{
		Name: &name,
	}); !errors.Is(err, ErrNotChannelOwner) {
		t.Errorf("expected ErrNotChannelOwner, got %v", err)
	}

	updated, err := env.services.Channel.UpdateChannel(ctx, owner.ID, channel.ID, &validator.UpdateChannelRequest{
		Name: &name,
	})
	if err != nil {
		t.Fatalf("UpdateChannel failed: %v", err)
	}
	if updated.Name != name {
		t.Errorf("name = %q, want %q", updated.Name, name)
	}
	if updated.ProfessorID != owner.ID {
		t.Errorf("owner changed to %s", updated.ProfessorID)
	}
}

func TestDeleteChannel_Cascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")
	doomed := env.createChannel(t, professor.ID, "Doomed")
	surviving := env.createChannel(t, professor.ID, "Surviving")

	students := make([]*models.User, 3)
	for i := range students {
		students[i] = env.registerStudent(t, "student-"+string(rune('a'+i)))
		env.subscribe(t, students[i].ID, doomed.ID)
		env.subscribe(t, students[i].ID, surviving.ID)
	}

	if err := env.services.Channel.DeleteChannel(ctx, professor.ID, doomed.ID); err != nil {
		t.Fatalf("DeleteChannel failed: %v", err)
	}

	if _, err := env.services.Channel.GetChannel(ctx, doomed.ID); !errors.Is(err, ErrChannelNotFound) {
		t.Errorf("expected ErrChannelNotFound after delete, got %v", err)
	}

	// No orphaned relation rows remain.
	count, err := env.repo.Subscription().CountByChannel(ctx, doomed.ID)
	if err != nil {
		t.Fatalf("CountByChannel failed: %v", err)
	}
	if count != 0 {
		t.Errorf("orphaned subscriptions = %d, want 0", count)
	}

	// Students keep their other subscriptions.
	for _, student := range students {
		channels, err := env.services.Subscription.ListSubscribedChannels(ctx, student.ID)
		if err != nil {
			t.Fatalf("ListSubscribedChannels failed: %v", err)
		}
		if len(channels) != 1 || channels[0].ID != surviving.ID {
			t.Errorf("student %s subscriptions = %+v, want only the surviving channel", student.ID, channels)
		}
	}

	t.Run("only the owner can delete", func(t *testing.T) {
		intruder := env.registerProfessor(t, "prof-yacine")
		if err := env.services.Channel.DeleteChannel(ctx, intruder.ID, surviving.ID); !errors.Is(err, ErrNotChannelOwner) {
			t.Errorf("expected ErrNotChannelOwner, got %v", err)
		}
	})
}

func TestChannelContent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")
	channel := env.createChannel(t, professor.ID, "Analysis 1")

	uploads := []validator.AddContentRequest{
		{Type: models.ContentDocument, Title: "Syllabus", URL: "https://cdn.univ.dz/syllabus.pdf"},
		{Type: models.ContentVideo, Title: "Lecture 1", URL: "https://cdn.univ.dz/lec1.mp4", Metadata: map[string]any{"duration": 3600}},
		{Type: models.ContentImage, Title: "Diagram", URL: "https://cdn.univ.dz/fig.png"},
	}
	for i := range uploads {
		if _, err := env.services.Channel.AddContent(ctx, professor.ID, channel.ID, &uploads[i]); err != nil {
			t.Fatalf("AddContent %q failed: %v", uploads[i].Title, err)
		}
	}

	items, err := env.services.Channel.ListContent(ctx, channel.ID)
	if err != nil {
		t.Fatalf("ListContent failed: %v", err)
	}
	if len(items) != len(uploads) {
		t.Fatalf("listed %d items, want %d", len(items), len(uploads))
	}
	// Upload order is preserved.
	for i, item := range items {
		if item.Title != uploads[i].Title {
			t.Errorf("item %d title = %q, want %q", i, item.Title, uploads[i].Title)
		}
	}

	t.Run("invalid content type", func(t *testing.T) {
		_, err := env.services.Channel.AddContent(ctx, professor.ID, channel.ID, &validator.AddContentRequest{
			Type:  "podcast",
			Title: "Episode 1",
			URL:   "https://cdn.univ.dz/ep1.mp3",
		})
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Errorf("expected validation errors, got %v", err)
		}
	})
}

func TestExportProfessorReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	professor := env.registerProfessor(t, "prof-amine")
	channel := env.createChannel(t, professor.ID, "Analysis 1")
	student := env.registerStudent(t, "student-lina")
	env.subscribe(t, student.ID, channel.ID)

	workbook, err := env.services.Channel.ExportProfessorReport(ctx, professor.ID)
	if err != nil {
		t.Fatalf("ExportProfessorReport failed: %v", err)
	}
	if len(workbook) == 0 {
		t.Fatal("workbook is empty")
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(workbook, []byte("PK")) {
		t.Errorf("workbook does not look like an xlsx file: % x", workbook[:4])
	}

	t.Run("students have no report", func(t *testing.T) {
		if _, err := env.services.Channel.ExportProfessorReport(ctx, student.ID); !errors.Is(err, ErrNotProfessor) {
			t.Errorf("expected ErrNotProfessor, got %v", err)
		}
	})
}
