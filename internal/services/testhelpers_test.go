package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/repositories/memory"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/internal/validator"
)

type testEnv struct {
	repo      repositories.Repository
	publisher *events.MockEventPublisher
	services  *ServiceManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := memory.NewMemoryRepository()
	publisher := events.NewMockEventPublisher()
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	return &testEnv{
		repo:      repo,
		publisher: publisher,
		services:  NewServiceManager(repo, validator.New(), publisher, logger),
	}
}

func (e *testEnv) registerProfessor(t *testing.T, name string) *models.User {
	t.Helper()

	user, err := e.services.Identity.Register(context.Background(), &validator.RegisterRequest{
		Name:     name,
		Email:    fmt.Sprintf("%s@univ.dz", name),
		Password: "secret123",
		Role:     models.RoleProfessor,
	})
	if err != nil {
		t.Fatalf("registering professor %s: %v", name, err)
	}
	return user
}

func (e *testEnv) registerStudent(t *testing.T, name string) *models.User {
	t.Helper()

	user, err := e.services.Identity.Register(context.Background(), &validator.RegisterRequest{
		Name:     name,
		Email:    fmt.Sprintf("%s@univ.dz", name),
		Password: "secret123",
		Role:     models.RoleStudent,
	})
	if err != nil {
		t.Fatalf("registering student %s: %v", name, err)
	}
	return user
}

func (e *testEnv) createChannel(t *testing.T, professorID, name string) *models.Channel {
	t.Helper()

	channel, err := e.services.Channel.CreateChannel(context.Background(), professorID, &validator.CreateChannelRequest{
		Name:       name,
		Department: "Mathematics",
	})
	if err != nil {
		t.Fatalf("creating channel %s: %v", name, err)
	}
	return channel
}

func (e *testEnv) subscribe(t *testing.T, studentID, channelID string) {
	t.Helper()

	if _, err := e.services.Subscription.Subscribe(context.Background(), studentID, channelID); err != nil {
		t.Fatalf("subscribing %s to %s: %v", studentID, channelID, err)
	}
}

func (e *testEnv) channelByID(t *testing.T, id string) *models.Channel {
	t.Helper()

	channel, err := e.repo.Channel().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("fetching channel %s: %v", id, err)
	}
	return channel
}

func (e *testEnv) userByID(t *testing.T, id string) *models.User {
	t.Helper()

	user, err := e.repo.User().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("fetching user %s: %v", id, err)
	}
	return user
}
