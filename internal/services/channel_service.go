package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/validator"
	"github.com/edudz/platform-service/pkg/keylock"
)

type channelService struct {
	repo         repositories.Repository
	validator    *validator.Validator
	publisher    events.EventPublisher
	channelLocks *keylock.KeyLock
}

// NewChannelService creates the channel service. channelLocks must be the
// same lock table the subscription service uses, so that the delete
// cascade and subscribes on the same channel serialize.
func NewChannelService(repo repositories.Repository, v *validator.Validator, publisher events.EventPublisher, channelLocks *keylock.KeyLock) ChannelService {
	return &channelService{
		repo:         repo,
		validator:    v,
		publisher:    publisher,
		channelLocks: channelLocks,
	}
}

func (s *channelService) CreateChannel(ctx context.Context, professorID string, req *validator.CreateChannelRequest) (*models.Channel, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	professor, err := s.repo.User().GetByID(ctx, professorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching professor: %w", err)
	}
	if !professor.IsProfessor() {
		return nil, ErrNotProfessor
	}

	price := models.DefaultChannelPrice
	if req.Price != nil {
		price = *req.Price
	}

	channel := &models.Channel{
		ID:          uuid.New().String(),
		ProfessorID: professorID,
		Name:        req.Name,
		Department:  req.Department,
		Description: req.Description,
		MeetLink:    req.MeetLink,
		Price:       price,
	}

	if err := s.repo.Channel().Create(ctx, channel); err != nil {
		return nil, fmt.Errorf("creating channel: %w", err)
	}

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventChannelCreated, map[string]any{
		"channel_id":   channel.ID,
		"professor_id": professorID,
	}))

	return channel, nil
}

func (s *channelService) GetChannel(ctx context.Context, id string) (*models.Channel, error) {
	channel, err := s.repo.Channel().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("fetching channel: %w", err)
	}
	return channel, nil
}

func (s *channelService) UpdateChannel(ctx context.Context, professorID, channelID string, req *validator.UpdateChannelRequest) (*models.Channel, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	channel, err := s.ownedChannel(ctx, professorID, channelID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		channel.Name = *req.Name
	}
	if req.Department != nil {
		channel.Department = *req.Department
	}
	if req.Description != nil {
		channel.Description = *req.Description
	}
	if req.MeetLink != nil {
		channel.MeetLink = req.MeetLink
	}
	if req.Price != nil {
		channel.Price = *req.Price
	}

	if err := s.repo.Channel().Update(ctx, channel); err != nil {
		return nil, fmt.Errorf("updating channel: %w", err)
	}
	return channel, nil
}

// DeleteChannel removes the channel together with every subscription row
// pointing at it. Affected students simply stop seeing the channel in
// their subscription lists; the professor's stars are corrected by the
// next sweep.
func (s *channelService) DeleteChannel(ctx context.Context, professorID, channelID string) error {
	if _, err := s.ownedChannel(ctx, professorID, channelID); err != nil {
		return err
	}

	s.channelLocks.Lock(channelID)
	defer s.channelLocks.Unlock(channelID)

	var removed int64
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		n, err := tx.Subscription().DeleteByChannel(ctx, channelID)
		if err != nil {
			return fmt.Errorf("cascading subscriptions: %w", err)
		}
		removed = n
		if err := tx.Channel().Delete(ctx, channelID); err != nil {
			return fmt.Errorf("deleting channel: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventChannelDeleted, map[string]any{
		"channel_id":            channelID,
		"professor_id":          professorID,
		"subscriptions_removed": removed,
	}))

	return nil
}

func (s *channelService) ListChannels(ctx context.Context) ([]*models.Channel, error) {
	channels, err := s.repo.Channel().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	return channels, nil
}

func (s *channelService) ListProfessorChannels(ctx context.Context, professorID string) ([]*models.Channel, error) {
	if ok, err := s.repo.User().ExistsByID(ctx, professorID); err != nil {
		return nil, fmt.Errorf("checking professor: %w", err)
	} else if !ok {
		return nil, ErrUserNotFound
	}

	channels, err := s.repo.Channel().ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	return channels, nil
}

func (s *channelService) AddContent(ctx context.Context, professorID, channelID string, req *validator.AddContentRequest) (*models.Content, error) {
	if errs := s.validator.Validate(req); errs != nil {
		return nil, errs
	}

	if _, err := s.ownedChannel(ctx, professorID, channelID); err != nil {
		return nil, err
	}

	content := &models.Content{
		ID:        uuid.New().String(),
		ChannelID: channelID,
		Type:      req.Type,
		Title:     req.Title,
		URL:       req.URL,
	}
	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("encoding metadata: %w", err)
		}
		content.Metadata = datatypes.JSON(raw)
	}

	if err := s.repo.Channel().AddContent(ctx, content); err != nil {
		return nil, fmt.Errorf("adding content: %w", err)
	}
	return content, nil
}

func (s *channelService) ListContent(ctx context.Context, channelID string) ([]*models.Content, error) {
	if ok, err := s.repo.Channel().ExistsByID(ctx, channelID); err != nil {
		return nil, fmt.Errorf("checking channel: %w", err)
	} else if !ok {
		return nil, ErrChannelNotFound
	}

	content, err := s.repo.Channel().ListContent(ctx, channelID)
	if err != nil {
		return nil, fmt.Errorf("listing content: %w", err)
	}
	return content, nil
}

// ExportProfessorReport builds an xlsx workbook with one row per channel
// plus a summary row of the professor's reputation.
func (s *channelService) ExportProfessorReport(ctx context.Context, professorID string) ([]byte, error) {
	professor, err := s.repo.User().GetByID(ctx, professorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetching professor: %w", err)
	}
	if !professor.IsProfessor() {
		return nil, ErrNotProfessor
	}

	channels, err := s.repo.Channel().ListByProfessor(ctx, professorID)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Channels"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	headers := []string{"Channel", "Department", "Subscribers", "Star Rating", "Price (DZD)"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for row, channel := range channels {
		values := []any{channel.Name, channel.Department, channel.SubscriberCount, channel.StarRating, channel.Price}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", row+2, err)
			}
		}
	}

	summaryRow := len(channels) + 3
	cell, _ := excelize.CoordinatesToCellName(1, summaryRow)
	if err := f.SetCellValue(sheet, cell, "Professor stars"); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}
	cell, _ = excelize.CoordinatesToCellName(2, summaryRow)
	if err := f.SetCellValue(sheet, cell, professor.Stars); err != nil {
		return nil, fmt.Errorf("writing summary: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *channelService) ownedChannel(ctx context.Context, professorID, channelID string) (*models.Channel, error) {
	channel, err := s.repo.Channel().GetByID(ctx, channelID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrChannelNotFound
		}
		return nil, fmt.Errorf("fetching channel: %w", err)
	}
	if channel.ProfessorID != professorID {
		return nil, ErrNotChannelOwner
	}
	return channel, nil
}
