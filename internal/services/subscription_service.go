package services

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/edudz/platform-service/internal/events"
	"github.com/edudz/platform-service/internal/models"
	"github.com/edudz/platform-service/internal/repositories"
	"github.com/edudz/platform-service/internal/utils"
	"github.com/edudz/platform-service/pkg/keylock"
)

// SubscribeStarBonus is the immediate reputation bonus a professor gets
// when a student subscribes to one of their channels. The periodic sweep
// overwrites it; between sweeps it acts as a transient boost.
const SubscribeStarBonus = 5.0

// Rating formula bounds. A channel's rating grows linearly with its
// subscriber count and saturates at the maximum.
const (
	ratingBase           = 3.0
	ratingMax            = 5.0
	subscribersPerRating = 50.0
)

type subscriptionService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    utils.Logger

	// channelLocks serializes subscribe, unsubscribe and per-channel sweep
	// writes on the same channel. Operations on distinct channels run
	// concurrently.
	channelLocks *keylock.KeyLock

	recomputing atomic.Bool
}

// NewSubscriptionService creates the subscription and reputation service.
func NewSubscriptionService(repo repositories.Repository, publisher events.EventPublisher, logger utils.Logger) SubscriptionService {
	return &subscriptionService{
		repo:         repo,
		publisher:    publisher,
		logger:       logger,
		channelLocks: keylock.New(),
	}
}

func (s *subscriptionService) Subscribe(ctx context.Context, studentID, channelID string) (SubscribeResult, error) {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("fetching student: %w", err)
	}
	if !student.IsStudent() {
		return "", ErrNotStudent
	}

	s.channelLocks.Lock(channelID)
	defer s.channelLocks.Unlock(channelID)

	// Fetched under the channel lock. The delete cascade holds the same
	// lock, so the channel cannot disappear between this read and the
	// writes below.
	channel, err := s.repo.Channel().GetByID(ctx, channelID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrChannelNotFound
		}
		return "", fmt.Errorf("fetching channel: %w", err)
	}

	exists, err := s.repo.Subscription().Exists(ctx, studentID, channelID)
	if err != nil {
		return "", fmt.Errorf("checking subscription: %w", err)
	}
	if exists {
		return AlreadySubscribed, nil
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Subscription().Create(ctx, &models.Subscription{
			StudentID: studentID,
			ChannelID: channelID,
		}); err != nil {
			return fmt.Errorf("creating subscription: %w", err)
		}
		if err := tx.Channel().IncrementSubscribers(ctx, channelID, 1); err != nil {
			return fmt.Errorf("incrementing subscribers: %w", err)
		}
		if err := tx.User().AddStars(ctx, channel.ProfessorID, SubscribeStarBonus); err != nil {
			return fmt.Errorf("applying star bonus: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventSubscriptionCreated, map[string]any{
		"student_id":   studentID,
		"channel_id":   channelID,
		"professor_id": channel.ProfessorID,
	}))

	return Subscribed, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, studentID, channelID string) (UnsubscribeResult, error) {
	if _, err := s.repo.User().GetByID(ctx, studentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("fetching student: %w", err)
	}
	s.channelLocks.Lock(channelID)
	defer s.channelLocks.Unlock(channelID)

	if ok, err := s.repo.Channel().ExistsByID(ctx, channelID); err != nil {
		return "", fmt.Errorf("checking channel: %w", err)
	} else if !ok {
		return "", ErrChannelNotFound
	}

	exists, err := s.repo.Subscription().Exists(ctx, studentID, channelID)
	if err != nil {
		return "", fmt.Errorf("checking subscription: %w", err)
	}
	if !exists {
		return NotSubscribed, nil
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		if err := tx.Subscription().Delete(ctx, studentID, channelID); err != nil {
			return fmt.Errorf("deleting subscription: %w", err)
		}
		if err := tx.Channel().IncrementSubscribers(ctx, channelID, -1); err != nil {
			return fmt.Errorf("decrementing subscribers: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventSubscriptionRemoved, map[string]any{
		"student_id": studentID,
		"channel_id": channelID,
	}))

	return Unsubscribed, nil
}

func (s *subscriptionService) ListSubscribedChannels(ctx context.Context, studentID string) ([]*models.Channel, error) {
	subs, err := s.repo.Subscription().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing subscriptions: %w", err)
	}

	channels := make([]*models.Channel, 0, len(subs))
	for _, sub := range subs {
		channel, err := s.repo.Channel().GetByID(ctx, sub.ChannelID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				// Relation rows are cascade-deleted with the channel, but a
				// concurrent delete can race this read.
				continue
			}
			return nil, fmt.Errorf("fetching channel %s: %w", sub.ChannelID, err)
		}
		channels = append(channels, channel)
	}
	return channels, nil
}

// ToggleFollow flips the no-cost student-professor association. Calling it
// twice restores the original state. It never touches stars or subscriber
// counts.
func (s *subscriptionService) ToggleFollow(ctx context.Context, studentID, professorID string) (bool, error) {
	if err := s.checkFollowPair(ctx, studentID, professorID); err != nil {
		return false, err
	}

	exists, err := s.repo.Follow().Exists(ctx, studentID, professorID)
	if err != nil {
		return false, fmt.Errorf("checking follow: %w", err)
	}

	if exists {
		if err := s.repo.Follow().Delete(ctx, studentID, professorID); err != nil {
			return false, fmt.Errorf("deleting follow: %w", err)
		}
		return false, nil
	}

	if err := s.repo.Follow().Create(ctx, &models.Follow{
		StudentID:   studentID,
		ProfessorID: professorID,
	}); err != nil {
		if repositories.IsDuplicateError(err) {
			return true, nil
		}
		return false, fmt.Errorf("creating follow: %w", err)
	}
	return true, nil
}

func (s *subscriptionService) ListFollowedProfessors(ctx context.Context, studentID string) ([]*models.User, error) {
	follows, err := s.repo.Follow().ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing follows: %w", err)
	}

	professors := make([]*models.User, 0, len(follows))
	for _, f := range follows {
		professor, err := s.repo.User().GetByID(ctx, f.ProfessorID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				continue
			}
			return nil, fmt.Errorf("fetching professor %s: %w", f.ProfessorID, err)
		}
		professors = append(professors, professor)
	}
	return professors, nil
}

func (s *subscriptionService) checkFollowPair(ctx context.Context, studentID, professorID string) error {
	student, err := s.repo.User().GetByID(ctx, studentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("fetching student: %w", err)
	}
	if !student.IsStudent() {
		return ErrNotStudent
	}

	professor, err := s.repo.User().GetByID(ctx, professorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("fetching professor: %w", err)
	}
	if !professor.IsProfessor() {
		return ErrNotProfessor
	}
	return nil
}

// RecomputeRatings recalculates every channel's star rating from the
// authoritative subscription relation, then every professor's stars as the
// mean of their channel ratings. Professors without channels keep their
// current stars. The sweep overwrites any interactive bonus applied since
// the last run.
func (s *subscriptionService) RecomputeRatings(ctx context.Context) (*RecomputeReport, error) {
	if !s.recomputing.CompareAndSwap(false, true) {
		return nil, ErrRecomputeInProgress
	}
	defer s.recomputing.Store(false)

	start := time.Now()

	channels, err := s.repo.Channel().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}

	ratingsByProfessor := make(map[string][]float64)
	channelsUpdated := 0
	for _, channel := range channels {
		rating, err := s.recomputeChannel(ctx, channel.ID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				// Channel deleted mid-sweep.
				continue
			}
			return nil, fmt.Errorf("recomputing channel %s: %w", channel.ID, err)
		}
		ratingsByProfessor[channel.ProfessorID] = append(ratingsByProfessor[channel.ProfessorID], rating)
		channelsUpdated++
	}

	professors, err := s.repo.User().ListProfessors(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing professors: %w", err)
	}

	professorsUpdated, professorsSkipped := 0, 0
	for _, professor := range professors {
		ratings := ratingsByProfessor[professor.ID]
		if len(ratings) == 0 {
			professorsSkipped++
			continue
		}
		if err := s.repo.User().SetStars(ctx, professor.ID, round1(mean(ratings))); err != nil {
			return nil, fmt.Errorf("setting stars for %s: %w", professor.ID, err)
		}
		professorsUpdated++
	}

	report := &RecomputeReport{
		ChannelsUpdated:   channelsUpdated,
		ProfessorsUpdated: professorsUpdated,
		ProfessorsSkipped: professorsSkipped,
		Duration:          time.Since(start),
	}
	report.DurationHuman = report.Duration.String()

	s.logger.Info("rating sweep finished",
		"channels_updated", report.ChannelsUpdated,
		"professors_updated", report.ProfessorsUpdated,
		"professors_skipped", report.ProfessorsSkipped,
		"duration", report.DurationHuman,
	)

	_ = s.publisher.Publish(ctx, events.NewEvent(events.EventRatingsRecomputed, map[string]any{
		"channels_updated":   report.ChannelsUpdated,
		"professors_updated": report.ProfessorsUpdated,
	}))

	return report, nil
}

// recomputeChannel derives one channel's rating and reconciles its
// subscriber counter under the channel lock, so an in-flight subscribe
// cannot interleave between the count and the write.
func (s *subscriptionService) recomputeChannel(ctx context.Context, channelID string) (float64, error) {
	s.channelLocks.Lock(channelID)
	defer s.channelLocks.Unlock(channelID)

	count, err := s.repo.Subscription().CountByChannel(ctx, channelID)
	if err != nil {
		return 0, err
	}

	rating := channelRating(count)
	if err := s.repo.Channel().SetRating(ctx, channelID, rating, int(count)); err != nil {
		return 0, err
	}
	return rating, nil
}

// channelRating maps a subscriber count onto the [3.0, 5.0] star scale,
// rounded to one decimal. 0 subscribers rate 3.0; 100 or more saturate at
// 5.0.
func channelRating(subscribers int64) float64 {
	return round1(clamp(float64(subscribers)/subscribersPerRating+ratingBase, ratingBase, ratingMax))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
