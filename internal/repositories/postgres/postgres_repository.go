package postgres

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/edudz/platform-service/internal/cache"
	"github.com/edudz/platform-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface on top
// of GORM, with an optional Redis read cache for channel data.
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	user         repositories.UserRepository
	channel      repositories.ChannelRepository
	subscription repositories.SubscriptionRepository
	follow       repositories.FollowRepository
	message      repositories.MessageRepository
	announcement repositories.AnnouncementRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates a repository manager with all
// sub-repositories wired.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		db:          config.DB,
		redisClient: config.RedisClient,
	}

	channelCache := cache.NewCacheHelper(config.RedisClient, cache.ChannelCacheConfig.Prefix)

	repo.user = NewUserPostgreSQL(config.DB)
	repo.channel = NewChannelPostgreSQL(config.DB, channelCache)
	repo.subscription = NewSubscriptionPostgreSQL(config.DB)
	repo.follow = NewFollowPostgreSQL(config.DB)
	repo.message = NewMessagePostgreSQL(config.DB)
	repo.announcement = NewAnnouncementPostgreSQL(config.DB)

	return repo
}

func (r *PostgreSQLRepository) User() repositories.UserRepository { return r.user }

func (r *PostgreSQLRepository) Channel() repositories.ChannelRepository { return r.channel }

func (r *PostgreSQLRepository) Subscription() repositories.SubscriptionRepository {
	return r.subscription
}

func (r *PostgreSQLRepository) Follow() repositories.FollowRepository { return r.follow }

func (r *PostgreSQLRepository) Message() repositories.MessageRepository { return r.message }

func (r *PostgreSQLRepository) Announcement() repositories.AnnouncementRepository {
	return r.announcement
}

// WithTransaction executes fn within a database transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:          tx,
			redisClient: r.redisClient,
		}

		// Channel cache writes are skipped inside transactions; the cached
		// entries are invalidated when the outer write commits.
		txRepo.user = NewUserPostgreSQL(tx)
		txRepo.channel = NewChannelPostgreSQL(tx, nil)
		txRepo.subscription = NewSubscriptionPostgreSQL(tx)
		txRepo.follow = NewFollowPostgreSQL(tx)
		txRepo.message = NewMessagePostgreSQL(tx)
		txRepo.announcement = NewAnnouncementPostgreSQL(tx)

		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
