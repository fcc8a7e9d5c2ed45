package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store persists card lifecycle events.
type Store interface {
	SaveProfileClaimed(ctx context.Context, event *ProfileClaimedEvent) error
	SaveProfileViewed(ctx context.Context, event *ProfileViewedEvent) error
}

// PostgresStore appends events to the profile_events table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed analytics store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SaveProfileClaimed(ctx context.Context, event *ProfileClaimedEvent) error {
	return s.save(ctx, TopicProfileClaimed, event.Slug, event.ClaimedAt, event)
}

func (s *PostgresStore) SaveProfileViewed(ctx context.Context, event *ProfileViewedEvent) error {
	return s.save(ctx, TopicProfileViewed, event.Slug, event.ViewedAt, event)
}

func (s *PostgresStore) save(ctx context.Context, kind, slug string, at time.Time, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profile_events (id, kind, slug, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = s.pool.Exec(ctx, query, uuid.NewString(), kind, slug, at, payload)

	return err
}

// NoopStore logs events instead of persisting them; the default when no
// analytics database is configured.
type NoopStore struct {
	logger *zap.Logger
}

// NewNoopStore creates the logging no-op store.
func NewNoopStore(logger *zap.Logger) *NoopStore {
	return &NoopStore{logger: logger}
}

func (n *NoopStore) SaveProfileClaimed(_ context.Context, event *ProfileClaimedEvent) error {
	n.logger.Info("profile claimed",
		zap.String("code", event.Code),
		zap.String("slug", event.Slug),
		zap.String("layout", event.Layout),
		zap.Time("claimedAt", event.ClaimedAt),
	)

	return nil
}

func (n *NoopStore) SaveProfileViewed(_ context.Context, event *ProfileViewedEvent) error {
	n.logger.Info("profile viewed",
		zap.String("slug", event.Slug),
		zap.Time("viewedAt", event.ViewedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}
