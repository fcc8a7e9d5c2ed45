package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/viktorhino/wowkards-mvp/internal/card"
)

// CachedProfileRepository decorates a card.ProfileRepository with a Redis
// cache for the public render path. Only GetBySlug is cached: it serves
// every card view, while the editor paths (token lookups, checks) go
// straight to the store so write-access decisions never act on stale data.
type CachedProfileRepository struct {
	store  card.ProfileRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCachedProfileRepository creates the cache decorator.
func NewCachedProfileRepository(
	store card.ProfileRepository, client *redis.Client, ttl time.Duration,
) *CachedProfileRepository {
	return &CachedProfileRepository{
		store:  store,
		client: client,
		prefix: "profile:",
		ttl:    ttl,
	}
}

// Compile-time check.
var _ card.ProfileRepository = (*CachedProfileRepository)(nil)

func (r *CachedProfileRepository) GetBySlug(ctx context.Context, slug string) (*card.Profile, error) {
	if p, err := r.getCached(ctx, slug); err == nil {
		return p, nil
	}

	p, err := r.store.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	r.cache(ctx, p)

	return p, nil
}

func (r *CachedProfileRepository) Insert(ctx context.Context, p *card.Profile) error {
	if err := r.store.Insert(ctx, p); err != nil {
		return err
	}

	// Write-through: the render path may be hit immediately after claim.
	r.cache(ctx, p)

	return nil
}

func (r *CachedProfileRepository) Update(ctx context.Context, id string, patch card.ProfilePatch) error {
	if err := r.store.Update(ctx, id, patch); err != nil {
		return err
	}

	r.invalidateByID(ctx, id)

	return nil
}

func (r *CachedProfileRepository) SetAvatarURL(ctx context.Context, id, url string) error {
	if err := r.store.SetAvatarURL(ctx, id, url); err != nil {
		return err
	}

	r.invalidateByID(ctx, id)

	return nil
}

func (r *CachedProfileRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, id); err != nil {
		return err
	}

	r.invalidateByID(ctx, id)

	return nil
}

func (r *CachedProfileRepository) GetByToken(ctx context.Context, token string) (*card.Profile, error) {
	return r.store.GetByToken(ctx, token)
}

func (r *CachedProfileRepository) SlugTaken(ctx context.Context, slug string) (bool, error) {
	return r.store.SlugTaken(ctx, slug)
}

func (r *CachedProfileRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.store.EmailTaken(ctx, email)
}

func (r *CachedProfileRepository) getCached(ctx context.Context, slug string) (*card.Profile, error) {
	raw, err := r.client.Get(ctx, r.prefix+slug).Bytes()
	if err != nil {
		return nil, err
	}

	var p card.Profile

	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *CachedProfileRepository) cache(ctx context.Context, p *card.Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}

	// Secondary id -> slug key so mutations (addressed by id) can find the
	// slug-keyed entry to drop.
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.prefix+p.Slug, raw, r.ttl)
	pipe.Set(ctx, r.prefix+"id:"+p.ID, p.Slug, r.ttl)
	_, _ = pipe.Exec(ctx)
}

// invalidateByID drops the cached entry for the profile's slug. A missing
// id -> slug key just leaves the stale entry to expire via TTL.
func (r *CachedProfileRepository) invalidateByID(ctx context.Context, id string) {
	slug, err := r.client.Get(ctx, r.prefix+"id:"+id).Result()
	if err != nil {
		return
	}

	_ = r.client.Del(ctx, r.prefix+slug, r.prefix+"id:"+id).Err()
}
