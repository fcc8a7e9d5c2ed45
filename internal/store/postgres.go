package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/viktorhino/wowkards-mvp/internal/card"
)

// PostgresStore implements card.CodeRepository and card.ProfileRepository
// against the system-of-record database. The pool it receives is the
// privileged handle; it is constructed once at startup and injected, never
// reached through a package-level global.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Compile-time checks.
var (
	_ card.CodeRepository    = (*PostgresStore)(nil)
	_ card.ProfileRepository = (*PostgresStore)(nil)
)

func (p *PostgresStore) GetCode(ctx context.Context, code string) (*card.ShortCode, error) {
	query := `
		SELECT code, status, COALESCE(slug, ''), created_at, claimed_at
		FROM short_codes
		WHERE code = $1
	`

	var sc card.ShortCode

	err := p.pool.QueryRow(ctx, query, code).Scan(
		&sc.Code,
		&sc.Status,
		&sc.Slug,
		&sc.CreatedAt,
		&sc.ClaimedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrCodeNotFound
		}

		return nil, err
	}

	return &sc, nil
}

// MarkClaimed performs the one conditional write the whole claim flow hangs
// on: the WHERE status = 'unclaimed' clause makes the database arbitrate
// concurrent claims, and a zero row count means this caller lost.
func (p *PostgresStore) MarkClaimed(ctx context.Context, code, slug string, at time.Time) error {
	query := `
		UPDATE short_codes
		SET status = $1, slug = $2, claimed_at = $3
		WHERE code = $4 AND status = $5
	`

	tag, err := p.pool.Exec(ctx, query,
		string(card.StatusClaimed), slug, at, code, string(card.StatusUnclaimed),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return card.ErrCodeClaimed
	}

	return nil
}

func (p *PostgresStore) OldestUnclaimed(ctx context.Context) (*card.ShortCode, error) {
	query := `
		SELECT code, status, COALESCE(slug, ''), created_at, claimed_at
		FROM short_codes
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT 1
	`

	var sc card.ShortCode

	err := p.pool.QueryRow(ctx, query, string(card.StatusUnclaimed)).Scan(
		&sc.Code,
		&sc.Status,
		&sc.Slug,
		&sc.CreatedAt,
		&sc.ClaimedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, card.ErrCodeNotFound
		}

		return nil, err
	}

	return &sc, nil
}

func (p *PostgresStore) InsertCodes(ctx context.Context, codes []string) (int64, error) {
	query := `
		INSERT INTO short_codes (code, status, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (code) DO NOTHING
	`

	batch := &pgx.Batch{}

	for _, code := range codes {
		batch.Queue(query, code, string(card.StatusUnclaimed))
	}

	results := p.pool.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64

	for range codes {
		tag, err := results.Exec()
		if err != nil {
			return inserted, err
		}

		inserted += tag.RowsAffected()
	}

	return inserted, nil
}

func (p *PostgresStore) Insert(ctx context.Context, profile *card.Profile) error {
	cfg, err := json.Marshal(profile.TemplateConfig)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profiles (
			id, slug, name, last_name, position, company,
			whatsapp, email, mini_bio, avatar_url, template_config,
			edit_token, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = p.pool.Exec(ctx, query,
		profile.ID,
		profile.Slug,
		profile.Name,
		profile.LastName,
		nullable(profile.Position),
		nullable(profile.Company),
		profile.WhatsApp,
		profile.Email,
		nullable(profile.MiniBio),
		nullable(profile.AvatarURL),
		cfg,
		profile.EditToken,
		profile.CreatedAt,
	)

	return mapUniqueViolation(err)
}

func (p *PostgresStore) GetBySlug(ctx context.Context, slug string) (*card.Profile, error) {
	return p.getProfile(ctx, "slug = $1", slug, card.ErrProfileNotFound)
}

func (p *PostgresStore) GetByToken(ctx context.Context, token string) (*card.Profile, error) {
	return p.getProfile(ctx, "edit_token = $1", token, card.ErrTokenNotFound)
}

func (p *PostgresStore) getProfile(
	ctx context.Context, where, arg string, missing error,
) (*card.Profile, error) {
	query := `
		SELECT id, slug, name, last_name,
			COALESCE(position, ''), COALESCE(company, ''),
			whatsapp, email, COALESCE(mini_bio, ''), COALESCE(avatar_url, ''),
			template_config, edit_token, created_at
		FROM profiles
		WHERE ` + where

	var (
		profile card.Profile
		cfg     []byte
	)

	err := p.pool.QueryRow(ctx, query, arg).Scan(
		&profile.ID,
		&profile.Slug,
		&profile.Name,
		&profile.LastName,
		&profile.Position,
		&profile.Company,
		&profile.WhatsApp,
		&profile.Email,
		&profile.MiniBio,
		&profile.AvatarURL,
		&cfg,
		&profile.EditToken,
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, missing
		}

		return nil, err
	}

	if len(cfg) > 0 {
		if err := json.Unmarshal(cfg, &profile.TemplateConfig); err != nil {
			return nil, err
		}
	}

	return &profile, nil
}

func (p *PostgresStore) Update(ctx context.Context, id string, patch card.ProfilePatch) error {
	sets := make([]string, 0, 9)
	args := make([]any, 0, 10)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Name != nil {
		add("name", *patch.Name)
	}

	if patch.LastName != nil {
		add("last_name", *patch.LastName)
	}

	if patch.Position != nil {
		add("position", nullable(*patch.Position))
	}

	if patch.Company != nil {
		add("company", nullable(*patch.Company))
	}

	if patch.WhatsApp != nil {
		add("whatsapp", *patch.WhatsApp)
	}

	if patch.Email != nil {
		add("email", *patch.Email)
	}

	if patch.MiniBio != nil {
		add("mini_bio", nullable(*patch.MiniBio))
	}

	if patch.AvatarURL != nil {
		add("avatar_url", nullable(*patch.AvatarURL))
	}

	if patch.TemplateConfig != nil {
		cfg, err := json.Marshal(*patch.TemplateConfig)
		if err != nil {
			return err
		}

		add("template_config", cfg)
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE profiles SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)

	tag, err := p.pool.Exec(ctx, query, args...)
	if err != nil {
		return mapUniqueViolation(err)
	}

	if tag.RowsAffected() == 0 {
		return card.ErrProfileNotFound
	}

	return nil
}

func (p *PostgresStore) SetAvatarURL(ctx context.Context, id, url string) error {
	_, err := p.pool.Exec(ctx,
		"UPDATE profiles SET avatar_url = $1 WHERE id = $2", url, id,
	)

	return err
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	_, err := p.pool.Exec(ctx, "DELETE FROM profiles WHERE id = $1", id)

	return err
}

func (p *PostgresStore) SlugTaken(ctx context.Context, slug string) (bool, error) {
	return p.exists(ctx, "SELECT count(*) FROM profiles WHERE slug = $1", slug)
}

func (p *PostgresStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	return p.exists(ctx, "SELECT count(*) FROM profiles WHERE email = $1", email)
}

func (p *PostgresStore) exists(ctx context.Context, query, arg string) (bool, error) {
	var count int64

	if err := p.pool.QueryRow(ctx, query, arg).Scan(&count); err != nil {
		return false, err
	}

	return count > 0, nil
}

// Ping reports database connectivity for health checks.
func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

const uniqueViolation = "23505"

// mapUniqueViolation translates Postgres unique-index errors into the
// domain sentinels the allocator acts on. The unique index on slug is the
// real slug-uniqueness guarantee; the allocator's pre-check is only an
// optimization.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if strings.Contains(pgErr.ConstraintName, "edit_token") {
			return card.ErrTokenConflict
		}

		return card.ErrSlugTaken
	}

	return err
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}
