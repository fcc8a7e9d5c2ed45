package store

import (
	"context"
	"sync"
	"time"

	"github.com/viktorhino/wowkards-mvp/internal/card"
)

// MemoryStore is an in-memory twin of PostgresStore used by unit tests. It
// mirrors the database semantics the claim flow depends on: the conditional
// unclaimed -> claimed transition and the unique slug / edit-token indexes.
type MemoryStore struct {
	mu       sync.RWMutex
	codes    map[string]*card.ShortCode
	profiles map[string]*card.Profile // keyed by id
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		codes:    make(map[string]*card.ShortCode),
		profiles: make(map[string]*card.Profile),
	}
}

// Compile-time checks.
var (
	_ card.CodeRepository    = (*MemoryStore)(nil)
	_ card.ProfileRepository = (*MemoryStore)(nil)
)

// AddCode seeds a code row, for tests.
func (m *MemoryStore) AddCode(sc *card.ShortCode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *sc
	if cp.Status == "" {
		cp.Status = card.StatusUnclaimed
	}

	m.codes[cp.Code] = &cp
}

func (m *MemoryStore) GetCode(_ context.Context, code string) (*card.ShortCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sc, ok := m.codes[code]
	if !ok {
		return nil, card.ErrCodeNotFound
	}

	cp := *sc

	return &cp, nil
}

func (m *MemoryStore) MarkClaimed(_ context.Context, code, slug string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sc, ok := m.codes[code]
	if !ok || sc.Status != card.StatusUnclaimed {
		return card.ErrCodeClaimed
	}

	sc.Status = card.StatusClaimed
	sc.Slug = slug
	sc.ClaimedAt = &at

	return nil
}

func (m *MemoryStore) OldestUnclaimed(_ context.Context) (*card.ShortCode, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var oldest *card.ShortCode

	for _, sc := range m.codes {
		if sc.Status != card.StatusUnclaimed {
			continue
		}

		if oldest == nil || sc.CreatedAt.Before(oldest.CreatedAt) {
			oldest = sc
		}
	}

	if oldest == nil {
		return nil, card.ErrCodeNotFound
	}

	cp := *oldest

	return &cp, nil
}

func (m *MemoryStore) InsertCodes(_ context.Context, codes []string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var inserted int64

	for _, code := range codes {
		if _, ok := m.codes[code]; ok {
			continue
		}

		m.codes[code] = &card.ShortCode{
			Code:      code,
			Status:    card.StatusUnclaimed,
			CreatedAt: time.Now(),
		}
		inserted++
	}

	return inserted, nil
}

func (m *MemoryStore) Insert(_ context.Context, p *card.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.profiles {
		if existing.Slug == p.Slug {
			return card.ErrSlugTaken
		}

		if existing.EditToken == p.EditToken {
			return card.ErrTokenConflict
		}
	}

	cp := *p
	m.profiles[cp.ID] = &cp

	return nil
}

func (m *MemoryStore) GetBySlug(_ context.Context, slug string) (*card.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.profiles {
		if p.Slug == slug {
			cp := *p

			return &cp, nil
		}
	}

	return nil, card.ErrProfileNotFound
}

func (m *MemoryStore) GetByToken(_ context.Context, token string) (*card.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.profiles {
		if p.EditToken == token {
			cp := *p

			return &cp, nil
		}
	}

	return nil, card.ErrTokenNotFound
}

func (m *MemoryStore) Update(_ context.Context, id string, patch card.ProfilePatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return card.ErrProfileNotFound
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}

	if patch.LastName != nil {
		p.LastName = *patch.LastName
	}

	if patch.Position != nil {
		p.Position = *patch.Position
	}

	if patch.Company != nil {
		p.Company = *patch.Company
	}

	if patch.WhatsApp != nil {
		p.WhatsApp = *patch.WhatsApp
	}

	if patch.Email != nil {
		p.Email = *patch.Email
	}

	if patch.MiniBio != nil {
		p.MiniBio = *patch.MiniBio
	}

	if patch.AvatarURL != nil {
		p.AvatarURL = *patch.AvatarURL
	}

	if patch.TemplateConfig != nil {
		p.TemplateConfig = *patch.TemplateConfig
	}

	return nil
}

func (m *MemoryStore) SetAvatarURL(_ context.Context, id, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.profiles[id]
	if !ok {
		return card.ErrProfileNotFound
	}

	p.AvatarURL = url

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.profiles, id)

	return nil
}

func (m *MemoryStore) SlugTaken(_ context.Context, slug string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.profiles {
		if p.Slug == slug {
			return true, nil
		}
	}

	return false, nil
}

func (m *MemoryStore) EmailTaken(_ context.Context, email string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.profiles {
		if p.Email == email {
			return true, nil
		}
	}

	return false, nil
}
