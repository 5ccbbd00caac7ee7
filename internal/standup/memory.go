package standup

import (
	"context"
	"sync"
	"time"

	"github.com/standupbot/standup-services/internal/models"
)

// MemoryRepo is a simple in-memory repository used for unit tests and for
// running the service locally without Airtable credentials.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*models.StandupRecord
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*models.StandupRecord)}
}

func recordKey(memberID, date string) string {
	return memberID + "|" + date
}

func (m *MemoryRepo) Upsert(ctx context.Context, rec *models.StandupRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	if cp.ID == "" {
		cp.ID = "rec_" + time.Now().Format("20060102T150405.000000000")
	}
	m.store[recordKey(cp.MemberID, cp.Date)] = &cp
	rec.ID = cp.ID
	return nil
}

func (m *MemoryRepo) QueryByDate(ctx context.Context, date string) ([]models.StandupRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.StandupRecord, 0)
	for _, r := range m.store {
		if r.Date == date {
			out = append(out, *r)
		}
	}
	return out, nil
}
