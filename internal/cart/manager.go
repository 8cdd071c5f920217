package cart

import (
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"
)

// Manager hands out one Service per user, backed by that user's row in
// cart_snapshots. Services are created lazily on first use and reused for
// the life of the process.
type Manager struct {
	DB  *gorm.DB
	Log *slog.Logger

	mu    sync.Mutex
	carts map[uint]*Service
}

func NewManager(db *gorm.DB, log *slog.Logger) *Manager {
	return &Manager{DB: db, Log: log, carts: make(map[uint]*Service)}
}

func (m *Manager) For(userID uint) *Service {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.carts[userID]; ok {
		return s
	}
	s := NewService(&GormStorage{DB: m.DB, Key: fmt.Sprintf("user:%d", userID)}, m.Log)
	m.carts[userID] = s
	return s
}
