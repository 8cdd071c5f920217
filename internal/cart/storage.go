package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage is the persistence slot for one cart table. Load must return an
// empty table (not an error) when no usable snapshot exists, so a broken
// slot never blocks the cart.
type Storage interface {
	Load() ([]LineItem, error)
	Save(items []LineItem) error
}

type snapshot struct {
	Items []LineItem `json:"items"`
}

// Snapshot is one persisted cart, keyed by the owning session.
type Snapshot struct {
	Key     string `gorm:"primaryKey"   json:"key"`
	Payload string `gorm:"not null"     json:"payload"`
}

func (Snapshot) TableName() string {
	return "cart_snapshots"
}

// GormStorage keeps the serialized table in one cart_snapshots row.
type GormStorage struct {
	DB  *gorm.DB
	Key string
}

func (g *GormStorage) Load() ([]LineItem, error) {
	var row Snapshot
	if err := g.DB.Where("key = ?", g.Key).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load cart snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal([]byte(row.Payload), &snap); err != nil {
		// unparsable slot, start over empty
		return nil, nil
	}
	return snap.Items, nil
}

func (g *GormStorage) Save(items []LineItem) error {
	data, err := json.Marshal(snapshot{Items: items})
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}
	row := Snapshot{Key: g.Key, Payload: string(data)}
	if err := g.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&row).Error; err != nil {
		return fmt.Errorf("save cart snapshot: %w", err)
	}
	return nil
}

// FileStorage keeps the snapshot in one JSON file. Saves go through a temp
// file and a rename so a failed write leaves the previous snapshot intact.
type FileStorage struct {
	Path string
}

func (f *FileStorage) Load() ([]LineItem, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, nil
	}
	return snap.Items, nil
}

func (f *FileStorage) Save(items []LineItem) error {
	data, err := json.Marshal(snapshot{Items: items})
	if err != nil {
		return fmt.Errorf("marshal cart snapshot: %w", err)
	}

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, "cart-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("swap cart snapshot: %w", err)
	}
	return nil
}
