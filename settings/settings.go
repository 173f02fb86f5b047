package settings

import (
	"log"
	"sync"

	"github.com/FakrulHasanSajib/Ecom-pro/models"
	"gorm.io/gorm"
)

// Store caches the settings table in process so hot paths (payment config,
// frontend URLs) never hit the database per request. Admin updates go through
// Update which refreshes the cache.
type Store struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]string
}

func NewStore(db *gorm.DB) *Store {
	s := &Store{db: db, cache: map[string]string{}}
	s.Refresh()
	return s
}

// Get returns the setting value for key, or def when the key is absent or empty.
func (s *Store) Get(key, def string) string {
	s.mu.RLock()
	v, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || v == "" {
		return def
	}
	return v
}

// GetBool treats "1" and "true" as true; anything else falls back to def
// unless the key is set.
func (s *Store) GetBool(key string, def bool) bool {
	s.mu.RLock()
	v, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok || v == "" {
		return def
	}
	return v == "1" || v == "true"
}

// Update upserts the given key/value pairs and refreshes the cache.
func (s *Store) Update(values map[string]string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			var setting models.Setting
			res := tx.Where("key = ?", key).First(&setting)
			if res.Error != nil {
				if res.Error == gorm.ErrRecordNotFound {
					if err := tx.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
						return err
					}
					continue
				}
				return res.Error
			}
			setting.Value = value
			if err := tx.Save(&setting).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Refresh()
	return nil
}

// Refresh reloads the whole table into the cache.
func (s *Store) Refresh() {
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		log.Printf("settings: failed to load table: %v", err)
		return
	}
	next := make(map[string]string, len(rows))
	for _, row := range rows {
		next[row.Key] = row.Value
	}
	s.mu.Lock()
	s.cache = next
	s.mu.Unlock()
}

// All returns a copy of the cached settings, password values masked.
func (s *Store) All() []models.Setting {
	var rows []models.Setting
	if err := s.db.Order("setting_group, key").Find(&rows).Error; err != nil {
		log.Printf("settings: failed to list table: %v", err)
		return nil
	}
	for i := range rows {
		if rows[i].Type == "password" {
			rows[i].Value = "********"
		}
	}
	return rows
}
