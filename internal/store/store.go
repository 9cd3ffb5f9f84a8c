package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/albumview/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketSnapshots = []byte("snapshots")

// Snapshot is one successfully fetched payload
type Snapshot struct {
	URL       string          `json:"url"`
	FetchedAt time.Time       `json:"fetched_at"`
	Body      json.RawMessage `json:"body"`
}

// Payload decodes the stored body
func (s Snapshot) Payload() (domain.Payload, error) {
	var p domain.Payload
	if err := json.Unmarshal(s.Body, &p); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return p, nil
}

// SnapshotStore keeps the latest payload per endpoint URL in BoltDB.
type SnapshotStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for reads (promoted on access)
	cache map[string][]byte
}

// Open opens the store under dir. An empty dir keeps snapshots in memory only.
func Open(dir string) (*SnapshotStore, error) {
	if dir == "" {
		return &SnapshotStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "albumview.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SnapshotStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// snapshotKey keys snapshots by normalized URL
func snapshotKey(url string) string {
	normalized := strings.TrimRight(strings.ToLower(url), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:8])
}

// Put records payload as the latest snapshot for url
func (s *SnapshotStore) Put(url string, payload domain.Payload, at time.Time) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	data, err := json.Marshal(Snapshot{URL: url, FetchedAt: at.UTC(), Body: body})
	if err != nil {
		return err
	}

	key := snapshotKey(url)

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(key), data)
	})
}

// Latest returns the most recent snapshot for url. ok is false when none
// has been stored; err reports a database or decode failure.
func (s *SnapshotStore) Latest(url string) (snap Snapshot, ok bool, err error) {
	key := snapshotKey(url)

	s.mu.RLock()
	data, cached := s.cache[key]
	s.mu.RUnlock()

	if !cached && s.db != nil {
		err = s.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketSnapshots)
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if err != nil {
			return Snapshot{}, false, fmt.Errorf("failed to read snapshot: %w", err)
		}

		if data != nil {
			s.mu.Lock()
			s.cache[key] = data
			s.mu.Unlock()
		}
	}

	if data == nil {
		return Snapshot{}, false, nil
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("corrupt snapshot for %s: %w", url, err)
	}
	return snap, true, nil
}

// Delete removes the snapshot for url
func (s *SnapshotStore) Delete(url string) error {
	key := snapshotKey(url)

	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Delete([]byte(key))
	})
}
