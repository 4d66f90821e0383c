// Package store persists sessions and entity caches in BoltDB
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

	"github.com/lenscope/lenscope/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketSession  = []byte("session")
	bucketAccounts = []byte("accounts")
	bucketHandles  = []byte("handles")
	bucketPosts    = []byte("posts")
)

// Store implements domain.SessionStore and caches resolved entities.
// It is scoped to one API endpoint so that switching endpoints never
// serves stale data from another network.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewStore opens the endpoint-scoped database under baseDir.
// An empty baseDir yields a memory-only store with no persistence.
func NewStore(baseDir, endpoint string) (*Store, error) {
	if baseDir == "" {
		return &Store{cache: make(map[string][]byte)}, nil
	}

	dir := baseDir
	if endpoint != "" {
		dir = filepath.Join(baseDir, hashEndpoint(endpoint))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "lenscope.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketAccounts, bucketHandles, bucketPosts} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, cache: make(map[string][]byte)}, nil
}

func hashEndpoint(endpoint string) string {
	normalized := strings.TrimRight(strings.ToLower(endpoint), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *Store) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *Store) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		return b.Put([]byte(key), data)
	})
}

func (s *Store) delete(bucket []byte, key string) {
	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	delete(s.cache, cacheKey)
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// === Session ===

// LoadSession returns the persisted session, if one exists
func (s *Store) LoadSession() (domain.Session, bool) {
	var session domain.Session
	ok := s.get(bucketSession, "current", &session)
	return session, ok
}

// SaveSession persists the session across runs
func (s *Store) SaveSession(session domain.Session) error {
	return s.set(bucketSession, "current", session)
}

// ClearSession removes the persisted session
func (s *Store) ClearSession() error {
	s.delete(bucketSession, "current")
	return nil
}

// === Accounts ===

// cachedAccount wraps an account with its fetch time for freshness checks
type cachedAccount struct {
	Account   domain.Account `json:"account"`
	FetchedAt time.Time      `json:"fetched_at"`
}

// GetAccount returns a cached account no older than maxAge
func (s *Store) GetAccount(address string, maxAge time.Duration) (domain.Account, bool) {
	var cached cachedAccount
	if !s.get(bucketAccounts, strings.ToLower(address), &cached) {
		return domain.Account{}, false
	}
	if time.Since(cached.FetchedAt) > maxAge {
		return domain.Account{}, false
	}
	return cached.Account, true
}

// SaveAccount caches an account and its handle-to-address mapping
func (s *Store) SaveAccount(account domain.Account) error {
	if account.Username.LocalName != "" {
		if err := s.set(bucketHandles, strings.ToLower(account.Username.LocalName), account.Address); err != nil {
			return err
		}
	}
	return s.set(bucketAccounts, strings.ToLower(account.Address), cachedAccount{
		Account:   account,
		FetchedAt: time.Now(),
	})
}

// GetHandleAddress returns the cached address for a local name.
// Handle ownership can migrate, so callers use this only as a fast path.
func (s *Store) GetHandleAddress(localName string) (string, bool) {
	var address string
	ok := s.get(bucketHandles, strings.ToLower(localName), &address)
	return address, ok && address != ""
}

// === Posts ===

// cachedPost wraps a post with its fetch time for freshness checks
type cachedPost struct {
	Post      domain.Post `json:"post"`
	FetchedAt time.Time   `json:"fetched_at"`
}

// GetPost returns a cached post no older than maxAge
func (s *Store) GetPost(id string, maxAge time.Duration) (domain.Post, bool) {
	var cached cachedPost
	if !s.get(bucketPosts, id, &cached) {
		return domain.Post{}, false
	}
	if time.Since(cached.FetchedAt) > maxAge {
		return domain.Post{}, false
	}
	return cached.Post, true
}

// SavePost caches a post
func (s *Store) SavePost(post domain.Post) error {
	return s.set(bucketPosts, post.ID, cachedPost{
		Post:      post,
		FetchedAt: time.Now(),
	})
}
