package internal

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyPrefix = "ce_idx_v1_"

	// DefaultCacheMaxBytes bounds a single stored index
	DefaultCacheMaxBytes = 2 << 20
)

// SlimConversation is the list-view projection of a conversation
type SlimConversation struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	UpdateTime   *float64 `json:"update_time" yaml:"update_time"`
	MessageCount int      `json:"messageCount" yaml:"message_count"`
}

// SlimIndex is what the session cache stores per dataset
type SlimIndex struct {
	Conversations []SlimConversation `json:"conversations"`
	Stats         Stats              `json:"stats"`
	StoredAt      int64              `json:"storedAt"`
	SourceModTime int64              `json:"sourceModTime,omitempty"`
}

// NewSlimIndex projects normalized conversations to their list-view form
func NewSlimIndex(conversations []Conversation, stats Stats) *SlimIndex {
	slim := make([]SlimConversation, 0, len(conversations))
	for _, c := range conversations {
		update := c.UpdateTime
		if update == nil {
			update = c.CreateTime
		}
		slim = append(slim, SlimConversation{
			ID:           c.ID,
			Title:        c.Title,
			UpdateTime:   update,
			MessageCount: len(c.Messages),
		})
	}
	return &SlimIndex{Conversations: slim, Stats: stats}
}

// Clock returns the current time
type Clock func() time.Time

// SessionCache keeps slim dataset indexes in an in-memory Pebble store for the
// lifetime of the process.
type SessionCache struct {
	db       *pebble.DB
	now      Clock
	maxBytes int
	ttl      time.Duration
}

// CacheOption configures a SessionCache
type CacheOption func(*SessionCache)

// WithClock injects the time source used for storedAt and TTL checks
func WithClock(c Clock) CacheOption {
	return func(s *SessionCache) {
		if c != nil {
			s.now = c
		}
	}
}

// WithMaxBytes sets the largest payload Put will store
func WithMaxBytes(n int) CacheOption {
	return func(s *SessionCache) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithTTL expires entries older than ttl; zero disables expiry
func WithTTL(ttl time.Duration) CacheOption {
	return func(s *SessionCache) {
		s.ttl = ttl
	}
}

// NewSessionCache opens an empty in-memory cache
func NewSessionCache(opts ...CacheOption) (*SessionCache, error) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	if err != nil {
		return nil, errors.Wrap(err, "open session cache")
	}
	c := &SessionCache{db: db, now: time.Now, maxBytes: DefaultCacheMaxBytes}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func cacheKey(datasetPath string) []byte {
	return []byte(cacheKeyPrefix + datasetPath)
}

// Get returns the stored index for a dataset. Entries that are expired, were
// stored for a different source modification time, or fail to decode are misses.
func (c *SessionCache) Get(datasetPath string, sourceModTime time.Time) (*SlimIndex, bool) {
	if c == nil || c.db == nil {
		return nil, false
	}
	v, closer, err := c.db.Get(cacheKey(datasetPath))
	if err != nil {
		if !errors.Is(err, pebble.ErrNotFound) {
			log.Debug().Err(err).Str("dataset", datasetPath).Msg("session cache read failed")
		}
		return nil, false
	}
	defer closer.Close()

	var idx SlimIndex
	if err := json.Unmarshal(v, &idx); err != nil {
		log.Debug().Err(err).Str("dataset", datasetPath).Msg("session cache entry unreadable")
		return nil, false
	}
	if !sourceModTime.IsZero() && idx.SourceModTime != sourceModTime.UnixMilli() {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(time.UnixMilli(idx.StoredAt)) > c.ttl {
		return nil, false
	}
	return &idx, true
}

// Put stores idx for a dataset. stored is false when the encoded index exceeds
// the size limit.
func (c *SessionCache) Put(datasetPath string, sourceModTime time.Time, idx *SlimIndex) (stored bool, err error) {
	if c == nil || c.db == nil || idx == nil {
		return false, nil
	}
	entry := *idx
	entry.StoredAt = c.now().UnixMilli()
	entry.SourceModTime = 0
	if !sourceModTime.IsZero() {
		entry.SourceModTime = sourceModTime.UnixMilli()
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return false, errors.Wrap(err, "encode slim index")
	}
	if len(data) > c.maxBytes {
		log.Debug().Int("bytes", len(data)).Int("limit", c.maxBytes).Str("dataset", datasetPath).Msg("slim index too large to cache")
		return false, nil
	}
	if err := c.db.Set(cacheKey(datasetPath), data, pebble.NoSync); err != nil {
		return false, errors.Wrapf(err, "store slim index for %s", datasetPath)
	}
	return true, nil
}

// Delete drops the entry for one dataset
func (c *SessionCache) Delete(datasetPath string) error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Delete(cacheKey(datasetPath), pebble.NoSync)
}

// Clear removes every cached index
func (c *SessionCache) Clear() error {
	if c == nil || c.db == nil {
		return nil
	}
	start := []byte(cacheKeyPrefix)
	end := append([]byte(cacheKeyPrefix[:len(cacheKeyPrefix)-1]), cacheKeyPrefix[len(cacheKeyPrefix)-1]+1)
	return c.db.DeleteRange(start, end, pebble.NoSync)
}

// Keys lists the dataset paths currently cached
func (c *SessionCache) Keys() ([]string, error) {
	if c == nil || c.db == nil {
		return nil, nil
	}
	it, err := c.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte(cacheKeyPrefix),
	})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var keys []string
	for ok := it.First(); ok; ok = it.Next() {
		k := string(it.Key())
		if len(k) < len(cacheKeyPrefix) || k[:len(cacheKeyPrefix)] != cacheKeyPrefix {
			break
		}
		keys = append(keys, k[len(cacheKeyPrefix):])
	}
	return keys, nil
}

// Close releases the store
func (c *SessionCache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
