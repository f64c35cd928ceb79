package repositories

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/shared"
)

// DefaultSeenKey is the storage key for version 1 of the seen-set format.
const DefaultSeenKey = "gn_seen_v1"

// SeenStore is the seen-set store: one [models.SeenSet] mirrored to a single storage key.
type SeenStore struct {
	storage  models.Storage
	key      string
	seen     *models.SeenSet
	hydrated bool
	logger   *log.Logger
}

// NewSeenStore creates a store over storage. An empty key falls back to [DefaultSeenKey].
func NewSeenStore(storage models.Storage, key string, logger *log.Logger) *SeenStore {
	if key == "" {
		key = DefaultSeenKey
	}
	if logger == nil {
		logger = log.New(nil)
	}

	return &SeenStore{
		storage: storage,
		key:     key,
		seen:    models.NewSeenSet(),
		logger:  logger,
	}
}

func (s *SeenStore) Key() string       { return s.key }
func (s *SeenStore) Hydrated() bool    { return s.hydrated }
func (s *SeenStore) Len() int          { return s.seen.Len() }
func (s *SeenStore) Has(t string) bool { return s.seen.Has(t) }

// Seen returns a copy of the current set.
func (s *SeenStore) Seen() *models.SeenSet {
	return s.seen.Clone()
}

// Hydrate loads the set from storage.
//
// An absent or malformed value leaves the set empty. A storage read error also leaves the set
// empty but is returned so callers can log it; the store is marked hydrated either way.
func (s *SeenStore) Hydrate() error {
	s.hydrated = true
	s.seen = models.NewSeenSet()

	raw, ok, err := s.storage.Get(s.key)
	if err != nil {
		return fmt.Errorf("%w: failed to hydrate seen set: %w", shared.ErrStorage, err)
	}
	if !ok || raw == "" {
		return nil
	}

	set, err := DecodeSeen(raw)
	if err != nil {
		s.logger.Warn("discarding malformed seen set", "key", s.key, "error", err)
		return nil
	}

	s.seen = set
	return nil
}

// Add records title and persists the set. Adding a present title is a no-op that still succeeds.
//
// When storage rejects the write as too large the title is not added, since it could never be persisted; other
// write failures keep the title in memory.
func (s *SeenStore) Add(title string) error {
	if s.seen.Has(title) {
		return nil
	}
	next := s.seen.Clone()
	next.Add(title)
	return s.replace(next)
}

// Reset clears the set and persists the empty set.
func (s *SeenStore) Reset() error {
	return s.ResetTo()
}

// ResetTo replaces the whole set with titles in a single write.
func (s *SeenStore) ResetTo(titles ...string) error {
	return s.replace(models.NewSeenSet(titles...))
}

func (s *SeenStore) replace(next *models.SeenSet) error {
	err := s.persist(next)
	if errors.Is(err, shared.ErrPayloadTooLarge) {
		return err
	}
	s.seen = next
	return err
}

func (s *SeenStore) persist(set *models.SeenSet) error {
	raw, err := EncodeSeen(set)
	if err != nil {
		return err
	}
	if err := s.storage.Set(s.key, raw); err != nil {
		return fmt.Errorf("%w: failed to persist seen set: %w", shared.ErrStorage, err)
	}
	return nil
}

// EncodeSeen serializes a set as a JSON array of titles.
func EncodeSeen(set *models.SeenSet) (string, error) {
	data, err := json.Marshal(set)
	if err != nil {
		return "", fmt.Errorf("failed to encode seen set: %w", err)
	}
	return string(data), nil
}

// DecodeSeen parses a JSON array of titles.
func DecodeSeen(raw string) (*models.SeenSet, error) {
	set := models.NewSeenSet()
	if err := json.Unmarshal([]byte(raw), set); err != nil {
		return nil, err
	}
	return set, nil
}
