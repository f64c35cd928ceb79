package server

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/repositories"
	"github.com/desertthunder/memegacha/internal/shared"
)

// compactSeenFormat tags the first byte of a compact seen-set payload.
const compactSeenFormat byte = 1

// seenDigestSize is the width in bytes of one title digest.
const seenDigestSize = 4

// compactSeenStorage stores the seen-set under one key as title digests instead of a JSON array of titles.
//
// A payload is the format byte followed by one big-endian digest per title, in insertion order. Digests are
// resolved against the catalog, so titles that left the catalog are dropped on read. Other keys pass through.
type compactSeenStorage struct {
	inner    models.Storage
	key      string
	byDigest map[uint32]string
	logger   *log.Logger
}

func newCompactSeenStorage(inner models.Storage, key string, catalog models.Catalog, logger *log.Logger) *compactSeenStorage {
	byDigest := make(map[uint32]string, len(catalog))
	for _, e := range catalog.Entries() {
		d := titleDigest(e.Title)
		if other, ok := byDigest[d]; ok {
			logger.Debug("title digest collision, keeping first title", "title", e.Title, "kept", other)
			continue
		}
		byDigest[d] = e.Title
	}
	return &compactSeenStorage{inner: inner, key: key, byDigest: byDigest, logger: logger}
}

func titleDigest(title string) uint32 {
	return uint32(xxhash.Sum64String(title))
}

// Get decodes the compact payload and returns it as the JSON array the seen store expects.
func (s *compactSeenStorage) Get(key string) (string, bool, error) {
	raw, ok, err := s.inner.Get(key)
	if err != nil || !ok || key != s.key {
		return raw, ok, err
	}

	data := []byte(raw)
	if len(data) == 0 || data[0] != compactSeenFormat || (len(data)-1)%seenDigestSize != 0 {
		return "", false, fmt.Errorf("%w: %s is not a compact seen set", shared.ErrStorage, key)
	}

	set := models.NewSeenSet()
	for i := 1; i < len(data); i += seenDigestSize {
		if title, ok := s.byDigest[binary.BigEndian.Uint32(data[i:])]; ok {
			set.Add(title)
		}
	}

	encoded, err := repositories.EncodeSeen(set)
	if err != nil {
		return "", false, err
	}
	return encoded, true, nil
}

// Set converts the JSON array written by the seen store into the compact payload.
func (s *compactSeenStorage) Set(key, value string) error {
	if key != s.key {
		return s.inner.Set(key, value)
	}

	set, err := repositories.DecodeSeen(value)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	titles := set.Titles()
	data := make([]byte, 1, 1+len(titles)*seenDigestSize)
	data[0] = compactSeenFormat
	for _, title := range titles {
		data = binary.BigEndian.AppendUint32(data, titleDigest(title))
	}
	return s.inner.Set(key, string(data))
}
