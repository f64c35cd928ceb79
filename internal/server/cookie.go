package server

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/desertthunder/memegacha/internal/shared"
)

// CurrentKey is the cookie holding the title on display.
const CurrentKey = "gn_current_v1"

// MaxCookieBytes caps name plus encoded value of one cookie, leaving room for attributes under the common 4096-byte
// browser limit.
const MaxCookieBytes = 4000

// MaxCookieChunks is how many cookies one value may span. Chunks after the first are named "<key>.1", "<key>.2", ...
const MaxCookieChunks = 8

// DefaultCookieMaxAge keeps progress for a year of inactivity.
const DefaultCookieMaxAge = 365 * 24 * time.Hour

// CookieOptions controls the attributes of written cookies.
type CookieOptions struct {
	MaxAge time.Duration
	Secure bool
}

type pendingCookie struct {
	value   string // encoded chunk
	deleted bool
}

type pendingValue struct {
	value   string
	deleted bool
}

// CookieStorage is a [models.Storage] over one request's cookies.
//
// Values are base64url-encoded so titles with spaces, quotes or non-ASCII text survive the cookie grammar, and values
// longer than one cookie are split over up to [MaxCookieChunks] cookies. Set and Delete are buffered;
// [CookieStorage.Commit] writes them as Set-Cookie headers and must run before the response status is written. Reads
// see buffered writes.
type CookieStorage struct {
	req     *http.Request
	opts    CookieOptions
	values  map[string]pendingValue
	pending map[string]pendingCookie
	order   []string
}

// NewCookieStorage reads cookies from r.
func NewCookieStorage(r *http.Request, opts CookieOptions) *CookieStorage {
	if opts.MaxAge <= 0 {
		opts.MaxAge = DefaultCookieMaxAge
	}
	return &CookieStorage{
		req:     r,
		opts:    opts,
		values:  make(map[string]pendingValue),
		pending: make(map[string]pendingCookie),
	}
}

func chunkName(key string, i int) string {
	if i == 0 {
		return key
	}
	return fmt.Sprintf("%s.%d", key, i)
}

// Get returns the decoded value stored under key, joining its chunks.
//
// A value that is not valid base64url is reported as a storage error.
func (c *CookieStorage) Get(key string) (string, bool, error) {
	if p, ok := c.values[key]; ok {
		return p.value, !p.deleted, nil
	}

	var encoded strings.Builder
	for i := range MaxCookieChunks {
		cookie, err := c.req.Cookie(chunkName(key, i))
		if errors.Is(err, http.ErrNoCookie) {
			if i == 0 {
				return "", false, nil
			}
			break
		}
		if err != nil {
			return "", false, fmt.Errorf("%w: cookie %s: %w", shared.ErrStorage, key, err)
		}
		encoded.WriteString(cookie.Value)
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded.String())
	if err != nil {
		return "", false, fmt.Errorf("%w: cookie %s is not base64url: %w", shared.ErrStorage, key, err)
	}
	return string(data), true, nil
}

// Set buffers a new value. Values that need more than [MaxCookieChunks] cookies are rejected and nothing is buffered.
func (c *CookieStorage) Set(key, value string) error {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value))

	var chunks []string
	for rest := encoded; len(chunks) == 0 || rest != ""; {
		if len(chunks) == MaxCookieChunks {
			return fmt.Errorf("%w: %w: cookie %s would need more than %d cookies (%d bytes)",
				shared.ErrStorage, shared.ErrPayloadTooLarge, key, MaxCookieChunks, len(encoded))
		}
		n := min(len(rest), MaxCookieBytes-len(chunkName(key, len(chunks))))
		chunks = append(chunks, rest[:n])
		rest = rest[n:]
	}

	for i, chunk := range chunks {
		c.buffer(chunkName(key, i), pendingCookie{value: chunk})
	}
	c.dropChunks(key, len(chunks))
	c.values[key] = pendingValue{value: value}
	return nil
}

// Delete buffers removal of every cookie holding key.
func (c *CookieStorage) Delete(key string) {
	c.buffer(key, pendingCookie{deleted: true})
	c.dropChunks(key, 1)
	c.values[key] = pendingValue{deleted: true}
}

// dropChunks deletes chunks of key from index from onwards that the browser sent or that were buffered.
func (c *CookieStorage) dropChunks(key string, from int) {
	for i := from; i < MaxCookieChunks; i++ {
		name := chunkName(key, i)
		_, err := c.req.Cookie(name)
		p, buffered := c.pending[name]
		if err == nil || (buffered && !p.deleted) {
			c.buffer(name, pendingCookie{deleted: true})
		}
	}
}

func (c *CookieStorage) buffer(name string, p pendingCookie) {
	if !slices.Contains(c.order, name) {
		c.order = append(c.order, name)
	}
	c.pending[name] = p
}

// Commit writes one Set-Cookie header per cookie changed since the last commit, in first-write order.
func (c *CookieStorage) Commit(w http.ResponseWriter) {
	for _, name := range c.order {
		p := c.pending[name]
		cookie := &http.Cookie{
			Name:     name,
			Path:     "/",
			HttpOnly: true,
			Secure:   c.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		}
		if p.deleted {
			cookie.MaxAge = -1
		} else {
			cookie.Value = p.value
			cookie.MaxAge = int(c.opts.MaxAge / time.Second)
		}
		http.SetCookie(w, cookie)
	}

	c.order = nil
}
