package server

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/memegacha/internal/repositories"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieStorage(t *testing.T) {
	t.Run("absent cookie", func(t *testing.T) {
		c := NewCookieStorage(httptest.NewRequest(http.MethodGet, "/", nil), CookieOptions{})
		v, ok, err := c.Get("missing")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)
	})

	t.Run("decodes request cookies", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "k", Value: base64.RawURLEncoding.EncodeToString([]byte(`["Nyan Cat","Ünïcode"]`))})

		v, ok, err := NewCookieStorage(req, CookieOptions{}).Get("k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `["Nyan Cat","Ünïcode"]`, v)
	})

	t.Run("invalid encoding is a storage error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "k", Value: "***"})

		_, ok, err := NewCookieStorage(req, CookieOptions{}).Get("k")
		assert.ErrorIs(t, err, shared.ErrStorage)
		assert.False(t, ok)
	})

	t.Run("writes are visible before commit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "k", Value: base64.RawURLEncoding.EncodeToString([]byte("old"))})
		c := NewCookieStorage(req, CookieOptions{})

		require.NoError(t, c.Set("k", "new"))
		v, _, _ := c.Get("k")
		assert.Equal(t, "new", v)

		c.Delete("k")
		_, ok, _ := c.Get("k")
		assert.False(t, ok)
	})

	t.Run("commit writes one header per key", func(t *testing.T) {
		c := NewCookieStorage(httptest.NewRequest(http.MethodGet, "/", nil), CookieOptions{MaxAge: time.Hour, Secure: true})
		require.NoError(t, c.Set("a", "1"))
		require.NoError(t, c.Set("b", "2"))
		require.NoError(t, c.Set("a", "3"))
		c.Delete("gone")

		w := httptest.NewRecorder()
		c.Commit(w)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 3)

		assert.Equal(t, "a", cookies[0].Name)
		assert.Equal(t, base64.RawURLEncoding.EncodeToString([]byte("3")), cookies[0].Value)
		assert.Equal(t, 3600, cookies[0].MaxAge)
		assert.Equal(t, "/", cookies[0].Path)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)
		assert.Equal(t, "b", cookies[1].Name)
		assert.Equal(t, "gone", cookies[2].Name)
		assert.Equal(t, -1, cookies[2].MaxAge)

		w = httptest.NewRecorder()
		c.Commit(w)
		assert.Empty(t, w.Result().Cookies())
		v, _, _ := c.Get("a")
		assert.Equal(t, "3", v)
	})

	t.Run("oversized payload is rejected", func(t *testing.T) {
		c := NewCookieStorage(httptest.NewRequest(http.MethodGet, "/", nil), CookieOptions{})
		err := c.Set(repositories.DefaultSeenKey, strings.Repeat("x", MaxCookieBytes*MaxCookieChunks))
		assert.ErrorIs(t, err, shared.ErrStorage)
		assert.ErrorIs(t, err, shared.ErrPayloadTooLarge)

		_, ok, _ := c.Get(repositories.DefaultSeenKey)
		assert.False(t, ok)
	})

	t.Run("backs a seen store", func(t *testing.T) {
		c := NewCookieStorage(httptest.NewRequest(http.MethodGet, "/", nil), CookieOptions{})
		store := repositories.NewSeenStore(c, "", nil)
		require.NoError(t, store.Hydrate())
		require.NoError(t, store.Add("A"))
		require.NoError(t, store.ResetTo("B"))

		w := httptest.NewRecorder()
		c.Commit(w)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)

		raw, err := base64.RawURLEncoding.DecodeString(cookies[0].Value)
		require.NoError(t, err)
		assert.JSONEq(t, `["B"]`, string(raw))
	})

	t.Run("long values span several cookies", func(t *testing.T) {
		value := strings.Repeat("0123456789", 700)
		c := NewCookieStorage(httptest.NewRequest(http.MethodGet, "/", nil), CookieOptions{})
		require.NoError(t, c.Set("k", value))

		w := httptest.NewRecorder()
		c.Commit(w)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 3)
		assert.Equal(t, []string{"k", "k.1", "k.2"}, []string{cookies[0].Name, cookies[1].Name, cookies[2].Name})
		for _, cookie := range cookies {
			assert.LessOrEqual(t, len(cookie.Name)+len(cookie.Value), MaxCookieBytes)
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, cookie := range cookies {
			req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
		v, ok, err := NewCookieStorage(req, CookieOptions{}).Get("k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, value, v)
	})

	t.Run("shrinking a value deletes stale chunks", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "k", Value: "AAAA"})
		req.AddCookie(&http.Cookie{Name: "k.1", Value: "AAAA"})
		c := NewCookieStorage(req, CookieOptions{})
		require.NoError(t, c.Set("k", "short"))

		w := httptest.NewRecorder()
		c.Commit(w)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 2)
		assert.Equal(t, "k", cookies[0].Name)
		assert.Equal(t, base64.RawURLEncoding.EncodeToString([]byte("short")), cookies[0].Value)
		assert.Equal(t, "k.1", cookies[1].Name)
		assert.Equal(t, -1, cookies[1].MaxAge)
	})
}
