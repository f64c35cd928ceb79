// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/memegacha/internal/models"
)

// SampleCatalog returns a two-item catalog matching the examples used across tests.
func SampleCatalog() models.Catalog {
	return models.Catalog{
		"A": {Year: 2000, Age: "old", Rarity: models.NewRarity(models.RarityCommon), Link: "https://youtube.com/watch?v=xyz"},
		"B": {Year: 2015, Age: "classic", Rarity: models.NewRarity(models.RarityRare), Link: "https://youtube.com/shorts/abc"},
	}
}

// LargeCatalog returns n items titled "meme-000", "meme-001", ...
func LargeCatalog(n int) models.Catalog {
	c := make(models.Catalog, n)
	for i := range n {
		c[titleFor(i)] = models.CatalogItem{Year: 2000 + i%25, Age: "modern", Rarity: models.NewRarity(models.RarityUncommon), Link: "https://youtu.be/" + titleFor(i)}
	}
	return c
}

func titleFor(i int) string {
	return fmt.Sprintf("meme-%03d", i)
}

// FailingStorage is a [models.Storage] whose operations always fail.
type FailingStorage struct {
	GetErr error
	SetErr error
}

func (f *FailingStorage) Get(string) (string, bool, error) { return "", false, f.GetErr }
func (f *FailingStorage) Set(string, string) error         { return f.SetErr }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
