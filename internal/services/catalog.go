package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/shared"
	"gopkg.in/yaml.v3"
)

const maxCatalogBytes = 8 << 20

type catalogFormat int

const (
	formatJSON catalogFormat = iota
	formatYAML
)

// CatalogService implements [CatalogSource] for URLs and local files.
type CatalogService struct {
	source     string
	httpClient *http.Client
	timeout    time.Duration
}

// NewCatalogService creates a catalog loader for source, a URL or file path.
func NewCatalogService(source string, client *http.Client) *CatalogService {
	if client == nil {
		client = http.DefaultClient
	}

	return &CatalogService{
		source:     source,
		httpClient: client,
	}
}

// WithTimeout bounds each fetch by d. Zero disables the bound.
func (c *CatalogService) WithTimeout(d time.Duration) *CatalogService {
	c.timeout = d
	return c
}

func (c *CatalogService) Name() string { return c.source }

// IsRemote reports whether the source is fetched over HTTP.
func (c *CatalogService) IsRemote() bool {
	return strings.HasPrefix(c.source, "http://") || strings.HasPrefix(c.source, "https://")
}

// LocalPath returns the file backing a non-remote source, resolving file:// URLs.
func (c *CatalogService) LocalPath() string {
	if u, err := url.Parse(c.source); err == nil && u.Scheme == "file" {
		return u.Path
	}
	return c.source
}

// Fetch loads and decodes the catalog.
func (c *CatalogService) Fetch(ctx context.Context) (models.Catalog, error) {
	if c.source == "" {
		return nil, fmt.Errorf("%w: no catalog source configured", shared.ErrCatalogLoad)
	}

	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		data   []byte
		format catalogFormat
		err    error
	)
	if c.IsRemote() {
		data, format, err = c.fetchRemote(ctx)
	} else {
		data, format, err = c.readLocal(ctx)
	}
	if err != nil {
		return nil, c.timeoutErr(parent, err)
	}

	// The caller may have gone away while the body was read.
	if err := ctx.Err(); err != nil {
		return nil, c.timeoutErr(parent, err)
	}

	catalog, err := decodeCatalog(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrCatalogLoad, err)
	}

	return catalog, nil
}

// timeoutErr marks failures caused by the service's own deadline. Cancellation by the caller passes through.
func (c *CatalogService) timeoutErr(parent context.Context, err error) error {
	if parent.Err() == nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: no response within %s: %w", shared.ErrCatalogLoad, shared.ErrServiceTimeout, c.timeout, err)
	}
	return err
}

func (c *CatalogService) fetchRemote(ctx context.Context) ([]byte, catalogFormat, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.source, nil)
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: failed to create request: %w", shared.ErrCatalogLoad, err)
	}

	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, formatJSON, ctxErr
		}
		return nil, formatJSON, fmt.Errorf("%w: request failed: %w", shared.ErrCatalogLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, formatJSON, fmt.Errorf("%w: unexpected status %d", shared.ErrCatalogLoad, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: failed to read response: %w", shared.ErrCatalogLoad, err)
	}

	format := formatForPath(req.URL.Path)
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && strings.Contains(mediaType, "yaml") {
		format = formatYAML
	}

	return data, format, nil
}

func (c *CatalogService) readLocal(ctx context.Context) ([]byte, catalogFormat, error) {
	if err := ctx.Err(); err != nil {
		return nil, formatJSON, err
	}

	path := c.LocalPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, formatJSON, fmt.Errorf("%w: failed to read %s: %w", shared.ErrCatalogLoad, path, err)
	}

	return data, formatForPath(path), nil
}

func formatForPath(p string) catalogFormat {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

func decodeCatalog(data []byte, format catalogFormat) (models.Catalog, error) {
	if format == formatJSON {
		return models.ParseCatalog(data)
	}

	var catalog models.Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode yaml catalog: %w", err)
	}
	if catalog == nil {
		return nil, fmt.Errorf("failed to decode yaml catalog: expected a mapping")
	}
	return catalog, nil
}
