// Package web renders the "Gambling for Memes" page from a [tasks.Roller].
//
// The page is server-rendered with html/template. The Roll and Reset buttons are plain forms that POST to the server
// package's handlers and land back on "/" (post/redirect/get), so the page works without any client script except the
// exhaustion alert.
//
// # Page anatomy
//
//   - heading and progress readout ("Collected: c/t --- p% complete")
//   - card with title, year, age, rarity (colored through a CSS custom property) and the embedded video
//   - "Loading your roll..." placeholder while nothing is selected; the page refreshes itself until the catalog loads
//   - seen preview: the first [tasks.PreviewLimit] titles followed by "..." when cut
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/tasks"
)

//go:embed templates/*.html
var templateFS embed.FS

// Title is the page heading and document title.
const Title = "Gambling for Memes"

// ExhaustedMessage is shown when every catalog item has been seen.
const ExhaustedMessage = "You've seen them all! Reset to start over."

// StorageFullMessage is shown when the browser cannot hold a larger seen-set.
const StorageFullMessage = "This browser can't remember any more memes. Reset to start over."

// Notice selects the blocking alert shown once after an action.
type Notice int

const (
	NoNotice Notice = iota
	ExhaustedNotice
	StorageFullNotice
)

// Message returns the alert text, empty for [NoNotice].
func (n Notice) Message() string {
	switch n {
	case ExhaustedNotice:
		return ExhaustedMessage
	case StorageFullNotice:
		return StorageFullMessage
	default:
		return ""
	}
}

// DefaultRefreshSeconds is how often the loading page reloads itself.
const DefaultRefreshSeconds = 3

// Iframe permissions for the embedded player.
const iframeAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"

// CardView is the current selection prepared for display.
type CardView struct {
	Title    string
	Year     int
	Age      string
	Rarity   string
	ColorVar string
	EmbedURL string
}

// PageData is everything the page template needs.
type PageData struct {
	Title          string
	Progress       models.Progress
	Card           *CardView
	Seen           []string
	SeenTruncated  bool
	Loading        bool // catalog not loaded yet; the page refreshes itself
	RefreshSeconds int
	Exhausted      bool
	AlertMessage   string // shown with alert() when set
	IframeAllow    string
}

// NewCardView converts an entry for display. A nil entry yields nil.
func NewCardView(e *models.Entry) *CardView {
	if e == nil {
		return nil
	}
	return &CardView{
		Title:    e.Title,
		Year:     e.Item.Year,
		Age:      e.Item.Age,
		Rarity:   e.Item.Rarity.String(),
		ColorVar: e.Item.Rarity.ColorVar(),
		EmbedURL: services.ToEmbedURL(e.Item.Link),
	}
}

// NewPageData snapshots a roller for rendering.
func NewPageData(r *tasks.Roller, notice Notice) PageData {
	seen, truncated := r.SeenPreview()
	return PageData{
		Title:          Title,
		Progress:       r.Progress(),
		Card:           NewCardView(r.Current()),
		Seen:           seen,
		SeenTruncated:  truncated,
		Loading:        !r.CatalogLoaded(),
		RefreshSeconds: DefaultRefreshSeconds,
		Exhausted:      notice == ExhaustedNotice,
		AlertMessage:   notice.Message(),
		IframeAllow:    iframeAllow,
	}
}

// Renderer executes the parsed page template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"cssVar": func(name string) template.CSS { return template.CSS("color: var(" + name + ")") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the full page to w.
//
// The template is executed into a buffer first so a template error never leaves a half-written page.
func (r *Renderer) Render(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}
