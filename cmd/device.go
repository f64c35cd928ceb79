package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/memegacha/internal/formatter"
	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/desertthunder/memegacha/internal/web"
	"github.com/urfave/cli/v3"
)

type progressJSON struct {
	Collected int `json:"collected"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type entryJSON struct {
	Title    string `json:"title"`
	Year     int    `json:"year"`
	Age      string `json:"age"`
	Rarity   string `json:"rarity"`
	Link     string `json:"link"`
	EmbedURL string `json:"embed_url"`
}

type rollJSON struct {
	Current   *entryJSON   `json:"current"`
	Progress  progressJSON `json:"progress"`
	Exhausted bool         `json:"exhausted,omitempty"`
}

type statusJSON struct {
	Progress  progressJSON `json:"progress"`
	Seen      []string     `json:"seen"`
	Truncated bool         `json:"truncated"`
}

type historyJSON struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

func toProgressJSON(p models.Progress) progressJSON {
	return progressJSON{Collected: p.Collected, Total: p.Total, Percent: p.Percent}
}

func toEntryJSON(e *models.Entry) *entryJSON {
	if e == nil {
		return nil
	}
	return &entryJSON{
		Title:    e.Title,
		Year:     e.Item.Year,
		Age:      e.Item.Age,
		Rarity:   e.Item.Rarity.String(),
		Link:     e.Item.Link,
		EmbedURL: services.ToEmbedURL(e.Item.Link),
	}
}

func progressLine(p models.Progress) string {
	return fmt.Sprintf("Collected: %d/%d --- %d%% complete", p.Collected, p.Total, p.Percent)
}

func (r *Runner) writeEntry(e *models.Entry, p models.Progress) {
	r.writePlainHeader(e.Title)
	r.writePlain("Year:   %d\n", e.Item.Year)
	r.writePlain("Age:    %s\n", e.Item.Age)
	r.writePlain("Rarity: %s\n", e.Item.Rarity)
	r.writePlain("Watch:  %s\n", services.ToEmbedURL(e.Item.Link))
	r.writePlainln(progressLine(p))
}

// Roll picks an unseen meme, marks it seen and prints it.
func (r *Runner) Roll(ctx context.Context, cmd *cli.Command) error {
	d, err := r.loadDevice(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	entry, err := d.roller.Roll()
	exhausted := errors.Is(err, shared.ErrExhausted)
	if err != nil && !exhausted {
		return err
	}

	progress := d.roller.Progress()
	if cmd.Bool("json") {
		out := rollJSON{Progress: toProgressJSON(progress), Exhausted: exhausted}
		if !exhausted {
			out.Current = toEntryJSON(&entry)
		}
		return r.writeJSON(out, false)
	}

	if exhausted {
		r.writePlain("%s\n", web.ExhaustedMessage)
		r.writePlain("%s\n", progressLine(progress))
		return nil
	}

	r.writeEntry(&entry, progress)

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(entry.Item.Link); err != nil {
			r.logger.Warn("could not open browser", "link", entry.Item.Link, "error", err)
		}
	}
	return nil
}

// Reset clears the seen set and seeds it with a fresh roll.
func (r *Runner) Reset(ctx context.Context, cmd *cli.Command) error {
	d, err := r.loadDevice(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	current, err := d.roller.Reset()
	if err != nil {
		return err
	}

	progress := d.roller.Progress()
	if cmd.Bool("json") {
		return r.writeJSON(rollJSON{Current: toEntryJSON(current), Progress: toProgressJSON(progress)}, false)
	}

	r.writePlain("✓ Progress reset\n")
	if current == nil {
		r.writePlain("The catalog is empty.\n")
		return nil
	}
	r.writeEntry(current, progress)
	return nil
}

// Status prints collection progress and the start of the seen list.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	d, err := r.loadDevice(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	progress := d.roller.Progress()
	preview, truncated := d.roller.SeenPreview()

	if cmd.Bool("json") {
		if preview == nil {
			preview = []string{}
		}
		return r.writeJSON(statusJSON{Progress: toProgressJSON(progress), Seen: preview, Truncated: truncated}, false)
	}

	r.writePlain("%s\n", progressLine(progress))
	if len(preview) > 0 {
		line := strings.Join(preview, ", ")
		if truncated {
			line += "..."
		}
		r.writePlain("Seen so far: %s\n", line)
	}
	return nil
}

// HistoryList prints recorded actions, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	d, err := r.openDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	limit := int(cmd.Int("limit"))
	if limit < 0 {
		return fmt.Errorf("%w: --limit must not be negative, got %d", shared.ErrInvalidArgument, limit)
	}

	entries, err := d.history.List(limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out := make([]historyJSON, 0, len(entries))
		for _, e := range entries {
			out = append(out, historyJSON{ID: e.ID, Action: string(e.Action), Title: e.Title, CreatedAt: e.CreatedAt})
		}
		return r.writeJSON(out, false)
	}

	if len(entries) == 0 {
		r.writePlain("No history recorded.\n")
		return nil
	}

	for _, e := range entries {
		title := e.Title
		if title == "" {
			title = "(empty catalog)"
		}
		r.writePlain("%s  %-5s  %s\n", e.CreatedAt.Local().Format(time.DateTime), e.Action, title)
	}
	return nil
}

// HistoryClear deletes all recorded actions.
func (r *Runner) HistoryClear(ctx context.Context, cmd *cli.Command) error {
	d, err := r.openDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	if err := d.history.Clear(); err != nil {
		return err
	}
	r.writePlain("✓ History cleared\n")
	return nil
}

// SeenList prints every seen title in roll order. The catalog is not fetched.
func (r *Runner) SeenList(ctx context.Context, cmd *cli.Command) error {
	d, err := r.openDevice()
	if err != nil {
		return err
	}
	defer d.Close()

	d.roller.Hydrate()
	titles := d.roller.Seen().Titles()

	if cmd.Bool("json") {
		if titles == nil {
			titles = []string{}
		}
		return r.writeJSON(titles, false)
	}

	for _, t := range titles {
		r.writePlain("%s\n", t)
	}
	return nil
}

// SeenExport writes the seen set joined with catalog details in the requested format.
func (r *Runner) SeenExport(ctx context.Context, cmd *cli.Command) error {
	format := strings.ToLower(cmd.String("format"))
	output := cmd.String("output")

	switch format {
	case "csv", "markdown", "md", "text", "txt":
	default:
		return fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}

	d, err := r.loadDevice(ctx)
	if err != nil {
		return err
	}
	defer d.Close()

	export := formatter.NewSeenExport(d.roller.Seen(), d.catalog)
	r.logger.Info("exporting seen memes", "format", format, "rows", len(export.Rows))

	switch format {
	case "csv":
		if output == "" {
			output = "memegacha"
		}
		result, err := formatter.WriteCSVExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Seen list written to %s\n", result.SeenFile)
		r.writePlain("✓ Progress written to %s\n", result.MetadataFile)
	case "markdown", "md":
		if output == "" {
			output = "."
		}
		path, err := formatter.WriteMarkdownExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Seen list written to %s\n", path)
	default:
		if output == "" {
			data, err := formatter.ExportToText(export)
			if err != nil {
				return err
			}
			if _, err := r.output.Write(data); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
			return nil
		}
		path, err := formatter.WriteTextExport(export, output)
		if err != nil {
			return err
		}
		r.writePlain("✓ Seen list written to %s\n", path)
	}
	return nil
}
