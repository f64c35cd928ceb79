package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/urfave/cli/v3"
)

// catalogIssue is one problem found in a catalog entry.
type catalogIssue struct {
	Title   string
	Problem string
}

// validateCatalog checks every entry for values the front ends cannot present as intended.
func validateCatalog(entries []models.Entry) []catalogIssue {
	var issues []catalogIssue
	for _, e := range entries {
		if !e.Item.Rarity.Known() {
			issues = append(issues, catalogIssue{e.Title, fmt.Sprintf("unknown rarity %q", e.Item.Rarity.String())})
		}
		if e.Item.Link == "" {
			issues = append(issues, catalogIssue{e.Title, "missing link"})
		} else if _, ok := services.ParseYouTubeID(e.Item.Link); !ok {
			issues = append(issues, catalogIssue{e.Title, "link cannot be embedded"})
		}
		if e.Item.Year <= 0 {
			issues = append(issues, catalogIssue{e.Title, "missing year"})
		}
	}
	return issues
}

// CatalogShow prints the configured catalog, or one entry when a title is given.
func (r *Runner) CatalogShow(ctx context.Context, cmd *cli.Command) error {
	source := r.catalogSource()
	catalog, err := source.Fetch(ctx)
	if err != nil {
		return err
	}

	if title := cmd.Args().First(); title != "" {
		entry, ok := catalog.Lookup(title)
		if !ok {
			return fmt.Errorf("%w: %q", shared.ErrEntryNotFound, title)
		}
		if cmd.Bool("json") {
			return r.writeJSON(toEntryJSON(&entry), cmd.Bool("pretty"))
		}
		r.writePlainHeader(entry.Title)
		r.writePlain("Year:   %d\n", entry.Item.Year)
		r.writePlain("Age:    %s\n", entry.Item.Age)
		r.writePlain("Rarity: %s\n", entry.Item.Rarity)
		r.writePlain("Link:   %s\n", entry.Item.Link)
		r.writePlain("Embed:  %s\n", services.ToEmbedURL(entry.Item.Link))
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(catalog, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Catalog: %d entries", len(catalog)))
	for _, e := range catalog.Entries() {
		r.writePlain("%s (%d, %s, %s)\n", e.Title, e.Item.Year, e.Item.Age, e.Item.Rarity)
	}
	return nil
}

// CatalogValidate reports unknown rarities, links that do not embed and missing years.
func (r *Runner) CatalogValidate(ctx context.Context, cmd *cli.Command) error {
	source := r.catalogSource()
	catalog, err := source.Fetch(ctx)
	if err != nil {
		return err
	}

	if len(catalog) == 0 {
		r.writePlain("Catalog %s is empty.\n", source.Name())
		if cmd.Bool("strict") {
			return shared.ErrCatalogEmpty
		}
		return nil
	}

	issues := validateCatalog(catalog.Entries())
	if len(issues) == 0 {
		r.writePlain("✓ %d entries, no issues\n", len(catalog))
		return nil
	}

	for _, issue := range issues {
		r.writePlain("✗ %s: %s\n", issue.Title, issue.Problem)
	}
	r.writePlainln("%d issues in %d entries", len(issues), len(catalog))

	if cmd.Bool("strict") {
		return fmt.Errorf("%w: %d catalog issues", shared.ErrInvalidInput, len(issues))
	}
	return nil
}
