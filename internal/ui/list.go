package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/memegacha/internal/models"
)

var _ list.Item = seenItem{}

// seenItem wraps a seen title and its catalog entry, if any, to implement [list.Item].
type seenItem struct {
	title string
	item  *models.CatalogItem
}

func (i seenItem) FilterValue() string { return i.title }
func (i seenItem) Title() string       { return i.title }
func (i seenItem) Description() string {
	if i.item == nil {
		return "no longer in the catalog"
	}
	return fmt.Sprintf("%d • %s • %s", i.item.Year, i.item.Age, i.item.Rarity)
}

// seenItems lists titles in the order they were seen.
func seenItems(titles []string, catalog []models.Entry) []list.Item {
	byTitle := make(map[string]models.CatalogItem, len(catalog))
	for _, e := range catalog {
		byTitle[e.Title] = e.Item
	}

	items := make([]list.Item, len(titles))
	for i, t := range titles {
		si := seenItem{title: t}
		if item, ok := byTitle[t]; ok {
			si.item = &item
		}
		items[i] = si
	}
	return items
}
