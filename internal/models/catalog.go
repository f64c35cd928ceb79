package models

import (
	"encoding/json"
	"fmt"
	"sort"
)

// RarityKind is the closed set of recognised rarities.
type RarityKind int

const (
	RarityUnknown RarityKind = iota
	RarityCommon
	RarityUncommon
	RarityRare
	RarityLegendary
	RarityMythic
)

var rarityNames = map[RarityKind]string{
	RarityCommon:    "Common",
	RarityUncommon:  "Uncommon",
	RarityRare:      "Rare",
	RarityLegendary: "Legendary",
	RarityMythic:    "Mythic",
}

var rarityColors = map[RarityKind]string{
	RarityCommon:    "--chart-1",
	RarityUncommon:  "--chart-2",
	RarityRare:      "--chart-3",
	RarityLegendary: "--chart-4",
	RarityMythic:    "--chart-5",
}

// Rarity is a rarity classification. Unrecognised strings are kept verbatim in an unknown variant.
type Rarity struct {
	kind RarityKind
	raw  string
}

// ParseRarity maps s onto a known rarity by exact name, or an unknown rarity carrying s.
func ParseRarity(s string) Rarity {
	for kind, name := range rarityNames {
		if name == s {
			return Rarity{kind: kind, raw: name}
		}
	}
	return Rarity{kind: RarityUnknown, raw: s}
}

// NewRarity returns the known rarity for kind.
func NewRarity(kind RarityKind) Rarity {
	return Rarity{kind: kind, raw: rarityNames[kind]}
}

func (r Rarity) Kind() RarityKind { return r.kind }
func (r Rarity) Known() bool      { return r.kind != RarityUnknown }
func (r Rarity) String() string   { return r.raw }

// ColorVar returns the CSS custom property used to color the rarity label.
func (r Rarity) ColorVar() string {
	if c, ok := rarityColors[r.kind]; ok {
		return c
	}
	return "--foreground"
}

// MarshalText implements [encoding.TextMarshaler]; JSON and YAML both go through it.
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.raw), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (r *Rarity) UnmarshalText(text []byte) error {
	*r = ParseRarity(string(text))
	return nil
}

// CatalogItem describes one meme. Its title is the key it is stored under.
type CatalogItem struct {
	Year   int    `json:"year" yaml:"year"`
	Age    string `json:"age" yaml:"age"`
	Rarity Rarity `json:"rarity" yaml:"rarity"`
	Link   string `json:"link" yaml:"link"`
}

// Entry pairs a title with its item.
type Entry struct {
	Title string
	Item  CatalogItem
}

// Catalog maps titles to items. It is treated as read-only once loaded.
type Catalog map[string]CatalogItem

// ParseCatalog decodes a JSON object of title → item. Unknown fields are ignored.
func ParseCatalog(data []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if c == nil {
		return nil, fmt.Errorf("failed to decode catalog: expected an object")
	}
	return c, nil
}

// Entries materialises the catalog as a title-sorted list.
func (c Catalog) Entries() []Entry {
	entries := make([]Entry, 0, len(c))
	for title, item := range c {
		entries = append(entries, Entry{Title: title, Item: item})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Title < entries[j].Title })
	return entries
}

// Lookup returns the entry stored under title.
func (c Catalog) Lookup(title string) (Entry, bool) {
	item, ok := c[title]
	if !ok {
		return Entry{}, false
	}
	return Entry{Title: title, Item: item}, true
}
