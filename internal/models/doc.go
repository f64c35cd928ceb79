// Package models defines the domain types and persistence interfaces for the meme roller.
//
// The package contains three groups of types:
//
// 1. Catalog types: the immutable collection loaded once per session
//   - [CatalogItem] : year, age label, rarity and video link of one meme
//   - [Entry] : a (title, item) pair, the unit the sampler works on
//   - [Catalog] : title → item mapping with a deterministic [Catalog.Entries] view
//   - [Rarity] : closed enumeration with an explicit unknown variant carrying the raw string
//
// 2. Visitor state
//   - [SeenSet] : titles already shown, insertion ordered, set semantics
//   - [Progress] : collected/total readout
//   - [HistoryEntry] : one recorded roll or reset
//
// 3. Persistence interfaces
//   - [Storage] : a get/set key-value slot (browser cookie, SQLite row, or memory)
package models
