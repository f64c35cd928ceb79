// Package services loads the meme catalog and turns video links into embeddable URLs.
//
// # Catalog Loader
//
// [CatalogService] fetches the catalog resource once per call. The source is either an http(s) URL
// (fetched with cache-busting headers so edits to the file show up on the next load) or a local path.
// JSON is the canonical format: an object keyed by title whose values carry year, age, rarity and link.
// YAML files with the same shape are accepted for hand-authored catalogs.
//
// Every failure is wrapped with [shared.ErrCatalogLoad]. There is no retry; front ends stay in their
// loading state and log the error.
//
// # Link Embedding
//
// [ToEmbedURL] recognises YouTube watch, shorts, embed and youtu.be links and rewrites them to an
// autoplaying embed URL. Anything else, including strings that are not URLs at all, is returned unchanged.
package services
