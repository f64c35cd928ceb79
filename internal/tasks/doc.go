// Package tasks picks memes and orchestrates the roll and reset actions shared by every front end.
//
// # Unseen Sampler
//
// [PickRandomUnseen] is a pure function: it filters the catalog entries down to the pool of titles
// missing from the seen-set and draws one index uniformly from a [RandomSource]. An empty pool, which
// covers both an empty catalog and full exhaustion, returns false.
//
// # Roller
//
// [Roller] owns the loaded catalog, the [repositories.SeenStore] and the current selection.
// Two independent phases must complete before the first automatic pick:
//
//  1. catalog ready: [Roller.SetCatalog] after a successful fetch
//  2. seen ready: [Roller.Hydrate] after reading the storage slot
//
// [Roller.Boot] runs both phases concurrently and only picks once both have landed, so the first pick
// always sees the hydrated seen-set. Afterwards:
//   - [Roller.Roll] draws the next unseen entry or returns [shared.ErrExhausted] leaving state untouched
//   - [Roller.Reset] clears the seen-set and seeds it with a fresh pick in a single storage write
//
// Storage write failures are logged and do not fail the action; the in-memory state stays authoritative
// for the rest of the session.
//
// # Progress Reporting
//
// Boot emits [ProgressUpdate] values on an optional channel. Sends never block.
package tasks
