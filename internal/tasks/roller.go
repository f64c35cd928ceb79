package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/repositories"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/shared"
)

// PreviewLimit is how many seen titles the views list before truncating.
const PreviewLimit = 10

// HistoryRecorder receives every completed roll and reset.
type HistoryRecorder interface {
	Record(action models.HistoryAction, title string) error
}

// Roller holds the catalog, the seen-set store and the current selection for one visitor.
//
// A Roller is driven by a single event loop (one HTTP request, or the TUI update loop) and is not safe for concurrent use.
type Roller struct {
	store   *repositories.SeenStore
	rng     RandomSource
	history HistoryRecorder
	logger  *log.Logger

	catalog      models.Catalog
	entries      []models.Entry
	catalogReady bool
	current      *models.Entry
}

// RollerOpts contains configuration options for creating a Roller.
type RollerOpts struct {
	Store   *repositories.SeenStore
	RNG     RandomSource
	History HistoryRecorder
	Logger  *log.Logger
}

// NewRoller creates a Roller. A nil store falls back to an in-memory one, a nil RNG to [NewRandomSource].
func NewRoller(opts RollerOpts) *Roller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Store == nil {
		opts.Store = repositories.NewSeenStore(repositories.NewMemoryStorage(), "", opts.Logger)
	}
	if opts.RNG == nil {
		opts.RNG = NewRandomSource()
	}

	return &Roller{
		store:   opts.Store,
		rng:     opts.RNG,
		history: opts.History,
		logger:  opts.Logger,
	}
}

// Boot fetches the catalog and hydrates the seen-set concurrently, then makes the initial pick.
//
// If ctx is cancelled before the fetch resolves the result is discarded and the catalog phase stays unready.
// Exhaustion during the initial pick is not an error; the caller can inspect [Roller.Current].
func (r *Roller) Boot(ctx context.Context, source services.CatalogSource, prog chan<- ProgressUpdate) error {
	var (
		wg         sync.WaitGroup
		catalog    models.Catalog
		fetchErr   error
		hydrateErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		sendProgress(prog, fetchCatalogUpdate(source.Name()))
		catalog, fetchErr = source.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		sendProgress(prog, hydrateSeenUpdate(r.store.Key()))
		hydrateErr = r.store.Hydrate()
	}()
	wg.Wait()

	if hydrateErr != nil {
		r.logger.Warn("seen set unavailable, starting empty", "error", hydrateErr)
	}

	if err := ctx.Err(); err != nil {
		sendProgress(prog, bootCompleteUpdate(err))
		return err
	}
	if fetchErr != nil {
		sendProgress(prog, bootCompleteUpdate(fetchErr))
		return fetchErr
	}

	r.SetCatalog(catalog)

	sendProgress(prog, pickInitialUpdate())
	if _, err := r.EnsureCurrent(); err != nil && !errors.Is(err, shared.ErrExhausted) {
		sendProgress(prog, bootCompleteUpdate(err))
		return err
	}

	sendProgress(prog, bootCompleteUpdate(nil))
	return nil
}

// SetCatalog installs a freshly loaded catalog and marks the catalog phase ready.
//
// A current selection whose title is missing from the new catalog is dropped.
func (r *Roller) SetCatalog(catalog models.Catalog) {
	r.catalog = catalog
	r.entries = catalog.Entries()
	r.catalogReady = true

	if r.current != nil {
		if _, ok := catalog[r.current.Title]; !ok {
			r.current = nil
		}
	}
}

// Hydrate loads the seen-set from storage and marks the seen phase ready.
//
// Storage failures leave an empty set; they are logged rather than returned.
func (r *Roller) Hydrate() {
	if err := r.store.Hydrate(); err != nil {
		r.logger.Warn("seen set unavailable, starting empty", "error", err)
	}
}

// Ready reports whether both the catalog and the seen-set have loaded.
func (r *Roller) Ready() bool {
	return r.catalogReady && r.store.Hydrated()
}

// CatalogLoaded reports whether the catalog phase completed, which tells "still loading" apart from exhaustion.
func (r *Roller) CatalogLoaded() bool {
	return r.catalogReady
}

// Current returns the selection on display, or nil.
func (r *Roller) Current() *models.Entry {
	if r.current == nil {
		return nil
	}
	e := *r.current
	return &e
}

// Restore sets the current selection to title without touching the seen-set.
//
// It reports false when the catalog is not loaded or title is not in it.
func (r *Roller) Restore(title string) bool {
	e, ok := r.catalog.Lookup(title)
	if !ok {
		return false
	}
	r.current = &e
	return true
}

// EnsureCurrent makes the initial pick when both phases are ready and nothing is selected yet.
//
// A selection made before a later re-hydration is kept even if it is now in the seen-set.
func (r *Roller) EnsureCurrent() (*models.Entry, error) {
	if !r.Ready() {
		return nil, shared.ErrNotReady
	}
	if r.current != nil {
		return r.Current(), nil
	}

	e, err := r.Roll()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Roll selects the next unseen entry and adds it to the seen-set.
//
// On exhaustion it returns [shared.ErrExhausted] and leaves the selection and seen-set unchanged. The same holds when
// storage cannot fit a larger seen-set ([shared.ErrPayloadTooLarge]); other storage failures are logged and the roll
// stands.
func (r *Roller) Roll() (models.Entry, error) {
	if !r.Ready() {
		return models.Entry{}, shared.ErrNotReady
	}

	next, ok := PickRandomUnseen(r.entries, r.store.Seen(), r.rng)
	if !ok {
		return models.Entry{}, shared.ErrExhausted
	}

	if err := r.store.Add(next.Title); err != nil {
		if errors.Is(err, shared.ErrPayloadTooLarge) {
			return models.Entry{}, err
		}
		r.logger.Warn("failed to persist roll", "title", next.Title, "error", err)
	}
	r.current = &next
	r.record(models.ActionRoll, next.Title)

	return next, nil
}

// Reset clears the seen-set and seeds it with a fresh pick in one write.
//
// With an empty catalog the selection becomes nil and the seen-set stays empty.
func (r *Roller) Reset() (*models.Entry, error) {
	if !r.Ready() {
		return nil, shared.ErrNotReady
	}

	fresh, ok := PickRandomUnseen(r.entries, models.NewSeenSet(), r.rng)

	var err error
	if ok {
		r.current = &fresh
		err = r.store.ResetTo(fresh.Title)
	} else {
		r.current = nil
		err = r.store.Reset()
	}
	if err != nil {
		r.logger.Warn("failed to persist reset", "error", err)
	}
	r.record(models.ActionReset, fresh.Title)

	return r.Current(), nil
}

// Progress counts seen titles that are still in the catalog.
func (r *Roller) Progress() models.Progress {
	seen := r.store.Seen()
	return models.NewProgress(seen.CountIn(r.catalog), len(r.entries))
}

// SeenPreview returns the first [PreviewLimit] seen titles and whether the list was cut.
func (r *Roller) SeenPreview() ([]string, bool) {
	return r.store.Seen().Preview(PreviewLimit)
}

// Seen returns a copy of the seen-set.
func (r *Roller) Seen() *models.SeenSet {
	return r.store.Seen()
}

// Entries returns the loaded catalog in title order.
func (r *Roller) Entries() []models.Entry {
	return append([]models.Entry{}, r.entries...)
}

func (r *Roller) record(action models.HistoryAction, title string) {
	if r.history == nil {
		return
	}
	if err := r.history.Record(action, title); err != nil {
		r.logger.Warn(fmt.Sprintf("failed to record %s", action), "error", err)
	}
}
