package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/repositories"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/desertthunder/memegacha/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	source     services.CatalogSource
	rng        tasks.RandomSource
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Source     services.CatalogSource // overrides the configured catalog source
	RNG        tasks.RandomSource
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		source:     opts.Source,
		rng:        opts.RNG,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, tuiCommand, rollCommand, resetCommand, statusCommand, historyCommand,
		seenCommand, catalogCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before loads the configuration named by --config and applies the log level.
//
// A missing default file falls back to the embedded defaults. A file named explicitly must exist, and a file that
// fails to parse is an error.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	path := cmd.String("config")
	if path != "" {
		config, err := shared.LoadConfig(path)
		switch {
		case err == nil:
			r.config = config
			r.configPath = path
		case errors.Is(err, fs.ErrNotExist) && cmd.IsSet("config"):
			return ctx, fmt.Errorf("%w: %s", shared.ErrMissingConfig, path)
		case errors.Is(err, fs.ErrNotExist):
			r.logger.Debug("config file not found, using defaults", "path", path)
		default:
			return ctx, err
		}
	}

	level := shared.ParseLogLevel(r.config.Log.Level)
	if cmd.Bool("debug") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)

	return ctx, nil
}

// catalogSource returns the configured catalog loader.
func (r *Runner) catalogSource() services.CatalogSource {
	if r.source != nil {
		return r.source
	}
	return services.NewCatalogService(r.config.Catalog.Source, r.httpClient).WithTimeout(r.config.Catalog.Timeout())
}

// device is the roller wired to the local database.
type device struct {
	roller  *tasks.Roller
	history *repositories.HistoryRepository
	db      *sql.DB
	catalog models.Catalog
}

func (d *device) Close() error {
	return d.db.Close()
}

// openDevice opens the device database and wires a roller to its seen-set slot and history.
//
// The caller must close the returned device.
func (r *Runner) openDevice() (*device, error) {
	db, err := shared.OpenDatabase(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	history := repositories.NewHistoryRepository(db)
	store := repositories.NewSeenStore(repositories.NewSQLiteStorage(db), r.config.Storage.SeenKey, r.logger)
	roller := tasks.NewRoller(tasks.RollerOpts{
		Store:   store,
		RNG:     r.rng,
		History: history,
		Logger:  r.logger,
	})

	return &device{roller: roller, history: history, db: db}, nil
}

// loadDevice opens the device and brings both readiness phases up without making a pick.
func (r *Runner) loadDevice(ctx context.Context) (*device, error) {
	d, err := r.openDevice()
	if err != nil {
		return nil, err
	}

	source := r.catalogSource()
	r.logger.Debug("fetching catalog", "source", source.Name())
	catalog, err := source.Fetch(ctx)
	if err != nil {
		d.Close()
		return nil, err
	}

	d.catalog = catalog
	d.roller.Hydrate()
	d.roller.SetCatalog(catalog)
	return d, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
