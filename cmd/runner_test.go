package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/memegacha/internal/models"
	"github.com/desertthunder/memegacha/internal/services"
	"github.com/desertthunder/memegacha/internal/shared"
	"github.com/desertthunder/memegacha/internal/tasks"
	tu "github.com/desertthunder/memegacha/internal/testing"
	"github.com/urfave/cli/v3"
)

func newTestRunner(t *testing.T, catalog models.Catalog) (*Runner, *bytes.Buffer) {
	t.Helper()

	config := shared.DefaultConfig()
	config.Database.Path = filepath.Join(t.TempDir(), "memegacha.db")
	output := &bytes.Buffer{}

	runner := NewRunner(RunnerOpts{
		Config: config,
		Source: services.StaticSource{Catalog: catalog},
		RNG:    tasks.NewSeededSource(7),
		Logger: shared.NewLogger(io.Discard),
		Output: output,
	})
	return runner, output
}

func runCommand(r *Runner, args ...string) error {
	app := &cli.Command{
		Name: "memegacha",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config"},
			&cli.BoolFlag{Name: "debug"},
		},
		Before:   r.before,
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"memegacha"}, args...))
}

func decodeOutput[T any](t *testing.T, output *bytes.Buffer) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(output.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode output %q: %v", output.String(), err)
	}
	output.Reset()
	return v
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			source := services.StaticSource{Catalog: tu.SampleCatalog()}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Source:     source,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.catalogSource().Name() != "static" {
				t.Errorf("expected static source, got %s", runner.catalogSource().Name())
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Config: nil,
			})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Logger: nil,
			})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: nil,
			})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				HTTPClient: nil,
			})

			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
		})

		t.Run("without source uses configured catalog", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.Catalog.Source = "testdata/catalog.json"
			runner := NewRunner(RunnerOpts{Config: config})

			if got := runner.catalogSource().Name(); got != "testdata/catalog.json" {
				t.Errorf("expected configured source, got %s", got)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("writes plain text without formatting", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("simple text")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "simple text" {
				t.Errorf("expected 'simple text', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
				continue
			}
			names[cmd.Name] = true
		}

		for _, name := range []string{"serve", "tui", "roll", "reset", "status", "history", "seen", "catalog", "setup"} {
			if !names[name] {
				t.Errorf("expected command %q to be registered", name)
			}
		}
	})

	t.Run("before", func(t *testing.T) {
		t.Run("missing default config falls back to defaults", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())
			path := filepath.Join(t.TempDir(), "missing.toml")
			app := &cli.Command{
				Name:     "memegacha",
				Flags:    []cli.Flag{&cli.StringFlag{Name: "config", Value: path}, &cli.BoolFlag{Name: "debug"}},
				Before:   runner.before,
				Commands: runner.register(),
			}

			if err := app.Run(context.Background(), []string{"memegacha", "status"}); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if runner.configPath != "" {
				t.Errorf("expected configPath to stay empty, got %s", runner.configPath)
			}
		})

		t.Run("missing explicit config is an error", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())
			path := filepath.Join(t.TempDir(), "missing.toml")

			err := runCommand(runner, "--config", path, "status")
			if !errors.Is(err, shared.ErrMissingConfig) {
				t.Errorf("expected ErrMissingConfig, got %v", err)
			}
		})

		t.Run("loads config file", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())
			dir := t.TempDir()
			path := filepath.Join(dir, "config.toml")
			dbPath := filepath.Join(dir, "from-config.db")
			tu.MustWriteFile(t, path, "[database]\npath = \""+dbPath+"\"\n")

			if err := runCommand(runner, "--config", path, "status"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if runner.config.Database.Path != dbPath {
				t.Errorf("expected database path %s, got %s", dbPath, runner.config.Database.Path)
			}
			tu.AssertFileExists(t, dbPath)
		})

		t.Run("rejects malformed config", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())
			path := filepath.Join(t.TempDir(), "config.toml")
			tu.MustWriteFile(t, path, "[server\nport = ")

			if err := runCommand(runner, "--config", path, "status"); err == nil {
				t.Fatal("expected error for malformed config")
			}
		})
	})

	t.Run("Roll", func(t *testing.T) {
		t.Run("rolls every entry once then reports exhaustion", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.SampleCatalog())

			seen := map[string]bool{}
			for range 2 {
				if err := runCommand(runner, "roll", "--json"); err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				result := decodeOutput[rollJSON](t, output)
				if result.Current == nil {
					t.Fatal("expected a rolled entry")
				}
				if seen[result.Current.Title] {
					t.Errorf("rolled %s twice", result.Current.Title)
				}
				seen[result.Current.Title] = true
			}

			if err := runCommand(runner, "roll", "--json"); err != nil {
				t.Fatalf("expected no error on exhaustion, got %v", err)
			}
			result := decodeOutput[rollJSON](t, output)
			if !result.Exhausted {
				t.Error("expected exhausted result")
			}
			if result.Current != nil {
				t.Errorf("expected no entry, got %+v", result.Current)
			}
			if result.Progress.Collected != 2 || result.Progress.Total != 2 || result.Progress.Percent != 100 {
				t.Errorf("expected 2/2 100%%, got %+v", result.Progress)
			}
		})

		t.Run("plain output shows embed link and progress", func(t *testing.T) {
			catalog := models.Catalog{
				"A": {Year: 2000, Age: "old", Rarity: models.NewRarity(models.RarityCommon), Link: "https://youtube.com/watch?v=xyz"},
			}
			runner, output := newTestRunner(t, catalog)

			if err := runCommand(runner, "roll"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			for _, want := range []string{"A\n", "https://www.youtube.com/embed/xyz?autoplay=1", "Collected: 1/1 --- 100% complete"} {
				if !strings.Contains(result, want) {
					t.Errorf("expected output to contain %q, got %q", want, result)
				}
			}
		})

		t.Run("plain exhaustion message", func(t *testing.T) {
			runner, output := newTestRunner(t, models.Catalog{})

			if err := runCommand(runner, "roll"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "You've seen them all!") {
				t.Errorf("expected exhaustion message, got %q", output.String())
			}
		})

		t.Run("catalog failure is returned", func(t *testing.T) {
			runner, _ := newTestRunner(t, nil)
			runner.source = services.StaticSource{Err: shared.ErrCatalogLoad}

			err := runCommand(runner, "roll")
			if !errors.Is(err, shared.ErrCatalogLoad) {
				t.Errorf("expected ErrCatalogLoad, got %v", err)
			}
		})
	})

	t.Run("Reset", func(t *testing.T) {
		runner, output := newTestRunner(t, tu.LargeCatalog(5))

		for range 3 {
			if err := runCommand(runner, "roll", "--json"); err != nil {
				t.Fatalf("roll failed: %v", err)
			}
		}
		output.Reset()

		for range 2 {
			if err := runCommand(runner, "reset", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			result := decodeOutput[rollJSON](t, output)
			if result.Current == nil {
				t.Fatal("expected a fresh entry after reset")
			}
			if result.Progress.Collected != 1 {
				t.Errorf("expected 1 collected after reset, got %d", result.Progress.Collected)
			}
		}

		if err := runCommand(runner, "seen", "list", "--json"); err != nil {
			t.Fatalf("seen list failed: %v", err)
		}
		titles := decodeOutput[[]string](t, output)
		if len(titles) != 1 {
			t.Errorf("expected one seen title, got %v", titles)
		}
	})

	t.Run("Status", func(t *testing.T) {
		t.Run("reports progress and preview", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.LargeCatalog(20))

			for range 12 {
				if err := runCommand(runner, "roll", "--json"); err != nil {
					t.Fatalf("roll failed: %v", err)
				}
			}
			output.Reset()

			if err := runCommand(runner, "status", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			status := decodeOutput[statusJSON](t, output)

			if status.Progress.Collected != 12 || status.Progress.Total != 20 || status.Progress.Percent != 60 {
				t.Errorf("expected 12/20 60%%, got %+v", status.Progress)
			}
			if len(status.Seen) != tasks.PreviewLimit {
				t.Errorf("expected %d preview titles, got %d", tasks.PreviewLimit, len(status.Seen))
			}
			if !status.Truncated {
				t.Error("expected truncated preview")
			}
		})

		t.Run("plain output for a fresh device", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.SampleCatalog())

			if err := runCommand(runner, "status"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got := output.String(); got != "Collected: 0/2 --- 0% complete\n" {
				t.Errorf("unexpected status output %q", got)
			}
		})
	})

	t.Run("History", func(t *testing.T) {
		runner, output := newTestRunner(t, tu.SampleCatalog())

		for _, args := range [][]string{{"roll", "--json"}, {"reset", "--json"}} {
			if err := runCommand(runner, args...); err != nil {
				t.Fatalf("%v failed: %v", args, err)
			}
		}
		output.Reset()

		if err := runCommand(runner, "history", "list", "--json"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		entries := decodeOutput[[]historyJSON](t, output)
		if len(entries) != 2 {
			t.Fatalf("expected 2 history entries, got %d", len(entries))
		}

		actions := map[string]bool{}
		for _, e := range entries {
			actions[e.Action] = true
		}
		if !actions["roll"] || !actions["reset"] {
			t.Errorf("expected roll and reset actions, got %+v", entries)
		}

		if err := runCommand(runner, "history", "clear"); err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		output.Reset()

		if err := runCommand(runner, "history", "list"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(output.String(), "No history recorded.") {
			t.Errorf("expected empty history, got %q", output.String())
		}
	})

	t.Run("History Edge Cases", func(t *testing.T) {
		t.Run("negative limit is rejected", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())

			err := runCommand(runner, "history", "list", "--limit=-1")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("reset of an empty catalog has no title", func(t *testing.T) {
			runner, output := newTestRunner(t, models.Catalog{})
			if err := runCommand(runner, "reset"); err != nil {
				t.Fatalf("reset failed: %v", err)
			}
			output.Reset()

			if err := runCommand(runner, "history", "list", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			entries := decodeOutput[[]historyJSON](t, output)
			if len(entries) != 1 || entries[0].Action != "reset" || entries[0].Title != "" {
				t.Fatalf("expected one untitled reset, got %+v", entries)
			}

			if err := runCommand(runner, "history", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "(empty catalog)") {
				t.Errorf("expected placeholder title, got %q", output.String())
			}
		})
	})

	t.Run("SeenExport", func(t *testing.T) {
		t.Run("csv writes seen and progress files", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())
			if err := runCommand(runner, "roll"); err != nil {
				t.Fatalf("roll failed: %v", err)
			}

			base := filepath.Join(t.TempDir(), "export")
			if err := runCommand(runner, "seen", "export", "--format", "csv", "--output", base); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			tu.AssertFileExists(t, base+"_seen.csv")
			tu.AssertFileExists(t, base+"_progress.json")
		})

		t.Run("text goes to output by default", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.SampleCatalog())
			if err := runCommand(runner, "roll"); err != nil {
				t.Fatalf("roll failed: %v", err)
			}
			output.Reset()

			if err := runCommand(runner, "seen", "export"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Collected: 1/2") {
				t.Errorf("expected progress in text export, got %q", output.String())
			}
		})

		t.Run("rejects unknown format", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())

			err := runCommand(runner, "seen", "export", "--format", "xml")
			if !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})

	t.Run("Catalog", func(t *testing.T) {
		t.Run("show lists entries", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.SampleCatalog())

			if err := runCommand(runner, "catalog", "show"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, "Catalog: 2 entries") {
				t.Errorf("expected header, got %q", result)
			}
			if !strings.Contains(result, "B (2015, classic, Rare)") {
				t.Errorf("expected entry line, got %q", result)
			}
		})

		t.Run("show as JSON keeps raw rarity", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.SampleCatalog())

			if err := runCommand(runner, "catalog", "show", "--json"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), `"rarity":"Rare"`) {
				t.Errorf("expected raw rarity in JSON, got %q", output.String())
			}
		})

		t.Run("show one entry by title", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.SampleCatalog())

			if err := runCommand(runner, "catalog", "show", "B"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			result := output.String()
			if !strings.Contains(result, "Rarity: Rare") || !strings.Contains(result, "https://www.youtube.com/embed/abc?autoplay=1") {
				t.Errorf("unexpected entry output %q", result)
			}
		})

		t.Run("show unknown title", func(t *testing.T) {
			runner, _ := newTestRunner(t, tu.SampleCatalog())

			err := runCommand(runner, "catalog", "show", "nope")
			if !errors.Is(err, shared.ErrEntryNotFound) {
				t.Errorf("expected ErrEntryNotFound, got %v", err)
			}
		})

		t.Run("validate reports problems", func(t *testing.T) {
			catalog := models.Catalog{
				"ok":    {Year: 2010, Age: "old", Rarity: models.NewRarity(models.RarityMythic), Link: "https://youtu.be/abc"},
				"weird": {Year: 2010, Age: "old", Rarity: models.ParseRarity("Shiny"), Link: "https://vimeo.com/123"},
			}
			runner, output := newTestRunner(t, catalog)

			if err := runCommand(runner, "catalog", "validate"); err != nil {
				t.Fatalf("expected no error without --strict, got %v", err)
			}
			result := output.String()
			if !strings.Contains(result, `weird: unknown rarity "Shiny"`) {
				t.Errorf("expected rarity issue, got %q", result)
			}
			if !strings.Contains(result, "weird: link cannot be embedded") {
				t.Errorf("expected link issue, got %q", result)
			}
			if strings.Contains(result, "ok:") {
				t.Errorf("expected no issues for valid entry, got %q", result)
			}

			err := runCommand(runner, "catalog", "validate", "--strict")
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})

		t.Run("validate clean catalog", func(t *testing.T) {
			runner, output := newTestRunner(t, tu.SampleCatalog())

			if err := runCommand(runner, "catalog", "validate", "--strict"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "2 entries, no issues") {
				t.Errorf("unexpected output %q", output.String())
			}
		})
	})

	t.Run("Setup", func(t *testing.T) {
		t.Run("config writes template once", func(t *testing.T) {
			runner, _ := newTestRunner(t, nil)
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := runCommand(runner, "setup", "config", "--output", path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			tu.AssertFileExists(t, path)

			if err := runCommand(runner, "setup", "config", "--output", path); err == nil {
				t.Error("expected error when config already exists")
			}
		})

		t.Run("database runs migrations", func(t *testing.T) {
			runner, _ := newTestRunner(t, nil)

			if err := runCommand(runner, "setup", "database"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			tu.AssertFileExists(t, runner.config.Database.Path)

			if err := runCommand(runner, "setup", "rollback"); err != nil {
				t.Fatalf("expected rollback to succeed, got %v", err)
			}
		})
	})

	t.Run("validateCatalog", func(t *testing.T) {
		tests := []struct {
			name  string
			entry models.Entry
			want  int
		}{
			{"valid", models.Entry{Title: "a", Item: models.CatalogItem{Year: 2001, Rarity: models.NewRarity(models.RarityRare), Link: "https://www.youtube.com/embed/x"}}, 0},
			{"missing link", models.Entry{Title: "b", Item: models.CatalogItem{Year: 2001, Rarity: models.NewRarity(models.RarityRare)}}, 1},
			{"missing year", models.Entry{Title: "c", Item: models.CatalogItem{Rarity: models.NewRarity(models.RarityRare), Link: "https://youtu.be/x"}}, 1},
			{"everything wrong", models.Entry{Title: "d", Item: models.CatalogItem{Rarity: models.ParseRarity(""), Link: "nope"}}, 3},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := validateCatalog([]models.Entry{tt.entry}); len(got) != tt.want {
					t.Errorf("expected %d issues, got %+v", tt.want, got)
				}
			})
		}
	})
}
