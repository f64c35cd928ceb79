// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles database and config initialization
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize local state",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the device database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent database migration",
				Action: r.SetupRollback,
			},
			{
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Config file path (defaults to --config)",
					},
				},
				Action: r.SetupConfig,
			},
		},
	}
}

// serveCommand starts the web front end
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the roller page over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (overrides config)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the page in a browser once listening",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand launches the terminal front end
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal roller",
		Action: r.TUI,
	}
}

func rollCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "roll",
		Usage: "Roll an unseen meme and mark it seen",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the rolled video in a browser",
			},
		},
		Action: r.Roll,
	}
}

func resetCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Clear seen memes and start over with a fresh roll",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Reset,
	}
}

func statusCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "status",
		Usage: "Show collection progress",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Status,
	}
}

// historyCommand lists or clears recorded rolls and resets
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Recorded rolls and resets on this device",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List recent actions, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of actions to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded actions",
				Action: r.HistoryClear,
			},
		},
	}
}

func seenCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seen",
		Usage: "Inspect the seen set",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List seen titles in the order they were rolled",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SeenList,
			},
			{
				Name:  "export",
				Usage: "Export seen memes with their catalog details",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown or text",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (file base for csv, directory for markdown, file for text)",
					},
				},
				Action: r.SeenExport,
			},
		},
	}
}

func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Inspect the configured catalog",
		Commands: []*cli.Command{
			{
				Name:      "show",
				Usage:     "List catalog entries, or show one by title",
				ArgsUsage: "[title]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CatalogShow,
			},
			{
				Name:  "validate",
				Usage: "Report unknown rarities and links that cannot be embedded",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Exit with an error when issues are found",
					},
				},
				Action: r.CatalogValidate,
			},
		},
	}
}
