// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

// serveCommand runs the photos web service.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the photos web service",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Override the configured listen port",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for config and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
			{
				Name:  "config",
				Usage: "Create a config file from the embedded template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Path to write the config file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:   "status",
				Usage:  "Show applied and pending migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Flags:  []cli.Flag{configFlag()},
				Action: r.MigrateRollback,
			},
		},
	}
}

// usersCommand manages user accounts directly against the database.
func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "users",
		Usage: "Manage user accounts",
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a user account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Display name",
					},
					&cli.StringFlag{
						Name:  "roles",
						Usage: "Comma-separated roles",
						Value: "public",
					},
				},
				Action: r.UsersAdd,
			},
			{
				Name:  "list",
				Usage: "List user accounts",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "enabled",
						Usage: "Only show enabled accounts",
					},
				},
				Action: r.UsersList,
			},
			{
				Name:  "show",
				Usage: "Show a single user account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.UsersShow,
			},
			{
				Name:  "update",
				Usage: "Update a user's name or roles",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "New display name",
					},
					&cli.StringFlag{
						Name:  "roles",
						Usage: "New comma-separated roles",
					},
				},
				Action: r.UsersUpdate,
			},
			{
				Name:  "enable",
				Usage: "Enable a user account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.UsersEnable,
			},
			{
				Name:  "disable",
				Usage: "Disable a user account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.UsersDisable,
			},
			{
				Name:  "remove",
				Usage: "Remove a user account",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.UsersRemove,
			},
		},
	}
}

// albumsCommand inspects and exports the album hierarchy.
func albumsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "albums",
		Usage: "Inspect and export the album hierarchy",
		Commands: []*cli.Command{
			{
				Name:   "tree",
				Usage:  "Print the folder/album hierarchy",
				Flags:  []cli.Flag{configFlag()},
				Action: r.AlbumsTree,
			},
			{
				Name:  "list",
				Usage: "List albums sorted by path",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.AlbumsList,
			},
			{
				Name:  "export",
				Usage: "Export albums to CSV, Markdown, or plain text",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format (csv, markdown, text)",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.AlbumsExport,
			},
		},
	}
}

// photosCommand manages the scaled-image cache.
func photosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "photos",
		Usage: "Manage photo image variants",
		Commands: []*cli.Command{
			{
				Name:  "pregen",
				Usage: "Pregenerate all image variants into the cache",
				Flags: []cli.Flag{
					configFlag(),
					&cli.IntFlag{
						Name:    "workers",
						Aliases: []string{"w"},
						Usage:   "Number of concurrent workers",
						Value:   4,
					},
				},
				Action: r.PhotosPregen,
			},
			{
				Name:  "cache",
				Usage: "Show image cache statistics",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheInfo,
			},
		},
	}
}

// loginCommand signs in with Google and stores the resulting session token.
func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Authenticate with Google and create a service session",
		Flags:  []cli.Flag{configFlag()},
		Action: r.Login,
	}
}

// apiCommand handles direct calls against the photos service
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the photos service",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the photos service, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
			{
				Name:   "health",
				Usage:  "Check service health (calls /api/health)",
				Action: r.APIHealth,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive library browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for browsing the library",
		Flags:   []cli.Flag{configFlag()},
		Action:  r.TUI,
	}
}
