package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/FamilyVerse/party-os/app"
	"github.com/FamilyVerse/party-os/config"
	"github.com/FamilyVerse/party-os/db/bundb"
	"github.com/FamilyVerse/party-os/db/seed"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cliApp := &cli.App{
		Name:  "party-os",
		Usage: "party scoring and wagering engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.yaml",
				Usage: "path to the YAML config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run migrations and start the API",
				Action: func(c *cli.Context) error {
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
					defer stop()

					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return err
					}

					application, err := app.NewApp(ctx, cfg, logger)
					if err != nil {
						return err
					}
					defer application.Close(context.Background())

					if err := application.DB().Migrate(ctx); err != nil {
						return err
					}
					return application.Serve(ctx)
				},
			},
			{
				Name:  "migrate",
				Usage: "bring the database schema up to date",
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return err
					}
					db, err := bundb.NewBunDBService(c.Context, cfg.Postgres)
					if err != nil {
						return err
					}
					defer db.Close()

					if err := db.Migrate(c.Context); err != nil {
						return err
					}
					logger.Info("Migrations applied")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "fill the database with a demo party",
				Action: func(c *cli.Context) error {
					cfg, err := config.LoadConfig(c.String("config"))
					if err != nil {
						return err
					}
					db, err := bundb.NewBunDBService(c.Context, cfg.Postgres)
					if err != nil {
						return err
					}
					defer db.Close()

					if err := db.Migrate(c.Context); err != nil {
						return err
					}
					return seed.Run(c.Context, db, cfg, logger)
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		logger.Error("Fatal", slog.Any("error", err))
		os.Exit(1)
	}
}
