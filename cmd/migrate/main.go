// Command migrate applies the SQL migrations in migrations/ to the database
// configured through the environment. It drives the atlas CLI, which must be
// on PATH.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"sparkwash-api/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

const migrationsDirURL = "file://migrations"

func main() {
	if err := run(); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return err
	}

	if err := client.MigrateHash(ctx, &atlasexec.MigrateHashParams{
		DirURL: migrationsDirURL,
	}); err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    cfg.DB.BuildDSN(),
		DirURL: migrationsDirURL,
	})
	if err != nil {
		return err
	}

	slog.Info("migrations applied",
		"target", res.Target,
		"applied", len(res.Applied),
		"current", res.Current,
	)
	return nil
}
