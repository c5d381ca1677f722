// Command migrate applies the embedded schema migrations, or with -down
// reverts the latest one.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/config"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/database"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/logging"
)

func main() {
	down := flag.Bool("down", false, "revert the most recent migration")
	flag.Parse()

	if err := run(*down); err != nil {
		fmt.Fprintf(os.Stderr, "migrate: %v\n", err)
		os.Exit(1)
	}
}

func run(down bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dbCfg := database.ConfigFromEnv()
	if !down {
		return database.Migrate(dbCfg, log)
	}
	if err := database.Rollback(dbCfg); err != nil {
		return err
	}
	log.Info("rolled back one migration")
	return nil
}
