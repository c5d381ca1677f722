// Command seed fills an empty database with the default page content and
// timeline, and with -samples a few example groups and guests. It prints
// the invitation link of every group.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/config"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/database"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/logging"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/repository"
	"github.com/Shivanand-hulikatti/wedding-rsvp/internal/service"
)

func main() {
	samples := flag.Bool("samples", false, "also create the sample groups and guests")
	flag.Parse()

	if err := run(*samples); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run(samples bool) error {
	ctx := context.Background()

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
	pool, err := database.NewPool(ctx, dbCfg, log)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := database.Migrate(dbCfg, log); err != nil {
		return err
	}

	groupRepo := repository.NewGroupRepository(pool)
	guestRepo := repository.NewGuestRepository(pool)
	rsvpRepo := repository.NewRSVPRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)

	seeder := service.NewSeeder(
		settingsRepo,
		service.NewContentService(settingsRepo, repository.NewTimelineRepository(pool)),
		service.NewGroupService(groupRepo, guestRepo, rsvpRepo, log),
		service.NewGuestService(guestRepo, groupRepo),
		log,
	)
	groups, err := seeder.Seed(ctx, samples)
	if err != nil {
		return err
	}

	for _, g := range groups {
		fmt.Printf("%-16s %-6s %d  %s\n", g.GroupCode, g.Side, g.MaxGuests, cfg.InvitationURL(g.Token))
	}
	return nil
}
