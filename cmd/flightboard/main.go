package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mtilvans/flightboard/internal/db"
	"github.com/mtilvans/flightboard/pkg/adsb"
	"github.com/mtilvans/flightboard/pkg/card"
	"github.com/mtilvans/flightboard/pkg/config"
)

var (
	// Version information (set by build flags)
	version = "dev"
	commit  = "unknown"
)

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version information")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("flightboard version %s (commit: %s)\n", version, commit)
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	flightCard, err := card.New(cfg.Card, nil)
	if err != nil {
		log.Fatalf("Invalid card configuration: %v", err)
	}

	// Optional enrichment database for the detail popup
	var details card.DetailSource
	var database *db.DB
	if cfg.Database.Enabled {
		database, err = db.ReconnectWithRetry(cfg.Database, 3, time.Second)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()
		details = db.NewAircraftRepository(database)
	}

	feed := adsb.NewClient(cfg.Feed.BaseURL, cfg.Feed.RequestsPerSecond)

	app := NewApp(&AppConfig{
		Config:     cfg,
		ConfigPath: *configPath,
		Card:       flightCard,
		Feed:       feed,
		Details:    details,
	})

	// Give a fast type reference load a chance to land before the
	// first table appears
	time.Sleep(flightCard.SettleDelay())

	if err := app.Run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func printHelp() {
	fmt.Println(`flightboard - live nearby-aircraft table

Usage:
  flightboard [flags]

Flags:
  -config string   Path to configuration file (default "configs/config.json")
  -version         Show version information
  -help            Show this help

Keys:
  up/down, j/k     Select row
  enter            Open detail popup for the selected aircraft
  esc              Close popup
  u                Toggle distance units (km/mi)
  q                Quit

Environment:
  FLIGHTBOARD_DB_PASSWORD   Database password override
  FLIGHTBOARD_FEED_URL      Feed base URL override
  FLIGHTBOARD_ENTITY        Card entity ID override`)
}
