package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/tt-encounter/internal/club"
	"github.com/mauv0809/tt-encounter/internal/config"
	"github.com/mauv0809/tt-encounter/internal/database"
	"github.com/mauv0809/tt-encounter/internal/fixtures"
	"github.com/mauv0809/tt-encounter/internal/metrics"
	"github.com/mauv0809/tt-encounter/internal/processor"
	"github.com/mauv0809/tt-encounter/internal/pubsub"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	format := flag.String("format", string(fixtures.FormatAcquired), "Encounter format: acquired, nonAcquired or custom")
	tables := flag.Int("tables", 2, "Number of tables")
	flag.Parse()

	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer dbTeardown()

	// The seeder neither publishes events nor serves metrics.
	proc := processor.New(club.New(db), metrics.NewService(prometheus.NewRegistry()), pubsub.Decoder(), nil)

	req := processor.EncounterRequest{
		Team1Name:      "Seeder Home",
		Team2Name:      "Seeder Away",
		NumberOfTables: *tables,
		Format:         fixtures.Format(*format),
		MatchCount:     10,
		MakeCurrent:    true,
	}
	for i := 0; i < 4; i++ {
		req.Team1Roster = append(req.Team1Roster, fmt.Sprintf("Home Player %c", 'A'+i))
		req.Team2Roster = append(req.Team2Roster, fmt.Sprintf("Away Player %c", 'A'+i))
	}

	prepared, err := proc.PrepareEncounter(context.Background(), req)
	if err != nil {
		log.Fatalf("Failed to seed encounter: %s", err)
	}
	log.Info("Seeded encounter", "id", prepared.Encounter.ID, "format", prepared.Encounter.Format, "matches", len(prepared.Matches))
}
