// Command main populates the database with demo marketplace data.
package main

import (
	"flag"
	"log"

	"hiredev/internal/config"
	"hiredev/internal/database"
	"hiredev/internal/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Clients, "clients", opts.Clients, "number of client accounts")
	flag.IntVar(&opts.Developers, "developers", opts.Developers, "number of developer accounts")
	flag.IntVar(&opts.ProjectsPerClient, "projects", opts.ProjectsPerClient, "projects per client")
	flag.Float64Var(&opts.BidFraction, "bid-fraction", opts.BidFraction, "chance a developer bids on a project")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Run(db, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
