package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-json"

	"github.com/Hrhcoolshegs/verdict/internal/config"
	"github.com/Hrhcoolshegs/verdict/internal/db"
	"github.com/Hrhcoolshegs/verdict/internal/middleware"
	"github.com/Hrhcoolshegs/verdict/internal/repository"
	"github.com/Hrhcoolshegs/verdict/internal/seed"
)

func main() {
	file := flag.String("file", "movies.json", "path to the JSON import file")
	flag.Parse()

	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "verdict-seed")

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("failed to read import file: %v", err)
	}

	var entries []seed.Entry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("failed to parse import file: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	seeder := seed.New(repository.NewMovieRepo(pool), nil)
	summary, err := seeder.Run(ctx, entries)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	fmt.Printf("added %d, skipped %d duplicates, %d invalid rows\n",
		summary.Added, summary.SkippedDuplicates, summary.InvalidRows)
	for _, e := range summary.Errors {
		fmt.Println("  " + e)
	}
	if len(summary.Errors) > 0 {
		os.Exit(1)
	}
}
