package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"sync"
	"sync/atomic"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/app"
	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
	"travel_guide/internal/shared"
	mysqlrepo "travel_guide/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	file := flag.String("file", cfg.CatalogFile, "catalog JSON file (either record layout); empty seeds the embedded catalog")
	flag.Parse()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	places := readPlaces(*file)
	log.Info().
		Str("file", *file).
		Int("places", len(places)).
		Int("workers", cfg.SeedWorkers).
		Msg("seeder starting")

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	seed := app.NewSeedService(mysqlrepo.New(db))
	if err := seed.Validate(places); err != nil {
		log.Fatal().Err(err).Msg("catalog rejected")
	}

	workers := cfg.SeedWorkers
	if workers < 1 {
		workers = 1
	}
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	var failed atomic.Int32

	for _, p := range places {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(p domain.Place) {
			defer wg.Done()
			defer sem.Release(1)

			if err := seed.SeedPlace(ctx, p); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", p.ID).Err(err).Msg("seed failed")
				return
			}
			log.Info().Int64("id", p.ID).Str("name", p.Name).Msg("seed ok")
		}(p)
	}

	wg.Wait()
	if n := failed.Load(); n > 0 {
		log.Error().Int32("failed", n).Msg("seeding finished with errors")
		os.Exit(1)
	}
	log.Info().Msg("seeding completed")
}

func readPlaces(path string) []domain.Place {
	if path == "" {
		c, err := catalog.Default()
		if err != nil {
			log.Fatal().Err(err).Msg("embedded catalog invalid")
		}
		return c.Places()
	}
	f, err := os.Open(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("open catalog file")
	}
	defer f.Close()
	places, err := catalog.DecodePlaces(f)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("decode catalog file")
	}
	return places
}
