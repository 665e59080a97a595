package main

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "travel_guide/internal/adapters/http_server"
	"travel_guide/internal/adapters/llm/gemini"
	"travel_guide/internal/adapters/llm/openai"
	"travel_guide/internal/adapters/observability"
	redisad "travel_guide/internal/adapters/redis"
	"travel_guide/internal/app"
	"travel_guide/internal/catalog"
	"travel_guide/internal/domain"
	"travel_guide/internal/shared"
	mysqlrepo "travel_guide/internal/storage/mysql"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	c := loadCatalog(ctx, cfg)
	log.Info().Str("source", cfg.CatalogSource).Int("places", c.Len()).Msg("catalog loaded")

	synth := buildSynthesizer(ctx, cfg)
	resolver := app.NewResolverService(c, synth)
	log.Info().Str("strategy", resolver.Strategy()).Msg("resolver ready")

	// http
	srv := server.New(30 * time.Second)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{R: resolver})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func loadCatalog(ctx context.Context, cfg shared.Config) *catalog.Catalog {
	var (
		c   *catalog.Catalog
		err error
	)
	switch cfg.CatalogSource {
	case "file":
		c, err = catalog.LoadFile(cfg.CatalogFile)
	case "mysql":
		db, oerr := sql.Open("mysql", cfg.MySQLDSN)
		if oerr != nil {
			log.Fatal().Err(oerr).Msg("sql.Open failed")
		}
		// the catalog is read once; the pool is not needed afterwards
		defer db.Close()
		if perr := db.PingContext(ctx); perr != nil {
			log.Fatal().Err(perr).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		c, err = app.LoadCatalog(ctx, mysqlrepo.New(db))
	default:
		c, err = catalog.Default()
	}
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("catalog load failed")
	}
	return c
}

func buildSynthesizer(ctx context.Context, cfg shared.Config) app.Synthesizer {
	var client domain.ModelClient
	switch cfg.Strategy {
	case "openai":
		oc, err := openai.New(cfg.OpenAIBase, cfg.OpenAIKey, cfg.OpenAIModel, cfg.ModelRPS)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize OpenAI client")
		}
		client = oc
	case "gemini":
		gc, err := gemini.New(ctx, cfg.GeminiKey, gemini.WithModel(cfg.GeminiModel))
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Gemini client")
		}
		client = gc
	default:
		return app.NewTemplateSynthesizer()
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" && cfg.ReplyTTL > 0 {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unreachable; reply cache disabled")
			_ = rc.Close()
		} else {
			cache = rc
		}
	}
	return app.NewModelSynthesizer(cfg.Strategy, client, cfg.ModelTimeout, cache, cfg.ReplyTTL)
}
