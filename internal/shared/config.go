package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	Strategy      string // template|openai|gemini
	CatalogSource string // embedded|file|mysql
	CatalogFile   string
	MySQLDSN      string

	RedisAddr string
	RedisDB   int
	RedisPass string
	ReplyTTL  time.Duration

	OpenAIBase  string
	OpenAIKey   string
	OpenAIModel string
	GeminiKey   string
	GeminiModel string

	ModelTimeout time.Duration
	ModelRPS     int
	SeedWorkers  int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ":9100"),
		Strategy:      strings.ToLower(env("SYNTH_STRATEGY", "template")),
		CatalogSource: strings.ToLower(env("CATALOG_SOURCE", "embedded")),
		CatalogFile:   env("CATALOG_FILE", ""),
		MySQLDSN:      env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travel?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		ReplyTTL:      time.Duration(atoi("REPLY_CACHE_TTL_SECONDS", 0)) * time.Second,
		OpenAIBase:    env("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIKey:     env("OPENAI_API_KEY", ""),
		OpenAIModel:   env("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiKey:     env("GEMINI_API_KEY", ""),
		GeminiModel:   env("GEMINI_MODEL", "gemini-2.5-flash"),
		ModelTimeout:  time.Duration(atoi("MODEL_TIMEOUT_SECONDS", 20)) * time.Second,
		ModelRPS:      atoi("MODEL_RPS", 5),
		SeedWorkers:   atoi("SEED_WORKERS", 4),
	}
	switch c.Strategy {
	case "openai":
		if c.OpenAIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY is empty")
		}
	case "gemini":
		if c.GeminiKey == "" {
			log.Warn().Msg("GEMINI_API_KEY is empty")
		}
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
