package app

import (
	"strings"
	"time"

	"github.com/aitbenali/autoparts-backend/internal/platform/envutil"
	"github.com/aitbenali/autoparts-backend/internal/platform/logger"
)

type Config struct {
	Addr            string
	AdminToken      string
	AllowedOrigins  []string
	FeedRegistry    string
	ImportChunkSize int
	ImportWorkers   int
	CatalogCacheTTL time.Duration
	CacheEnabled    bool
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Addr:            envutil.String("HTTP_ADDR", ":8080"),
		AdminToken:      envutil.String("ADMIN_API_TOKEN", ""),
		FeedRegistry:    envutil.String("FEED_REGISTRY_PATH", ""),
		ImportChunkSize: envutil.Int("IMPORT_CHUNK_SIZE", 500),
		ImportWorkers:   envutil.Int("IMPORT_WORKERS", 4),
		CatalogCacheTTL: time.Duration(envutil.Int("CATALOG_CACHE_TTL", 300)) * time.Second,
		CacheEnabled:    envutil.Bool("CACHE_ENABLED", true),
	}
	if origins := envutil.String("ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if cfg.AdminToken == "" {
		log.Warn("ADMIN_API_TOKEN not set, admin routes are disabled")
	}
	return cfg
}
