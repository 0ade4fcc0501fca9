package shared

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	SnapshotBackend string // file | redis | mysql
	SnapshotPath    string
	SessionBackend  string // memory | redis
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	BcryptCost      int
	LoginRPS        int
	SeedHotels      int
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
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		SnapshotBackend: env("SNAPSHOT_BACKEND", "file"),
		SnapshotPath:    env("SNAPSHOT_PATH", "data/snapshot.json"),
		SessionBackend:  env("SESSION_BACKEND", "memory"),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/yisu?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		BcryptCost:      atoi("BCRYPT_COST", 0), // 0 = bcrypt default
		LoginRPS:        atoi("LOGIN_RPS", 5),
		SeedHotels:      atoi("SEED_HOTELS", 50),
	}
	switch c.SnapshotBackend {
	case "file", "redis", "mysql":
	default:
		log.Warn().Str("backend", c.SnapshotBackend).Msg("unknown SNAPSHOT_BACKEND, using file")
		c.SnapshotBackend = "file"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
