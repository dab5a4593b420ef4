package store

import (
	"time"

	"inkwell/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string

	PG  PGConfig
	RDS RedisConfig
	CH  CHConfig
}

// PGConfig configures postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int
	PingTimeout    time.Duration
}

// RedisConfig configures redis, URL is redis://[:pass@]host:port/db
type RedisConfig struct {
	Enabled bool
	URL     string
}

// CHConfig configures clickhouse, URL is a clickhouse:// DSN
type CHConfig struct {
	Enabled   bool
	URL       string
	ClientTag string
}

// ConfigFrom reads SERVICE_PGSQL_*, SERVICE_REDIS_* and SERVICE_CH_* from root
// postgres is required, redis and clickhouse switch on when their URL is set
func ConfigFrom(root config.Conf, role string) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	rds := root.Prefix("SERVICE_REDIS_")
	ch := root.Prefix("SERVICE_CH_")

	rdsURL := rds.MayString("URL", "")
	chURL := ch.MayString("DBURL", "")
	return Config{
		AppName: "inkwell-" + role,
		PG: PGConfig{
			Enabled:        true,
			URL:            pg.MustString("DBURL"),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 8)),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 250),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		RDS: RedisConfig{
			Enabled: rds.MayBool("ENABLED", rdsURL != "") && rdsURL != "",
			URL:     rdsURL,
		},
		CH: CHConfig{
			Enabled:   ch.MayBool("ENABLED", chURL != "") && chURL != "",
			URL:       chURL,
			ClientTag: role,
		},
	}
}
