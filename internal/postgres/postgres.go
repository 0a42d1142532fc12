package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Cleverse/go-utilities/utils"
	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	pgxslog "github.com/mcosta74/pgx-slog"
)

const (
	DefaultHost     = "127.0.0.1"
	DefaultPort     = "5432"
	DefaultDBName   = "postgres"
	DefaultSSLMode  = "prefer"
	DefaultMaxConns = 16
	DefaultMinConns = 0
)

type Config struct {
	Host     string `mapstructure:"host"`     // Default is 127.0.0.1
	Port     string `mapstructure:"port"`     // Default is 5432
	User     string `mapstructure:"user"`     // Default is empty
	Password string `mapstructure:"password"` // Default is empty
	DBName   string `mapstructure:"db_name"`  // Default is postgres
	SSLMode  string `mapstructure:"ssl_mode"` // Default is prefer
	URL      string `mapstructure:"url"`      // If URL is provided, other fields are ignored

	MaxConns int32 `mapstructure:"max_conns"` // Default is 16
	MinConns int32 `mapstructure:"min_conns"` // Default is 0

	// Debug traces every query instead of failed ones only.
	Debug bool `mapstructure:"debug"`
}

// NewPool opens a connection pool and checks it with a ping.
func NewPool(ctx context.Context, conf Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(conf.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse config to create a new connection pool")
	}
	poolConfig.MaxConns = utils.Default(conf.MaxConns, DefaultMaxConns)
	poolConfig.MinConns = utils.Default(conf.MinConns, DefaultMinConns)
	poolConfig.ConnConfig.Tracer = conf.QueryTracer()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create a new connection pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "failed to connect to the database")
	}

	logger.InfoContext(ctx, "Connected to Postgres",
		slogx.String("host", poolConfig.ConnConfig.Host),
		slogx.String("database", poolConfig.ConnConfig.Database),
	)
	return pool, nil
}

// String returns the connection string, the URL if set or a key=value DSN otherwise.
func (conf Config) String() string {
	if conf.URL != "" {
		return conf.URL
	}

	params := []string{
		"host=" + utils.Default(conf.Host, DefaultHost),
		"port=" + utils.Default(conf.Port, DefaultPort),
		"dbname=" + utils.Default(conf.DBName, DefaultDBName),
		"sslmode=" + utils.Default(conf.SSLMode, DefaultSSLMode),
	}
	if conf.User != "" {
		params = append(params, "user="+conf.User)
	}
	if conf.Password != "" {
		params = append(params, fmt.Sprintf("password='%s'", strings.ReplaceAll(conf.Password, "'", `\'`)))
	}
	return strings.Join(params, " ")
}

// QueryTracer logs pgx queries through the global logger.
func (conf Config) QueryTracer() *tracelog.TraceLog {
	level := tracelog.LogLevelError
	if conf.Debug {
		level = tracelog.LogLevelTrace
	}
	return &tracelog.TraceLog{
		Logger:   pgxslog.NewLogger(logger.With(slogx.String("package", "postgres"))),
		LogLevel: level,
	}
}
