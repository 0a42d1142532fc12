package config

import "github.com/gaze-network/launchpad/internal/postgres"

type Config struct {
	Database       string          `mapstructure:"database"` // Database to journal commands. current supported databases: "postgres" | "memory"
	Postgres       postgres.Config `mapstructure:"postgres"`
	ReplayPageSize int32           `mapstructure:"replay_page_size"` // Commands fetched per page while restoring state. Default is 1000
	APIHandlers    []string        `mapstructure:"api_handlers"`     // List of API handlers to enable. (e.g. `http`)
}
