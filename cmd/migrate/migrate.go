package migrate

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

const (
	launchpadMigrationSource = "modules/launchpad/database/postgresql/migrations"
	launchpadMigrationTable  = "launchpad_schema_migrations"
)

var supportedDrivers = map[string]struct{}{
	"postgres":   {},
	"postgresql": {},
}

type migrateCmdOptions struct {
	DatabaseURL string
	Source      string
}

func (opts *migrateCmdOptions) bindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&opts.DatabaseURL, "database", "", "Database url to run migration on. Default is `modules.launchpad.postgres.url` from config")
	flags.StringVar(&opts.Source, "source", launchpadMigrationSource, "Path to launchpad migrations directory")
}

// databaseURL resolves the target database and pins the launchpad migrations table on it.
func (opts *migrateCmdOptions) databaseURL() (*url.URL, error) {
	rawURL := opts.DatabaseURL
	if rawURL == "" {
		rawURL = config.Load().Modules.Launchpad.Postgres.URL
	}
	if rawURL == "" {
		return nil, errors.New("--database is required")
	}
	databaseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse database URL")
	}
	if _, ok := supportedDrivers[databaseURL.Scheme]; !ok {
		return nil, errors.Errorf("unsupported database driver: %s", databaseURL.Scheme)
	}
	return cloneURLWithQuery(databaseURL, url.Values{"x-migrations-table": {launchpadMigrationTable}}), nil
}

func (opts *migrateCmdOptions) newMigrate() (*migrate.Migrate, error) {
	databaseURL, err := opts.databaseURL()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	m, err := migrate.New("file://"+opts.Source, databaseURL.String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Migrate instance")
	}
	m.Log = &consoleLogger{prefix: "[launchpad] "}
	return m, nil
}

// parseSteps parses the optional [N] argument. Zero means every migration.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.Wrap(err, "failed to parse N")
	}
	if n < 0 {
		return 0, errors.New("N must be a positive integer")
	}
	return n, nil
}

func cloneURLWithQuery(u *url.URL, newQuery url.Values) *url.URL {
	clone := *u
	query := clone.Query()
	for key, values := range newQuery {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	clone.RawQuery = query.Encode()
	return &clone
}

var _ migrate.Logger = (*consoleLogger)(nil)

type consoleLogger struct {
	prefix  string
	verbose bool
}

func (l *consoleLogger) Printf(format string, v ...interface{}) {
	fmt.Printf(l.prefix+format, v...)
}

func (l *consoleLogger) Verbose() bool {
	return l.verbose
}
