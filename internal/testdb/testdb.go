package testdb

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"
)

// Environment variables checked for a test database URL, in priority order.
const (
	EnvTestDBURL   = "TASKS_TEST_DB_URL"
	EnvDatabaseURL = "DATABASE_URL"
	EnvTasksDBURL  = "TASKS_DATABASE_URL"
)

const (
	connectTimeout   = 10 * time.Second
	maxTestOpenConns = 5
	maxTestIdleConns = 2
)

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// ErrRollback aborts a test transaction so nothing it wrote is kept.
var ErrRollback = errors.New("rollback test transaction")

// IsCI reports whether the tests run under a CI provider.
func IsCI() bool {
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// URL returns the first configured test database URL, or "".
func URL() string {
	for _, name := range []string{EnvTestDBURL, EnvDatabaseURL, EnvTasksDBURL} {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// MaskURL hides the password of a database URL for logging.
func MaskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

// Open connects to the test database and closes it when the test ends.
// Without a configured URL the test is skipped, or failed under CI.
func Open(t *testing.T) *sql.DB {
	t.Helper()
	dsn := URL()
	if dsn == "" {
		if IsCI() {
			t.Fatalf("no test database configured: set %s", EnvTestDBURL)
		}
		t.Skipf("%s not set, skipping integration test", EnvTestDBURL)
	}

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(maxTestOpenConns)
	db.SetMaxIdleConns(maxTestIdleConns)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "database %s unreachable", MaskURL(dsn))
	return db
}
