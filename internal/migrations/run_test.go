package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func migrationsDir(t *testing.T) string {
	_, thisFile, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "migrations")
}

func TestRun_AppliesSchema(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute)),
	)
	require.NoError(t, err, "failed to start container")
	defer func() {
		_ = container.Terminate(ctx)
	}()

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", connStr)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Run(db, migrationsDir(t)))

	// Повторный запуск без новых миграций не считается ошибкой
	require.NoError(t, Run(db, migrationsDir(t)))

	for _, table := range []string{"accounts", "profiles", "stat_snapshots", "app_flags", "payment_events"} {
		var exists bool
		err = db.QueryRow(`SELECT EXISTS (
			SELECT FROM information_schema.tables WHERE table_name = $1
		)`, table).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, "table %s missing", table)
	}

	// Флаг free_mode засеян выключенным
	var enabled bool
	require.NoError(t, db.QueryRow(`SELECT enabled FROM app_flags WHERE name = 'free_mode'`).Scan(&enabled))
	assert.False(t, enabled)
}
