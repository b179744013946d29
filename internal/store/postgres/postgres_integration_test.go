package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/myvocabin/myvocabin/server/internal/store"
	"github.com/myvocabin/myvocabin/server/internal/store/storetest"
)

// makePGStore returns a store backed by either an externally provided
// database (VOCAB_BACKEND_POSTGRES_DSN) or a throwaway postgres container
// when VOCAB_BACKEND_TEST_PG_CONTAINER=1. Otherwise the test is skipped.
func makePGStore(t *testing.T) store.Store {
	t.Helper()

	if dsn := os.Getenv("VOCAB_BACKEND_POSTGRES_DSN"); dsn != "" {
		db, err := Open(dsn)
		require.NoError(t, err, "postgres open")
		applySchema(t, db)
		return NewWithDB(db)
	}

	if os.Getenv("VOCAB_BACKEND_TEST_PG_CONTAINER") != "1" {
		t.Skip("set VOCAB_BACKEND_POSTGRES_DSN or VOCAB_BACKEND_TEST_PG_CONTAINER=1 to run postgres store tests")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "vocab",
			"POSTGRES_PASSWORD": "vocab",
			"POSTGRES_DB":       "vocab_test",
		},
		WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(60 * time.Second),
	}
	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "start postgres container")
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	host, err := pg.Host(ctx)
	require.NoError(t, err)
	port, err := pg.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://vocab:vocab@%s:%s/vocab_test?sslmode=disable", host, port.Port())

	// the container accepts connections slightly before init completes
	var db *sql.DB
	require.Eventually(t, func() bool {
		db, err = Open(dsn)
		return err == nil
	}, 30*time.Second, 500*time.Millisecond, "postgres not ready: %v", err)

	t.Cleanup(func() { _ = db.Close() })
	applySchema(t, db)
	return NewWithDB(db)
}

func applySchema(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, stmt := range store.PostgresDDLStatements() {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "apply schema statement")
	}
}

func TestPostgresStore_Compliance(t *testing.T) {
	storetest.Run(t, makePGStore)
}
