package db_utils

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"folio/internal/db"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDbImage    = "postgres:16-alpine"
	testDbUser     = "postgres"
	testDbPassword = "postgres"
	testDbName     = "postgres_test"
)

var (
	testDbOnce sync.Once
	testDbConn *sql.DB
	testDbErr  error
)

// SetupTestDb returns a transaction on a migrated postgres that is rolled
// back when the test ends. The container is shared by every test in the
// package. Tests are skipped with -short or when docker is unavailable.
func SetupTestDb(t *testing.T) *sql.Tx {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	testDbOnce.Do(func() {
		testDbConn, testDbErr = startTestDb()
	})
	if testDbErr != nil {
		t.Skipf("test database unavailable: %s", testDbErr.Error())
	}

	tx, err := testDbConn.Begin()
	if err != nil {
		t.Fatalf("failed to begin test transaction: %s", err.Error())
	}
	t.Cleanup(func() {
		tx.Rollback()
	})
	return tx
}

// SetupTestDbConn is SetupTestDb for code that opens its own transactions.
// Rows written through it are not cleaned up.
func SetupTestDbConn(t *testing.T) *sql.DB {
	t.Helper()
	SetupTestDb(t)
	return testDbConn
}

func startTestDb() (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	container, err := testcontainers.Run(ctx, testDbImage,
		testcontainers.WithExposedPorts("5432/tcp"),
		testcontainers.WithEnv(map[string]string{
			"POSTGRES_USER":     testDbUser,
			"POSTGRES_PASSWORD": testDbPassword,
			"POSTGRES_DB":       testDbName,
		}),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("get postgres host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, fmt.Errorf("get postgres port: %w", err)
	}

	url := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		testDbUser, testDbPassword, host, port.Port(), testDbName,
	)
	dbConn, err := New(url)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, dbConn); err != nil {
		return nil, err
	}
	return dbConn, nil
}

// FakeTxRunner runs fn with a nil transaction, for tests whose
// repositories are mocked.
type FakeTxRunner struct {
	Calls int
}

func (f *FakeTxRunner) RunInTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	f.Calls++
	return fn(nil)
}
