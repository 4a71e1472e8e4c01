package db

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"ticketservice/pubsub/outbox"
)

var (
	db        *sqlx.DB
	getDbOnce sync.Once
)

// GetDb returns a connection shared by all tests of the package. It starts a
// postgres container unless POSTGRES_URL is set; the container is removed by
// the testcontainers reaper when the test binary exits.
func GetDb(t *testing.T) *sqlx.DB {
	getDbOnce.Do(func() {
		url := os.Getenv("POSTGRES_URL")
		if url == "" {
			_, url = StartPostgresContainer()
		}

		var err error
		db, err = sqlx.Open("postgres", url)
		require.NoError(t, err)

		require.NoError(t, InitializeDatabaseSchema(db))
		require.NoError(t, outbox.InitializeSchema(db))
	})
	return db
}

func StartPostgresContainer() (testcontainers.Container, string) {
	ctx := context.Background()
	dbName := "db"
	dbUser := "user"
	dbPassword := "password"

	postgresContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("docker.io/postgres:15.2-alpine"),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable", "application_name=test")
	if err != nil {
		panic(err)
	}

	return postgresContainer, connStr
}
