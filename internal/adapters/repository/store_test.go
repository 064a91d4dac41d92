package repository

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habitquest/internal/core/domain"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runStoreContract checks the behavior every KVStore backend must share.
func runStoreContract(t *testing.T, store domain.KVStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Missing key reports ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, "missing_key")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Set then Get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "habits_u1", `[{"id":"h1"}]`))

		val, err := store.Get(ctx, "habits_u1")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"h1"}]`, val)
	})

	t.Run("Set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "logs_u1", "first"))
		require.NoError(t, store.Set(ctx, "logs_u1", "second"))

		val, err := store.Get(ctx, "logs_u1")
		require.NoError(t, err)
		assert.Equal(t, "second", val)
	})

	t.Run("Empty value is not absence", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "empty_u1", ""))

		val, err := store.Get(ctx, "empty_u1")
		require.NoError(t, err)
		assert.Equal(t, "", val)
	})

	t.Run("Remove", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "coach_u1_2024-03-15", "{}"))
		require.NoError(t, store.Remove(ctx, "coach_u1_2024-03-15"))

		_, err := store.Get(ctx, "coach_u1_2024-03-15")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Remove missing key is a no-op", func(t *testing.T) {
		assert.NoError(t, store.Remove(ctx, "never_written"))
	})

	t.Run("Concurrent writers", func(t *testing.T) {
		done := make(chan error)
		for i := 0; i < 10; i++ {
			go func(id int) {
				done <- store.Set(ctx, fmt.Sprintf("concurrent_%d", id), "val")
			}(i)
		}
		for i := 0; i < 10; i++ {
			assert.NoError(t, <-done)
		}
	})
}

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()
	runStoreContract(t, store)

	t.Run("Keys filters by prefix", func(t *testing.T) {
		keys := store.Keys("habits_")
		assert.Equal(t, []string{"habits_u1"}, keys)
	})
}

func TestSQLStore_SQLite(t *testing.T) {
	db, err := OpenSQL("sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	store := NewSQLStore(db, "")
	require.NoError(t, store.Migrate(context.Background()))
	require.NoError(t, store.Migrate(context.Background()), "migrate must be idempotent")

	runStoreContract(t, store)

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(context.Background()))
	})
}

func TestSQLStore_Postgres_Integration(t *testing.T) {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "habitquest"),
		getEnv("DB_PASSWORD", "secret"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "habitquest_test"),
	)

	db, err := OpenSQL("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping Postgres integration test: %v", err)
	}
	defer db.Close()

	store := NewSQLStore(db, "kv_store_test")
	ctx := context.Background()
	require.NoError(t, store.Migrate(ctx))

	_, err = db.ExecContext(ctx, `TRUNCATE TABLE "kv_store_test"`)
	require.NoError(t, err)

	runStoreContract(t, store)
}
