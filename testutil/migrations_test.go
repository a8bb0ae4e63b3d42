package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-desk/migrations"
	"github.com/pkordes/travel-desk/testutil"
)

var schemaTables = []string{"travel_requests", "travel_legs", "passengers"}

// TestMigrations applies every migration, checks the schema exists, rolls
// everything back and checks it is gone. Skipped without TEST_DATABASE_URL.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()

	provider, err := migrations.NewProvider(db)
	require.NoError(t, err, "create goose provider")

	// Another package's TestMain may already have migrated this database.
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "initial reset")

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.Len(t, results, len(schemaTables))
	for _, table := range schemaTables {
		assert.True(t, tableExists(t, db, table), "expected table %q after up", table)
	}

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	for _, table := range schemaTables {
		assert.False(t, tableExists(t, db, table), "expected table %q gone after down", table)
	}

	// Leave the database migrated for packages that run after this one.
	_, err = migrations.Up(ctx, db)
	require.NoError(t, err)
}

// TestMigrations_MainPassengerIndex checks the partial unique index that
// allows at most one main passenger per request.
func TestMigrations_MainPassengerIndex(t *testing.T) {
	db := testutil.NewSQLDB(t)
	ctx := context.Background()
	_, err := migrations.Up(ctx, db)
	require.NoError(t, err)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback() })

	var id string
	require.NoError(t, tx.QueryRowContext(ctx,
		`INSERT INTO travel_requests (request_number) VALUES ('TR-MIG-1') RETURNING id`).Scan(&id))

	_, err = tx.ExecContext(ctx, `INSERT INTO passengers (travel_request_id, full_name, is_main) VALUES ($1, 'Ada', true)`, id)
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, `INSERT INTO passengers (travel_request_id, full_name, is_main) VALUES ($1, 'Charles', true)`, id)
	assert.Error(t, err, "second main passenger must violate the unique index")
}

func tableExists(t *testing.T, db *sql.DB, table string) bool {
	t.Helper()

	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	require.NoError(t, db.QueryRowContext(context.Background(), q, table).Scan(&exists),
		"check table existence for %q", table)
	return exists
}
