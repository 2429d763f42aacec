package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	pg, err := fs.Glob(PostgresFS, "postgres/*.sql")
	require.NoError(t, err)
	assert.Contains(t, pg, "postgres/001_coins.sql")

	ch, err := fs.Glob(ClickhouseFS, "clickhouse/*.sql")
	require.NoError(t, err)
	assert.Contains(t, ch, "clickhouse/001_profile_snapshots.sql")
}

func TestClickhouseMigrationsSplit(t *testing.T) {
	data, err := fs.ReadFile(ClickhouseFS, "clickhouse/001_profile_snapshots.sql")
	require.NoError(t, err)
	require.NoError(t, validateNoSemicolonInStrings(string(data)))

	stmts := splitStatements(string(data))

	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS profile_snapshots")
}

func TestSplitStatements(t *testing.T) {
	in := "-- comment\nCREATE TABLE a (x UInt8);\n\nCREATE TABLE b (y UInt8);\n"

	assert.Equal(t, []string{"CREATE TABLE a (x UInt8)", "CREATE TABLE b (y UInt8)"}, splitStatements(in))
}

func TestValidateNoSemicolonInStrings(t *testing.T) {
	assert.NoError(t, validateNoSemicolonInStrings("SELECT 'it''s'; SELECT 1;"))
	assert.Error(t, validateNoSemicolonInStrings("SELECT 'a;b';"))
}

func TestDatabaseFromDSN(t *testing.T) {
	db, err := databaseFromDSN("clickhouse://localhost:9000/insights")
	require.NoError(t, err)
	assert.Equal(t, "insights", db)

	_, err = databaseFromDSN("clickhouse://localhost:9000")
	assert.Error(t, err)
}
