package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"spaces become underscores", "add clients table", "add_clients_table"},
		{"dashes become underscores", "create-hardware-assets", "create_hardware_assets"},
		{"mixed case is lowered", "Add SLA Metrics", "add_sla_metrics"},
		{"digits survive", "backfill 2026 periods", "backfill_2026_periods"},
		{"punctuation is dropped", "add contracts! (v2)", "add_contracts_v2"},
		{"runs of separators collapse", "add -- field _ values", "add_field_values"},
		{"leading and trailing separators trim", " add scopes ", "add_scopes"},
		{"already clean", "add_transactions", "add_transactions"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeName(tt.input))
		})
	}
}

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "add clients table", "client registry base tables")
	require.NoError(t, err)
	require.NotNil(t, mf)

	// Version is a sortable YYYYMMDDHHMMSS stamp
	assert.Len(t, mf.Version, 14)
	assert.True(t, strings.HasSuffix(mf.UpPath, "_add_clients_table.up.sql"))
	assert.True(t, strings.HasSuffix(mf.DownPath, "_add_clients_table.down.sql"))

	// The pair shares a base name so golang-migrate pairs them up
	upBase := strings.TrimSuffix(filepath.Base(mf.UpPath), ".up.sql")
	downBase := strings.TrimSuffix(filepath.Base(mf.DownPath), ".down.sql")
	assert.Equal(t, upBase, downBase)

	upContent, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(upContent), "add clients table")
	assert.Contains(t, string(upContent), "client registry base tables")
	assert.Contains(t, string(upContent), "Write your UP migration SQL here")

	downContent, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(downContent), "Rollback")
	assert.Contains(t, string(downContent), "Write your DOWN migration SQL here")
}

func TestCreateMigration_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "migrations", "postgres")

	mf, err := CreateMigration(dir, "add sla metrics", "monthly SLA rollups")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = os.Stat(mf.UpPath)
	assert.NoError(t, err)
	_, err = os.Stat(mf.DownPath)
	assert.NoError(t, err)
}

func TestListMigrations(t *testing.T) {
	t.Run("lists each up migration once", func(t *testing.T) {
		dir := t.TempDir()
		names := []string{
			"000001_init_schema",
			"000002_add_clients",
			"000003_add_hardware_assets",
		}
		for _, name := range names {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name+".up.sql"), []byte("-- up"), 0644))
			require.NoError(t, os.WriteFile(filepath.Join(dir, name+".down.sql"), []byte("-- down"), 0644))
		}

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, names, migrations)
	})

	t.Run("empty directory", func(t *testing.T) {
		migrations, err := ListMigrations(t.TempDir())
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("missing directory is not an error", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "does-not-exist"))
		require.NoError(t, err)
		assert.Empty(t, migrations)
	})

	t.Run("ignores files that are not migrations", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_add_contracts.up.sql"), []byte("-- up"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_add_contracts.down.sql"), []byte("-- down"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "seed.sql"), []byte("-- seed"), 0644))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_add_contracts"}, migrations)
	})

	t.Run("ignores subdirectories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.up.sql"), 0755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "000001_add_scopes.up.sql"), []byte("-- up"), 0644))

		migrations, err := ListMigrations(dir)
		require.NoError(t, err)
		assert.Equal(t, []string{"000001_add_scopes"}, migrations)
	})
}
