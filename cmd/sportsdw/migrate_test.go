package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	_, err = parseSteps([]string{"0"})
	assert.Error(t, err)

	_, err = parseSteps([]string{"two"})
	assert.Error(t, err)
}

func TestParseVersionAndTarget(t *testing.T) {
	version, err := parseVersion("1775001000")
	require.NoError(t, err)
	assert.Equal(t, 1775001000, version)

	_, err = parseVersion("-1")
	assert.Error(t, err)

	target, err := parseTarget("1775002000")
	require.NoError(t, err)
	assert.Equal(t, uint(1775002000), target)

	_, err = parseTarget("-5")
	assert.Error(t, err)
}

func TestResolveMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	migrations := filepath.Join(dir, "migrations")
	require.NoError(t, os.Mkdir(migrations, 0o755))

	got, err := resolveMigrationsDir(migrations)
	require.NoError(t, err)
	assert.Equal(t, migrations, got)

	t.Setenv("MIGRATIONS_PATH", "")
	t.Chdir(dir)
	_, err = resolveMigrationsDir(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root, _ := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"etl", "fetch", "sync", "indexes", "migrate", "schedule"} {
		assert.Contains(t, names, want)
	}

	migrateCmd, _, err := root.Find([]string{"migrate", "goto"})
	require.NoError(t, err)
	assert.Equal(t, "goto", migrateCmd.Name())
}
