package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and stdin, returning stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func testEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_FILE", filepath.Join(dir, "danceclub.log"))
	return dir
}

func TestSchemaCommands(t *testing.T) {
	dir := testEnv(t)
	db := filepath.Join(dir, "club.db")

	out, err := execute(t, "", "schema", "status", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "VERSION")
	assert.Regexp(t, `1\s+create_reference_tables\s+pending`, out)

	out, err = execute(t, "", "schema", "migrate", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "4 migration(s) applied")

	out, err = execute(t, "", "schema", "migrate", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "0 migration(s) applied")

	out, err = execute(t, "", "schema", "status", "--db", db)
	require.NoError(t, err)
	assert.NotContains(t, out, "pending")
}

func TestRootRunsConsole(t *testing.T) {
	dir := testEnv(t)
	db := filepath.Join(dir, "club.db")

	out, err := execute(t, "1\n3\nIniciante\n1\n0\n0\n", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Nível cadastrado com ID 1.")
	assert.Contains(t, out, "Até logo!")

	// Data survives a restart.
	out, err = execute(t, "1\n1\n0\n0\n", "--db", db)
	require.NoError(t, err)
	assert.Regexp(t, `1\s+Iniciante`, out)

	logs, err := os.ReadFile(filepath.Join(dir, "danceclub.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logs), "starting danceclub")
}

func TestVersion(t *testing.T) {
	testEnv(t)
	t.Setenv("APP_VERSION", "1.2.3")

	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "danceclub 1.2.3")
}

func TestInvalidConfig(t *testing.T) {
	testEnv(t)
	t.Setenv("BCRYPT_COST", "1")

	_, err := execute(t, "", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
}
