package sqlstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/level"
	"github.com/baiana/danceclub/internal/domain/shared"
	"github.com/baiana/danceclub/internal/domain/student"
)

// newTestConnection opens a migrated sqlite database in a temp dir.
func newTestConnection(t *testing.T) *Connection {
	t.Helper()

	cfg := DefaultConfig(filepath.Join(t.TempDir(), "club.db"))
	conn, err := NewConnection(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	_, err = NewMigrator(conn).Migrate(context.Background())
	require.NoError(t, err)

	return conn
}

func mustLevel(t *testing.T, conn *Connection, name string) *level.Level {
	t.Helper()
	l := &level.Level{Name: name}
	require.NoError(t, NewLevelRepository(conn).Save(context.Background(), l))
	return l
}

func mustStudent(t *testing.T, conn *Connection, name, contact string, levelID shared.ID) *student.Student {
	t.Helper()
	s := &student.Student{
		Name:           name,
		Contact:        contact,
		LevelID:        levelID,
		Active:         true,
		ConductionType: shared.ConductionLead,
	}
	require.NoError(t, NewStudentRepository(conn).Save(context.Background(), s))
	return s
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestConfig_Dialect(t *testing.T) {
	tests := []struct {
		driver  string
		want    Dialect
		wantErr bool
	}{
		{driver: "", want: DialectSQLite},
		{driver: "sqlite3", want: DialectSQLite},
		{driver: "postgres", want: DialectPostgres},
		{driver: "pgx", want: DialectPostgres},
		{driver: "oracle", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			got, err := Config{Driver: tt.driver}.Dialect()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedDriver)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := DefaultConfig("/tmp/club.db")
	assert.Equal(t, "file:/tmp/club.db?_busy_timeout=5000&_foreign_keys=on", cfg.DSN())

	pg := Config{Driver: "postgres", URL: "postgres://u:p@localhost/club"}
	assert.Equal(t, "postgres://u:p@localhost/club", pg.DSN())
}

func TestRebind(t *testing.T) {
	pg := &Connection{dialect: DialectPostgres}
	assert.Equal(t,
		"UPDATE levels SET name = $1 WHERE id = $2",
		pg.Rebind("UPDATE levels SET name = ? WHERE id = ?"),
	)

	lite := &Connection{dialect: DialectSQLite}
	assert.Equal(t, "SELECT ?", lite.Rebind("SELECT ?"))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%samba%", likePattern("  Samba "))
	assert.Equal(t, `%100\%\_x%`, likePattern("100%_x"))
}

func TestMigrator_IsIdempotent(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	m := NewMigrator(conn)

	applied, err := m.Migrate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, len(GetMigrations(DialectSQLite)))
	for _, s := range status {
		assert.True(t, s.IsApplied, "migration %d", s.Version)
		assert.False(t, s.AppliedAt.IsZero())
	}
}

func TestMigrations_RenderPerDialect(t *testing.T) {
	lite := GetMigrations(DialectSQLite)
	pg := GetMigrations(DialectPostgres)

	assert.Contains(t, lite[0].UpSQL, "INTEGER PRIMARY KEY AUTOINCREMENT")
	assert.Contains(t, pg[0].UpSQL, "BIGSERIAL PRIMARY KEY")
	for _, m := range append(lite, pg...) {
		assert.NotContains(t, m.UpSQL, "{{")
	}
}

func TestConnection_CloseTwice(t *testing.T) {
	conn := newTestConnection(t)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())
	assert.True(t, conn.IsClosed())
	assert.ErrorIs(t, conn.Ping(context.Background()), ErrConnectionClosed)
}

func TestUnicodeLower(t *testing.T) {
	conn := newTestConnection(t)

	var got string
	require.NoError(t, conn.DB().QueryRow(`SELECT LOWER('ÁGUA ÇÃO')`).Scan(&got))
	assert.Equal(t, "água ção", got)

	var null any
	require.NoError(t, conn.DB().QueryRow(`SELECT LOWER(NULL)`).Scan(&null))
	assert.Nil(t, null)
}
