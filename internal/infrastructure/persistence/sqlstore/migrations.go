package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION SUPPORT
// Schema bootstrap only: migrations are applied forward and never rolled back.
// ══════════════════════════════════════════════════════════════════════════════

// Migration represents a versioned schema step.
type Migration struct {
	Version   int
	Name      string
	UpSQL     string
	AppliedAt time.Time
	IsApplied bool
}

// Migrator applies the embedded migrations.
type Migrator struct {
	conn       *Connection
	migrations []Migration
	tableName  string
}

// NewMigrator creates a new migrator with embedded migrations rendered for the
// connection dialect.
func NewMigrator(conn *Connection) *Migrator {
	return NewMigratorWithMigrations(conn, GetMigrations(conn.Dialect()))
}

// NewMigratorWithMigrations creates a migrator with custom migrations.
func NewMigratorWithMigrations(conn *Connection, migrations []Migration) *Migrator {
	return &Migrator{
		conn:       conn,
		migrations: migrations,
		tableName:  "schema_migrations",
	}
}

// EnsureMigrationTable creates the migration tracking table if it doesn't exist.
func (m *Migrator) EnsureMigrationTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at %s NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`, m.tableName, dialectTokens(m.conn.Dialect())["{{timestamp}}"])

	if _, err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	return nil
}

// GetAppliedMigrations returns all applied migrations.
func (m *Migrator) GetAppliedMigrations(ctx context.Context) (map[int]time.Time, error) {
	query := fmt.Sprintf("SELECT version, applied_at FROM %s ORDER BY version", m.tableName)

	rows, err := m.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int
		var appliedAt time.Time

		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}

		applied[version] = appliedAt
	}

	return applied, rows.Err()
}

// Migrate applies all pending migrations and returns how many ran.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return 0, err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range m.migrations {
		if _, isApplied := applied[mig.Version]; isApplied {
			continue
		}

		if strings.TrimSpace(mig.UpSQL) == "" {
			return count, fmt.Errorf("%w: missing up SQL for migration %d", ErrMigrationFailed, mig.Version)
		}

		err := m.conn.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, mig.UpSQL); err != nil {
				return fmt.Errorf("failed to execute migration %d: %w", mig.Version, err)
			}

			insertQuery := m.conn.Rebind(fmt.Sprintf(
				"INSERT INTO %s (version, name) VALUES (?, ?)",
				m.tableName,
			))
			_, err := tx.ExecContext(ctx, insertQuery, mig.Version, mig.Name)
			return err
		})
		if err != nil {
			return count, fmt.Errorf("%w: version %d: %v", ErrMigrationFailed, mig.Version, err)
		}
		count++
	}

	return count, nil
}

// Status returns the migration status.
func (m *Migrator) Status(ctx context.Context) ([]Migration, error) {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return nil, err
	}

	applied, err := m.GetAppliedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]Migration, len(m.migrations))
	copy(result, m.migrations)

	for i := range result {
		if appliedAt, ok := applied[result[i].Version]; ok {
			result[i].IsApplied = true
			result[i].AppliedAt = appliedAt
		}
	}

	return result, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EMBEDDED MIGRATIONS
// DDL is shared between dialects; {{tokens}} are replaced per dialect.
// ══════════════════════════════════════════════════════════════════════════════

func dialectTokens(d Dialect) map[string]string {
	if d == DialectPostgres {
		return map[string]string{
			"{{pk}}":        "BIGSERIAL PRIMARY KEY",
			"{{ref}}":       "BIGINT",
			"{{real}}":      "DOUBLE PRECISION",
			"{{timestamp}}": "TIMESTAMPTZ",
		}
	}
	return map[string]string{
		"{{pk}}":        "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{ref}}":       "INTEGER",
		"{{real}}":      "REAL",
		"{{timestamp}}": "TIMESTAMP",
	}
}

func render(d Dialect, ddl string) string {
	tokens := dialectTokens(d)
	pairs := make([]string, 0, len(tokens)*2)
	for k, v := range tokens {
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(ddl)
}

// GetMigrations returns all embedded migrations for a dialect.
func GetMigrations(d Dialect) []Migration {
	return []Migration{
		{Version: 1, Name: "create_reference_tables", UpSQL: render(d, migration001Up)},
		{Version: 2, Name: "create_students_and_users", UpSQL: render(d, migration002Up)},
		{Version: 3, Name: "create_parameters", UpSQL: render(d, migration003Up)},
		{Version: 4, Name: "create_evaluations", UpSQL: render(d, migration004Up)},
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: REFERENCE TABLES
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
CREATE TABLE IF NOT EXISTS levels (
    id {{pk}},
    name TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_levels_name ON levels (LOWER(name));

CREATE TABLE IF NOT EXISTS dance_styles (
    id {{pk}},
    name TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_dance_styles_name ON dance_styles (LOWER(name));

CREATE TABLE IF NOT EXISTS examiners (
    id {{pk}},
    name TEXT NOT NULL,
    contact TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_examiners_contact ON examiners (LOWER(contact));

CREATE TABLE IF NOT EXISTS events (
    id {{pk}},
    name TEXT NOT NULL,
    event_date DATE NOT NULL,
    honoree TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_events_name ON events (LOWER(name));
CREATE INDEX IF NOT EXISTS idx_events_date ON events (event_date);
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 002: STUDENTS AND USERS
// ══════════════════════════════════════════════════════════════════════════════

const migration002Up = `
CREATE TABLE IF NOT EXISTS students (
    id {{pk}},
    name TEXT NOT NULL,
    contact TEXT NOT NULL,
    level_id {{ref}} NOT NULL REFERENCES levels (id),
    active BOOLEAN NOT NULL DEFAULT TRUE,
    conduction_type TEXT NOT NULL,

    CONSTRAINT valid_student_conduction CHECK (conduction_type IN ('lead', 'follow', 'both'))
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_students_contact ON students (LOWER(contact));
CREATE INDEX IF NOT EXISTS idx_students_level ON students (level_id);

-- The user id is the owning student's id (1:1).
CREATE TABLE IF NOT EXISTS users (
    id {{ref}} PRIMARY KEY REFERENCES students (id) ON DELETE CASCADE,
    login TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL,

    CONSTRAINT valid_user_role CHECK (role IN ('examiner', 'student'))
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_users_login ON users (LOWER(login));
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 003: PARAMETERS
// ══════════════════════════════════════════════════════════════════════════════

const migration003Up = `
CREATE TABLE IF NOT EXISTS parameters (
    id {{pk}},
    name TEXT NOT NULL,
    conduction_type TEXT NOT NULL,
    style_id {{ref}} REFERENCES dance_styles (id),
    level_id {{ref}} NOT NULL REFERENCES levels (id),

    CONSTRAINT valid_parameter_conduction CHECK (conduction_type IN ('lead', 'follow', 'both'))
);
CREATE UNIQUE INDEX IF NOT EXISTS ux_parameters_name ON parameters (LOWER(name));

CREATE TABLE IF NOT EXISTS parameter_styles (
    parameter_id {{ref}} NOT NULL REFERENCES parameters (id) ON DELETE CASCADE,
    style_id {{ref}} NOT NULL REFERENCES dance_styles (id) ON DELETE CASCADE,
    PRIMARY KEY (parameter_id, style_id)
);
CREATE INDEX IF NOT EXISTS idx_parameter_styles_style ON parameter_styles (style_id);
`

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 004: EVALUATIONS
// ══════════════════════════════════════════════════════════════════════════════

const migration004Up = `
CREATE TABLE IF NOT EXISTS evaluations (
    id {{pk}},
    evaluation_date DATE NOT NULL,
    student_id {{ref}} NOT NULL REFERENCES students (id),
    examiner_id {{ref}} NOT NULL REFERENCES examiners (id),
    level_id {{ref}} NOT NULL REFERENCES levels (id),
    event_id {{ref}} REFERENCES events (id),
    notes TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_evaluations_date ON evaluations (evaluation_date);
CREATE INDEX IF NOT EXISTS idx_evaluations_student ON evaluations (student_id);

CREATE TABLE IF NOT EXISTS evaluation_items (
    id {{pk}},
    evaluation_id {{ref}} NOT NULL REFERENCES evaluations (id) ON DELETE CASCADE,
    parameter_id {{ref}} NOT NULL REFERENCES parameters (id),
    score {{real}} NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_evaluation_items_evaluation ON evaluation_items (evaluation_id);
`
