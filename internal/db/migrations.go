package db

import (
	"errors"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)
var addColumnStatementPattern = regexp.MustCompile(`(?i)^ALTER\s+TABLE\s+([^\s]+)\s+ADD\s+COLUMN\s+([^\s]+)\b`)

var errEmptyMigration = errors.New("migration has no SQL statements")

type schemaMigration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

// migrator applies numbered *.sql files from source exactly once each,
// recording them in schema_migrations.
type migrator struct {
	database *gorm.DB
	source   fs.FS
}

func newMigrator(database *gorm.DB, source fs.FS) *migrator {
	return &migrator{database: database, source: source}
}

func (m *migrator) apply() error {
	if err := m.ensureVersionTable(); err != nil {
		return err
	}

	pending, err := m.load()
	if err != nil {
		return err
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	for _, migration := range pending {
		if _, done := applied[migration.Version]; done {
			continue
		}
		if err := m.run(migration); err != nil {
			return err
		}
	}
	return nil
}

func (m *migrator) ensureVersionTable() error {
	const createTableSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`
	if err := m.database.Exec(createTableSQL).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func (m *migrator) load() ([]schemaMigration, error) {
	entries, err := fs.ReadDir(m.source, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		fileName := strings.TrimSpace(entry.Name())
		matches := migrationFilePattern.FindStringSubmatch(fileName)
		if len(matches) != 2 {
			continue
		}

		version := matches[1]
		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", fileName, err)
		}
		if existing, exists := seen[version]; exists {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, fileName)
		}
		seen[version] = fileName

		rawSQL, err := fs.ReadFile(m.source, fileName)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", fileName, err)
		}

		migrations = append(migrations, schemaMigration{
			Version: version,
			Order:   order,
			Name:    fileName,
			SQL:     string(rawSQL),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		if migrations[i].Order == migrations[j].Order {
			return migrations[i].Name < migrations[j].Name
		}
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

type appliedMigrationVersion struct {
	Version string `gorm:"column:version"`
}

func (m *migrator) appliedVersions() (map[string]struct{}, error) {
	rows := make([]appliedMigrationVersion, 0)
	if err := m.database.Raw(`SELECT version FROM schema_migrations`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("load applied migration versions: %w", err)
	}

	applied := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		applied[row.Version] = struct{}{}
	}
	return applied, nil
}

func (m *migrator) run(migration schemaMigration) error {
	return m.database.Transaction(func(tx *gorm.DB) error {
		statements := splitSQLStatements(migration.SQL)
		if len(statements) == 0 {
			return fmt.Errorf("%s: %w", migration.Name, errEmptyMigration)
		}

		for _, statement := range statements {
			skip, err := columnAlreadyAdded(tx, statement)
			if err != nil {
				return fmt.Errorf("inspect migration %s: %w", migration.Name, err)
			}
			if skip {
				continue
			}
			if err := tx.Exec(statement).Error; err != nil {
				return fmt.Errorf("execute migration %s statement %q: %w", migration.Name, statement, err)
			}
		}

		if err := tx.Exec(
			`INSERT INTO schema_migrations(version, name) VALUES (?, ?)`,
			migration.Version,
			migration.Name,
		).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", migration.Name, err)
		}
		return nil
	})
}

func splitSQLStatements(sqlText string) []string {
	statements := make([]string, 0)
	for _, rawPart := range strings.Split(sqlText, ";") {
		if statement := strings.TrimSpace(rawPart); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// columnAlreadyAdded makes ADD COLUMN statements idempotent, since SQLite
// has no IF NOT EXISTS for columns.
func columnAlreadyAdded(database *gorm.DB, statement string) (bool, error) {
	matches := addColumnStatementPattern.FindStringSubmatch(strings.TrimSpace(statement))
	if len(matches) != 3 {
		return false, nil
	}
	return tableHasColumn(database, unquoteIdentifier(matches[1]), unquoteIdentifier(matches[2]))
}

type pragmaTableColumn struct {
	Name string `gorm:"column:name"`
}

func tableHasColumn(database *gorm.DB, tableName string, columnName string) (bool, error) {
	escapedTable := strings.ReplaceAll(tableName, `"`, `""`)
	columns := make([]pragmaTableColumn, 0)
	if err := database.Raw(fmt.Sprintf(`PRAGMA table_info("%s")`, escapedTable)).Scan(&columns).Error; err != nil {
		return false, fmt.Errorf("load table_info for %s: %w", tableName, err)
	}
	for _, column := range columns {
		if strings.EqualFold(strings.TrimSpace(column.Name), columnName) {
			return true, nil
		}
	}
	return false, nil
}

func unquoteIdentifier(identifier string) string {
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(identifier), "\"`[]"))
}
