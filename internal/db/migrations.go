package db

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	embeddedmigrations "github.com/terraincognita07/finora/migrations"
	"gorm.io/gorm"
)

var migrationFilePattern = regexp.MustCompile(`^(\d+)_.*\.sql$`)

var errEmptyMigration = errors.New("migration has no SQL statements")

type schemaMigration struct {
	Version string
	Order   int
	Name    string
	SQL     string
}

type schemaObject struct {
	Kind string
	Name string
}

// financeSchema lists the objects the services depend on. The occurrence
// index is what makes a repeated catch-up insert fail instead of duplicating
// a recurring transaction, and the pinned-goal index keeps one pin per user.
var financeSchema = []schemaObject{
	{Kind: "table", Name: "users"},
	{Kind: "table", Name: "accounts"},
	{Kind: "table", Name: "categories"},
	{Kind: "table", Name: "transactions"},
	{Kind: "table", Name: "recurring_rules"},
	{Kind: "table", Name: "budgets"},
	{Kind: "table", Name: "goals"},
	{Kind: "table", Name: "investments"},
	{Kind: "index", Name: "idx_users_email_normalized"},
	{Kind: "index", Name: "idx_recurring_rules_due"},
	{Kind: "index", Name: "uidx_transactions_rule_occurrence"},
	{Kind: "index", Name: "uidx_budgets_user_category"},
	{Kind: "index", Name: "uidx_goals_user_pinned"},
}

func applyEmbeddedMigrations(database *gorm.DB) error {
	if err := applyMigrations(database, embeddedmigrations.Files); err != nil {
		return err
	}
	return verifySchema(database, financeSchema)
}

func applyMigrations(database *gorm.DB, files fs.FS) error {
	if err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
)`).Error; err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}

	migrations, err := loadMigrations(files)
	if err != nil {
		return err
	}

	var versions []string
	if err := database.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return fmt.Errorf("load applied migration versions: %w", err)
	}
	applied := make(map[string]struct{}, len(versions))
	for _, version := range versions {
		applied[version] = struct{}{}
	}

	for _, migration := range migrations {
		if _, ok := applied[migration.Version]; ok {
			continue
		}
		if err := applyMigration(database, migration); err != nil {
			return err
		}
		log.Printf("db: applied migration %s", migration.Name)
	}
	return nil
}

// loadMigrations returns the numbered .sql files in version order. Two files
// sharing a version are rejected.
func loadMigrations(files fs.FS) ([]schemaMigration, error) {
	names, err := fs.Glob(files, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}

	migrations := make([]schemaMigration, 0, len(names))
	seen := make(map[string]string, len(names))
	for _, name := range names {
		matches := migrationFilePattern.FindStringSubmatch(path.Base(name))
		if len(matches) != 2 {
			continue
		}
		version := matches[1]
		if existing, ok := seen[version]; ok {
			return nil, fmt.Errorf("duplicate migration version %s in %s and %s", version, existing, name)
		}
		seen[version] = name

		order, err := strconv.Atoi(version)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", name, err)
		}
		raw, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		migrations = append(migrations, schemaMigration{Version: version, Order: order, Name: name, SQL: string(raw)})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Order < migrations[j].Order
	})
	return migrations, nil
}

func applyMigration(database *gorm.DB, migration schemaMigration) error {
	statements := splitSQLStatements(migration.SQL)
	if len(statements) == 0 {
		return fmt.Errorf("migration %s: %w", migration.Name, errEmptyMigration)
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, statement := range statements {
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
	parts := strings.Split(sqlText, ";")
	statements := make([]string, 0, len(parts))
	for _, part := range parts {
		if statement := strings.TrimSpace(part); statement != "" {
			statements = append(statements, statement)
		}
	}
	return statements
}

// verifySchema fails when any expected table or index is absent, which
// happens when a database was created by hand or a migration was edited
// after it had been recorded as applied.
func verifySchema(database *gorm.DB, objects []schemaObject) error {
	missing := make([]string, 0)
	for _, object := range objects {
		var count int64
		if err := database.Raw(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`,
			object.Kind,
			object.Name,
		).Scan(&count).Error; err != nil {
			return fmt.Errorf("inspect %s %s: %w", object.Kind, object.Name, err)
		}
		if count == 0 {
			missing = append(missing, object.Kind+" "+object.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("schema incomplete, missing %s", strings.Join(missing, ", "))
	}
	return nil
}
