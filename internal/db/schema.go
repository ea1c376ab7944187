package db

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
)

type columnSpec struct {
	name string
	ddl  string
}

type tableSpec struct {
	name    string
	columns []columnSpec
}

// expectedColumns lists columns that older databases may be missing, with the
// DDL fragment used to add them. Earlier deployments created subscriptions
// with only email/created_at/updated_at and profiles without a password
// column.
var expectedColumns = []tableSpec{
	{
		name: "subscriptions",
		columns: []columnSpec{
			{"confirmed", "BOOLEAN NOT NULL DEFAULT FALSE"},
			{"confirmation_token", "TEXT"},
			{"token_created_at", "TIMESTAMP"},
		},
	},
	{
		name: "profiles",
		columns: []columnSpec{
			{"password_hash", "TEXT"},
		},
	},
}

// EnsureSchema repairs legacy databases by adding any expected column that is
// missing. It is idempotent and must run before anything touches the store.
func EnsureSchema(db *sqlx.DB, driver string) error {
	for _, table := range expectedColumns {
		existing, err := tableColumns(db, driver, table.name)
		if err != nil {
			return fmt.Errorf("failed to inspect table %s: %w", table.name, err)
		}

		for _, column := range table.columns {
			if existing[column.name] {
				continue
			}
			_, err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table.name, column.name, column.ddl))
			if err != nil {
				return fmt.Errorf("failed to add column %s.%s: %w", table.name, column.name, err)
			}
			slog.Info("schema column added", "table", table.name, "column", column.name)
		}
	}

	return nil
}

func tableColumns(db *sqlx.DB, driver, table string) (map[string]bool, error) {
	var query string
	switch driver {
	case "sqlite":
		query = `SELECT name FROM pragma_table_info($1)`
	default:
		query = `SELECT column_name FROM information_schema.columns WHERE table_name = $1`
	}

	var names []string
	err := db.Select(&names, query, table)
	if err != nil {
		return nil, err
	}

	columns := make(map[string]bool, len(names))
	for _, name := range names {
		columns[name] = true
	}
	return columns, nil
}
