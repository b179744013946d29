package store

import (
	_ "embed"
	"strings"
)

//go:embed schema_postgres.sql
var postgresDDL string

//go:embed schema_sqlite.sql
var sqliteDDL string

// PostgresDDLStatements returns the CREATE TABLE / INDEX statements for the
// postgres schema, split for statement-at-a-time execution in test setup.
func PostgresDDLStatements() []string { return splitDDL(postgresDDL) }

// SQLiteDDLStatements returns the sqlite schema statements. The sqlite
// driver applies them on open so local targets need no migration step.
func SQLiteDDLStatements() []string { return splitDDL(sqliteDDL) }

func splitDDL(ddl string) []string {
	parts := strings.Split(ddl, ";")
	var out []string
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out
}
