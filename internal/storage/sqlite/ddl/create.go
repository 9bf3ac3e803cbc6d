package ddl

import (
	"fmt"
	"strings"
)

// BuildCreateTableSQL returns a CREATE TABLE IF NOT EXISTS statement for t:
//
//	CREATE TABLE IF NOT EXISTS "table" (
//	  "id" INTEGER PRIMARY KEY AUTOINCREMENT,
//	  "col" TEXT [NOT NULL],
//	  ...
//	);
func BuildCreateTableSQL(t TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("sqlite ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("sqlite ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		cn := strings.TrimSpace(c.Name)
		if cn == "" {
			return "", fmt.Errorf("sqlite ddl: column with empty name in table %s", name)
		}
		typ := strings.TrimSpace(c.SQLType)
		if typ == "" {
			return "", fmt.Errorf("sqlite ddl: column %s missing SQLType", cn)
		}
		if c.AutoIncrement && !c.PrimaryKey {
			return "", fmt.Errorf("sqlite ddl: column %s: AUTOINCREMENT requires PRIMARY KEY", cn)
		}

		var sb strings.Builder
		sb.WriteString(quoteIdent(cn))
		sb.WriteByte(' ')
		sb.WriteString(typ)
		if c.PrimaryKey {
			sb.WriteString(" PRIMARY KEY")
			if c.AutoIncrement {
				sb.WriteString(" AUTOINCREMENT")
			}
		}
		if c.NotNull {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}

	stmt := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (\n  %s\n);",
		quoteIdent(name),
		strings.Join(cols, ",\n  "),
	)
	return stmt, nil
}

// BuildCreateIndexSQL returns a CREATE INDEX IF NOT EXISTS statement for
// idx on table.
func BuildCreateIndexSQL(table string, idx IndexDef) (string, error) {
	if strings.TrimSpace(table) == "" {
		return "", fmt.Errorf("sqlite ddl: table name must not be empty")
	}
	if strings.TrimSpace(idx.Name) == "" || strings.TrimSpace(idx.Column) == "" {
		return "", fmt.Errorf("sqlite ddl: index name and column must not be empty")
	}
	return fmt.Sprintf(
		"CREATE INDEX IF NOT EXISTS %s ON %s(%s);",
		quoteIdent(idx.Name),
		quoteIdent(table),
		quoteIdent(idx.Column),
	), nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
