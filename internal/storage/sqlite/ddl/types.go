// Package ddl generates the SQLite DDL for the destination table: a
// CREATE TABLE statement and the accompanying secondary indexes, all
// emitted with IF NOT EXISTS so that bootstrapping an existing database is
// a no-op.
package ddl

// TableDef describes a destination table.
type TableDef struct {
	Name    string
	Columns []ColumnDef
	Indexes []IndexDef
}

// ColumnDef describes one column. A column marked PrimaryKey with
// AutoIncrement renders inline as INTEGER PRIMARY KEY AUTOINCREMENT, which
// is the only form SQLite accepts for an auto-incrementing surrogate key.
type ColumnDef struct {
	Name          string
	SQLType       string
	NotNull       bool
	PrimaryKey    bool
	AutoIncrement bool
}

// IndexDef describes a single-column secondary index.
type IndexDef struct {
	Name   string
	Column string
}
