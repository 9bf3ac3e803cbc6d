package ddl

import "medetl/internal/schema"

// FromContract maps the shared medicines field contract into a SQLite
// TableDef: a surrogate INTEGER PRIMARY KEY AUTOINCREMENT id first, then
// one TEXT column per contract field in declaration order, with NOT NULL on
// required fields, plus the contract's secondary indexes.
func FromContract() TableDef {
	cols := make([]ColumnDef, 0, len(schema.Fields)+1)
	cols = append(cols, ColumnDef{
		Name:          schema.IDColumn,
		SQLType:       "INTEGER",
		PrimaryKey:    true,
		AutoIncrement: true,
	})
	for _, f := range schema.Fields {
		cols = append(cols, ColumnDef{
			Name:    f.Name,
			SQLType: "TEXT",
			NotNull: f.Required,
		})
	}

	idxs := make([]IndexDef, 0, len(schema.Indexes))
	for _, ix := range schema.Indexes {
		idxs = append(idxs, IndexDef{Name: ix.Name, Column: ix.Column})
	}

	return TableDef{
		Name:    schema.Table,
		Columns: cols,
		Indexes: idxs,
	}
}

// BuildBootstrapSQL renders the full idempotent bootstrap statement list
// for t: the CREATE TABLE followed by every CREATE INDEX.
func BuildBootstrapSQL(t TableDef) ([]string, error) {
	create, err := BuildCreateTableSQL(t)
	if err != nil {
		return nil, err
	}
	stmts := make([]string, 0, len(t.Indexes)+1)
	stmts = append(stmts, create)
	for _, ix := range t.Indexes {
		s, err := BuildCreateIndexSQL(t.Name, ix)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}
