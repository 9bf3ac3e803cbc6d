package ddl

import (
	"strings"
	"testing"
)

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	td := TableDef{
		Name: "people",
		Columns: []ColumnDef{
			{Name: "id", SQLType: "INTEGER", PrimaryKey: true, AutoIncrement: true},
			{Name: "name", SQLType: "TEXT", NotNull: true},
			{Name: "note", SQLType: "TEXT"},
		},
	}
	got, err := BuildCreateTableSQL(td)
	if err != nil {
		t.Fatalf("BuildCreateTableSQL: %v", err)
	}

	wantParts := []string{
		`CREATE TABLE IF NOT EXISTS "people"`,
		`"id" INTEGER PRIMARY KEY AUTOINCREMENT`,
		`"name" TEXT NOT NULL`,
		`"note" TEXT`,
	}
	for _, w := range wantParts {
		if !strings.Contains(got, w) {
			t.Errorf("statement %q missing %q", got, w)
		}
	}
}

func TestBuildCreateTableSQLErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		td   TableDef
	}{
		{name: "empty_table_name", td: TableDef{Columns: []ColumnDef{{Name: "a", SQLType: "TEXT"}}}},
		{name: "no_columns", td: TableDef{Name: "t"}},
		{name: "empty_column_name", td: TableDef{Name: "t", Columns: []ColumnDef{{SQLType: "TEXT"}}}},
		{name: "missing_sql_type", td: TableDef{Name: "t", Columns: []ColumnDef{{Name: "a"}}}},
		{name: "autoincrement_without_pk", td: TableDef{Name: "t", Columns: []ColumnDef{{Name: "a", SQLType: "INTEGER", AutoIncrement: true}}}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			if _, err := BuildCreateTableSQL(c.td); err == nil {
				t.Fatal("want error, got nil")
			}
		})
	}
}

func TestBuildCreateIndexSQL(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateIndexSQL("medicines", IndexDef{Name: "idx_productnaam", Column: "productnaam"})
	if err != nil {
		t.Fatalf("BuildCreateIndexSQL: %v", err)
	}
	want := `CREATE INDEX IF NOT EXISTS "idx_productnaam" ON "medicines"("productnaam");`
	if got != want {
		t.Fatalf("statement:\n got %q\nwant %q", got, want)
	}
}

func TestFromContract(t *testing.T) {
	t.Parallel()

	td := FromContract()
	if td.Name != "medicines" {
		t.Fatalf("table name: got %q", td.Name)
	}
	if len(td.Columns) != 28 {
		t.Fatalf("column count: got %d want 28 (27 fields + surrogate id)", len(td.Columns))
	}
	if c := td.Columns[0]; c.Name != "id" || !c.PrimaryKey || !c.AutoIncrement {
		t.Fatalf("first column must be the auto-incrementing id, got %+v", c)
	}

	var notNull []string
	for _, c := range td.Columns[1:] {
		if c.SQLType != "TEXT" {
			t.Errorf("column %s: got type %s want TEXT", c.Name, c.SQLType)
		}
		if c.NotNull {
			notNull = append(notNull, c.Name)
		}
	}
	if len(notNull) != 1 || notNull[0] != "productnaam" {
		t.Fatalf("NOT NULL columns: got %v want [productnaam]", notNull)
	}
	if len(td.Indexes) != 3 {
		t.Fatalf("index count: got %d want 3", len(td.Indexes))
	}
}

func TestBuildBootstrapSQL(t *testing.T) {
	t.Parallel()

	stmts, err := BuildBootstrapSQL(FromContract())
	if err != nil {
		t.Fatalf("BuildBootstrapSQL: %v", err)
	}
	if len(stmts) != 4 {
		t.Fatalf("statement count: got %d want 4 (table + 3 indexes)", len(stmts))
	}
	if !strings.HasPrefix(stmts[0], "CREATE TABLE IF NOT EXISTS") {
		t.Errorf("first statement is not the table: %q", stmts[0])
	}
	for _, s := range stmts[1:] {
		if !strings.HasPrefix(s, "CREATE INDEX IF NOT EXISTS") {
			t.Errorf("expected index statement, got %q", s)
		}
	}
}
