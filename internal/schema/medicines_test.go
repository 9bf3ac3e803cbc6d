package schema

import (
	"strings"
	"testing"
)

func TestContractShape(t *testing.T) {
	t.Parallel()

	if len(Fields) != 27 {
		t.Fatalf("field count: got %d want 27", len(Fields))
	}

	seen := map[string]bool{}
	for _, f := range Fields {
		if f.Name == "" {
			t.Fatal("field with empty name")
		}
		if f.Name != strings.ToLower(f.Name) {
			t.Errorf("field %q is not lowercase", f.Name)
		}
		if seen[f.Name] {
			t.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		if f.Name == IDColumn {
			t.Errorf("contract must not contain the surrogate key column %q", IDColumn)
		}
	}
}

func TestProductNameIsOnlyRequiredField(t *testing.T) {
	t.Parallel()

	var required []string
	for _, f := range Fields {
		if f.Required {
			required = append(required, f.Name)
		}
	}
	if len(required) != 1 || required[0] != "productnaam" {
		t.Fatalf("required fields: got %v want [productnaam]", required)
	}
}

func TestIndexesCoverContractColumns(t *testing.T) {
	t.Parallel()

	if len(Indexes) != 3 {
		t.Fatalf("index count: got %d want 3", len(Indexes))
	}
	cols := map[string]bool{}
	for _, c := range Columns() {
		cols[c] = true
	}
	for _, ix := range Indexes {
		if !cols[ix.Column] {
			t.Errorf("index %s references unknown column %q", ix.Name, ix.Column)
		}
	}
}

func TestDrift(t *testing.T) {
	t.Parallel()

	t.Run("exact_match", func(t *testing.T) {
		t.Parallel()
		unknown, missing := Drift(Columns())
		if len(unknown) != 0 || len(missing) != 0 {
			t.Fatalf("full contract header: unknown=%v missing=%v", unknown, missing)
		}
	})

	t.Run("unknown_and_missing", func(t *testing.T) {
		t.Parallel()
		unknown, missing := Drift([]string{"productnaam", "soort", "extra_kolom"})
		if len(unknown) != 1 || unknown[0] != "extra_kolom" {
			t.Errorf("unknown: got %v", unknown)
		}
		if len(missing) != len(Fields)-2 {
			t.Errorf("missing count: got %d want %d", len(missing), len(Fields)-2)
		}
		for _, m := range missing {
			if m == "productnaam" || m == "soort" {
				t.Errorf("present field %q reported missing", m)
			}
		}
	})

	t.Run("missing_in_declaration_order", func(t *testing.T) {
		t.Parallel()
		_, missing := Drift(nil)
		cols := Columns()
		if len(missing) != len(cols) {
			t.Fatalf("missing count: got %d want %d", len(missing), len(cols))
		}
		for i, m := range missing {
			if m != cols[i] {
				t.Fatalf("missing[%d]: got %q want %q", i, m, cols[i])
			}
		}
	})
}

func TestColumnsMatchesFieldOrder(t *testing.T) {
	t.Parallel()

	cols := Columns()
	if len(cols) != len(Fields) {
		t.Fatalf("Columns length: got %d want %d", len(cols), len(Fields))
	}
	for i, f := range Fields {
		if cols[i] != f.Name {
			t.Errorf("column %d: got %q want %q", i, cols[i], f.Name)
		}
	}
}
