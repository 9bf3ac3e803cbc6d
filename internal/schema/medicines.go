// Package schema holds the single source of truth for the medicines field
// contract. Both pipeline stages consume it: the normalizer for the set of
// lowercase field names, the loader for column definitions, index DDL, and
// insert-parameter binding. Defining the list once removes the column-order
// hazard of keeping two hard-coded copies in sync.
package schema

// Table is the destination table name.
const Table = "medicines"

// IDColumn is the surrogate auto-incrementing primary key. It is generated
// by the store and never appears in a Record.
const IDColumn = "id"

// Field describes one attribute of a medicine record. All fields are opaque
// text; Required maps to NOT NULL in the persisted schema.
type Field struct {
	Name     string
	Required bool
}

// Index describes a secondary index over a single column.
type Index struct {
	Name   string
	Column string
}

// Fields lists the 27 medicine attributes in declaration order. This order
// is the column order of the persisted table (after the surrogate id) and
// the parameter order of every insert.
var Fields = []Field{
	{Name: "registratienummer"},
	{Name: "soort"},
	{Name: "productnaam", Required: true},
	{Name: "inschrijvingsdatum"},
	{Name: "handelsvergunninghouder"},
	{Name: "afleverstatus"},
	{Name: "farmaceutischevorm"},
	{Name: "potentie"},
	{Name: "procedurenummer"},
	{Name: "toedieningsweg"},
	{Name: "aanvullendemonitoring"},
	{Name: "smpc_filenaam"},
	{Name: "bijsluiter_filenaam"},
	{Name: "par_filenaam"},
	{Name: "spar_filenaam"},
	{Name: "armm_filenaam"},
	{Name: "smpc_wijzig_datum"},
	{Name: "bijsluiter_wijzig_datum"},
	{Name: "atc"},
	{Name: "werkzamestoffen"},
	{Name: "hulpstoffen"},
	{Name: "productdetail_link"},
	{Name: "nieuws_links"},
	{Name: "nieuws_link_datums"},
	{Name: "referentie"},
	{Name: "smpc_vorige_versie"},
	{Name: "smpc_vorige_vorige_versie"},
}

// Indexes lists the secondary indexes created on the destination table.
var Indexes = []Index{
	{Name: "idx_productnaam", Column: "productnaam"},
	{Name: "idx_werkzamestoffen", Column: "werkzamestoffen"},
	{Name: "idx_farmaceutischevorm", Column: "farmaceutischevorm"},
}

// Columns returns the field names in declaration order.
func Columns() []string {
	cols := make([]string, len(Fields))
	for i, f := range Fields {
		cols[i] = f.Name
	}
	return cols
}

// Drift compares a set of source header names against the contract.
// unknown lists headers with no contract field, in input order; missing
// lists contract fields with no source header, in declaration order. Two
// empty slices mean the source matches the contract exactly.
func Drift(headers []string) (unknown, missing []string) {
	known := make(map[string]bool, len(Fields))
	for _, f := range Fields {
		known[f.Name] = true
	}
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		seen[h] = true
		if !known[h] {
			unknown = append(unknown, h)
		}
	}
	for _, f := range Fields {
		if !seen[f.Name] {
			missing = append(missing, f.Name)
		}
	}
	return unknown, missing
}
