package builtin

import (
	"testing"

	"medetl/pkg/records"
)

func TestNormalizeTrimsStringsInPlace(t *testing.T) {
	t.Parallel()

	recs := []records.Record{
		{
			"productnaam":     "  Aspirin 500mg\t",
			"soort":           "Geneesmiddel",
			"atc":             "",
			"werkzamestoffen": "   ",
			"referentie":      nil,
		},
	}

	out := Normalize{}.Apply(recs)
	if len(out) != 1 {
		t.Fatalf("got %d records, want 1", len(out))
	}

	r := out[0]
	if r["productnaam"] != "Aspirin 500mg" {
		t.Errorf("productnaam: got %q", r["productnaam"])
	}
	if r["soort"] != "Geneesmiddel" {
		t.Errorf("soort: got %q", r["soort"])
	}
	// Empty stays empty; whitespace-only collapses to empty.
	if r["atc"] != "" {
		t.Errorf("atc: got %q", r["atc"])
	}
	if r["werkzamestoffen"] != "" {
		t.Errorf("werkzamestoffen: got %q", r["werkzamestoffen"])
	}
	// Absent stays absent, not "".
	if r["referentie"] != nil {
		t.Errorf("referentie: got %v, want nil", r["referentie"])
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	t.Parallel()

	if out := (Normalize{}).Apply(nil); len(out) != 0 {
		t.Fatalf("got %d records, want 0", len(out))
	}
}
