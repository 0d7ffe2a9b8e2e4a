package match

import "testing"

func testTable() *Table {
	return &Table{Fragments: []Fragment{
		{Fragment: "CAMP VERDE UNIFIED", CTDS: "4470"},
		{Fragment: "CAMP VERDE USD", CTDS: "4470"},
		{Fragment: "HUMBOLDT UNIFIED", CTDS: "4469"},
		{Fragment: "HUMBOLDT USD", CTDS: "4469"},
		{Fragment: "PRESCOTT UNIFIED", CTDS: "4466"},
	}}
}

func TestResolveFromDistrictColumn(t *testing.T) {
	r := NewResolver(testTable())

	ctds, ok := r.Resolve("GOVERNING BOARD MEMBER", "CAMP VERDE UNIFIED SCHOOL DISTRICT #28", "Yavapai")
	if !ok || ctds != "4470" {
		t.Fatalf("Resolve = (%q, %v), want (%q, true)", ctds, ok, "4470")
	}
}

func TestResolveFromOfficeColumn(t *testing.T) {
	r := NewResolver(testTable())

	ctds, ok := r.Resolve("HUMBOLDT UNIFIED SCHOOL DISTRICT GOVERNING BOARD", "", "Yavapai")
	if !ok || ctds != "4469" {
		t.Fatalf("Resolve = (%q, %v), want (%q, true)", ctds, ok, "4469")
	}
}

func TestResolveMixedCase(t *testing.T) {
	r := NewResolver(testTable())

	ctds, ok := r.Resolve("Governing Board - Camp Verde USD #28 (ELECT 3)", "", "Yavapai")
	if !ok || ctds != "4470" {
		t.Fatalf("Resolve = (%q, %v), want (%q, true)", ctds, ok, "4470")
	}
}

func TestResolvePipeFlattenedText(t *testing.T) {
	r := NewResolver(testTable())

	ctds, ok := r.Resolve("GOVERNING|BOARD|PRESCOTT|UNIFIED", "", "Yavapai")
	if !ok || ctds != "4466" {
		t.Fatalf("Resolve = (%q, %v), want (%q, true)", ctds, ok, "4466")
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := NewResolver(testTable())

	ctds, ok := r.Resolve("FIRE DISTRICT BOARD", "VERDE VALLEY FIRE", "Yavapai")
	if ok || ctds != "" {
		t.Fatalf("Resolve = (%q, %v), want (\"\", false)", ctds, ok)
	}
	if len(r.Collisions()) != 0 {
		t.Fatalf("no-match recorded collisions: %v", r.Collisions())
	}
}

func TestResolveCollisionKeepsFirstAndRecords(t *testing.T) {
	table := &Table{Fragments: []Fragment{
		{Fragment: "VERDE UNIFIED", CTDS: "4470"},
		{Fragment: "VERDE", CTDS: "9999"},
	}}
	r := NewResolver(table)

	ctds, ok := r.Resolve("CAMP VERDE UNIFIED SCHOOL DISTRICT", "", "Yavapai")
	if !ok || ctds != "4470" {
		t.Fatalf("Resolve = (%q, %v), want first match %q", ctds, ok, "4470")
	}

	collisions := r.Collisions()
	if len(collisions) != 1 {
		t.Fatalf("got %d collisions, want 1: %v", len(collisions), collisions)
	}
	if len(collisions[0].IDs) != 2 {
		t.Errorf("collision IDs = %v, want two distinct codes", collisions[0].IDs)
	}

	// Same text again: recorded once.
	r.Resolve("CAMP VERDE UNIFIED SCHOOL DISTRICT", "", "Yavapai")
	if got := len(r.Collisions()); got != 1 {
		t.Errorf("repeat text recorded %d collisions, want 1", got)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(testTable())
	first, ok := r.Resolve("GOVERNING BOARD", "HUMBOLDT USD #22", "Yavapai")
	if !ok {
		t.Fatal("expected a match")
	}
	for i := 0; i < 10; i++ {
		got, ok := r.Resolve("GOVERNING BOARD", "HUMBOLDT USD #22", "Yavapai")
		if !ok || got != first {
			t.Fatalf("iteration %d: Resolve = (%q, %v), want (%q, true)", i, got, ok, first)
		}
	}
}

func TestDefaultTableParses(t *testing.T) {
	table, err := DefaultTable()
	if err != nil {
		t.Fatalf("DefaultTable: %v", err)
	}
	if len(table.Fragments) < 100 {
		t.Errorf("embedded table has %d fragments, expected the full curated set", len(table.Fragments))
	}
	for i, f := range table.Fragments {
		if f.Fragment == "" || f.CTDS == "" {
			t.Errorf("fragment %d incomplete: %+v", i, f)
		}
	}
}

func TestParseTableRejectsEmpty(t *testing.T) {
	if _, err := parseTable([]byte("fragments: []\n")); err == nil {
		t.Fatal("expected error for empty table")
	}
	if _, err := parseTable([]byte("not yaml: [")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
