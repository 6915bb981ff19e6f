package entities

import (
	"testing"
	"time"
)

func TestMergeShallowSemantics(t *testing.T) {
	t.Parallel()

	existing := Record{"id": "x", "a": 0, "b": 2, "nested": map[string]any{"k": 1}}
	merged := existing.Merge(Record{"a": 1, "nested": map[string]any{"j": 2}})

	if merged.Number("a") != 1 || merged.Number("b") != 2 {
		t.Fatalf("unexpected merge result: %v", merged)
	}
	nested := merged["nested"].(map[string]any)
	if _, kept := nested["k"]; kept {
		t.Fatal("nested objects must be replaced wholesale, not deep-merged")
	}

	// The source record is untouched.
	if existing.Number("a") != 0 {
		t.Fatalf("merge mutated its receiver: %v", existing)
	}
}

func TestMergeIDWins(t *testing.T) {
	t.Parallel()

	merged := Record{"id": "kept"}.Merge(Record{"id": "evil"})
	if merged.ID() != "kept" {
		t.Fatalf("expected original id, got %q", merged.ID())
	}
}

func TestDateParsesStoredFormats(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"date-only": "2024-01-15",
		"rfc3339":   "2024-01-15T10:30:00Z",
		"no-zone":   "2024-01-15T10:30:00",
	}
	for name, raw := range cases {
		r := Record{"d": raw}
		got, ok := r.Date("d")
		if !ok {
			t.Fatalf("%s: expected parseable date from %q", name, raw)
		}
		if got.Year() != 2024 || got.Month() != time.January || got.Day() != 15 {
			t.Fatalf("%s: parsed to wrong day: %v", name, got)
		}
	}

	for name, raw := range map[string]any{
		"garbage": "not a date",
		"missing": nil,
		"number":  15,
	} {
		r := Record{}
		if raw != nil {
			r["d"] = raw
		}
		if _, ok := r.Date("d"); ok {
			t.Fatalf("%s: expected parse failure for %v", name, raw)
		}
	}
}

func TestNumberTolerantCoercion(t *testing.T) {
	t.Parallel()

	r := Record{"f": 1.5, "i": 2, "i64": int64(3), "s": "4"}
	if r.Number("f") != 1.5 || r.Number("i") != 2 || r.Number("i64") != 3 {
		t.Fatalf("numeric coercion broken: %v", r)
	}
	// Strings do not silently become numbers.
	if r.Number("s") != 0 {
		t.Fatalf("expected 0 for string value, got %v", r.Number("s"))
	}
	if r.Number("absent") != 0 {
		t.Fatal("expected 0 for absent field")
	}
}

func TestResourceRegistry(t *testing.T) {
	t.Parallel()

	res, err := ResourceByName("contacts")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if res.Capability != CapabilityReadDelete {
		t.Fatal("contacts must stay read/delete only")
	}

	if _, err := ResourceByName("nope"); err == nil {
		t.Fatal("expected lookup failure for unknown resource")
	}

	seenFiles := map[string]bool{}
	for _, r := range Resources {
		if seenFiles[r.File] {
			t.Fatalf("duplicate data file %q in registry", r.File)
		}
		seenFiles[r.File] = true
	}
}
