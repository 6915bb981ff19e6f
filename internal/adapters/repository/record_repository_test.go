package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/infrastructure/storage"
)

func newTestRepository(t *testing.T) (*RecordRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "records.json")
	file := storage.NewFile(path, logger.NewNop())
	return NewRecordRepository(file, logger.NewNop()), path
}

func TestInsertAppendsAtTail(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		if err := repo.Insert(ctx, entities.Record{"id": id}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	records := repo.List(ctx)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	for i, want := range []string{"a", "b", "c"} {
		if records[i].ID() != want {
			t.Fatalf("position %d: expected id %q, got %q", i, want, records[i].ID())
		}
	}
}

func TestMergePreservesAbsentFields(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, entities.Record{"id": "r1", "a": 0.0, "b": 2.0}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	merged, err := repo.Merge(ctx, "r1", entities.Record{"a": 1.0})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.Number("a") != 1 {
		t.Fatalf("expected patched field a=1, got %v", merged.Number("a"))
	}
	if merged.Number("b") != 2 {
		t.Fatalf("expected preserved field b=2, got %v", merged.Number("b"))
	}

	// The merge must survive a fresh read from disk.
	stored := repo.List(ctx)
	if len(stored) != 1 || stored[0].Number("a") != 1 || stored[0].Number("b") != 2 {
		t.Fatalf("unexpected stored state: %v", stored)
	}
}

func TestMergeReplacesNestedObjectsWholesale(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	err := repo.Insert(ctx, entities.Record{
		"id": "v1",
		"insurance": map[string]any{
			"company":      "ACME",
			"policyNumber": "P-1",
		},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	merged, err := repo.Merge(ctx, "v1", entities.Record{
		"insurance": map[string]any{"company": "ZETA"},
	})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	insurance, ok := merged["insurance"].(map[string]any)
	if !ok {
		t.Fatalf("expected nested object, got %T", merged["insurance"])
	}
	if insurance["company"] != "ZETA" {
		t.Fatalf("expected replaced company, got %v", insurance["company"])
	}
	// Shallow merge: the nested object is swapped out, not deep-merged.
	if _, exists := insurance["policyNumber"]; exists {
		t.Fatal("expected policyNumber to be gone after wholesale replacement")
	}
}

func TestMergeKeepsServerAssignedID(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, entities.Record{"id": "orig"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	merged, err := repo.Merge(ctx, "orig", entities.Record{"id": "spoofed", "title": "x"})
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	if merged.ID() != "orig" {
		t.Fatalf("id must be immutable, got %q", merged.ID())
	}
}

func TestMergeUnknownID(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)

	_, err := repo.Merge(context.Background(), "missing", entities.Record{"a": 1})
	if !errors.Is(err, entities.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRemoveReturnsDeletedRecord(t *testing.T) {
	t.Parallel()

	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, entities.Record{"id": "d1", "title": "pay rent"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, entities.Record{"id": "d2"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	removed, err := repo.Remove(ctx, "d1")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if removed.String("title") != "pay rent" {
		t.Fatalf("expected the removed record back, got %v", removed)
	}

	remaining := repo.List(ctx)
	if len(remaining) != 1 || remaining[0].ID() != "d2" {
		t.Fatalf("unexpected remaining records: %v", remaining)
	}
}

func TestRemoveMissLeavesFileUntouched(t *testing.T) {
	t.Parallel()

	repo, path := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Insert(ctx, entities.Record{"id": "only"}); err != nil {
		t.Fatalf("insert: %v", err)
	}

	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read before: %v", err)
	}

	if _, err := repo.Remove(ctx, "nope"); !errors.Is(err, entities.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read after: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("file changed after delete miss\nbefore: %s\nafter: %s", before, after)
	}
}

func TestProfileRepositoryMerge(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "profile.json")
	repo := NewProfileRepository(storage.NewFile(path, logger.NewNop()), logger.NewNop())
	ctx := context.Background()

	if got := repo.Get(ctx); len(got) != 0 {
		t.Fatalf("expected empty profile before first save, got %v", got)
	}

	if _, err := repo.Merge(ctx, entities.Record{"name": "Mario", "language": "it"}); err != nil {
		t.Fatalf("first merge: %v", err)
	}
	merged, err := repo.Merge(ctx, entities.Record{"language": "en"})
	if err != nil {
		t.Fatalf("second merge: %v", err)
	}

	if merged.String("name") != "Mario" {
		t.Fatalf("expected name preserved across merges, got %v", merged)
	}
	if merged.String("language") != "en" {
		t.Fatalf("expected language overwritten, got %v", merged)
	}
}
