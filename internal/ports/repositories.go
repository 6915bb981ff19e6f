package ports

import (
	"context"

	"github.com/vitaapp/core/internal/domain/entities"
)

// RecordRepository defines the persistence operations of one resource
// collection. Implementations serialize mutations: every write holds the
// collection exclusively across its read-mutate-write cycle, so two
// concurrent updates can not silently drop each other.
type RecordRepository interface {
	// List returns the full collection in file order. A missing backing
	// file reads as empty; List never fails.
	List(ctx context.Context) []entities.Record

	// Insert appends the record at the tail and persists the collection.
	Insert(ctx context.Context, record entities.Record) error

	// Merge lays patch fields over the record with the given id, replacing
	// it at the same position, and persists. Returns the merged record, or
	// entities.ErrRecordNotFound when the id is unknown.
	Merge(ctx context.Context, id string, patch entities.Record) (entities.Record, error)

	// Remove deletes the record with the given id and persists. Returns
	// the removed record, or entities.ErrRecordNotFound.
	Remove(ctx context.Context, id string) (entities.Record, error)
}

// ProfileRepository defines persistence for the profile singleton.
type ProfileRepository interface {
	// Get returns the profile object; an empty object when never saved.
	Get(ctx context.Context) entities.Record

	// Merge lays patch fields over the stored profile and persists.
	Merge(ctx context.Context, patch entities.Record) (entities.Record, error)
}
