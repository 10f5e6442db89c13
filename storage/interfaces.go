package storage

import (
	"context"
	"time"

	"github.com/licitia/radar/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// TenderRepository provides operations for managing tender records.
type TenderRepository interface {
	Repository
	// UpsertTenders inserts or updates tenders keyed by their external id.
	// IDs are derived from the external id via content hashing, so re-ingesting
	// the same notice updates the existing record in place.
	// Returns the number of inserted and updated records.
	UpsertTenders(ctx context.Context, tenders ...*core.Tender) (inserted, updated int, err error)

	// GetTender retrieves a single tender by ID.
	// Returns ErrNotFound if the tender doesn't exist.
	GetTender(ctx context.Context, id core.ID) (*core.Tender, error)

	// GetTenders retrieves multiple tenders by their IDs.
	// Returns only the tenders that exist (no error for missing records).
	GetTenders(ctx context.Context, ids ...core.ID) ([]*core.Tender, error)

	// GetTenderByExternalId retrieves a tender by its SECOP external id.
	// Returns ErrNotFound if no such tender exists.
	GetTenderByExternalId(ctx context.Context, externalId string) (*core.Tender, error)

	// GetTendersByDateRange retrieves tenders published within a time range.
	// Returns tenders where start <= PublicationDate < end, ordered by date.
	// Tenders without a publication date are not indexed and not returned.
	GetTendersByDateRange(ctx context.Context, start, end time.Time) ([]*core.Tender, error)

	// GetRecentTenders retrieves the N most recently published tenders,
	// most recent first. Tenders without a publication date are excluded.
	GetRecentTenders(ctx context.Context, limit int) ([]*core.Tender, error)

	// DeleteTenders removes tenders by their IDs.
	// Returns ErrNotFound if any tender doesn't exist.
	DeleteTenders(ctx context.Context, ids ...core.ID) error
}

// ExperienceRepository provides operations for managing company experiences.
type ExperienceRepository interface {
	Repository
	// AddExperiences adds one or more experiences to storage.
	// For records with ID=0, generates new IDs from sequence.
	// Sets InsertedAt timestamp if not already set.
	// Returns the experiences with generated IDs and timestamps populated.
	AddExperiences(ctx context.Context, experiences ...*core.Experience) ([]*core.Experience, error)

	// UpdateExperiences updates existing experiences.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any experience doesn't exist.
	UpdateExperiences(ctx context.Context, experiences ...*core.Experience) ([]*core.Experience, error)

	// DeleteExperiences removes experiences by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any experience doesn't exist.
	DeleteExperiences(ctx context.Context, ids ...core.ID) error

	// GetExperience retrieves a single experience by ID.
	// Returns ErrNotFound if the experience doesn't exist.
	GetExperience(ctx context.Context, id core.ID) (*core.Experience, error)

	// GetExperiences retrieves multiple experiences by their IDs.
	// Returns only the experiences that exist (no error for missing records).
	GetExperiences(ctx context.Context, ids ...core.ID) ([]*core.Experience, error)

	// GetExperiencesByCompany retrieves all experiences recorded for a company,
	// matched on the normalized company name.
	GetExperiencesByCompany(ctx context.Context, companyName string) ([]*core.Experience, error)

	// GetAllExperiences retrieves every stored experience.
	// Used by the reindex job to re-derive cached keyword signatures.
	GetAllExperiences(ctx context.Context) ([]*core.Experience, error)
}

// CheckpointRepository provides operations for persisting job checkpoints.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a job name.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a job name.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, jobName string) (*core.Checkpoint, error)
}
