package badger

import (
	"context"
	"testing"
	"time"

	"github.com/licitia/radar/core"
	"github.com/licitia/radar/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTender(externalId string, publicationDate *time.Time) *core.Tender {
	amount := 1_000_000_000.0
	return &core.Tender{
		ExternalId:      externalId,
		Source:          core.SourceSECOPII,
		EntityName:      "INVIAS",
		ObjectText:      "Interventoría técnica para obras de mejoramiento vial",
		Department:      "Caldas",
		Municipality:    "La Dorada",
		Amount:          &amount,
		PublicationDate: publicationDate,
		State:           "Publicado",
		ProcessURL:      "https://community.secop.gov.co/Public/Tendering/" + externalId,
	}
}

func TestTenderRepository_UpsertAndGet(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	pub := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tender := newTestTender("CO1.NTC.1234567", &pub)
	inserted, updated, err := tenderRepo.UpsertTenders(ctx, tender)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 0, updated)
	assert.Equal(t, core.IDFromContent("CO1.NTC.1234567"), tender.Id)
	assert.False(t, tender.InsertedAt.IsZero())

	got, err := tenderRepo.GetTender(ctx, tender.Id)
	require.NoError(t, err)
	assert.Equal(t, tender.ExternalId, got.ExternalId)
	assert.Equal(t, tender.EntityName, got.EntityName)
	require.NotNil(t, got.PublicationDate)
	assert.True(t, pub.Equal(*got.PublicationDate))

	byExternal, err := tenderRepo.GetTenderByExternalId(ctx, "CO1.NTC.1234567")
	require.NoError(t, err)
	assert.Equal(t, got.Id, byExternal.Id)
}

func TestTenderRepository_UpsertUpdatesExisting(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	pub := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first := newTestTender("CO1.NTC.1234567", &pub)
	_, _, err = tenderRepo.UpsertTenders(ctx, first)
	require.NoError(t, err)

	second := newTestTender("CO1.NTC.1234567", &pub)
	second.State = "Cerrado"
	inserted, updated, err := tenderRepo.UpsertTenders(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, 1, updated)

	got, err := tenderRepo.GetTender(ctx, second.Id)
	require.NoError(t, err)
	assert.Equal(t, "Cerrado", got.State)
	assert.True(t, first.InsertedAt.Equal(got.InsertedAt))
}

func TestTenderRepository_GetTender_NotFound(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	_, err = tenderRepo.GetTender(context.Background(), core.ID(12345))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestTenderRepository_GetTendersByDateRange(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	_, _, err = tenderRepo.UpsertTenders(ctx,
		newTestTender("CO1.NTC.1", &day1),
		newTestTender("CO1.NTC.2", &day2),
		newTestTender("CO1.NTC.3", &day3),
		newTestTender("CO1.NTC.4", nil), // undated, never indexed
	)
	require.NoError(t, err)

	results, err := tenderRepo.GetTendersByDateRange(ctx,
		time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "CO1.NTC.2", results[0].ExternalId)
	assert.Equal(t, "CO1.NTC.3", results[1].ExternalId)
}

func TestTenderRepository_GetRecentTenders(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	day3 := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	_, _, err = tenderRepo.UpsertTenders(ctx,
		newTestTender("CO1.NTC.1", &day1),
		newTestTender("CO1.NTC.2", &day2),
		newTestTender("CO1.NTC.3", &day3),
	)
	require.NoError(t, err)

	results, err := tenderRepo.GetRecentTenders(ctx, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "CO1.NTC.3", results[0].ExternalId)
	assert.Equal(t, "CO1.NTC.2", results[1].ExternalId)
}

func TestTenderRepository_DeleteTenders(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	pub := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tender := newTestTender("CO1.NTC.1234567", &pub)
	_, _, err = tenderRepo.UpsertTenders(ctx, tender)
	require.NoError(t, err)

	require.NoError(t, tenderRepo.DeleteTenders(ctx, tender.Id))

	_, err = tenderRepo.GetTender(ctx, tender.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Date index entry must be gone as well.
	results, err := tenderRepo.GetRecentTenders(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	err = tenderRepo.DeleteTenders(ctx, tender.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestCheckpointRepository_SaveAndLoad(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo := NewCheckpointRepository(backend)
	ctx := context.Background()

	loaded, err := repo.LoadCheckpoint(ctx, "secop-fetch")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	lastRun := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveCheckpoint(ctx, &core.Checkpoint{
		JobName: "secop-fetch",
		LastRun: lastRun,
	}))

	loaded, err = repo.LoadCheckpoint(ctx, "secop-fetch")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "secop-fetch", loaded.JobName)
	assert.True(t, lastRun.Equal(loaded.LastRun))
	assert.False(t, loaded.UpdatedAt.IsZero())
}
