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

func newTestExperience(company, description string) *core.Experience {
	amount := 2_500_000_000.0
	completed := time.Date(2019, 11, 20, 0, 0, 0, 0, time.UTC)
	return &core.Experience{
		CompanyName:        company,
		ContractNumber:     "123-2019",
		ProjectDescription: description,
		ContractingEntity:  "Instituto Nacional de Vías",
		CompletionDate:     &completed,
		Amount:             &amount,
		Category:           "Interventoría",
		EngineeringArea:    "Vías",
		Department:         "Caldas",
		Municipality:       "Manizales",
		Keywords:           []string{"interventoria", "vial", "pavimento"},
	}
}

func TestExperienceRepository_AddAndGet(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	exp := newTestExperience("Consultores Andinos SAS", "Interventoría a mejoramiento de vía terciaria")
	_, err = experienceRepo.AddExperiences(ctx, exp)
	require.NoError(t, err)
	assert.NotZero(t, exp.Id)
	assert.False(t, exp.InsertedAt.IsZero())

	got, err := experienceRepo.GetExperience(ctx, exp.Id)
	require.NoError(t, err)
	assert.Equal(t, exp.CompanyName, got.CompanyName)
	assert.Equal(t, exp.Keywords, got.Keywords)
	// Timestamps must survive the serialization round trip exactly.
	assert.True(t, exp.InsertedAt.Equal(got.InsertedAt))
	assert.True(t, exp.UpdatedAt.Equal(got.UpdatedAt))
	require.NotNil(t, got.Amount)
	assert.Equal(t, *exp.Amount, *got.Amount)
}

func TestExperienceRepository_IdsAreUnique(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	seen := make(map[core.ID]bool)
	for i := 0; i < 10; i++ {
		exp := newTestExperience("Consultores Andinos SAS", "Obra civil")
		_, err := experienceRepo.AddExperiences(ctx, exp)
		require.NoError(t, err)
		assert.NotZero(t, exp.Id)
		assert.False(t, seen[exp.Id])
		seen[exp.Id] = true
	}
}

func TestExperienceRepository_Update(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	exp := newTestExperience("Consultores Andinos SAS", "Interventoría vial")
	_, err = experienceRepo.AddExperiences(ctx, exp)
	require.NoError(t, err)
	insertedAt := exp.InsertedAt

	exp.Keywords = []string{"interventoria", "puente"}
	_, err = experienceRepo.UpdateExperiences(ctx, exp)
	require.NoError(t, err)

	got, err := experienceRepo.GetExperience(ctx, exp.Id)
	require.NoError(t, err)
	assert.Equal(t, []string{"interventoria", "puente"}, got.Keywords)
	assert.True(t, insertedAt.Equal(got.InsertedAt))
}

func TestExperienceRepository_Update_NotFound(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	exp := newTestExperience("Consultores Andinos SAS", "Obra")
	exp.Id = core.ID(99999)
	_, err = experienceRepo.UpdateExperiences(context.Background(), exp)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestExperienceRepository_GetByCompany(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = experienceRepo.AddExperiences(ctx,
		newTestExperience("Consultores Andinos SAS", "Interventoría vial"),
		newTestExperience("Consultores Andinos SAS", "Estudios y diseños"),
		newTestExperience("Otra Firma Ltda", "Acueducto rural"),
	)
	require.NoError(t, err)

	// Lookup is case and whitespace insensitive.
	results, err := experienceRepo.GetExperiencesByCompany(ctx, "  consultores   ANDINOS sas ")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = experienceRepo.GetExperiencesByCompany(ctx, "Otra Firma Ltda")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Acueducto rural", results[0].ProjectDescription)
}

func TestExperienceRepository_GetByCompany_PrefixDoesNotBleed(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = experienceRepo.AddExperiences(ctx,
		newTestExperience("Conalvias", "Obra 1"),
		newTestExperience("Conalvias Construcciones", "Obra 2"),
	)
	require.NoError(t, err)

	results, err := experienceRepo.GetExperiencesByCompany(ctx, "Conalvias")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Obra 1", results[0].ProjectDescription)
}

func TestExperienceRepository_GetAll(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	_, err = experienceRepo.AddExperiences(ctx,
		newTestExperience("A SAS", "Obra 1"),
		newTestExperience("B SAS", "Obra 2"),
		newTestExperience("C SAS", "Obra 3"),
	)
	require.NoError(t, err)

	all, err := experienceRepo.GetAllExperiences(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestExperienceRepository_Delete(t *testing.T) {
	tenderRepo, experienceRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	exp := newTestExperience("Consultores Andinos SAS", "Interventoría vial")
	_, err = experienceRepo.AddExperiences(ctx, exp)
	require.NoError(t, err)

	require.NoError(t, experienceRepo.DeleteExperiences(ctx, exp.Id))

	_, err = experienceRepo.GetExperience(ctx, exp.Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	results, err := experienceRepo.GetExperiencesByCompany(ctx, "Consultores Andinos SAS")
	require.NoError(t, err)
	assert.Empty(t, results)
}
