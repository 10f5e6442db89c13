package ingestion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/licitia/radar/core"
	"github.com/licitia/radar/secop"
	"github.com/licitia/radar/storage"
	"github.com/licitia/radar/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	mu      sync.Mutex
	queries []secop.Query
	tenders []*core.Tender
	err     error
}

func (f *fakeFetcher) FetchTenders(_ context.Context, query secop.Query) ([]*core.Tender, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return f.tenders, nil
}

type fakeNotifier struct {
	mu        sync.Mutex
	delivered []string // "email|externalId"
	err       error
}

func (n *fakeNotifier) NotifyTender(_ context.Context, subscription core.Subscription, tender *core.Tender) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	n.delivered = append(n.delivered, subscription.ContactEmail+"|"+tender.ExternalId)
	n.mu.Unlock()
	return nil
}

func newPipelineFixture(t *testing.T) (storage.TenderRepository, *badger.CheckpointRepository, func()) {
	t.Helper()
	tenderRepo, experienceRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	checkpointRepo := badger.NewCheckpointRepository(backend)
	cleanup := func() {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
	}
	return tenderRepo, checkpointRepo, cleanup
}

func newFetchedTender(externalId, department string, amount float64) *core.Tender {
	pub := time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	return &core.Tender{
		ExternalId:      externalId,
		Source:          core.SourceSECOPII,
		EntityName:      "INVIAS",
		ObjectText:      "Interventoría para obras de mejoramiento vial",
		Department:      department,
		Amount:          &amount,
		PublicationDate: &pub,
		State:           "Publicado",
	}
}

func activeSubscription(email string) core.Subscription {
	return core.Subscription{
		CompanyName:  "Conalvias",
		ContactEmail: email,
		Active:       true,
	}
}

func TestPipeline_RunStoresAndCheckpoints(t *testing.T) {
	tenderRepo, checkpointRepo, cleanup := newPipelineFixture(t)
	defer cleanup()

	fetcher := &fakeFetcher{tenders: []*core.Tender{
		newFetchedTender("CO1.NTC.100", "Caldas", 1e9),
		newFetchedTender("CO1.NTC.101", "Antioquia", 5e8),
	}}

	pipeline, err := NewPipeline(tenderRepo, checkpointRepo, fetcher)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	stats, err := pipeline.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Fetched)
	assert.Equal(t, 2, stats.Inserted)
	assert.Equal(t, 0, stats.Updated)
	assert.Equal(t, 0, stats.Notified)

	stored, err := tenderRepo.GetTenderByExternalId(ctx, "CO1.NTC.100")
	require.NoError(t, err)
	assert.Equal(t, "Caldas", stored.Department)

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, CheckpointJobName)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)
	assert.WithinDuration(t, time.Now().UTC(), checkpoint.LastRun, time.Minute)

	// The first run has no checkpoint and falls back to the lookback window.
	require.Len(t, fetcher.queries, 1)
	assert.WithinDuration(t, time.Now().UTC().Add(-DefaultLookback), fetcher.queries[0].Since, time.Minute)
	assert.Equal(t, CivilEngineeringUNSPSC, fetcher.queries[0].UNSPSCCode)
}

func TestPipeline_SecondRunUsesCheckpointSince(t *testing.T) {
	tenderRepo, checkpointRepo, cleanup := newPipelineFixture(t)
	defer cleanup()

	fetcher := &fakeFetcher{}
	pipeline, err := NewPipeline(tenderRepo, checkpointRepo, fetcher)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	_, err = pipeline.Run(ctx)
	require.NoError(t, err)
	_, err = pipeline.Run(ctx)
	require.NoError(t, err)

	require.Len(t, fetcher.queries, 2)
	assert.True(t, fetcher.queries[1].Since.After(fetcher.queries[0].Since))
	// The second since is the first run's start time, not the lookback bound.
	assert.WithinDuration(t, time.Now().UTC(), fetcher.queries[1].Since, time.Minute)
}

func TestPipeline_NotifiesOnlyNewlySeenTenders(t *testing.T) {
	tenderRepo, checkpointRepo, cleanup := newPipelineFixture(t)
	defer cleanup()

	fetcher := &fakeFetcher{tenders: []*core.Tender{
		newFetchedTender("CO1.NTC.200", "Caldas", 1e9),
	}}
	notifier := &fakeNotifier{}

	pipeline, err := NewPipeline(tenderRepo, checkpointRepo, fetcher,
		WithNotifier(notifier, []core.Subscription{activeSubscription("alerts@conalvias.co")}))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	stats, err := pipeline.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Notified)
	assert.Equal(t, []string{"alerts@conalvias.co|CO1.NTC.200"}, notifier.delivered)

	// The same tender comes back on the next fetch. It updates in place and
	// never re-notifies.
	stats, err = pipeline.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Inserted)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.Notified)
	assert.Len(t, notifier.delivered, 1)
}

func TestPipeline_NotifierFailureDoesNotFailRun(t *testing.T) {
	tenderRepo, checkpointRepo, cleanup := newPipelineFixture(t)
	defer cleanup()

	fetcher := &fakeFetcher{tenders: []*core.Tender{
		newFetchedTender("CO1.NTC.300", "Caldas", 1e9),
	}}
	notifier := &fakeNotifier{err: errors.New("smtp unreachable")}

	pipeline, err := NewPipeline(tenderRepo, checkpointRepo, fetcher,
		WithNotifier(notifier, []core.Subscription{activeSubscription("alerts@conalvias.co")}))
	require.NoError(t, err)
	defer pipeline.Release()

	stats, err := pipeline.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Inserted)
	assert.Equal(t, 0, stats.Notified)
}

func TestPipeline_FetchErrorLeavesCheckpointUntouched(t *testing.T) {
	tenderRepo, checkpointRepo, cleanup := newPipelineFixture(t)
	defer cleanup()

	fetcher := &fakeFetcher{err: errors.New("socrata 503")}
	pipeline, err := NewPipeline(tenderRepo, checkpointRepo, fetcher)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	_, err = pipeline.Run(ctx)
	require.Error(t, err)

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, CheckpointJobName)
	require.NoError(t, err)
	assert.Nil(t, checkpoint)
}

func TestNewPipeline_RequiresDependencies(t *testing.T) {
	tenderRepo, checkpointRepo, cleanup := newPipelineFixture(t)
	defer cleanup()

	_, err := NewPipeline(nil, checkpointRepo, &fakeFetcher{})
	assert.ErrorIs(t, err, ErrTenderRepositoryRequired)

	_, err = NewPipeline(tenderRepo, nil, &fakeFetcher{})
	assert.ErrorIs(t, err, ErrCheckpointRepositoryRequired)

	_, err = NewPipeline(tenderRepo, checkpointRepo, nil)
	assert.ErrorIs(t, err, ErrFetcherRequired)
}

func TestSubscriptionMatches(t *testing.T) {
	min := 5e8
	max := 2e9

	tender := newFetchedTender("CO1.NTC.400", "Caldas", 1e9)

	tests := []struct {
		name         string
		subscription core.Subscription
		want         bool
	}{
		{"active no filters", core.Subscription{Active: true}, true},
		{"inactive", core.Subscription{Active: false}, false},
		{"within amount range", core.Subscription{Active: true, MinAmount: &min, MaxAmount: &max}, true},
		{"below minimum", core.Subscription{Active: true, MinAmount: &max}, false},
		{"above maximum", core.Subscription{Active: true, MaxAmount: &min}, false},
		{"department match", core.Subscription{Active: true, Departments: []string{"Antioquia", "Caldas"}}, true},
		{"department mismatch", core.Subscription{Active: true, Departments: []string{"Antioquia"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, subscriptionMatches(tt.subscription, tender))
		})
	}
}

func TestSubscriptionMatches_MissingAmountPassesFilters(t *testing.T) {
	min := 5e8
	tender := newFetchedTender("CO1.NTC.401", "Caldas", 0)
	tender.Amount = nil

	ok := subscriptionMatches(core.Subscription{Active: true, MinAmount: &min}, tender)
	assert.True(t, ok)
}
