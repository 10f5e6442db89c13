package ingestion

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/licitia/radar/core"
	"github.com/licitia/radar/secop"
	"github.com/licitia/radar/storage"
	"github.com/panjf2000/ants/v2"
)

// CheckpointJobName identifies the fetch job in the checkpoint store.
const CheckpointJobName = "secop-fetch"

// DefaultLookback bounds the first fetch when no checkpoint exists yet.
const DefaultLookback = 60 * 24 * time.Hour

// CivilEngineeringUNSPSC is the procurement category pre-filter applied to
// every fetch: civil engineering and architecture services.
const CivilEngineeringUNSPSC = "81101500"

// TenderFetcher retrieves tenders from an upstream source.
// *secop.Client implements it.
type TenderFetcher interface {
	FetchTenders(ctx context.Context, query secop.Query) ([]*core.Tender, error)
}

// Notifier delivers a tender alert to one subscriber.
type Notifier interface {
	NotifyTender(ctx context.Context, subscription core.Subscription, tender *core.Tender) error
}

// RunStats summarizes one pipeline run.
type RunStats struct {
	Fetched  int
	Inserted int
	Updated  int
	Notified int
}

// Pipeline is the periodic tender fetch job: checkpoint, fetch, upsert,
// notify.
type Pipeline struct {
	tenderRepository     storage.TenderRepository
	checkpointRepository storage.CheckpointRepository
	fetcher              TenderFetcher
	notifier             Notifier
	subscriptions        []core.Subscription
	notifyPool           *ants.Pool
	lookback             time.Duration
	unspscCode           string
	logger               *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithNotifier sets the alert transport and the subscriptions to fan out to.
// Without one, the pipeline only fetches and stores.
func WithNotifier(notifier Notifier, subscriptions []core.Subscription) Option {
	return func(p *Pipeline) error {
		p.notifier = notifier
		p.subscriptions = subscriptions
		return nil
	}
}

// WithLookback sets how far back the first fetch reaches when no checkpoint
// exists. Default is DefaultLookback.
func WithLookback(lookback time.Duration) Option {
	return func(p *Pipeline) error {
		if lookback > 0 {
			p.lookback = lookback
		}
		return nil
	}
}

// WithUNSPSCCode overrides the category pre-filter.
func WithUNSPSCCode(code string) Option {
	return func(p *Pipeline) error {
		p.unspscCode = code
		return nil
	}
}

// WithPoolSize sets the notification worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.notifyPool != nil {
			p.notifyPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.notifyPool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a tender ingestion pipeline.
func NewPipeline(
	tenderRepository storage.TenderRepository,
	checkpointRepository storage.CheckpointRepository,
	fetcher TenderFetcher,
	opts ...Option,
) (*Pipeline, error) {
	if tenderRepository == nil {
		return nil, ErrTenderRepositoryRequired
	}
	if checkpointRepository == nil {
		return nil, ErrCheckpointRepositoryRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		tenderRepository:     tenderRepository,
		checkpointRepository: checkpointRepository,
		fetcher:              fetcher,
		notifyPool:           pool,
		lookback:             DefaultLookback,
		unspscCode:           CivilEngineeringUNSPSC,
		logger:               slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run executes one fetch cycle. The since bound comes from the stored
// checkpoint, falling back to the configured lookback on first run. Newly
// seen tenders trigger subscription alerts asynchronously; Run returns after
// all alerts have been attempted.
func (p *Pipeline) Run(ctx context.Context) (*RunStats, error) {
	started := time.Now().UTC()

	since := started.Add(-p.lookback)
	checkpoint, err := p.checkpointRepository.LoadCheckpoint(ctx, CheckpointJobName)
	if err != nil {
		return nil, err
	}
	if checkpoint != nil && checkpoint.LastRun.After(since) {
		since = checkpoint.LastRun
	}

	p.logger.Info("fetching tenders", "since", since, "unspsc", p.unspscCode)
	tenders, err := p.fetcher.FetchTenders(ctx, secop.Query{
		Since:      since,
		UNSPSCCode: p.unspscCode,
	})
	if err != nil {
		return nil, err
	}

	fresh, err := p.newlySeen(ctx, tenders)
	if err != nil {
		return nil, err
	}

	inserted, updated, err := p.tenderRepository.UpsertTenders(ctx, tenders...)
	if err != nil {
		return nil, err
	}

	if err := p.checkpointRepository.SaveCheckpoint(ctx, &core.Checkpoint{
		JobName: CheckpointJobName,
		LastRun: started,
	}); err != nil {
		return nil, err
	}

	notified := p.notify(ctx, fresh)

	stats := &RunStats{
		Fetched:  len(tenders),
		Inserted: inserted,
		Updated:  updated,
		Notified: notified,
	}
	p.logger.Info("fetch cycle complete",
		"fetched", stats.Fetched, "inserted", stats.Inserted,
		"updated", stats.Updated, "notified", stats.Notified)
	return stats, nil
}

// newlySeen returns the tenders not yet present in the store. Alerts go out
// only for these; re-fetched tenders never re-notify.
func (p *Pipeline) newlySeen(ctx context.Context, tenders []*core.Tender) ([]*core.Tender, error) {
	if len(tenders) == 0 {
		return nil, nil
	}

	ids := make([]core.ID, len(tenders))
	for i, tender := range tenders {
		ids[i] = core.IDFromContent(tender.ExternalId)
	}
	existing, err := p.tenderRepository.GetTenders(ctx, ids...)
	if err != nil {
		return nil, err
	}

	known := make(map[core.ID]bool, len(existing))
	for _, tender := range existing {
		known[tender.Id] = true
	}

	fresh := make([]*core.Tender, 0, len(tenders))
	for i, tender := range tenders {
		if !known[ids[i]] {
			fresh = append(fresh, tender)
		}
	}
	return fresh, nil
}

// notify fans subscription alerts out over the worker pool and waits for
// them. Failures are logged per (tender, subscription) pair and never fail
// the run.
func (p *Pipeline) notify(ctx context.Context, tenders []*core.Tender) int {
	if p.notifier == nil || len(tenders) == 0 || len(p.subscriptions) == 0 {
		return 0
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	notified := 0

	for _, tender := range tenders {
		for _, subscription := range p.subscriptions {
			if !subscriptionMatches(subscription, tender) {
				continue
			}

			wg.Add(1)
			err := p.notifyPool.Submit(func() {
				defer wg.Done()
				if err := p.notifier.NotifyTender(ctx, subscription, tender); err != nil {
					p.logger.Error("failed to notify subscriber",
						"tenderId", tender.Id, "email", subscription.ContactEmail, "err", err)
					return
				}
				mu.Lock()
				notified++
				mu.Unlock()
			})
			if err != nil {
				wg.Done()
				p.logger.Error("failed to submit notification task", "err", err)
			}
		}
	}
	wg.Wait()

	return notified
}

// subscriptionMatches applies the subscriber's amount and department filters.
func subscriptionMatches(subscription core.Subscription, tender *core.Tender) bool {
	if !subscription.Active {
		return false
	}
	if subscription.MinAmount != nil && tender.Amount != nil && *tender.Amount < *subscription.MinAmount {
		return false
	}
	if subscription.MaxAmount != nil && tender.Amount != nil && *tender.Amount > *subscription.MaxAmount {
		return false
	}
	if len(subscription.Departments) > 0 {
		found := false
		for _, department := range subscription.Departments {
			if department == tender.Department {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Release releases the notification worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.notifyPool != nil {
		p.notifyPool.Release()
	}
}
