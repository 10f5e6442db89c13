package matching

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/licitia/radar/core"
	"github.com/panjf2000/ants/v2"
)

const (
	// DefaultCandidateCap bounds the tenders considered per batch request
	// when no pre-filter has been applied upstream.
	DefaultCandidateCap = 200

	defaultBatchSize = 10
	defaultPoolSize  = 4
)

// Ranker applies a Matcher across many tender candidates and produces a
// paginated, deterministically ordered result list.
//
// Candidates are processed in fixed-size batches on a worker pool. Early
// exit is a count-based budget: once a full result page worth of qualifying
// matches has accumulated, remaining batches are skipped. Accumulation
// happens in candidate order after each batch completes, so the outcome
// never depends on worker scheduling.
type Ranker struct {
	matcher   *Matcher
	batchSize int
	poolSize  int
	logger    *slog.Logger
}

// RankerOption configures a Ranker.
type RankerOption func(*Ranker) error

// WithBatchSize sets how many tenders are scored per batch.
func WithBatchSize(size int) RankerOption {
	return func(r *Ranker) error {
		if size > 0 {
			r.batchSize = size
		}
		return nil
	}
}

// WithPoolSize sets the number of concurrent scoring workers.
func WithPoolSize(size int) RankerOption {
	return func(r *Ranker) error {
		if size > 0 {
			r.poolSize = size
		}
		return nil
	}
}

// WithRankerLogger sets a custom logger.
// Default is slog.Default().
func WithRankerLogger(logger *slog.Logger) RankerOption {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker around the given matcher.
func NewRanker(matcher *Matcher, opts ...RankerOption) (*Ranker, error) {
	if matcher == nil {
		return nil, ErrMatcherRequired
	}

	r := &Ranker{
		matcher:   matcher,
		batchSize: defaultBatchSize,
		poolSize:  defaultPoolSize,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// MatchBatch matches up to candidateCap tenders against the experience set
// and returns one page of ranked results plus the total number of matched
// tenders accumulated before pagination.
//
// Results are ordered by publication date descending with undated tenders
// last, ties broken by best match score descending. Pagination is applied
// over the in-memory sorted list: ranking is a function of matching, which
// must happen before pagination. A candidateCap of 0 uses
// DefaultCandidateCap; a limit of 0 disables early exit and returns all
// matches from offset onward.
func (r *Ranker) MatchBatch(ctx context.Context, tenders []*core.Tender, experiences []*core.Experience, minScore float64, candidateCap, limit, offset int) ([]core.RankedTender, int, error) {
	if minScore < 0.0 || minScore > 1.0 {
		return nil, 0, ErrInvalidMinScore
	}
	if offset < 0 {
		offset = 0
	}
	if candidateCap <= 0 {
		candidateCap = DefaultCandidateCap
	}
	if len(tenders) > candidateCap {
		tenders = tenders[:candidateCap]
	}

	pool, err := ants.NewPool(r.poolSize)
	if err != nil {
		return nil, 0, err
	}
	defer pool.Release()

	// Matches needed to fill the requested page.
	needed := 0
	if limit > 0 {
		needed = offset + limit
	}

	matched := make([]core.RankedTender, 0, len(tenders))

	for start := 0; start < len(tenders); start += r.batchSize {
		end := min(start+r.batchSize, len(tenders))
		batch := tenders[start:end]
		outcomes := make([]core.MatchOutcome, len(batch))

		var wg sync.WaitGroup
		for i, tender := range batch {
			if tender == nil {
				continue
			}
			wg.Add(1)
			if err := pool.Submit(r.scoreTask(ctx, &wg, tender, experiences, minScore, &outcomes[i])); err != nil {
				wg.Done()
				r.logger.Error("failed to submit scoring task", "tenderId", tender.Id, "err", err)
			}
		}
		wg.Wait()

		// Accumulate in candidate order regardless of completion order.
		for i, tender := range batch {
			if tender == nil || len(outcomes[i].TopMatches) == 0 {
				continue
			}
			matched = append(matched, core.RankedTender{Tender: tender, Outcome: outcomes[i]})
		}

		if needed > 0 && len(matched) >= needed {
			r.logger.Debug("early exit after filling page budget",
				"candidatesScored", end, "matched", len(matched))
			break
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].Tender.PublicationDate, matched[j].Tender.PublicationDate
		switch {
		case a == nil && b == nil:
			return matched[i].Outcome.BestScore > matched[j].Outcome.BestScore
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return matched[i].Outcome.BestScore > matched[j].Outcome.BestScore
		default:
			return a.After(*b)
		}
	})

	total := len(matched)
	if offset >= total {
		return []core.RankedTender{}, total, nil
	}
	page := matched[offset:]
	if limit > 0 && len(page) > limit {
		page = page[:limit]
	}
	return page, total, nil
}

// scoreTask scores one tender, recovering from panics so one bad candidate
// cannot abort the batch.
func (r *Ranker) scoreTask(ctx context.Context, wg *sync.WaitGroup, tender *core.Tender, experiences []*core.Experience, minScore float64, out *core.MatchOutcome) func() {
	return func() {
		defer wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("panic while scoring tender", "tenderId", tender.Id, "panic", rec)
				*out = core.MatchOutcome{}
			}
		}()

		outcome, err := r.matcher.MatchTender(ctx, tender, experiences, minScore)
		if err != nil {
			r.logger.Error("failed to score tender", "tenderId", tender.Id, "err", err)
			return
		}
		*out = outcome
	}
}
