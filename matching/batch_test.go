package matching

import (
	"context"
	"testing"
	"time"

	"github.com/licitia/radar/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRanker(t *testing.T) *Ranker {
	t.Helper()
	ranker, err := NewRanker(newRulesOnlyMatcher(t), WithBatchSize(2), WithPoolSize(2))
	require.NoError(t, err)
	return ranker
}

func datedRoadTender(externalId string, published *time.Time) *core.Tender {
	tender := roadTender()
	tender.ExternalId = externalId
	tender.Id = core.IDFromContent(externalId)
	tender.PublicationDate = published
	return tender
}

func dptr(t time.Time) *time.Time { return &t }

func TestNewRanker_RequiresMatcher(t *testing.T) {
	_, err := NewRanker(nil)
	assert.ErrorIs(t, err, ErrMatcherRequired)
}

func TestMatchBatch_InvalidThreshold(t *testing.T) {
	ranker := newTestRanker(t)
	_, _, err := ranker.MatchBatch(context.Background(), nil, nil, 1.5, 0, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidMinScore)
}

func TestMatchBatch_OrderedByPublicationDate(t *testing.T) {
	ranker := newTestRanker(t)

	older := datedRoadTender("CO1.NTC.older", dptr(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	newer := datedRoadTender("CO1.NTC.newer", dptr(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	undated := datedRoadTender("CO1.NTC.undated", nil)

	experiences := []*core.Experience{strongExperience()}

	// limit 0 disables early exit so every candidate is scored.
	results, total, err := ranker.MatchBatch(context.Background(),
		[]*core.Tender{older, undated, newer}, experiences, 0.6, 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, results, 3)
	assert.Equal(t, "CO1.NTC.newer", results[0].Tender.ExternalId)
	assert.Equal(t, "CO1.NTC.older", results[1].Tender.ExternalId)
	assert.Equal(t, "CO1.NTC.undated", results[2].Tender.ExternalId)
}

func TestMatchBatch_Pagination(t *testing.T) {
	ranker := newTestRanker(t)
	experiences := []*core.Experience{strongExperience()}

	// Candidates arrive newest first, the order the recent-tenders index
	// produces. Early exit preserves stable pages only under that ordering.
	tenders := make([]*core.Tender, 0, 6)
	for i := 0; i < 6; i++ {
		published := time.Date(2024, time.Month(6-i), 1, 0, 0, 0, 0, time.UTC)
		tenders = append(tenders, datedRoadTender(string(rune('a'+i)), dptr(published)))
	}

	page1, total1, err := ranker.MatchBatch(context.Background(), tenders, experiences, 0.6, 0, 2, 0)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total1, 2)
	require.Len(t, page1, 2)

	page2, _, err := ranker.MatchBatch(context.Background(), tenders, experiences, 0.6, 0, 2, 2)
	require.NoError(t, err)
	require.Len(t, page2, 2)

	// Pages never overlap.
	for _, a := range page1 {
		for _, b := range page2 {
			assert.NotEqual(t, a.Tender.ExternalId, b.Tender.ExternalId)
		}
	}
}

func TestMatchBatch_OffsetPastEnd(t *testing.T) {
	ranker := newTestRanker(t)
	experiences := []*core.Experience{strongExperience()}
	tenders := []*core.Tender{datedRoadTender("CO1.NTC.only", nil)}

	results, total, err := ranker.MatchBatch(context.Background(), tenders, experiences, 0.6, 0, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, results)
}

func TestMatchBatch_CandidateCap(t *testing.T) {
	ranker := newTestRanker(t)
	experiences := []*core.Experience{strongExperience()}

	tenders := make([]*core.Tender, 0, 5)
	for i := 0; i < 5; i++ {
		tenders = append(tenders, datedRoadTender(string(rune('a'+i)), nil))
	}

	_, total, err := ranker.MatchBatch(context.Background(), tenders, experiences, 0.6, 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestMatchBatch_NoMatches(t *testing.T) {
	ranker := newTestRanker(t)

	tender := datedRoadTender("CO1.NTC.x", nil)
	tender.ObjectText = "suministro de papelería y tóner"
	sparse := &core.Experience{Id: 9, ProjectDescription: "catering de eventos"}

	results, total, err := ranker.MatchBatch(context.Background(),
		[]*core.Tender{tender}, []*core.Experience{sparse}, 0.6, 0, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, results)
}

func TestMatchBatch_SkipsNilTenders(t *testing.T) {
	ranker := newTestRanker(t)
	experiences := []*core.Experience{strongExperience()}

	results, total, err := ranker.MatchBatch(context.Background(),
		[]*core.Tender{nil, datedRoadTender("CO1.NTC.ok", nil)}, experiences, 0.6, 0, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, results, 1)
	assert.Equal(t, "CO1.NTC.ok", results[0].Tender.ExternalId)
}
