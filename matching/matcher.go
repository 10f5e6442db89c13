package matching

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/licitia/radar/core"
)

// DefaultMinScore is the default match threshold.
const DefaultMinScore = 0.60

// maxTopMatches caps the evidence list returned per tender.
const maxTopMatches = 5

// descriptionPreviewRunes bounds the project description carried in a
// MatchResult.
const descriptionPreviewRunes = 100

// Matcher scores one tender against a set of past experiences and returns
// the best match plus a capped, sorted evidence list.
type Matcher struct {
	profile  WeightProfile
	semantic *SemanticCapability
	logger   *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		m.logger = logger
		return nil
	}
}

// NewMatcher creates a matcher. The semantic capability is probed once here:
// if it is available the hybrid weight profile is selected, otherwise the
// rules-only profile. The choice is fixed for the matcher's lifetime.
// A nil capability selects the rules-only profile.
func NewMatcher(ctx context.Context, semantic *SemanticCapability, opts ...Option) (*Matcher, error) {
	m := &Matcher{
		semantic: semantic,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}

	if semantic != nil && semantic.Available(ctx) {
		m.profile = HybridProfile()
		m.logger.Info("matcher using hybrid weight profile")
	} else {
		m.profile = RulesOnlyProfile()
		m.logger.Info("matcher using rules-only weight profile")
	}

	return m, nil
}

// Profile returns the weight profile selected at construction.
func (m *Matcher) Profile() WeightProfile {
	return m.profile
}

// MatchTender scores the tender against every experience and returns the
// best score plus up to 5 matches at or above minScore, sorted descending.
// An empty experience set yields a zero outcome. Errors are returned only
// for a nil tender or a threshold outside [0,1]; factor scoring never fails.
func (m *Matcher) MatchTender(ctx context.Context, tender *core.Tender, experiences []*core.Experience, minScore float64) (core.MatchOutcome, error) {
	return m.MatchTenderWithMonitor(ctx, tender, experiences, minScore, nil)
}

// MatchTenderWithMonitor is MatchTender with per-stage observability
// callbacks.
func (m *Matcher) MatchTenderWithMonitor(ctx context.Context, tender *core.Tender, experiences []*core.Experience, minScore float64, monitor MatchMonitor) (core.MatchOutcome, error) {
	if tender == nil {
		return core.MatchOutcome{}, ErrNilTender
	}
	if minScore < 0.0 || minScore > 1.0 {
		return core.MatchOutcome{}, ErrInvalidMinScore
	}

	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(tender)

	if len(experiences) == 0 {
		outcome := core.MatchOutcome{TopMatches: []core.MatchResult{}}
		monitor.Finish(outcome)
		return outcome, nil
	}

	matches := make([]core.MatchResult, 0, len(experiences))

	for _, experience := range experiences {
		if experience == nil {
			continue
		}

		scores := m.scoreExperience(ctx, tender, experience)
		total := m.profile.Semantic*scores.Semantic +
			m.profile.Keyword*scores.Keyword +
			m.profile.Amount*scores.Amount +
			m.profile.Entity*scores.Entity +
			m.profile.Location*scores.Location +
			m.profile.Category*scores.Category
		monitor.ExperienceScored(experience, scores, total)

		if total < minScore {
			continue
		}

		result := core.MatchResult{
			ExperienceId:       experience.Id,
			ProjectDescription: previewDescription(experience.ProjectDescription),
			ContractingEntity:  experience.ContractingEntity,
			Amount:             experience.Amount,
			Score:              round3(total),
			Scores: core.FactorScores{
				Semantic: round3(scores.Semantic),
				Keyword:  round3(scores.Keyword),
				Amount:   round3(scores.Amount),
				Entity:   round3(scores.Entity),
				Location: round3(scores.Location),
				Category: round3(scores.Category),
			},
		}
		matches = append(matches, result)
		monitor.Matched(result)
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	outcome := core.MatchOutcome{TopMatches: matches}
	if len(matches) > 0 {
		outcome.BestScore = matches[0].Score
	}
	if len(matches) > maxTopMatches {
		outcome.TopMatches = matches[:maxTopMatches]
	}

	monitor.Finish(outcome)
	return outcome, nil
}

// scoreExperience computes the factor score set for one (tender, experience)
// pair. Every factor is total: missing fields flow into documented neutral
// or penalized scores.
func (m *Matcher) scoreExperience(ctx context.Context, tender *core.Tender, experience *core.Experience) core.FactorScores {
	scores := core.FactorScores{
		Keyword: KeywordScore(tender.ObjectText, experience.Keywords),
		Amount: AmountScore(
			tender.Amount, yearOf(tender.PublicationDate, time.Now().Year()),
			experience.Amount, yearOf(experience.CompletionDate, 0),
		),
		Entity:   EntityScore(tender.EntityName, experience.ContractingEntity),
		Location: LocationScore(tender.Department, tender.Municipality, experience.Department, experience.Municipality),
		Category: CategoryScore(tender.ObjectText, experience.Category, experience.EngineeringArea),
	}

	if m.profile.Semantic > 0 && m.semantic != nil {
		scores.Semantic = m.semantic.Score(ctx, tender.ObjectText, experience.ProjectDescription)
	}

	return scores
}

// yearOf extracts the year from an optional date, falling back when absent.
func yearOf(t *time.Time, fallback int) int {
	if t == nil {
		return fallback
	}
	return t.Year()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func previewDescription(s string) string {
	r := []rune(s)
	if len(r) <= descriptionPreviewRunes {
		return s
	}
	return string(r[:descriptionPreviewRunes]) + "..."
}
