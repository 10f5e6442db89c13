package matching

import "github.com/licitia/radar/core"

// MatchMonitor provides hooks to observe a single tender match.
// Implement this interface to trace factor scores and threshold decisions.
type MatchMonitor interface {
	Start(tender *core.Tender)
	ExperienceScored(experience *core.Experience, scores core.FactorScores, total float64)
	Matched(result core.MatchResult)
	Finish(outcome core.MatchOutcome)
}

// noopMonitor is a no-op implementation of MatchMonitor
type noopMonitor struct{}

var _ MatchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ *core.Tender)                                         {}
func (n *noopMonitor) ExperienceScored(_ *core.Experience, _ core.FactorScores, _ float64) {}
func (n *noopMonitor) Matched(_ core.MatchResult)                                   {}
func (n *noopMonitor) Finish(_ core.MatchOutcome)                                   {}
