package matching

import (
	"context"
	"log/slog"
	"math"
	"sync"

	"github.com/licitia/radar/ai"
)

// maxEmbeddingRunes bounds the text sent to the embedding backend.
// Embedding cost dominates total matching latency.
const maxEmbeddingRunes = 512

// SemanticCapability wraps an embedding backend behind a once-guarded
// availability probe. The probe runs at most once per process: the first
// caller initializes, everyone else reuses the outcome, and a failed probe
// disables the capability permanently so a doomed backend is never retried.
type SemanticCapability struct {
	embedder ai.Embedder
	logger   *slog.Logger

	once      sync.Once
	available bool
}

// NewSemanticCapability creates a capability around the given embedder.
// A nil embedder yields a capability that is never available.
func NewSemanticCapability(embedder ai.Embedder, logger *slog.Logger) *SemanticCapability {
	if logger == nil {
		logger = slog.Default()
	}
	return &SemanticCapability{
		embedder: embedder,
		logger:   logger.With("component", "semantic-capability"),
	}
}

// Available probes the embedding backend on first call and reports whether
// semantic scoring can be used. The result is fixed for the process
// lifetime.
func (s *SemanticCapability) Available(ctx context.Context) bool {
	s.once.Do(func() {
		if s.embedder == nil {
			s.logger.Info("no embedder configured, semantic scoring disabled")
			return
		}
		if _, err := s.embedder.EmbedText(ctx, "interventoria vial"); err != nil {
			s.logger.Warn("embedding backend unavailable, semantic scoring disabled", "err", err)
			return
		}
		s.available = true
		s.logger.Info("semantic scoring enabled")
	})
	return s.available
}

// Score computes the cosine similarity between two texts, clamped to [0,1].
// Returns 0.0 when the capability is unavailable, either text is empty, or
// the embedding call fails. Failures are logged and never propagate.
func (s *SemanticCapability) Score(ctx context.Context, textA, textB string) float64 {
	if !s.Available(ctx) {
		return 0.0
	}
	if textA == "" || textB == "" {
		return 0.0
	}

	embeddings, err := s.embedder.EmbedTexts(ctx, []string{
		truncateRunes(textA, maxEmbeddingRunes),
		truncateRunes(textB, maxEmbeddingRunes),
	})
	if err != nil {
		s.logger.Warn("embedding failed, scoring pair as 0.0", "err", err)
		return 0.0
	}
	if len(embeddings) < 2 {
		s.logger.Warn("embedding backend returned incomplete batch", "count", len(embeddings))
		return 0.0
	}

	similarity := cosineSimilarity(embeddings[0], embeddings[1])
	return math.Min(1.0, math.Max(0.0, similarity))
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths and zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
