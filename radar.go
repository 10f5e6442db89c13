// Copyright 2025 LicitIA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package radar

import (
	"context"
	"io"
	"log/slog"

	"github.com/licitia/radar/ai"
	"github.com/licitia/radar/ai/openai"
	"github.com/licitia/radar/ingestion"
	"github.com/licitia/radar/matching"
	"github.com/licitia/radar/reindex"
	"github.com/licitia/radar/storage"
	"github.com/licitia/radar/storage/badger"
)

// Radar bundles the storage backend, repositories and the embedding
// provider behind one handle. Matchers, rankers and pipelines are built
// from it.
type Radar struct {
	backend        *badger.Backend
	tenderRepo     storage.TenderRepository
	experienceRepo storage.ExperienceRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.AIProvider
	semantic       *matching.SemanticCapability
	logger         *slog.Logger
}

// RadarOption configures a Radar.
type RadarOption func(*radarOptions)

type radarOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig sets the embedding provider configuration.
func WithAIConfig(config *ai.Config) RadarOption {
	return func(o *radarOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// Open opens the database at filePath and wires the repositories and
// embedding provider. Whether semantic scoring is actually available is
// probed lazily on the first matcher built from this handle.
func Open(filePath string, opts ...RadarOption) (*Radar, error) {
	options := &radarOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	tenderRepo, err := badger.NewTenderRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	experienceRepo, err := badger.NewExperienceRepository(backend)
	if err != nil {
		tenderRepo.Close()
		backend.Close()
		return nil, err
	}

	checkpointRepo := badger.NewCheckpointRepository(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		experienceRepo.Close()
		tenderRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Radar{
		backend:        backend,
		tenderRepo:     tenderRepo,
		experienceRepo: experienceRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		semantic:       matching.NewSemanticCapability(provider.Embedder(), slog.Default()),
		logger:         slog.Default(),
	}, nil
}

// Close releases the embedding provider, repositories and backend.
func (r *Radar) Close() error {
	if err := r.provider.Close(); err != nil {
		r.logger.Error("error closing AI provider", "err", err)
	}

	if err := r.experienceRepo.Close(); err != nil {
		r.logger.Error("error closing experience repository", "err", err)
		return err
	}
	if err := r.tenderRepo.Close(); err != nil {
		r.logger.Error("error closing tender repository", "err", err)
		return err
	}

	if err := r.backend.Close(); err != nil {
		r.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (r *Radar) TenderRepository() storage.TenderRepository {
	return r.tenderRepo
}

func (r *Radar) ExperienceRepository() storage.ExperienceRepository {
	return r.experienceRepo
}

func (r *Radar) CheckpointRepository() storage.CheckpointRepository {
	return r.checkpointRepo
}

// NewMatcher builds a relevance matcher over this handle's embedding
// provider. The weight profile follows from a one-time availability probe.
func (r *Radar) NewMatcher(ctx context.Context, opts ...matching.Option) (*matching.Matcher, error) {
	return matching.NewMatcher(ctx, r.semantic, opts...)
}

// NewRanker builds a batch ranker around a matcher.
func (r *Radar) NewRanker(matcher *matching.Matcher, opts ...matching.RankerOption) (*matching.Ranker, error) {
	return matching.NewRanker(matcher, opts...)
}

// NewIngestionPipeline builds a fetch pipeline over this handle's
// repositories.
func (r *Radar) NewIngestionPipeline(fetcher ingestion.TenderFetcher, opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(r.tenderRepo, r.checkpointRepo, fetcher, opts...)
}

// NewImporter builds a CSV experience importer over this handle's
// experience repository.
func (r *Radar) NewImporter(opts ...ingestion.ImporterOption) (*ingestion.Importer, error) {
	return ingestion.NewImporter(r.experienceRepo, opts...)
}

// NewReindexer builds a keyword signature reindexer.
// progress: where to write progress output (typically os.Stderr)
func (r *Radar) NewReindexer(config *reindex.Config, progress io.Writer) *reindex.Reindexer {
	return reindex.NewReindexer(r.experienceRepo, config, progress)
}
