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


package reindex

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/licitia/radar/core"
	"github.com/licitia/radar/matching"
	"github.com/licitia/radar/storage"
)

// Config holds configuration for a reindex run.
type Config struct {
	// BatchSize is the number of experiences to process in each batch
	BatchSize int

	// ReportInterval is how often to report progress (number of experiences)
	ReportInterval int

	// MaxRetries is the maximum number of retry attempts for storage writes
	MaxRetries int

	// RetryDelay is the base delay for exponential backoff
	RetryDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:      100,
		ReportInterval: 100,
		MaxRetries:     3,
		RetryDelay:     1 * time.Second,
	}
}

// Reindexer walks every stored experience and rebuilds its cached keyword
// signature from the current extraction vocabulary. Run it after the
// vocabulary or stopword set changes so old imports match like new ones.
type Reindexer struct {
	repo     storage.ExperienceRepository
	config   *Config
	progress io.Writer
	iterator *ExperienceIterator
}

// NewReindexer creates a reindexer.
// progress: where to write progress output (typically os.Stderr)
func NewReindexer(repo storage.ExperienceRepository, config *Config, progress io.Writer) *Reindexer {
	if config == nil {
		config = DefaultConfig()
	}

	return &Reindexer{
		repo:     repo,
		config:   config,
		progress: progress,
		iterator: NewExperienceIterator(repo, config.BatchSize),
	}
}

// Run executes the reindex. Every stored experience gets a freshly
// extracted keyword signature; batches whose signatures are already
// current are written anyway, keeping the run idempotent.
func (r *Reindexer) Run(ctx context.Context) error {
	all, err := r.repo.GetAllExperiences(ctx)
	if err != nil {
		return fmt.Errorf("failed to query experiences: %w", err)
	}

	total := len(all)
	if total == 0 {
		fmt.Fprintf(r.progress, "No experiences found in database (0 experiences)\n")
		return nil
	}

	fmt.Fprintf(r.progress, "Reindexing %d experiences (batch size: %d)\n",
		total, r.config.BatchSize)

	tracker := NewProgressTracker(r.progress, total, r.config.ReportInterval)
	tracker.Start()

	processed := 0
	err = r.iterator.ForEach(ctx, func(experiences []*core.Experience) error {
		if err := r.processBatch(ctx, experiences); err != nil {
			return fmt.Errorf("failed to process batch: %w", err)
		}

		processed += len(experiences)
		tracker.Update(processed)
		return nil
	})
	if err != nil {
		return err
	}

	tracker.Finish()

	elapsed := tracker.Elapsed()
	fmt.Fprintf(r.progress, "Reindex complete. Processed %d experiences in %v (%.1f experiences/sec)\n",
		total, elapsed.Round(time.Second), float64(total)/elapsed.Seconds())

	return nil
}

// processBatch re-extracts keyword signatures and writes the batch back,
// retrying transient storage failures with exponential backoff.
func (r *Reindexer) processBatch(ctx context.Context, experiences []*core.Experience) error {
	if len(experiences) == 0 {
		return nil
	}

	for _, experience := range experiences {
		experience.Keywords = matching.ExtractKeywords(experience.ProjectDescription)
	}

	err := RetryWithBackoff(ctx, func() error {
		_, err := r.repo.UpdateExperiences(ctx, experiences...)
		return err
	}, r.config.MaxRetries, r.config.RetryDelay)
	if err != nil {
		return fmt.Errorf("failed to update experiences after %d attempts: %w", r.config.MaxRetries, err)
	}

	return nil
}
