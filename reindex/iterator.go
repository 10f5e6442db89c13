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

	"github.com/licitia/radar/core"
	"github.com/licitia/radar/storage"
)

const (
	// DefaultBatchSize is the default number of experiences to process in
	// each batch.
	DefaultBatchSize = 100
)

// ExperienceIterator walks every stored experience in batches.
type ExperienceIterator struct {
	repo      storage.ExperienceRepository
	batchSize int
}

// NewExperienceIterator creates an iterator over all stored experiences.
// batchSize: number of experiences per batch (must be > 0)
func NewExperienceIterator(repo storage.ExperienceRepository, batchSize int) *ExperienceIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &ExperienceIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach iterates over all experiences, calling fn for each batch.
// Iteration stops on the first error from fn. Context cancellation is
// checked between batches.
func (it *ExperienceIterator) ForEach(ctx context.Context, fn func([]*core.Experience) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	experiences, err := it.repo.GetAllExperiences(ctx)
	if err != nil {
		return err
	}
	if len(experiences) == 0 {
		return nil
	}

	for i := 0; i < len(experiences); i += it.batchSize {
		end := i + it.batchSize
		if end > len(experiences) {
			end = len(experiences)
		}

		if err := fn(experiences[i:end]); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	return nil
}
