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


package ingestion

import "errors"

var (
	// ErrTenderRepositoryRequired is returned when a tender repository is not provided.
	ErrTenderRepositoryRequired = errors.New("tender repository required")

	// ErrCheckpointRepositoryRequired is returned when a checkpoint repository is not provided.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrExperienceRepositoryRequired is returned when an experience repository is not provided.
	ErrExperienceRepositoryRequired = errors.New("experience repository required")

	// ErrFetcherRequired is returned when a tender fetcher is not provided.
	ErrFetcherRequired = errors.New("tender fetcher required")

	// ErrMissingDescriptionColumn is returned when an import file has no
	// project description column.
	ErrMissingDescriptionColumn = errors.New("import file has no project description column")
)
