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


package matching

import "errors"

var (
	// ErrNilTender is returned when a nil tender is passed to a match call.
	ErrNilTender = errors.New("tender is nil")

	// ErrInvalidMinScore is returned when the match threshold is outside [0,1].
	ErrInvalidMinScore = errors.New("min score must be between 0.0 and 1.0")

	// ErrMatcherRequired is returned when a ranker is built without a matcher.
	ErrMatcherRequired = errors.New("matcher required")
)
