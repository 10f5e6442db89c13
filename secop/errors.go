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


package secop

import "errors"

var (
	// ErrDatasetRequired is returned when a client is built without a dataset id.
	ErrDatasetRequired = errors.New("secop dataset id required")

	// ErrRequestFailed is returned when the Socrata API keeps failing after retries.
	ErrRequestFailed = errors.New("secop request failed")
)
