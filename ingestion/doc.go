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


// Package ingestion brings external data into the tender store.
//
// Pipeline is the periodic fetch job: it loads the last-run checkpoint,
// pulls tenders published since then from SECOP, upserts them by external
// id, and fans out subscription alerts for newly seen tenders on a worker
// pool. Importer loads a company's past contract experiences from CSV,
// extracting and caching the keyword signature each row needs for matching.
//
// Both sides treat bad input as data, not as failure: a malformed row is
// logged and skipped, and a failed notification never blocks the fetch.
package ingestion
