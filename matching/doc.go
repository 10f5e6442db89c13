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


// Package matching scores public tenders against a company's past contract
// experiences and produces bounded, explainable relevance rankings.
//
// The engine combines up to six independent factor scores, each in [0,1]:
//
//   - keyword: synonym-aware overlap between the tender object text and the
//     experience's cached keyword signature
//   - amount: contract value proximity after inflation escalation of the
//     historical amount to the tender's year
//   - entity: contracting entity name similarity with alias canonicalization
//     and a Jaro-Winkler fallback
//   - location: department/municipality agreement
//   - category: engineering area and category rule checks
//   - semantic: embedding cosine similarity, available only when an
//     embedding backend could be initialized at startup
//
// A Matcher aggregates factor scores through one of two fixed weight
// profiles, selected once at construction depending on whether the semantic
// capability is available. A Ranker applies the Matcher across many tender
// candidates in parallel with a count-based early exit and a deterministic
// final ordering for pagination.
//
// All factor scorers are total functions: missing optional fields degrade to
// documented neutral or penalized scores, never to errors.
package matching
