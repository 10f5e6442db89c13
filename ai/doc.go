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


// Package ai provides abstractions for the embedding services used by the
// tender matching engine.
//
// The package defines the Embedder interface for generating text embeddings
// and the AIProvider interface for lifecycle management. The matching engine
// depends only on these abstractions, so scoring works identically whether
// embeddings come from a real OpenAI-compatible service or a test double.
//
// Two implementation sub-packages are provided:
//
//   - ai/openai: production implementation for OpenAI-compatible APIs
//     (OpenAI, Ollama, LocalAI, vLLM)
//   - ai/mock: deterministic test doubles for unit testing without an
//     external service
//
// Production constructors return interface types to keep callers decoupled
// from the concrete client. Mock constructors return concrete types so tests
// can inject behavior and assert on call counts.
package ai
