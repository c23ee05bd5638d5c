// Copyright 2025 Poiesic Systems
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


// Package ai provides abstractions for the language-model services used in
// Newscout.
//
// This package defines interfaces for the two LLM-backed operations of the
// search pipeline. It follows the dependency inversion principle, allowing
// the pipeline to depend on abstractions rather than concrete
// implementations.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - QueryRewriter: Turns free-text user input into a concise search query
//   - RelevanceAnalyzer: Scores retrieved news items against the user's query
//   - AIProvider: Aggregates both services for convenient initialization
//
// Both services are expected to degrade rather than fail: a rewriter that
// cannot reach its model returns the input unchanged, and an analyzer that
// cannot reach its model treats every candidate as relevant. The pipeline
// never stalls on a language-model outage.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible chat APIs
//     (DeepSeek by default)
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Public constructors (openai.NewProvider, openai.NewRewriter, ...) return
// INTERFACE types to enforce abstraction. Mock constructors return CONCRETE
// types so tests can inject behavior and assert call counts.
package ai
