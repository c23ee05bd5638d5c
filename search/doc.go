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

// Package search orchestrates the conversational news search pipeline.
//
// The Searcher type runs a four-stage pipeline for each turn:
//   - Query rewriting using conversation history
//   - News retrieval from the configured providers
//   - LLM relevance analysis of the retrieved items
//   - Markdown reply generation
//
// Model failures degrade rather than abort a turn: rewriting falls back to
// the user's query verbatim and analysis passes results through unfiltered.
// Conversation history is recorded per session so follow-up questions
// resolve against earlier turns.
package search
