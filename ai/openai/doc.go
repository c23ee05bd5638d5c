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


// Package openai implements the ai interfaces against any OpenAI-compatible
// chat API (DeepSeek by default, also OpenAI itself, Ollama, vLLM, ...).
//
// The relevance analyzer tolerates messy model output: replies are run
// through a fallback ladder of brace-balanced JSON extraction, key repair,
// and finally a keyword heuristic over the raw prose. The query rewriter
// returns its input unchanged whenever the model cannot be reached. Neither
// service ever propagates an upstream outage into the search pipeline.
package openai
