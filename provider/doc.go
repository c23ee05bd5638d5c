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


// Package provider retrieves candidate news items from external search
// engines and normalizes their heterogeneous result shapes into the one
// canonical core.NewsItem record.
//
// Adapters exist for DuckDuckGo News (no credentials) and Google News via
// SerpAPI (API key required). The Set type selects the active adapter from
// configuration and applies the fallback policy: unknown engine names and
// missing credentials degrade to DuckDuckGo per call, and any adapter
// failure yields an empty result set rather than an error. Callers must
// treat "no results" as a legitimate terminal outcome.
package provider
