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

// Package storage provides the conversation storage abstraction for newscout.
//
// This package defines the repository interface that decouples conversation
// persistence from the search pipeline, so different backends (BadgerDB,
// in-memory, mocks) can be used interchangeably.
//
// # Constructor Return Type Pattern
//
// Public constructors in backend packages return the interface, not the
// concrete type:
//
//	repo, err := badger.NewConversationRepository()  // returns storage.ConversationRepository
//
// This keeps consumers decoupled from BadgerDB specifics and lets tests
// substitute doubles without modification. Internal constructors may return
// concrete types since they are only used within the backend package.
//
// # Usage
//
// Create a repository instance:
//
//	repo, err := badger.NewConversationRepository()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer repo.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
//
// # Context Support
//
// All repository methods accept context.Context for cancellation
// and timeout support. Pass context.Background() for operations
// without specific timeout requirements.
package storage
