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

package storage

import "errors"

var (
	// ErrNotFound is returned when a conversation does not exist.
	ErrNotFound = errors.New("conversation not found")

	// ErrEmptySessionID is returned when an operation receives a blank session id.
	ErrEmptySessionID = errors.New("session id is empty")

	// ErrStorageClosed is returned when an operation is attempted on a closed store.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed is returned when stored bytes cannot be decoded.
	ErrSerializationFailed = errors.New("serialization failed")
)
