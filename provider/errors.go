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


package provider

import "errors"

var (
	// ErrProviderUnavailable indicates the upstream engine could not be
	// reached or refused the call. The Set absorbs it into an empty result.
	ErrProviderUnavailable = errors.New("search provider unavailable")

	// ErrMalformedReply indicates the upstream engine returned a response
	// that could not be decoded.
	ErrMalformedReply = errors.New("malformed provider reply")

	// ErrMissingCredentials indicates an engine was invoked without its
	// required API key.
	ErrMissingCredentials = errors.New("missing provider credentials")

	// ErrNoProviders indicates a fan-out was constructed without adapters.
	ErrNoProviders = errors.New("at least one provider required")
)
