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


package match

import "errors"

var (
	// ErrInvalidRequest indicates malformed caller input (negative result
	// limit, unknown mode, empty similarity query). The request is rejected
	// before any filtering or scoring runs; the caller can correct the input
	// and retry.
	ErrInvalidRequest = errors.New("invalid match request")

	// ErrUpstreamEmbedding indicates the embedding provider was reachable but
	// returned an error or an unusable payload. This is a runtime upstream
	// failure, distinct from the provider being unconfigured (which yields a
	// degraded fallback result instead of an error).
	ErrUpstreamEmbedding = errors.New("upstream embedding failure")

	// ErrDimensionMismatch indicates the query embedding and a stored grant
	// embedding have incompatible lengths. This signals corpus/provider
	// version skew and fails the whole request; no partial results are
	// returned.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
