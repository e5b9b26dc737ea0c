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


package reembed

import (
	"context"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// DefaultBatchSize is the batch width used when none is configured.
const DefaultBatchSize = 100

// GrantIterator walks the stored grant corpus in fixed-size batches.
type GrantIterator struct {
	repo      storage.GrantRepository
	batchSize int
}

// NewGrantIterator creates an iterator over repo. A batchSize of zero or
// less falls back to DefaultBatchSize.
func NewGrantIterator(repo storage.GrantRepository, batchSize int) *GrantIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &GrantIterator{
		repo:      repo,
		batchSize: batchSize,
	}
}

// ForEach calls fn once per batch until the corpus is exhausted or fn
// returns an error. Cancellation is observed between batches.
func (it *GrantIterator) ForEach(ctx context.Context, fn func([]*core.Grant) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	grants, err := it.repo.AllGrants(ctx)
	if err != nil {
		return err
	}

	for i := 0; i < len(grants); i += it.batchSize {
		end := min(i+it.batchSize, len(grants))
		if err := fn(grants[i:end]); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}

	return nil
}
