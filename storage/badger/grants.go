package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/grantmatch/core"
	"github.com/poiesic/grantmatch/storage"
)

// GrantRepository implements storage.GrantRepository for BadgerDB.
type GrantRepository struct {
	backend *Backend
}

var _ storage.GrantRepository = (*GrantRepository)(nil)

// NewGrantRepository creates a new GrantRepository.
func NewGrantRepository(backend *Backend) (*GrantRepository, error) {
	return &GrantRepository{
		backend: backend,
	}, nil
}

// Close releases resources. GrantRepository has no resources to release.
func (r *GrantRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *GrantRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddGrants adds one or more grants to storage.
func (r *GrantRepository) AddGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, grant := range grants {
			// Use content-based ID if not set, so re-ingesting the same call
			// overwrites instead of duplicating.
			if grant.Id == 0 {
				grant.Id = grant.ContentID()
			}

			// Set timestamps
			grant.InsertedAt = time.Now().UTC()
			grant.UpdatedAt = grant.InsertedAt

			// Store primary record
			key := makeGrantKey(grant.Id)
			value := storage.MarshalGrant(grant)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Store content index
			contentKey := makeGrantContentKey(grant.FundingBody, grant.Title)
			if err := tx.Set(contentKey, storage.MarshalID(grant.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return grants, err
}

// UpdateGrants updates existing grants.
func (r *GrantRepository) UpdateGrants(ctx context.Context, grants ...*core.Grant) ([]*core.Grant, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, grant := range grants {
			key := makeGrantKey(grant.Id)

			// Read old grant to detect changes
			old, err := readGrant(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Update timestamp
			grant.UpdatedAt = time.Now().UTC()

			// Store updated record
			value := storage.MarshalGrant(grant)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update content index if funding body or title changed
			if old.FundingBody != grant.FundingBody || old.Title != grant.Title {
				oldContentKey := makeGrantContentKey(old.FundingBody, old.Title)
				if err := tx.Delete(oldContentKey); err != nil {
					return err
				}
				newContentKey := makeGrantContentKey(grant.FundingBody, grant.Title)
				if err := tx.Set(newContentKey, storage.MarshalID(grant.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return grants, err
}

// DeleteGrants removes grants by their IDs.
func (r *GrantRepository) DeleteGrants(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeGrantKey(id)

			// Read grant to get metadata for index cleanup
			grant, err := readGrant(tx, key)
			if err != nil {
				return err
			}
			if grant == nil {
				return storage.ErrNotFound
			}

			// Delete from content index
			contentKey := makeGrantContentKey(grant.FundingBody, grant.Title)
			if err := tx.Delete(contentKey); err != nil {
				return err
			}

			// Delete primary record
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetGrant retrieves a single grant by ID.
func (r *GrantRepository) GetGrant(ctx context.Context, id core.ID) (*core.Grant, error) {
	var result *core.Grant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeGrantKey(id)
		var err error
		result, err = readGrant(tx, key)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetGrants retrieves multiple grants by their IDs.
func (r *GrantRepository) GetGrants(ctx context.Context, ids ...core.ID) ([]*core.Grant, error) {
	var result []*core.Grant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeGrantKey(id)
			grant, err := readGrant(tx, key)
			if err != nil {
				return err
			}
			if grant != nil {
				result = append(result, grant)
			}
		}
		return nil
	}, false)
	return result, err
}

// FindGrantByContent finds a grant by its (funding body, title) tuple.
func (r *GrantRepository) FindGrantByContent(ctx context.Context, fundingBody, title string) (*core.Grant, error) {
	var result *core.Grant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Look up ID from content index
		contentKey := makeGrantContentKey(fundingBody, title)
		item, err := tx.Get(contentKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var grantID core.ID
		err = item.Value(func(val []byte) error {
			grantID, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		// Look up full grant
		grantKey := makeGrantKey(grantID)
		result, err = readGrant(tx, grantKey)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllGrants retrieves the full corpus from storage. Every grant is decoded
// from its stored bytes, so the returned slice is an independent snapshot.
func (r *GrantRepository) AllGrants(ctx context.Context) ([]*core.Grant, error) {
	var results []*core.Grant
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		prefix := []byte(grantRecordPrefix + ":")
		for iter.Seek(prefix); iter.Valid(); iter.Next() {
			item := iter.Item()
			key := item.Key()

			// Stop if we've moved past grant keys
			if !hasPrefix(key, prefix) {
				break
			}

			var grant *core.Grant
			err := item.Value(func(val []byte) error {
				var err error
				grant, err = storage.UnmarshalGrant(val)
				return err
			})
			if err != nil {
				return err
			}

			if grant != nil {
				results = append(results, grant)
			}
		}
		return nil
	}, false)

	return results, err
}

// Helper methods

// hasPrefix checks if a byte slice has a given prefix
func hasPrefix(s, prefix []byte) bool {
	return len(s) >= len(prefix) && string(s[:len(prefix)]) == string(prefix)
}

// readGrant reads a grant from the transaction.
func readGrant(tx *badger.Txn, key []byte) (*core.Grant, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var grant *core.Grant
	err = item.Value(func(val []byte) error {
		var err error
		grant, err = storage.UnmarshalGrant(val)
		return err
	})
	return grant, err
}
