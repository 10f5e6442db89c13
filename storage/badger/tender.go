package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/licitia/radar/core"
	"github.com/licitia/radar/storage"
)

// TenderRepository implements storage.TenderRepository for BadgerDB.
type TenderRepository struct {
	backend *Backend
}

var _ storage.TenderRepository = (*TenderRepository)(nil)

// NewTenderRepository creates a new TenderRepository.
func NewTenderRepository(backend *Backend) (*TenderRepository, error) {
	return &TenderRepository{
		backend: backend,
	}, nil
}

// Close is a no-op; tenders use content-based IDs and hold no sequence.
func (r *TenderRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *TenderRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// UpsertTenders inserts or updates tenders keyed by their external id.
func (r *TenderRepository) UpsertTenders(ctx context.Context, tenders ...*core.Tender) (inserted, updated int, err error) {
	err = r.backend.WithTx(func(tx *badger.Txn) error {
		for _, tender := range tenders {
			tender.Id = core.IDFromContent(tender.ExternalId)
			key := makeTenderKey(tender.Id)

			old, err := r.readTender(tx, key)
			if err != nil {
				return err
			}

			// Truncated to match the microsecond precision of the
			// serialized form.
			now := time.Now().UTC().Truncate(time.Microsecond)
			if old == nil {
				tender.InsertedAt = now
				inserted++
			} else {
				tender.InsertedAt = old.InsertedAt
				updated++
			}
			tender.UpdatedAt = now

			value := storage.MarshalTender(tender)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Maintain the publication date index. Undated tenders are not
			// indexed and stay out of date-ordered queries.
			if old != nil && old.PublicationDate != nil {
				if tender.PublicationDate == nil || !old.PublicationDate.Equal(*tender.PublicationDate) {
					if err := tx.Delete(makeTenderDateKey(*old.PublicationDate, old.Id)); err != nil {
						return err
					}
				}
			}
			if tender.PublicationDate != nil {
				if old == nil || old.PublicationDate == nil || !old.PublicationDate.Equal(*tender.PublicationDate) {
					dateKey := makeTenderDateKey(*tender.PublicationDate, tender.Id)
					if err := tx.Set(dateKey, storage.MarshalID(tender.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

// GetTender retrieves a single tender by ID.
func (r *TenderRepository) GetTender(ctx context.Context, id core.ID) (*core.Tender, error) {
	var result *core.Tender
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeTenderKey(id)
		var err error
		result, err = r.readTender(tx, key)
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

// GetTenders retrieves multiple tenders by their IDs.
func (r *TenderRepository) GetTenders(ctx context.Context, ids ...core.ID) ([]*core.Tender, error) {
	var result []*core.Tender
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTenderKey(id)
			tender, err := r.readTender(tx, key)
			if err != nil {
				return err
			}
			if tender != nil {
				result = append(result, tender)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetTenderByExternalId retrieves a tender by its SECOP external id.
func (r *TenderRepository) GetTenderByExternalId(ctx context.Context, externalId string) (*core.Tender, error) {
	return r.GetTender(ctx, core.IDFromContent(externalId))
}

// GetTendersByDateRange retrieves tenders published within a time range.
func (r *TenderRepository) GetTendersByDateRange(ctx context.Context, start, end time.Time) ([]*core.Tender, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.Tender
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialTenderDateKey(start)
		endKey := makePartialTenderDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			var tenderID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				tenderID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			tender, err := r.readTender(tx, makeTenderKey(tenderID))
			if err != nil {
				return err
			}
			if tender != nil {
				results = append(results, tender)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentTenders retrieves the N most recently published tenders.
func (r *TenderRepository) GetRecentTenders(ctx context.Context, limit int) ([]*core.Tender, error) {
	var results []*core.Tender
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index and walk backwards.
		startKey := makePartialTenderDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(tenderDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var tenderID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				tenderID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			tender, err := r.readTender(tx, makeTenderKey(tenderID))
			if err != nil {
				return err
			}
			if tender != nil {
				results = append(results, tender)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteTenders removes tenders by their IDs.
func (r *TenderRepository) DeleteTenders(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeTenderKey(id)

			tender, err := r.readTender(tx, key)
			if err != nil {
				return err
			}
			if tender == nil {
				return storage.ErrNotFound
			}

			if tender.PublicationDate != nil {
				if err := tx.Delete(makeTenderDateKey(*tender.PublicationDate, tender.Id)); err != nil {
					return err
				}
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readTender reads a tender by key within a transaction.
// Returns nil, nil if the key doesn't exist.
func (r *TenderRepository) readTender(tx *badger.Txn, key []byte) (*core.Tender, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var tender *core.Tender
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		tender, unmarshalErr = storage.UnmarshalTender(val)
		return unmarshalErr
	})
	return tender, err
}
