package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/licitia/radar/core"
	"github.com/licitia/radar/storage"
)

// ExperienceRepository implements storage.ExperienceRepository for BadgerDB.
type ExperienceRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ExperienceRepository = (*ExperienceRepository)(nil)

// NewExperienceRepository creates a new ExperienceRepository.
func NewExperienceRepository(backend *Backend) (*ExperienceRepository, error) {
	idSeq, err := backend.GetSequence(experienceIDSeq)
	if err != nil {
		return nil, err
	}

	return &ExperienceRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ExperienceRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ExperienceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddExperiences adds one or more experiences to storage.
func (r *ExperienceRepository) AddExperiences(ctx context.Context, experiences ...*core.Experience) ([]*core.Experience, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, experience := range experiences {
			nextID, err := r.idSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if nextID == 0 {
				nextID, err = r.idSeq.Next()
				if err != nil {
					return err
				}
			}
			experience.Id = core.ID(nextID)

			// Serialized timestamps carry microsecond precision, so stored
			// values must not be finer than what a read round-trips.
			experience.InsertedAt = time.Now().UTC().Truncate(time.Microsecond)
			experience.UpdatedAt = experience.InsertedAt

			key := makeExperienceKey(experience.Id)
			value := storage.MarshalExperience(experience)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			companyKey := makeExperienceCompanyKey(experience.CompanyName, experience.Id)
			if err := tx.Set(companyKey, storage.MarshalID(experience.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return experiences, err
}

// UpdateExperiences updates existing experiences.
func (r *ExperienceRepository) UpdateExperiences(ctx context.Context, experiences ...*core.Experience) ([]*core.Experience, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, experience := range experiences {
			key := makeExperienceKey(experience.Id)

			old, err := r.readExperience(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			experience.InsertedAt = old.InsertedAt
			experience.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

			value := storage.MarshalExperience(experience)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Move the company index entry if the company name changed.
			if normalizeCompanyKey(old.CompanyName) != normalizeCompanyKey(experience.CompanyName) {
				if err := tx.Delete(makeExperienceCompanyKey(old.CompanyName, old.Id)); err != nil {
					return err
				}
				companyKey := makeExperienceCompanyKey(experience.CompanyName, experience.Id)
				if err := tx.Set(companyKey, storage.MarshalID(experience.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return experiences, err
}

// DeleteExperiences removes experiences by their IDs.
func (r *ExperienceRepository) DeleteExperiences(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeExperienceKey(id)

			experience, err := r.readExperience(tx, key)
			if err != nil {
				return err
			}
			if experience == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeExperienceCompanyKey(experience.CompanyName, experience.Id)); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetExperience retrieves a single experience by ID.
func (r *ExperienceRepository) GetExperience(ctx context.Context, id core.ID) (*core.Experience, error) {
	var result *core.Experience
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeExperienceKey(id)
		var err error
		result, err = r.readExperience(tx, key)
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

// GetExperiences retrieves multiple experiences by their IDs.
func (r *ExperienceRepository) GetExperiences(ctx context.Context, ids ...core.ID) ([]*core.Experience, error) {
	var result []*core.Experience
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeExperienceKey(id)
			experience, err := r.readExperience(tx, key)
			if err != nil {
				return err
			}
			if experience != nil {
				result = append(result, experience)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetExperiencesByCompany retrieves all experiences recorded for a company.
func (r *ExperienceRepository) GetExperiencesByCompany(ctx context.Context, companyName string) ([]*core.Experience, error) {
	var results []*core.Experience
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialExperienceCompanyKey(companyName)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var experienceID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				experienceID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			experience, err := r.readExperience(tx, makeExperienceKey(experienceID))
			if err != nil {
				return err
			}
			if experience != nil {
				results = append(results, experience)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetAllExperiences retrieves every stored experience.
func (r *ExperienceRepository) GetAllExperiences(ctx context.Context) ([]*core.Experience, error) {
	var results []*core.Experience
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(experienceRecordPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Skip the sequence key, which shares the record prefix.
			if bytes.Equal(key, []byte(experienceIDSeq)) {
				continue
			}

			var experience *core.Experience
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				experience, err = storage.UnmarshalExperience(val)
				return err
			}); err != nil {
				return err
			}
			if experience != nil {
				results = append(results, experience)
			}
		}
		return nil
	}, false)

	return results, err
}

// readExperience reads an experience by key within a transaction.
// Returns nil, nil if the key doesn't exist.
func (r *ExperienceRepository) readExperience(tx *badger.Txn, key []byte) (*core.Experience, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var experience *core.Experience
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		experience, unmarshalErr = storage.UnmarshalExperience(val)
		return unmarshalErr
	})
	return experience, err
}
