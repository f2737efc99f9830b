package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.etcd.io/bbolt"
)

var qtableBucket = []byte("qtable")

// BoltStore keeps one record per state in a bbolt bucket, keyed by the state
// encoding.
type BoltStore struct {
	db *bbolt.DB
}

func OpenBoltStore(path string) (*BoltStore, error) {
	_, statErr := os.Stat(path)
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		if statErr == nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptTable, path, err)
		}
		if !errors.Is(statErr, fs.ErrNotExist) {
			return nil, fmt.Errorf("opening q-table database: %w", statErr)
		}
		return nil, fmt.Errorf("opening q-table database: %w", err)
	}
	return &BoltStore{db: db}, nil
}

// Save replaces the bucket contents in a single transaction.
func (s *BoltStore) Save(records []StateRecord) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(qtableBucket) != nil {
			if err := tx.DeleteBucket(qtableBucket); err != nil {
				return err
			}
		}
		bucket, err := tx.CreateBucket(qtableBucket)
		if err != nil {
			return err
		}
		for _, record := range records {
			value, err := json.Marshal(record.Actions)
			if err != nil {
				return fmt.Errorf("encoding state %q: %w", record.State, err)
			}
			if err := bucket.Put([]byte(record.State), value); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *BoltStore) Load() ([]StateRecord, error) {
	var records []StateRecord
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(qtableBucket)
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			var actions []ActionRecord
			if err := json.Unmarshal(v, &actions); err != nil {
				return fmt.Errorf("%w: state %q: %v", ErrCorruptTable, k, err)
			}
			records = append(records, StateRecord{State: string(k), Actions: actions})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
