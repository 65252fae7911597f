// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package progress

import (
	"errors"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	lerrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

// LevelDBStore is a Store backed by a LevelDB database.
type LevelDBStore struct {
	path string
	db   *leveldb.DB
}

func options() *opt.Options {
	return &opt.Options{
		Filter:                 filter.NewBloomFilter(10),
		OpenFilesCacheCapacity: 16,
	}
}

// OpenLevelDBStore opens or creates the database in the given directory. A
// corrupted database is recovered.
func OpenLevelDBStore(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, options())
	if _, corrupted := err.(*lerrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open progress database %s: %w", path, err)
	}
	return &LevelDBStore{path: path, db: db}, nil
}

// NewLevelDBStore opens a database on the given storage. Tests use this with
// storage.NewMemStorage.
func NewLevelDBStore(stor storage.Storage) (*LevelDBStore, error) {
	db, err := leveldb.Open(stor, options())
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

func (s *LevelDBStore) Get(key string) ([]byte, error) {
	data, err := s.db.Get([]byte(key), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, ErrNotFound
	}
	if errors.Is(err, leveldb.ErrClosed) {
		return nil, ErrClosed
	}
	return data, err
}

func (s *LevelDBStore) Put(key string, value []byte) error {
	err := s.db.Put([]byte(key), value, nil)
	if errors.Is(err, leveldb.ErrClosed) {
		return ErrClosed
	}
	return err
}

// Path returns the directory of the database, empty for databases opened
// on a custom storage.
func (s *LevelDBStore) Path() string {
	return s.path
}

func (s *LevelDBStore) Close() error {
	return s.db.Close()
}
