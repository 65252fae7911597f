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
	"bytes"
	"sync"
)

// MemoryStore is a Store keeping all data in memory. It is safe for
// concurrent use.
type MemoryStore struct {
	data map[string][]byte
	lock sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if s.data == nil {
		return nil, ErrClosed
	}
	if entry, ok := s.data[key]; ok {
		return bytes.Clone(entry), nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Put(key string, value []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.data == nil {
		return ErrClosed
	}
	s.data[key] = bytes.Clone(value)
	return nil
}

// Close drops the content of the store. Any later access fails.
func (s *MemoryStore) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.data = nil
	return nil
}
