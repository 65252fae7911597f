// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package playground

import (
	"sync"

	"github.com/Fantom-foundation/Playground/go/progress"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Manager hosts independent sessions in one process. All sessions share
// the progress store; nothing else is shared.
type Manager struct {
	config   Config
	store    progress.Store
	created  uint64
	sessions map[string]*Session
	lock     sync.Mutex
}

// NewManager creates a manager whose sessions use the given configuration
// and keep progress in the given store. If the configuration fixes a seed,
// the n-th session is seeded with seed+n.
func NewManager(config Config, store progress.Store) *Manager {
	return &Manager{
		config:   config,
		store:    store,
		sessions: map[string]*Session{},
	}
}

func (m *Manager) Create(options ...Option) *Session {
	m.lock.Lock()
	defer m.lock.Unlock()

	config := m.config
	if config.Seed != 0 {
		config.Seed += m.created
	}
	m.created++

	options = append([]Option{WithStore(m.store)}, options...)
	session := NewSession(config, options...)
	m.sessions[session.ID()] = session
	return session
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()
	session, found := m.sessions[id]
	return session, found
}

// Close drops the session with the given id and reports whether it existed.
func (m *Manager) Close(id string) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	_, found := m.sessions[id]
	delete(m.sessions, id)
	return found
}

// Sessions lists the ids of all open sessions in lexicographical order.
func (m *Manager) Sessions() []string {
	m.lock.Lock()
	defer m.lock.Unlock()
	ids := maps.Keys(m.sessions)
	slices.Sort(ids)
	return ids
}
