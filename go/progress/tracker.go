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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"golang.org/x/exp/slices"
)

const (
	ProgressKey  = "security-playground-progress"
	CompletedKey = "completed-modules"
)

// Record is the persisted snapshot of a learner's progress.
type Record struct {
	ModuleID         string   `json:"moduleId,omitempty"`
	CompletedModules []string `json:"completedModules"`
	Timestamp        string   `json:"timestamp"` // ISO-8601, UTC
}

// Time parses the timestamp of the record.
func (r Record) Time() (time.Time, error) {
	return time.Parse(time.RFC3339Nano, r.Timestamp)
}

// Tracker reads and writes progress records in a Store. The snapshot and
// the list of completed modules are kept under separate keys and are
// updated independently.
type Tracker struct {
	store Store
	now   func() time.Time
	log   log.Logger
}

func NewTracker(store Store) *Tracker {
	return &Tracker{
		store: store,
		now:   time.Now,
		log:   log.Root(),
	}
}

// WithClock returns a copy of the tracker stamping records with the given
// clock.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	res := *t
	res.now = now
	return &res
}

// WithLogger returns a copy of the tracker reporting to the given logger.
func (t *Tracker) WithLogger(logger log.Logger) *Tracker {
	res := *t
	res.log = logger
	return &res
}

// Save writes a snapshot holding the given module, which may be empty, and
// the modules completed so far.
func (t *Tracker) Save(moduleID string) (Record, error) {
	completed, err := t.Completed()
	if err != nil {
		return Record{}, err
	}
	record := Record{
		ModuleID:         moduleID,
		CompletedModules: completed,
		Timestamp:        t.now().UTC().Format(time.RFC3339Nano),
	}
	data, err := json.Marshal(record)
	if err != nil {
		return Record{}, err
	}
	if err := t.store.Put(ProgressKey, data); err != nil {
		return Record{}, fmt.Errorf("failed to save progress: %w", err)
	}
	t.log.Debug("Saved progress", "module", moduleID, "completed", len(completed))
	return record, nil
}

// Load returns the last saved snapshot. ErrNotFound is returned if nothing
// was saved yet.
func (t *Tracker) Load() (Record, error) {
	data, err := t.store.Get(ProgressKey)
	if err != nil {
		return Record{}, err
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return Record{}, fmt.Errorf("invalid progress record: %w", err)
	}
	if _, err := record.Time(); err != nil {
		return Record{}, fmt.Errorf("invalid progress record: %w", err)
	}
	return record, nil
}

// Completed lists the completed modules in the order they were completed.
func (t *Tracker) Completed() ([]string, error) {
	data, err := t.store.Get(CompletedKey)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var res []string
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("invalid list of completed modules: %w", err)
	}
	if res == nil {
		res = []string{}
	}
	return res, nil
}

// MarkCompleted appends the module to the list of completed modules. It
// reports whether the module was added; modules already on the list are
// not added twice.
func (t *Tracker) MarkCompleted(moduleID string) (bool, error) {
	completed, err := t.Completed()
	if err != nil {
		return false, err
	}
	if slices.Contains(completed, moduleID) {
		return false, nil
	}
	data, err := json.Marshal(append(completed, moduleID))
	if err != nil {
		return false, err
	}
	if err := t.store.Put(CompletedKey, data); err != nil {
		return false, fmt.Errorf("failed to mark module %s as completed: %w", moduleID, err)
	}
	t.log.Debug("Marked module as completed", "module", moduleID)
	return true, nil
}
