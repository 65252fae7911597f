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
	"errors"
	"fmt"
	"time"

	"github.com/Fantom-foundation/Playground/go/progress"
)

// SaveProgress records the current module and the completed modules in the
// progress store.
func (s *Session) SaveProgress() (progress.Record, error) {
	var res progress.Record
	err := s.run(Idle, func() error {
		s.mu.Lock()
		moduleID := ""
		if s.module != nil {
			moduleID = s.module.ID
		}
		s.mu.Unlock()

		record, err := s.tracker.Save(moduleID)
		if err != nil {
			s.appendLog(fmt.Sprintf("Failed to save progress: %v", err))
			return err
		}
		res = record
		s.appendLog("Progress saved")
		return nil
	})
	return res, err
}

// LoadProgress returns the last saved progress record. If nothing was saved
// yet, progress.ErrNotFound is returned and nothing is logged.
func (s *Session) LoadProgress() (progress.Record, error) {
	var res progress.Record
	err := s.run(Idle, func() error {
		record, err := s.tracker.Load()
		if errors.Is(err, progress.ErrNotFound) {
			return err
		}
		if err != nil {
			s.appendLog("Failed to load progress")
			s.log.Warn("Failed to load progress", "err", err)
			return err
		}
		res = record

		when, _ := record.Time() // validated by the tracker
		s.appendLog(fmt.Sprintf("Progress loaded from %s", when.Local().Format(time.DateTime)))
		return nil
	})
	return res, err
}

// MarkModuleCompleted adds the module to the durable list of completed
// modules. Marking a module twice has no effect.
func (s *Session) MarkModuleCompleted(moduleID string) error {
	return s.run(Idle, func() error {
		added, err := s.tracker.MarkCompleted(moduleID)
		if err != nil {
			s.appendLog(fmt.Sprintf("Failed to mark module %s as completed: %v", moduleID, err))
			return err
		}
		if added {
			s.appendLog(fmt.Sprintf("Module %s marked as completed!", moduleID))
		}
		return nil
	})
}

// CompletedModules lists the completed modules in completion order.
func (s *Session) CompletedModules() ([]string, error) {
	return s.tracker.Completed()
}
