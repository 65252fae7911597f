// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package playground sequences the steps of a security lesson: compiling
// the lesson's contracts, deploying them on a simulated ledger, running the
// exploit and verifying a fix. A Session narrates every step in a bounded
// log and keeps a durable record of completed lessons.
package playground

import (
	"fmt"
	"sync"
	"time"

	"github.com/Fantom-foundation/Playground/go/analyzer"
	"github.com/Fantom-foundation/Playground/go/chain"
	"github.com/Fantom-foundation/Playground/go/ledger"
	"github.com/Fantom-foundation/Playground/go/lesson"
	"github.com/Fantom-foundation/Playground/go/progress"
	"github.com/ethereum/go-ethereum/log"
	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"pgregory.net/rand"
)

//go:generate mockgen -source session.go -destination session_mock.go -package playground

// Compiler turns source into a compilation artifact. It is implemented by
// analyzer.Analyzer.
type Compiler interface {
	Compile(source string, contractName string) analyzer.Result
}

// ExploitResult is the outcome of running an exploit.
type ExploitResult struct {
	Success bool
	Logs    []string
}

// State is a snapshot of the state of a session.
type State struct {
	Module         *lesson.Module // nil if no module is loaded
	VulnerableCode string
	AttackCode     string
	FixedCode      string
	ActiveVariant  lesson.Variant
	Phase          Phase
	Logs           []string

	CompilationResult *analyzer.Result
	DeployedContracts map[string]chain.Address
	ExploitResult     *ExploitResult
}

func (s State) IsCompiling() bool { return s.Phase == Compiling }
func (s State) IsDeploying() bool { return s.Phase == Deploying }
func (s State) IsExecuting() bool { return s.Phase == Executing }

// Session is a single learner's playground. Sessions share nothing with
// each other except the progress store. Operations of a session may be
// called from multiple goroutines; they are executed one at a time.
type Session struct {
	id       string
	config   Config
	log      log.Logger
	now      func() time.Time
	rnd      *rand.Rand
	compiler Compiler
	store    progress.Store
	tracker  *progress.Tracker

	ops sync.Mutex // held for the duration of an operation

	mu            sync.Mutex // guards all fields below
	ledger        *ledger.Ledger
	module        *lesson.Module
	sources       map[lesson.Variant]string
	activeVariant lesson.Variant
	phase         Phase
	journal       *journal
	compilation   *analyzer.Result
	deployed      map[string]chain.Address
	exploit       *ExploitResult
	scenarios     map[string]Scenario
	onChange      func(State)
}

type Option func(*Session)

// WithStore makes the session keep its progress record in the given store.
// By default, progress is kept in memory.
func WithStore(store progress.Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithCompiler replaces the heuristic analyzer used by the session.
func WithCompiler(compiler Compiler) Option {
	return func(s *Session) {
		s.compiler = compiler
	}
}

func WithLogger(logger log.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

// WithClock replaces the wall clock used for block and progress timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession creates a session with a fresh ledger and no module loaded.
func NewSession(config Config, options ...Option) *Session {
	id := uuid.New().String()
	config = config.withDefaults()
	res := &Session{
		id:            id,
		config:        config,
		log:           log.New("session", id),
		now:           time.Now,
		sources:       map[lesson.Variant]string{},
		activeVariant: lesson.Vulnerable,
		journal:       newJournal(config.LogCapacity),
		deployed:      map[string]chain.Address{},
		scenarios:     defaultScenarios(),
	}
	for _, option := range options {
		option(res)
	}

	if config.Seed != 0 {
		res.rnd = rand.New(config.Seed)
	} else {
		res.rnd = rand.New()
	}
	if res.compiler == nil {
		res.compiler = analyzer.New(
			analyzer.WithVersion(config.CompilerVersion),
			analyzer.WithRandom(rand.New(res.rnd.Uint64())),
			analyzer.WithLogger(res.log),
		)
	}
	if res.store == nil {
		res.store = progress.NewMemoryStore()
	}
	res.tracker = progress.NewTracker(res.store).WithClock(res.now).WithLogger(res.log)
	res.ledger = res.newLedger()

	res.log.Debug("Created session", "seed", config.Seed)
	return res
}

func (s *Session) newLedger() *ledger.Ledger {
	return ledger.New(s.config.Ledger,
		ledger.WithRandom(rand.New(s.rnd.Uint64())),
		ledger.WithClock(s.now),
		ledger.WithLogger(s.log),
	)
}

func (s *Session) ID() string {
	return s.id
}

// OnStateChange registers a callback receiving a snapshot whenever the
// state of the session changes. The callback must not start operations on
// the session.
func (s *Session) OnStateChange(callback func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = callback
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) snapshot() State {
	res := State{
		VulnerableCode:    s.sources[lesson.Vulnerable],
		AttackCode:        s.sources[lesson.Attack],
		FixedCode:         s.sources[lesson.Fixed],
		ActiveVariant:     s.activeVariant,
		Phase:             s.phase,
		Logs:              s.journal.lines(),
		DeployedContracts: maps.Clone(s.deployed),
	}
	if s.module != nil {
		module := *s.module
		res.Module = &module
	}
	if s.compilation != nil {
		compilation := *s.compilation
		res.CompilationResult = &compilation
	}
	if s.exploit != nil {
		exploit := *s.exploit
		res.ExploitResult = &exploit
	}
	return res
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) IsCompiling() bool { return s.Phase() == Compiling }
func (s *Session) IsDeploying() bool { return s.Phase() == Deploying }
func (s *Session) IsExecuting() bool { return s.Phase() == Executing }

// Logs returns the retained log lines, oldest first.
func (s *Session) Logs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.lines()
}

// LogsSince returns the log lines appended after the given cursor, together
// with the cursor for the next call. Start with a zero cursor to follow the
// log from the beginning.
func (s *Session) LogsSince(cursor uint64) ([]string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.journal.since(cursor)
}

// Deployed returns the address of the contract registered under the given
// name.
func (s *Session) Deployed(name string) (chain.Address, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	address, found := s.deployed[name]
	return address, found
}

// Ledger returns a copy of the session's ledger.
func (s *Session) Ledger() *ledger.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// SelectVariant chooses whether exploits target the vulnerable or the
// fixed contract.
func (s *Session) SelectVariant(variant lesson.Variant) error {
	if variant != lesson.Vulnerable && variant != lesson.Fixed {
		return fmt.Errorf("%w: exploits target %s or %s contracts, not %q", ErrUnknownVariant, lesson.Vulnerable, lesson.Fixed, variant)
	}
	s.mu.Lock()
	s.activeVariant = variant
	s.mu.Unlock()
	s.notify()
	return nil
}

// SetCode replaces the source of the given variant, as done by an editor.
func (s *Session) SetCode(variant lesson.Variant, code string) error {
	if !variant.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
	s.mu.Lock()
	s.sources[variant] = code
	s.mu.Unlock()
	s.notify()
	return nil
}

// Stats summarizes the session.
type Stats struct {
	ledger.Stats
	CompletedModules int
	TotalModules     int
	CurrentModule    string
}

func (s *Session) Stats() Stats {
	completed, err := s.tracker.Completed()
	if err != nil {
		s.log.Warn("Failed to read completed modules", "err", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	res := Stats{
		Stats:            s.ledger.Stats(),
		CompletedModules: len(completed),
		TotalModules:     s.config.TotalModules,
		CurrentModule:    "None",
	}
	if s.module != nil {
		res.CurrentModule = s.module.Title
	}
	return res
}

// -- operation plumbing --

// run executes an operation in the given phase. Operations are serialized.
// A panic raised by the operation is converted into a log line and an
// error; in any case the session returns to idle once run returns.
func (s *Session) run(phase Phase, operation func() error) (err error) {
	s.ops.Lock()
	defer s.ops.Unlock()

	if phase != Idle {
		s.setPhase(phase)
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Operation failed", "phase", phase, "panic", r)
			s.appendLog(fmt.Sprintf("Internal error: %v", r))
			err = fmt.Errorf("%w: %v", ErrInternal, r)
		}
		s.setPhase(Idle)
	}()
	return operation()
}

func (s *Session) setPhase(phase Phase) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()
	s.notify()
}

func (s *Session) notify() {
	s.mu.Lock()
	callback := s.onChange
	var state State
	if callback != nil {
		state = s.snapshot()
	}
	s.mu.Unlock()

	if callback != nil {
		callback(state)
	}
}

func (s *Session) appendLog(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.journal.append(lines...)
	for _, line := range lines {
		s.log.Trace("Session log", "line", line)
	}
}
