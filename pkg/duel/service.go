// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package duel wires the matchmaker, the match lifecycle and the combat
// simulator into the transport-agnostic duel operations.
package duel

import (
	"context"
	"sync"

	"github.com/AccelByte/extend-pvp-duel/pkg/combat"
	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/matchmaker"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// Service exposes the duel operations: enqueue, dequeue, accept, status and
// simulate. When the second player accepts a match, the duel is simulated
// asynchronously; the server is authoritative and finishes the computation
// regardless of client presence.
type Service struct {
	mm  matchmaker.Matchmaker
	sim *combat.Simulator

	mu      sync.RWMutex
	results map[string]*models.DuelResult

	// inflight lets tests and shutdown wait for async duels.
	inflight sync.WaitGroup
}

func NewService(mm matchmaker.Matchmaker, sim *combat.Simulator) *Service {
	return &Service{
		mm:      mm,
		sim:     sim,
		results: make(map[string]*models.DuelResult),
	}
}

func (s *Service) Enqueue(scope *envelope.Scope, playerID playerdata.ID) (*models.MatchCandidate, error) {
	return s.mm.Enqueue(scope, playerID)
}

func (s *Service) Dequeue(scope *envelope.Scope, playerID playerdata.ID) (bool, error) {
	return s.mm.Dequeue(scope, playerID)
}

func (s *Service) Status(scope *envelope.Scope, playerID playerdata.ID) (*models.QueueStatus, error) {
	return s.mm.GetStatus(scope, playerID)
}

// Accept records the acceptance and, on the transition that completes the
// pair, starts the duel in the background.
func (s *Service) Accept(scope *envelope.Scope, playerID playerdata.ID, matchID string) (bool, error) {
	ready, err := s.mm.Accept(scope, playerID, matchID)
	if err != nil || !ready {
		return ready, err
	}

	cand, err := s.mm.Candidate(scope, matchID)
	if err != nil {
		return false, err
	}

	s.inflight.Add(1)
	go s.runDuel(cand)

	return true, nil
}

// Simulate runs a duel synchronously. It is also the direct entry point for
// replays and offline resolution.
func (s *Service) Simulate(scope *envelope.Scope, matchID string, playerA, playerB playerdata.ID) (*models.DuelResult, error) {
	return s.sim.Simulate(scope, matchID, playerA, playerB)
}

// LastResult returns the outcome of a completed duel, if any.
func (s *Service) LastResult(matchID string) (*models.DuelResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[matchID]

	return result, ok
}

// Wait blocks until all in-flight duels have completed.
func (s *Service) Wait() {
	s.inflight.Wait()
}

func (s *Service) runDuel(cand models.MatchCandidate) {
	defer s.inflight.Done()

	// the duel runs detached from the accepting request's lifetime
	scope := envelope.NewRootScope(context.Background(), "duel.runDuel", "")
	defer scope.Finish()

	result, err := s.sim.Simulate(scope, cand.MatchID, cand.PlayerA, cand.PlayerB)
	if err != nil {
		scope.Log.Errorf("error simulating duel %s: %s", cand.MatchID, err)
		s.mm.FinishMatch(scope, cand.MatchID)
		return
	}

	s.mu.Lock()
	s.results[cand.MatchID] = result
	s.mu.Unlock()

	s.mm.FinishMatch(scope, cand.MatchID)
}
