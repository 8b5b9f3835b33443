// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"sync"

	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// StubRatingProvider serves ratings from a fixed map.
type StubRatingProvider struct {
	Ratings map[playerdata.ID]int
	Err     error
}

func (s StubRatingProvider) GetRating(scope *envelope.Scope, playerID playerdata.ID) (int, bool, error) {
	if s.Err != nil {
		return 0, false, s.Err
	}
	rating, ok := s.Ratings[playerID]
	return rating, ok, nil
}

// StubPlayerProvider serves player profiles from a fixed map.
type StubPlayerProvider struct {
	Players map[playerdata.ID]playerdata.PlayerData
	Err     error
}

func (s StubPlayerProvider) GetPlayer(scope *envelope.Scope, playerID playerdata.ID) (playerdata.PlayerData, bool, error) {
	if s.Err != nil {
		return playerdata.PlayerData{}, false, s.Err
	}
	player, ok := s.Players[playerID]
	return player, ok, nil
}

// StubInventoryProvider serves equipped item affixes from a fixed map.
type StubInventoryProvider struct {
	Items map[playerdata.ID][]models.ItemAffix
	Err   error
}

func (s StubInventoryProvider) GetEquippedItems(scope *envelope.Scope, playerID playerdata.ID) ([]models.ItemAffix, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items[playerID], nil
}

// StubRecorder collects recorded duels for assertions.
type StubRecorder struct {
	mu       sync.Mutex
	Recorded []models.DuelResult
	Err      error
}

func (s *StubRecorder) RecordDuel(scope *envelope.Scope, result models.DuelResult) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Recorded = append(s.Recorded, result)
	return nil
}

// RecordedCount returns the number of duels recorded so far.
func (s *StubRecorder) RecordedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Recorded)
}

// Last returns the most recently recorded duel.
func (s *StubRecorder) Last() (models.DuelResult, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Recorded) == 0 {
		return models.DuelResult{}, false
	}
	return s.Recorded[len(s.Recorded)-1], true
}
