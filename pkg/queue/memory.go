// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package queue

import (
	"time"

	pie "github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-pvp-duel/pkg/constants"
	"github.com/AccelByte/extend-pvp-duel/pkg/mathutil"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// MemoryStore is the in-process Store implementation. A single lock guards
// every mutation, which is what makes PairOrEnqueue indivisible; an acquire
// that cannot complete within constants.QueueLockTimeLimit surfaces as
// models.ErrQueueUnavailable so callers can retry the enqueue.
type MemoryStore struct {
	lock         chan struct{}
	entries      map[playerdata.ID]models.QueueEntry
	toleranceFor ToleranceFunc
}

// NewMemoryStore returns an empty store. toleranceFor supplies the current
// tolerance of waiting entries during the pairing scan; a nil func restricts
// the scan to the caller's tolerance only.
func NewMemoryStore(toleranceFor ToleranceFunc) *MemoryStore {
	return &MemoryStore{
		lock:         make(chan struct{}, 1),
		entries:      make(map[playerdata.ID]models.QueueEntry),
		toleranceFor: toleranceFor,
	}
}

func (s *MemoryStore) acquire() error {
	select {
	case s.lock <- struct{}{}:
		return nil
	case <-time.After(constants.QueueLockTimeLimit):
		return models.ErrQueueUnavailable
	}
}

func (s *MemoryStore) release() {
	<-s.lock
}

func (s *MemoryStore) PairOrEnqueue(entry models.QueueEntry, tolerance int) (*models.QueueEntry, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	// a re-enqueue of the same player is a full reset of the old entry
	s.entries[entry.PlayerID] = entry

	opponent, found := s.bestOpponent(entry, tolerance)
	if !found {
		return nil, nil
	}

	delete(s.entries, entry.PlayerID)
	delete(s.entries, opponent.PlayerID)

	return &opponent, nil
}

// bestOpponent picks the queued player with the smallest rating distance to
// entry; exact distance ties go to the longest waiter. A waiting player is in
// range when the distance fits the caller's tolerance or the waiter's own
// widened tolerance. Caller must hold the store lock.
func (s *MemoryStore) bestOpponent(entry models.QueueEntry, tolerance int) (models.QueueEntry, bool) {
	inRange := pie.Filter(pie.Values(s.entries), func(e models.QueueEntry) bool {
		if e.PlayerID == entry.PlayerID {
			return false
		}
		distance := mathutil.Abs(e.SkillRating - entry.SkillRating)
		if distance <= tolerance {
			return true
		}
		return s.toleranceFor != nil && distance <= s.toleranceFor(e)
	})
	if len(inRange) == 0 {
		return models.QueueEntry{}, false
	}

	best := inRange[0]
	bestDistance := mathutil.Abs(best.SkillRating - entry.SkillRating)
	for _, candidate := range inRange[1:] {
		distance := mathutil.Abs(candidate.SkillRating - entry.SkillRating)
		if distance < bestDistance ||
			(distance == bestDistance && candidate.EnqueuedAt.Before(best.EnqueuedAt)) {
			best = candidate
			bestDistance = distance
		}
	}

	return best, true
}

func (s *MemoryStore) Enqueue(entry models.QueueEntry) error {
	if err := s.acquire(); err != nil {
		return err
	}
	defer s.release()

	s.entries[entry.PlayerID] = entry

	return nil
}

func (s *MemoryStore) Remove(playerID playerdata.ID) (bool, error) {
	if err := s.acquire(); err != nil {
		return false, err
	}
	defer s.release()

	_, existed := s.entries[playerID]
	delete(s.entries, playerID)

	return existed, nil
}

func (s *MemoryStore) Get(playerID playerdata.ID) (models.QueueEntry, bool, error) {
	if err := s.acquire(); err != nil {
		return models.QueueEntry{}, false, err
	}
	defer s.release()

	entry, ok := s.entries[playerID]

	return entry, ok, nil
}

func (s *MemoryStore) Count() (int, error) {
	if err := s.acquire(); err != nil {
		return 0, err
	}
	defer s.release()

	return len(s.entries), nil
}

func (s *MemoryStore) Ratings() ([]float64, error) {
	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	return pie.Map(pie.Values(s.entries), func(e models.QueueEntry) float64 {
		return float64(e.SkillRating)
	}), nil
}
