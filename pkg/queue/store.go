// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package queue provides the shared matchmaking queue store. The store keeps
// one entry per waiting player, ordered by skill rating, and exposes the
// pair-or-enqueue step as a single indivisible operation so that two
// concurrent enqueues can never claim the same opposing player.
package queue

import (
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// ToleranceFunc returns the current accepted rating distance of a waiting
// entry, widening with the time the entry has already spent in queue.
type ToleranceFunc func(entry models.QueueEntry) int

// Store is the queue shared by all matchmaker instances.
type Store interface {
	// PairOrEnqueue inserts entry into the queue, then scans for another
	// queued player whose rating distance to entry is within the caller's
	// tolerance or within the waiting player's own current tolerance.
	// If an opponent is found, both players are removed and the opponent is
	// returned; otherwise entry stays queued and the opponent is nil.
	// The whole step is atomic relative to every other store operation.
	PairOrEnqueue(entry models.QueueEntry, tolerance int) (*models.QueueEntry, error)

	// Enqueue inserts entry without attempting to pair. Used to put a player
	// back into the queue with the original EnqueuedAt preserved.
	Enqueue(entry models.QueueEntry) error

	// Remove deletes the entry for playerID, reporting whether one existed.
	Remove(playerID playerdata.ID) (bool, error)

	// Get returns the current entry for playerID.
	Get(playerID playerdata.ID) (models.QueueEntry, bool, error)

	// Count returns the number of waiting players.
	Count() (int, error)

	// Ratings returns the skill ratings of all waiting players.
	Ratings() ([]float64, error)
}
