// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker provides the core interfaces for the skill-based duel
// matchmaking system.
package matchmaker

import (
	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

/*
Matchmaker pairs players for ranked duels by skill rating.

Enqueue is a single atomic unit of work: any prior queue entry for the player
is removed first (a duplicate enqueue is a full reset, not an error), the
player's rating is resolved, and the queue is scanned for an opponent within
the current tolerance. On success both players leave the queue and a
MatchCandidate in the awaiting-accept state is returned; otherwise the player
stays queued and the candidate is nil. On a store failure no partial state
remains visible.
*/
type Matchmaker interface {
	// Enqueue queues playerID and attempts to pair them immediately.
	Enqueue(scope *envelope.Scope, playerID playerdata.ID) (*models.MatchCandidate, error)

	// Dequeue removes playerID from the queue, cancelling a pending match
	// candidate if one exists. It reports whether any state was removed and
	// is a safe no-op for an unknown player. It must be invoked on client
	// disconnect.
	Dequeue(scope *envelope.Scope, playerID playerdata.ID) (bool, error)

	// Accept records playerID's confirmation of matchID. It returns true
	// exactly on the transition that completes the pair; the first acceptance
	// and duplicate acceptances return false without error.
	Accept(scope *envelope.Scope, playerID playerdata.ID, matchID string) (bool, error)

	// GetStatus returns the derived queue/match view for playerID, or nil if
	// the player has no matchmaking state. It never mutates state.
	GetStatus(scope *envelope.Scope, playerID playerdata.ID) (*models.QueueStatus, error)

	// Candidate returns the current candidate for matchID.
	Candidate(scope *envelope.Scope, matchID string) (models.MatchCandidate, error)

	// FinishMatch marks matchID's duel as completed and releases its
	// lifecycle state.
	FinishMatch(scope *envelope.Scope, matchID string)
}

// RatingProvider resolves a player's skill rating from the external rating
// store. ok is false when the player has no rating record yet; the matchmaker
// falls back to the configured default rating in that case.
type RatingProvider interface {
	GetRating(scope *envelope.Scope, playerID playerdata.ID) (rating int, ok bool, err error)
}
