// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package models holds the data objects shared between the queue store, the
// matchmaker, the combat simulator and their collaborators.
package models

import (
	"time"

	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// QueueEntry is one waiting player in the matchmaking queue. The entry also
// carries the wait metadata: EnqueuedAt drives both the tolerance widening
// and the oldest-waiter tie break, so its lifetime is exactly the queue
// lifetime of the player.
type QueueEntry struct {
	PlayerID    playerdata.ID
	SkillRating int
	EnqueuedAt  time.Time
}

// CandidateState is the lifecycle state of a proposed match.
type CandidateState string

const (
	CandidateAwaitingAccept CandidateState = "awaiting_accept"
	CandidateAccepted       CandidateState = "accepted"
	CandidateCancelled      CandidateState = "cancelled"
	CandidateExpired        CandidateState = "expired"
	CandidateFinished       CandidateState = "finished"
)

// Terminal reports whether no further transition is allowed from the state.
func (s CandidateState) Terminal() bool {
	return s == CandidateCancelled || s == CandidateExpired || s == CandidateFinished
}

// MatchCandidate is a transient pairing proposal produced by the matchmaker
// and owned by the lifecycle manager until it reaches a terminal state.
type MatchCandidate struct {
	MatchID   string
	PlayerA   playerdata.ID
	PlayerB   playerdata.ID
	CreatedAt time.Time
	State     CandidateState
}

// HasPlayer reports whether id is one of the two members of the pair.
func (c MatchCandidate) HasPlayer(id playerdata.ID) bool {
	return c.PlayerA == id || c.PlayerB == id
}

// Opponent returns the other member of the pair.
func (c MatchCandidate) Opponent(id playerdata.ID) (playerdata.ID, bool) {
	switch id {
	case c.PlayerA:
		return c.PlayerB, true
	case c.PlayerB:
		return c.PlayerA, true
	}
	return "", false
}

// QueueStatus is the derived, read-only view of a player's matchmaking state.
type QueueStatus struct {
	State            string
	MatchID          *string
	WaitingSeconds   int
	CurrentTolerance int
}

// ItemAffix is a single bonus line on an equipped item, as returned by the
// external inventory store. Percent affixes carry their value in whole
// percents and are scaled down by the resolver.
type ItemAffix struct {
	Type      string
	Value     float64
	IsPercent bool
}

// EffectiveStats are a combatant's attributes after folding in all equipped
// item bonuses, recomputed fresh for every duel since equipment may change
// between fights.
type EffectiveStats struct {
	Charisma  int
	Strength  int
	Intellect int
	Vitality  int
	Level     int

	// Derived stats.
	TotalHp            float64
	WeaponDamage       float64
	CritChancePercent  float64
	CritDamagePercent  float64
	LifeSteal          float64
	HpPercent          float64
	DamagePercent      float64
	FlatMitigation     float64
	MitigationCapBonus float64
}

// TurnRecord is one entry of the combat log.
type TurnRecord struct {
	Turn            int
	AttackerID      playerdata.ID
	DefenderID      playerdata.ID
	Damage          float64
	LifeStolen      float64
	AttackerHpAfter float64
	DefenderHpAfter float64
	DisplayCrit     bool
}

// DuelResult is the sole output of a combat simulation. It is immutable once
// produced; the recorder receives its own deep copy.
type DuelResult struct {
	MatchID        string
	AttackerID     playerdata.ID
	DefenderID     playerdata.ID
	AttackerHpLeft float64
	DefenderHpLeft float64
	WinnerID       playerdata.ID
	TurnLog        []TurnRecord
	Seed           int64
	EndedAt        time.Time
}
