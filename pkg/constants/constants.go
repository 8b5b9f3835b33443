// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	QueueLockTimeLimit = 10 * time.Second
)

// DefaultMatchPool is the metrics label for the single ranked duel pool.
const DefaultMatchPool = "pvp:duel"

// Player queue states as reported by GetStatus.
const (
	StateQueued  = "queued"
	StateMatched = "matched"
)

const (
	EnqueueFunction  = "enqueue"
	SimulateFunction = "simulate"

	// Unmatched reason constants.
	UnmatchedReasonEmptyQueue         = "unmatched_empty_queue"
	UnmatchedReasonNoOpponentInRange  = "unmatched_no_opponent_in_range"
	UnmatchedReasonStoreUnavailable   = "unmatched_store_unavailable"

	// Expiry reason constants.
	ExpiredReasonAcceptTimeout   = "expired_accept_timeout"
	ExpiredReasonPlayerCancelled = "expired_player_cancelled"
)

// Item affix types recognized by the effective stats resolver.
// Unknown affix types are ignored.
const (
	AffixCharisma     = "charisma"
	AffixStrength     = "strength"
	AffixIntellect    = "intellect"
	AffixVitality     = "vitality"
	AffixHpPercent    = "hp_percent"
	AffixCritChance   = "crit_chance"
	AffixCritDamage   = "crit_damage"
	AffixLifeSteal    = "lifesteal"
	AffixWeaponDamage = "weapon_damage"
)
