// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package playerdata carries the player identity and base attributes the
// duel core consumes from the external profile store.
package playerdata

// ID is a player identifier.
type ID string

// IDToString converts a player ID to its string form.
func IDToString(id ID) string {
	return string(id)
}

// BaseStats are the raw, unmodified attributes of a player before any
// equipped item bonus is applied.
type BaseStats struct {
	Charisma  int // scales pre-crit damage and crit chance
	Strength  int // scales pre-crit damage and max HP
	Intellect int // scales mitigation
	Vitality  int // scales max HP
}

// PlayerData is the profile snapshot taken before a simulation starts.
type PlayerData struct {
	PlayerID ID
	Level    int
	Base     BaseStats
}
