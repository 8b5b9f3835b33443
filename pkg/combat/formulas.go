// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package combat implements the stat formula engine, the effective stats
// resolver and the deterministic duel simulator.
package combat

import (
	"github.com/AccelByte/extend-pvp-duel/pkg/config"
	"github.com/AccelByte/extend-pvp-duel/pkg/mathutil"
)

// Formulas maps effective attribute values to combat numbers. All functions
// are pure and deterministic. The multiplication and addition order is part
// of the contract: the results are player-visible, so the arithmetic must not
// be reordered.
type Formulas struct {
	balance *config.Balance
}

func NewFormulas(balance *config.Balance) *Formulas {
	return &Formulas{balance: balance}
}

// Mitigation returns the fractional damage reduction for a defender with
// effective intellect zEff, clamped to [0, MitCap+capBonus].
func (f *Formulas) Mitigation(zEff, flatMitigation, capBonus float64) float64 {
	mitigationZ := 0.60 * (zEff / (zEff + f.balance.MitCurveConst))

	return mathutil.Clamp(mitigationZ+flatMitigation, 0, f.balance.MitCap+capBonus)
}

// TotalHp returns the maximum hit points for a combatant of the given level
// with effective vitality hEff and strength gEff.
func (f *Formulas) TotalHp(level int, hEff, gEff, pctHp float64) float64 {
	hpBase := f.balance.HpBase + f.balance.HpPerLevel*float64(level-1)
	hpRaw := hpBase + f.balance.HpPerH*hEff + f.balance.HpPerG*gEff

	return hpRaw * (1 + pctHp)
}

// PreCritDamage returns the damage of a swing before any critical
// adjustment, for weapon damage wEff scaled by charisma kEff and strength gEff.
func (f *Formulas) PreCritDamage(wEff, kEff, gEff, alphaK, betaG, pctDmg float64) float64 {
	return wEff * (1 + alphaK*kEff) * (1 + betaG*gEff) * (1 + pctDmg)
}

// ExpectedHit folds the crit probability and crit multiplier into preCrit,
// producing the expected damage of a swing. Crit chance is clamped to
// CritCap+critCapBonus.
func (f *Formulas) ExpectedHit(preCrit, kEff, pctCritChance, pctCritDamage, critCapBonus float64) float64 {
	critChance := mathutil.Clamp(f.balance.CritBase+f.balance.CritPerK*kEff+pctCritChance,
		0, f.balance.CritCap+critCapBonus)
	critMult := (f.balance.CritMultBase + f.balance.CritMultPerK*kEff) * (1 + pctCritDamage)

	return preCrit * (1 + critChance*(critMult-1))
}

// LifeSteal returns the healing the attacker receives from a hit.
func (f *Formulas) LifeSteal(expectedHit, pctLifesteal float64) float64 {
	return expectedHit * pctLifesteal
}
