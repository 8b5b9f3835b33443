// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package combat

import (
	"errors"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/AccelByte/extend-pvp-duel/pkg/constants"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
	"github.com/AccelByte/extend-pvp-duel/pkg/testsetup"
)

func newTestResolver(players map[playerdata.ID]playerdata.PlayerData, items map[playerdata.ID][]models.ItemAffix) *Resolver {
	balance := testBalance()
	return NewResolver(balance, NewFormulas(balance),
		testsetup.StubPlayerProvider{Players: players},
		testsetup.StubInventoryProvider{Items: items},
	)
}

func basePlayer(level int) playerdata.PlayerData {
	return playerdata.PlayerData{
		PlayerID: "A",
		Level:    level,
		Base: playerdata.BaseStats{
			Charisma:  10,
			Strength:  10,
			Intellect: 10,
			Vitality:  10,
		},
	}
}

func TestResolver_Resolve_BareProfile(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	r := newTestResolver(map[playerdata.ID]playerdata.PlayerData{"A": basePlayer(5)}, nil)

	stats, err := r.Resolve(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(stats.Charisma).To(Equal(10))
	g.Expect(stats.Strength).To(Equal(10))
	g.Expect(stats.Intellect).To(Equal(10))
	g.Expect(stats.Vitality).To(Equal(10))
	g.Expect(stats.Level).To(Equal(5))
	g.Expect(stats.WeaponDamage).To(Equal(50.0))
	// 500 + 25*4 + 15*10 + 5*10
	g.Expect(stats.TotalHp).To(BeNumerically("~", 800, 1e-9))
}

func TestResolver_Resolve_FoldsAffixes(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	items := map[playerdata.ID][]models.ItemAffix{
		"A": {
			{Type: constants.AffixCharisma, Value: 5},
			{Type: constants.AffixWeaponDamage, Value: 25},
			{Type: constants.AffixCritChance, Value: 10, IsPercent: true},
			{Type: constants.AffixLifeSteal, Value: 5, IsPercent: true},
			{Type: constants.AffixHpPercent, Value: 20, IsPercent: true},
			{Type: "mystery_affix", Value: 999},
		},
	}
	r := newTestResolver(map[playerdata.ID]playerdata.PlayerData{"A": basePlayer(1)}, items)

	stats, err := r.Resolve(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(stats.Charisma).To(Equal(15))
	g.Expect(stats.WeaponDamage).To(Equal(75.0))
	g.Expect(stats.CritChancePercent).To(BeNumerically("~", 0.10, 1e-9))
	g.Expect(stats.LifeSteal).To(BeNumerically("~", 0.05, 1e-9))
	g.Expect(stats.HpPercent).To(BeNumerically("~", 0.20, 1e-9))
	// (500 + 15*10 + 5*10) * 1.2
	g.Expect(stats.TotalHp).To(BeNumerically("~", 840, 1e-9))
}

func TestResolver_Resolve_AttributeAffixesTruncate(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	items := map[playerdata.ID][]models.ItemAffix{
		"A": {{Type: constants.AffixStrength, Value: 4.9}},
	}
	r := newTestResolver(map[playerdata.ID]playerdata.PlayerData{"A": basePlayer(1)}, items)

	stats, err := r.Resolve(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(stats.Strength).To(Equal(14))
}

func TestResolver_Resolve_MissingProfile(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	r := newTestResolver(nil, nil)

	_, err := r.Resolve(g.TestScope, "ghost")
	g.Expect(errors.Is(err, models.ErrCombatPrecondition)).To(BeTrue())
}

func TestResolver_Resolve_ProviderFailures(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	balance := testBalance()

	r := NewResolver(balance, NewFormulas(balance),
		testsetup.StubPlayerProvider{Err: errors.New("player service down")},
		testsetup.StubInventoryProvider{},
	)
	_, err := r.Resolve(g.TestScope, "A")
	g.Expect(errors.Is(err, models.ErrCombatPrecondition)).To(BeTrue())

	r = NewResolver(balance, NewFormulas(balance),
		testsetup.StubPlayerProvider{Players: map[playerdata.ID]playerdata.PlayerData{"A": basePlayer(1)}},
		testsetup.StubInventoryProvider{Err: errors.New("inventory service down")},
	)
	_, err = r.Resolve(g.TestScope, "A")
	g.Expect(errors.Is(err, models.ErrCombatPrecondition)).To(BeTrue())
}
