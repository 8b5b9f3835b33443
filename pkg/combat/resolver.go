// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package combat

import (
	"fmt"

	"github.com/AccelByte/extend-pvp-duel/pkg/config"
	"github.com/AccelByte/extend-pvp-duel/pkg/constants"
	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// PlayerProvider resolves a player's profile (level and base attributes)
// from the external player store.
type PlayerProvider interface {
	GetPlayer(scope *envelope.Scope, playerID playerdata.ID) (player playerdata.PlayerData, ok bool, err error)
}

// InventoryProvider lists the affixes of a player's currently equipped items.
type InventoryProvider interface {
	GetEquippedItems(scope *envelope.Scope, playerID playerdata.ID) ([]models.ItemAffix, error)
}

// Resolver combines a player's base attributes with the summed equipped-item
// affix bonuses into one EffectiveStats value. Stats are recomputed fresh for
// every duel and never cached, since equipment may change between fights.
type Resolver struct {
	balance   *config.Balance
	formulas  *Formulas
	players   PlayerProvider
	inventory InventoryProvider
}

func NewResolver(balance *config.Balance, formulas *Formulas, players PlayerProvider, inventory InventoryProvider) *Resolver {
	return &Resolver{
		balance:   balance,
		formulas:  formulas,
		players:   players,
		inventory: inventory,
	}
}

// Resolve builds the EffectiveStats snapshot for playerID. Missing player or
// inventory data surfaces as models.ErrCombatPrecondition.
func (r *Resolver) Resolve(rootScope *envelope.Scope, playerID playerdata.ID) (models.EffectiveStats, error) {
	scope := rootScope.NewChildScope("Resolver.Resolve")
	defer scope.Finish()

	player, ok, err := r.players.GetPlayer(scope, playerID)
	if err != nil {
		return models.EffectiveStats{}, fmt.Errorf("%w: load player %s: %s", models.ErrCombatPrecondition, playerID, err)
	}
	if !ok {
		return models.EffectiveStats{}, fmt.Errorf("%w: player %s has no profile", models.ErrCombatPrecondition, playerID)
	}

	affixes, err := r.inventory.GetEquippedItems(scope, playerID)
	if err != nil {
		return models.EffectiveStats{}, fmt.Errorf("%w: load equipment for %s: %s", models.ErrCombatPrecondition, playerID, err)
	}

	stats := models.EffectiveStats{
		Charisma:     player.Base.Charisma,
		Strength:     player.Base.Strength,
		Intellect:    player.Base.Intellect,
		Vitality:     player.Base.Vitality,
		Level:        player.Level,
		WeaponDamage: r.balance.DefaultWeaponDamage,
	}
	for _, affix := range affixes {
		applyAffix(&stats, affix)
	}

	stats.TotalHp = r.formulas.TotalHp(stats.Level, float64(stats.Vitality), float64(stats.Strength), stats.HpPercent)

	return stats, nil
}

// applyAffix folds one item affix into stats. Unknown affix types are ignored.
func applyAffix(stats *models.EffectiveStats, affix models.ItemAffix) {
	value := affix.Value
	if affix.IsPercent {
		value = value / 100.0
	}

	switch affix.Type {
	case constants.AffixCharisma:
		stats.Charisma += int(value)
	case constants.AffixStrength:
		stats.Strength += int(value)
	case constants.AffixIntellect:
		stats.Intellect += int(value)
	case constants.AffixVitality:
		stats.Vitality += int(value)
	case constants.AffixHpPercent:
		stats.HpPercent += value
	case constants.AffixCritChance:
		stats.CritChancePercent += value
	case constants.AffixCritDamage:
		stats.CritDamagePercent += value
	case constants.AffixLifeSteal:
		stats.LifeSteal += value
	case constants.AffixWeaponDamage:
		stats.WeaponDamage += float64(int(value))
	}
}
