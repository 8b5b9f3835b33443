// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package combat

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/mitchellh/copystructure"

	"github.com/AccelByte/extend-pvp-duel/pkg/config"
	"github.com/AccelByte/extend-pvp-duel/pkg/constants"
	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/metrics"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
	"github.com/AccelByte/extend-pvp-duel/pkg/utils"
)

// Recorder persists a finished duel. Recording is best effort and
// asynchronous from the simulator's perspective: a recorder failure never
// unwinds a completed simulation.
type Recorder interface {
	RecordDuel(scope *envelope.Scope, result models.DuelResult) error
}

// combatant binds one player's identity, stats snapshot and current HP.
// The turn loop addresses combatants through a two-element array and a
// current-attacker index; roles swap by flipping the index, never by
// rebinding variables.
type combatant struct {
	id    playerdata.ID
	stats models.EffectiveStats
	hp    float64
}

// Simulator runs seeded, deterministic duels. Each simulation is CPU-bound
// and single-threaded; all external lookups happen up front in the resolver,
// so the turn loop itself performs no I/O and cannot fail.
type Simulator struct {
	cfg         *config.Config
	balance     *config.Balance
	formulas    *Formulas
	resolver    *Resolver
	recorder    Recorder
	duelMetrics metrics.DuelMetrics
	pool        *models.Pool
}

// NewSimulator returns a Simulator. recorder may be nil when persistence is
// handled elsewhere.
func NewSimulator(cfg *config.Config, balance *config.Balance, resolver *Resolver, recorder Recorder, duelMetrics metrics.DuelMetrics) *Simulator {
	return &Simulator{
		cfg:         cfg,
		balance:     balance,
		formulas:    NewFormulas(balance),
		resolver:    resolver,
		recorder:    recorder,
		duelMetrics: duelMetrics,
		pool:        models.NewPool(),
	}
}

// Simulate runs the duel for matchID with a fresh seed derived from the
// match ID and the wall clock at simulation start.
func (s *Simulator) Simulate(rootScope *envelope.Scope, matchID string, attackerID, defenderID playerdata.ID) (*models.DuelResult, error) {
	if matchID == "" {
		matchID = utils.GenerateUUID()
	}

	return s.SimulateWithSeed(rootScope, matchID, attackerID, defenderID, deriveSeed(matchID))
}

// SimulateWithSeed replays or runs the duel with an explicit seed. Identical
// seed and identical effective stats produce a byte-identical DuelResult.
func (s *Simulator) SimulateWithSeed(rootScope *envelope.Scope, matchID string, attackerID, defenderID playerdata.ID, seed int64) (*models.DuelResult, error) {
	scope := rootScope.NewChildScope("Simulator.Simulate")
	defer scope.Finish()
	startTime := time.Now()

	scope.SetAttributes(envelope.MatchIDTag, matchID)
	scope.SetAttributes(envelope.PlayersTag, []string{playerdata.IDToString(attackerID), playerdata.IDToString(defenderID)})
	scope.SetAttributes(envelope.DuelSeedTag, seed)

	attackerStats, err := s.resolver.Resolve(scope, attackerID)
	if err != nil {
		return nil, err
	}
	defenderStats, err := s.resolver.Resolve(scope, defenderID)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	combatants := [2]combatant{
		{id: attackerID, stats: attackerStats, hp: attackerStats.TotalHp},
		{id: defenderID, stats: defenderStats, hp: defenderStats.TotalHp},
	}
	cur := 0

	records := s.pool.TurnRecords.Get()
	records = records[:0]

	var winnerID playerdata.ID
	for turn := 1; turn <= s.cfg.MaxTurns; turn++ {
		atk := &combatants[cur]
		def := &combatants[1-cur]

		damage, displayCrit := s.swingDamage(atk.stats, def.stats, rng)
		def.hp = math.Max(0, def.hp-damage)

		lifeStolen := s.formulas.LifeSteal(damage, atk.stats.LifeSteal)
		atk.hp = math.Min(atk.stats.TotalHp, atk.hp+lifeStolen)

		records = append(records, models.TurnRecord{
			Turn:            turn,
			AttackerID:      atk.id,
			DefenderID:      def.id,
			Damage:          damage,
			LifeStolen:      lifeStolen,
			AttackerHpAfter: atk.hp,
			DefenderHpAfter: def.hp,
			DisplayCrit:     displayCrit,
		})

		if def.hp <= 0 {
			winnerID = atk.id
			break
		}

		cur = 1 - cur
	}

	if winnerID == "" {
		// MaxTurns exhausted: strictly higher remaining HP wins, an exact tie
		// goes to the player who initiated the duel, not the current role holder.
		if combatants[1].hp > combatants[0].hp {
			winnerID = combatants[1].id
		} else {
			winnerID = combatants[0].id
		}
	}

	result := &models.DuelResult{
		MatchID:        matchID,
		AttackerID:     attackerID,
		DefenderID:     defenderID,
		AttackerHpLeft: combatants[0].hp,
		DefenderHpLeft: combatants[1].hp,
		WinnerID:       winnerID,
		TurnLog:        append([]models.TurnRecord(nil), records...),
		Seed:           seed,
		EndedAt:        time.Now().UTC(),
	}
	s.pool.TurnRecords.Put(records[:0])

	scope.SetAttributes(envelope.WinnerTag, playerdata.IDToString(winnerID))
	s.duelMetrics.AddSimulationElapsedTimeMs(constants.DefaultMatchPool, time.Since(startTime))
	scope.Log.Infof("duel %s finished in %d turn(s), winner %s", matchID, len(result.TurnLog), winnerID)

	s.record(scope, result)

	return result, nil
}

// swingDamage computes the damage of one swing of attacker against defender.
// The display crit is an additional independent roll on top of the crit term
// already folded into ExpectedHit; both effects apply, as the balance
// numbers expect.
func (s *Simulator) swingDamage(attacker, defender models.EffectiveStats, rng *rand.Rand) (float64, bool) {
	preCrit := s.formulas.PreCritDamage(
		attacker.WeaponDamage,
		float64(attacker.Charisma),
		float64(attacker.Strength),
		s.balance.AlphaK,
		s.balance.BetaG,
		attacker.DamagePercent,
	)
	expectedHit := s.formulas.ExpectedHit(
		preCrit,
		float64(attacker.Charisma),
		attacker.CritChancePercent,
		attacker.CritDamagePercent,
		0,
	)
	mitigation := s.formulas.Mitigation(
		float64(defender.Intellect),
		defender.FlatMitigation,
		defender.MitigationCapBonus,
	)

	damage := expectedHit * (1 - mitigation)

	displayCrit := rng.Float64() < attacker.CritChancePercent
	if displayCrit {
		damage *= s.balance.DisplayCritMultiplier
	}

	return damage, displayCrit
}

// record hands the recorder its own deep copy of the result, detached from
// the caller-owned value, and never blocks the simulation path.
func (s *Simulator) record(scope *envelope.Scope, result *models.DuelResult) {
	if s.recorder == nil {
		return
	}

	copied, err := copystructure.Copy(*result)
	if err != nil {
		scope.Log.Errorf("error copying duel result %s for recording: %s", result.MatchID, err)
		return
	}
	snapshot := copied.(models.DuelResult)
	log := scope.Log

	go func() {
		recordScope := envelope.NewRootScope(context.Background(), "Simulator.record", "")
		defer recordScope.Finish()
		if err := s.recorder.RecordDuel(recordScope, snapshot); err != nil {
			log.Errorf("error recording duel %s: %s", snapshot.MatchID, err)
		}
	}()
}

// deriveSeed folds the match ID and the wall clock into the seed of the
// duel's pseudo-random generator. The seed is carried on the DuelResult so a
// duel can be replayed exactly.
func deriveSeed(matchID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(matchID))

	return int64(h.Sum64()) ^ time.Now().UnixNano()
}
