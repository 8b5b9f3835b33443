// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package duel

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/AccelByte/extend-pvp-duel/pkg/combat"
	"github.com/AccelByte/extend-pvp-duel/pkg/config"
	"github.com/AccelByte/extend-pvp-duel/pkg/matchmaker/defaultmatchmaker"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
	"github.com/AccelByte/extend-pvp-duel/pkg/queue"
	"github.com/AccelByte/extend-pvp-duel/pkg/testsetup"
)

func testServiceConfig() *config.Config {
	return &config.Config{
		BaseDelta:           50,
		StepSeconds:         10,
		StepDelta:           25,
		MaxDelta:            400,
		DefaultRating:       1200,
		AcceptTimeoutSecond: 30,
		SweepIntervalSecond: 5,
		MaxTurns:            100,
	}
}

func testServiceBalance() *config.Balance {
	return &config.Balance{
		HpBase:     500,
		HpPerLevel: 25,
		HpPerH:     15,
		HpPerG:     5,

		AlphaK:       0.04,
		BetaG:        0.02,
		CritBase:     0.05,
		CritPerK:     0.003,
		CritCap:      0.50,
		CritMultBase: 1.50,
		CritMultPerK: 0.002,

		MitCap:        0.60,
		MitCurveConst: 100,

		DefaultWeaponDamage:   50,
		DisplayCritMultiplier: 1.5,
	}
}

func newTestService(recorder combat.Recorder) *Service {
	cfg := testServiceConfig()
	balance := testServiceBalance()

	ratings := testsetup.StubRatingProvider{Ratings: map[playerdata.ID]int{"A": 1200, "B": 1240}}
	players := testsetup.StubPlayerProvider{Players: map[playerdata.ID]playerdata.PlayerData{
		"A": {PlayerID: "A", Level: 5, Base: playerdata.BaseStats{Charisma: 12, Strength: 10, Intellect: 8, Vitality: 10}},
		"B": {PlayerID: "B", Level: 5, Base: playerdata.BaseStats{Charisma: 8, Strength: 12, Intellect: 10, Vitality: 12}},
	}}
	inventory := testsetup.StubInventoryProvider{}

	store := queue.NewMemoryStore(defaultmatchmaker.CurrentTolerance(cfg))
	mm, _ := defaultmatchmaker.New(cfg, store, ratings, testsetup.NewMetrics())

	resolver := combat.NewResolver(balance, combat.NewFormulas(balance), players, inventory)
	sim := combat.NewSimulator(cfg, balance, resolver, recorder, testsetup.NewMetrics())

	return NewService(mm, sim)
}

func TestService_FullDuelFlow(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	recorder := &testsetup.StubRecorder{}
	svc := newTestService(recorder)

	cand, err := svc.Enqueue(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(cand).To(BeNil())

	cand, err = svc.Enqueue(g.TestScope, "B")
	g.Expect(err).To(BeNil())
	g.Expect(cand).NotTo(BeNil())

	ready, err := svc.Accept(g.TestScope, "A", cand.MatchID)
	g.Expect(err).To(BeNil())
	g.Expect(ready).To(BeFalse())

	_, ok := svc.LastResult(cand.MatchID)
	g.Expect(ok).To(BeFalse())

	ready, err = svc.Accept(g.TestScope, "B", cand.MatchID)
	g.Expect(err).To(BeNil())
	g.Expect(ready).To(BeTrue())

	svc.Wait()

	result, ok := svc.LastResult(cand.MatchID)
	g.Expect(ok).To(BeTrue())
	g.Expect(result.MatchID).To(Equal(cand.MatchID))
	g.Expect(result.WinnerID).To(BeElementOf(playerdata.ID("A"), playerdata.ID("B")))
	g.Expect(result.TurnLog).NotTo(BeEmpty())
	g.Expect(result.AttackerID).To(Equal(cand.PlayerA))
	g.Expect(result.DefenderID).To(Equal(cand.PlayerB))

	// the lifecycle released both players once the duel finished
	for _, playerID := range []playerdata.ID{"A", "B"} {
		status, err := svc.Status(g.TestScope, playerID)
		g.Expect(err).To(BeNil())
		g.Expect(status).To(BeNil())
	}

	g.Eventually(recorder.RecordedCount, time.Second, 10*time.Millisecond).Should(Equal(1))
}

func TestService_AcceptUnknownMatch(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	svc := newTestService(nil)

	_, err := svc.Accept(g.TestScope, "A", "missing")
	g.Expect(err).To(MatchError(models.ErrMatchNotFound))
}

func TestService_DequeueWhileWaiting(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	svc := newTestService(nil)

	_, err := svc.Enqueue(g.TestScope, "A")
	g.Expect(err).To(BeNil())

	removed, err := svc.Dequeue(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(removed).To(BeTrue())

	status, err := svc.Status(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(status).To(BeNil())
}

func TestService_SimulateDirect(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	svc := newTestService(nil)

	result, err := svc.Simulate(g.TestScope, "replay-1", "A", "B")
	g.Expect(err).To(BeNil())
	g.Expect(result.MatchID).To(Equal("replay-1"))
	g.Expect(result.WinnerID).NotTo(BeEmpty())
	g.Expect(result.Seed).NotTo(BeZero())
}
