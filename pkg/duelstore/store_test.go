// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package duelstore

import (
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/testsetup"
)

func newTestStore(t *testing.T) *Store {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory duel database: %s", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewStore(db)
}

func TestStore_RecordDuel(t *testing.T) {
	g := testsetup.WithGomega(t)
	store := newTestStore(t)

	result := models.DuelResult{
		MatchID:        "m1",
		AttackerID:     "A",
		DefenderID:     "B",
		AttackerHpLeft: 412.5,
		DefenderHpLeft: 0,
		WinnerID:       "A",
		TurnLog: []models.TurnRecord{
			{Turn: 1, AttackerID: "A", DefenderID: "B", Damage: 120.5, AttackerHpAfter: 800, DefenderHpAfter: 679.5},
		},
		Seed:    42,
		EndedAt: time.Now().UTC(),
	}
	g.Expect(store.RecordDuel(g.TestScope, result)).To(Succeed())

	var count int
	var winnerID string
	var seed int64
	err := store.db.QueryRow(`SELECT COUNT(*) FROM duels`).Scan(&count)
	g.Expect(err).To(BeNil())
	g.Expect(count).To(Equal(1))

	err = store.db.QueryRow(`SELECT winner_id, seed FROM duels WHERE match_id = ?`, "m1").Scan(&winnerID, &seed)
	g.Expect(err).To(BeNil())
	g.Expect(winnerID).To(Equal("A"))
	g.Expect(seed).To(Equal(int64(42)))
}

func TestStore_GetRatingMissingPlayer(t *testing.T) {
	g := testsetup.WithGomega(t)
	store := newTestStore(t)

	_, ok, err := store.GetRating(g.TestScope, "ghost")
	g.Expect(err).To(BeNil())
	g.Expect(ok).To(BeFalse())
}

func TestStore_UpsertRatingRoundTrip(t *testing.T) {
	g := testsetup.WithGomega(t)
	store := newTestStore(t)

	g.Expect(store.UpsertRating(g.TestScope, "A", 1337)).To(Succeed())

	mmr, ok, err := store.GetRating(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(ok).To(BeTrue())
	g.Expect(mmr).To(Equal(1337))

	// upsert replaces the previous rating
	g.Expect(store.UpsertRating(g.TestScope, "A", 1400)).To(Succeed())

	mmr, ok, err = store.GetRating(g.TestScope, "A")
	g.Expect(err).To(BeNil())
	g.Expect(ok).To(BeTrue())
	g.Expect(mmr).To(Equal(1400))
}
