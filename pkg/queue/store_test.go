// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package queue

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	. "github.com/onsi/gomega"

	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
	"github.com/AccelByte/extend-pvp-duel/pkg/testsetup"
)

func entryAt(id string, rating int, enqueuedAt time.Time) models.QueueEntry {
	return models.QueueEntry{
		PlayerID:    playerdata.ID(id),
		SkillRating: rating,
		EnqueuedAt:  enqueuedAt,
	}
}

func TestMemoryStore_PairOrEnqueue_EmptyQueueWaits(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)

	opponent, err := store.PairOrEnqueue(entryAt("A", 1200, time.Now()), 50)

	g.Expect(err).To(BeNil())
	g.Expect(opponent).To(BeNil())

	count, err := store.Count()
	g.Expect(err).To(BeNil())
	g.Expect(count).To(Equal(1))
}

func TestMemoryStore_PairOrEnqueue_PairsWithinTolerance(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)
	now := time.Now()

	_, err := store.PairOrEnqueue(entryAt("A", 1200, now), 50)
	g.Expect(err).To(BeNil())

	opponent, err := store.PairOrEnqueue(entryAt("B", 1240, now), 50)
	g.Expect(err).To(BeNil())
	g.Expect(opponent).NotTo(BeNil())
	g.Expect(opponent.PlayerID).To(Equal(playerdata.ID("A")))

	// both sides leave the queue atomically with the pairing
	count, err := store.Count()
	g.Expect(err).To(BeNil())
	g.Expect(count).To(Equal(0))
}

func TestMemoryStore_PairOrEnqueue_OutOfToleranceWaits(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)
	now := time.Now()

	_, err := store.PairOrEnqueue(entryAt("A", 1200, now), 50)
	g.Expect(err).To(BeNil())

	opponent, err := store.PairOrEnqueue(entryAt("B", 1251, now), 50)
	g.Expect(err).To(BeNil())
	g.Expect(opponent).To(BeNil())

	count, err := store.Count()
	g.Expect(err).To(BeNil())
	g.Expect(count).To(Equal(2))
}

func TestMemoryStore_PairOrEnqueue_PicksClosestRating(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)
	now := time.Now()

	_, _ = store.PairOrEnqueue(entryAt("far", 1240, now), 0)
	_, _ = store.PairOrEnqueue(entryAt("near", 1230, now), 0)

	opponent, err := store.PairOrEnqueue(entryAt("B", 1210, now), 50)
	g.Expect(err).To(BeNil())
	g.Expect(opponent).NotTo(BeNil())
	g.Expect(opponent.PlayerID).To(Equal(playerdata.ID("near")))
}

func TestMemoryStore_PairOrEnqueue_TieGoesToOldestWaiter(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)
	now := time.Now()

	_, _ = store.PairOrEnqueue(entryAt("young", 1240, now), 0)
	_, _ = store.PairOrEnqueue(entryAt("old", 1160, now.Add(-time.Minute)), 0)

	// both are 40 away from 1200, the longer wait wins
	opponent, err := store.PairOrEnqueue(entryAt("B", 1200, now), 50)
	g.Expect(err).To(BeNil())
	g.Expect(opponent).NotTo(BeNil())
	g.Expect(opponent.PlayerID).To(Equal(playerdata.ID("old")))
}

func TestMemoryStore_PairOrEnqueue_WaiterToleranceAdmitsPair(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	// the waiter has been in queue long enough for a tolerance of 125
	store := NewMemoryStore(func(entry models.QueueEntry) int {
		return 125
	})
	now := time.Now()

	_, err := store.PairOrEnqueue(entryAt("C", 1200, now.Add(-30*time.Second)), 50)
	g.Expect(err).To(BeNil())

	// distance 120 exceeds the arrival's own tolerance but fits the waiter's
	opponent, err := store.PairOrEnqueue(entryAt("B", 1320, now), 50)
	g.Expect(err).To(BeNil())
	g.Expect(opponent).NotTo(BeNil())
	g.Expect(opponent.PlayerID).To(Equal(playerdata.ID("C")))
}

func TestMemoryStore_PairOrEnqueue_ReEnqueueOverwrites(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)
	now := time.Now()

	_, _ = store.PairOrEnqueue(entryAt("A", 1200, now), 50)
	_, _ = store.PairOrEnqueue(entryAt("A", 1350, now), 50)

	count, err := store.Count()
	g.Expect(err).To(BeNil())
	g.Expect(count).To(Equal(1))

	entry, ok, err := store.Get(playerdata.ID("A"))
	g.Expect(err).To(BeNil())
	g.Expect(ok).To(BeTrue())
	g.Expect(entry.SkillRating).To(Equal(1350))
}

func TestMemoryStore_RemoveAndGet(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)

	g.Expect(store.Enqueue(entryAt("A", 1200, time.Now()))).To(Succeed())

	removed, err := store.Remove(playerdata.ID("A"))
	g.Expect(err).To(BeNil())
	g.Expect(removed).To(BeTrue())

	removed, err = store.Remove(playerdata.ID("A"))
	g.Expect(err).To(BeNil())
	g.Expect(removed).To(BeFalse())

	_, ok, err := store.Get(playerdata.ID("A"))
	g.Expect(err).To(BeNil())
	g.Expect(ok).To(BeFalse())
}

func TestMemoryStore_Ratings(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)
	now := time.Now()

	g.Expect(store.Enqueue(entryAt("A", 1100, now))).To(Succeed())
	g.Expect(store.Enqueue(entryAt("B", 1300, now))).To(Succeed())

	ratings, err := store.Ratings()
	g.Expect(err).To(BeNil())
	g.Expect(ratings).To(ConsistOf(1100.0, 1300.0))
}

func TestMemoryStore_ConcurrentPairingIsExclusive(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	store := NewMemoryStore(nil)

	const players = 8
	now := time.Now()

	type pair struct {
		caller   playerdata.ID
		opponent playerdata.ID
	}
	var mu sync.Mutex
	var pairs []pair

	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := playerdata.ID(fmt.Sprintf("player-%d", i))
			opponent, err := store.PairOrEnqueue(entryAt(string(id), 1000, now), 50)
			g.Expect(err).To(BeNil())
			if opponent != nil {
				mu.Lock()
				pairs = append(pairs, pair{caller: id, opponent: opponent.PlayerID})
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	// no player may appear in more than one pair
	seen := make(map[playerdata.ID]struct{})
	for _, p := range pairs {
		for _, id := range []playerdata.ID{p.caller, p.opponent} {
			if _, dup := seen[id]; dup {
				t.Fatalf("player %s claimed twice: %s", id, spew.Sdump(pairs))
			}
			seen[id] = struct{}{}
		}
	}

	count, err := store.Count()
	g.Expect(err).To(BeNil())
	g.Expect(count).To(Equal(players - 2*len(pairs)))
}
