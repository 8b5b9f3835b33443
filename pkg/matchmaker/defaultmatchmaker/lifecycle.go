// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package defaultmatchmaker

import (
	"context"
	"sync"
	"time"

	"github.com/AccelByte/extend-pvp-duel/pkg/config"
	"github.com/AccelByte/extend-pvp-duel/pkg/constants"
	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/metrics"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
)

// requeueFunc puts a player back into the queue with the original EnqueuedAt
// preserved, so their wait-based tolerance does not reset.
type requeueFunc func(scope *envelope.Scope, entry models.QueueEntry)

// candidate is the lifecycle bookkeeping for one proposed match. Its mutex
// guards every state transition, which makes acceptance completion and
// expiry mutually exclusive: whichever locks first wins, the other observes
// a terminal or accepted state and backs off.
type candidate struct {
	mu       sync.Mutex
	data     models.MatchCandidate
	entries  map[playerdata.ID]models.QueueEntry
	accepted map[playerdata.ID]struct{}
	deadline time.Time
}

// Lifecycle owns match candidates from pairing until a terminal state.
type Lifecycle struct {
	mu         sync.RWMutex
	candidates map[string]*candidate
	byPlayer   map[playerdata.ID]string

	acceptTimeout time.Duration
	sweepInterval time.Duration
	requeue       requeueFunc
	duelMetrics   metrics.DuelMetrics
}

func NewLifecycle(cfg *config.Config, requeue requeueFunc, duelMetrics metrics.DuelMetrics) *Lifecycle {
	return &Lifecycle{
		candidates:    make(map[string]*candidate),
		byPlayer:      make(map[playerdata.ID]string),
		acceptTimeout: time.Duration(cfg.AcceptTimeoutSecond) * time.Second,
		sweepInterval: time.Duration(cfg.SweepIntervalSecond) * time.Second,
		requeue:       requeue,
		duelMetrics:   duelMetrics,
	}
}

// Register starts tracking a freshly paired candidate. The queue entries of
// both players are kept so they can be re-enqueued on expiry or cancel.
func (l *Lifecycle) Register(cand models.MatchCandidate, entryA, entryB models.QueueEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.candidates[cand.MatchID] = &candidate{
		data: cand,
		entries: map[playerdata.ID]models.QueueEntry{
			entryA.PlayerID: entryA,
			entryB.PlayerID: entryB,
		},
		accepted: make(map[playerdata.ID]struct{}),
		deadline: Now().Add(l.acceptTimeout),
	}
	l.byPlayer[cand.PlayerA] = cand.MatchID
	l.byPlayer[cand.PlayerB] = cand.MatchID
}

// Accept records playerID's confirmation. It returns true only on the
// transition that brings the acceptance set to both players; the first
// acceptance and duplicates return false without error.
func (l *Lifecycle) Accept(scope *envelope.Scope, playerID playerdata.ID, matchID string) (bool, error) {
	c, ok := l.lookup(matchID)
	if !ok {
		return false, models.ErrMatchNotFound
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.data.HasPlayer(playerID) {
		return false, models.ErrMatchNotFound
	}
	if c.data.State != models.CandidateAwaitingAccept {
		if c.data.State == models.CandidateAccepted {
			// late duplicate after the match already started
			return false, nil
		}
		return false, models.ErrMatchNotAcceptable
	}

	if _, already := c.accepted[playerID]; already {
		scope.Log.Infof("player %s already accepted match %s", playerID, matchID)
		return false, nil
	}
	c.accepted[playerID] = struct{}{}

	if len(c.accepted) < 2 {
		scope.Log.Infof("player %s accepted match %s, waiting for other player", playerID, matchID)
		return false, nil
	}

	c.data.State = models.CandidateAccepted
	scope.Log.Infof("match %s accepted by both players", matchID)

	return true, nil
}

// Candidate returns the current snapshot for matchID.
func (l *Lifecycle) Candidate(matchID string) (models.MatchCandidate, bool) {
	c, ok := l.lookup(matchID)
	if !ok {
		return models.MatchCandidate{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.data, true
}

// CandidateForPlayer returns the non-terminal candidate playerID belongs to.
func (l *Lifecycle) CandidateForPlayer(playerID playerdata.ID) (models.MatchCandidate, bool) {
	l.mu.RLock()
	matchID, ok := l.byPlayer[playerID]
	l.mu.RUnlock()
	if !ok {
		return models.MatchCandidate{}, false
	}

	return l.Candidate(matchID)
}

// CancelForPlayer cancels the pending candidate of a player who left before
// full acceptance. The opponent is returned to the queue with the original
// EnqueuedAt. Reports whether a candidate was cancelled.
func (l *Lifecycle) CancelForPlayer(scope *envelope.Scope, playerID playerdata.ID) bool {
	l.mu.RLock()
	matchID, ok := l.byPlayer[playerID]
	l.mu.RUnlock()
	if !ok {
		return false
	}
	c, ok := l.lookup(matchID)
	if !ok {
		return false
	}

	c.mu.Lock()
	if c.data.State != models.CandidateAwaitingAccept {
		c.mu.Unlock()
		return false
	}
	c.data.State = models.CandidateCancelled
	opponentID, _ := c.data.Opponent(playerID)
	opponentEntry, hasEntry := c.entries[opponentID]
	c.mu.Unlock()

	if hasEntry {
		l.requeue(scope, opponentEntry)
	}
	l.duelMetrics.AddMatchExpired(constants.DefaultMatchPool, constants.ExpiredReasonPlayerCancelled)
	l.remove(matchID, c.data.PlayerA, c.data.PlayerB)
	scope.Log.Infof("match %s cancelled, player %s left before acceptance", matchID, playerID)

	return true
}

// MarkFinished releases the lifecycle state of a completed duel.
func (l *Lifecycle) MarkFinished(scope *envelope.Scope, matchID string) {
	c, ok := l.lookup(matchID)
	if !ok {
		return
	}

	c.mu.Lock()
	c.data.State = models.CandidateFinished
	c.mu.Unlock()

	l.remove(matchID, c.data.PlayerA, c.data.PlayerB)
	scope.Log.Infof("match %s finished", matchID)
}

// SweepExpired transitions overdue awaiting-accept candidates to expired.
// Players who did accept are re-enqueued with their original EnqueuedAt;
// players who did not are left idle. The sweep is idempotent and safe to run
// concurrently with itself and with Accept.
func (l *Lifecycle) SweepExpired(rootScope *envelope.Scope) int {
	scope := rootScope.NewChildScope("Lifecycle.SweepExpired")
	defer scope.Finish()

	l.mu.RLock()
	overdue := make([]*candidate, 0, len(l.candidates))
	for _, c := range l.candidates {
		overdue = append(overdue, c)
	}
	l.mu.RUnlock()

	now := Now()
	expired := 0
	for _, c := range overdue {
		c.mu.Lock()
		if c.data.State != models.CandidateAwaitingAccept || c.deadline.After(now) {
			c.mu.Unlock()
			continue
		}
		c.data.State = models.CandidateExpired
		requeueEntries := make([]models.QueueEntry, 0, len(c.accepted))
		for playerID := range c.accepted {
			if entry, ok := c.entries[playerID]; ok {
				requeueEntries = append(requeueEntries, entry)
			}
		}
		matchID, playerA, playerB := c.data.MatchID, c.data.PlayerA, c.data.PlayerB
		c.mu.Unlock()

		for _, entry := range requeueEntries {
			l.requeue(scope, entry)
		}
		l.duelMetrics.AddMatchExpired(constants.DefaultMatchPool, constants.ExpiredReasonAcceptTimeout)
		l.remove(matchID, playerA, playerB)
		scope.Log.Infof("match %s expired, %d player(s) re-enqueued", matchID, len(requeueEntries))
		expired++
	}

	return expired
}

// Start runs the periodic expiry sweep until ctx is cancelled.
func (l *Lifecycle) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(l.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				scope := envelope.NewRootScope(ctx, "Lifecycle.sweep", "")
				l.SweepExpired(scope)
				scope.Finish()
			}
		}
	}()
}

func (l *Lifecycle) lookup(matchID string) (*candidate, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.candidates[matchID]

	return c, ok
}

func (l *Lifecycle) remove(matchID string, players ...playerdata.ID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.candidates, matchID)
	for _, playerID := range players {
		if l.byPlayer[playerID] == matchID {
			delete(l.byPlayer, playerID)
		}
	}
}
