// Copyright (c) 2022-2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package defaultmatchmaker provides the default implementation of the
// Matchmaker interface: a shared skill-rating queue with wait-based tolerance
// widening, atomic pairing and an acceptance lifecycle.
package defaultmatchmaker

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/AccelByte/extend-pvp-duel/pkg/common"
	"github.com/AccelByte/extend-pvp-duel/pkg/config"
	"github.com/AccelByte/extend-pvp-duel/pkg/constants"
	"github.com/AccelByte/extend-pvp-duel/pkg/envelope"
	"github.com/AccelByte/extend-pvp-duel/pkg/matchmaker"
	"github.com/AccelByte/extend-pvp-duel/pkg/metrics"
	"github.com/AccelByte/extend-pvp-duel/pkg/models"
	"github.com/AccelByte/extend-pvp-duel/pkg/playerdata"
	"github.com/AccelByte/extend-pvp-duel/pkg/queue"
	"github.com/AccelByte/extend-pvp-duel/pkg/utils"
)

// Now is overridable for tests.
var Now = time.Now

// CurrentTolerance returns the queue.ToleranceFunc that widens a waiting
// entry's tolerance with its elapsed wait, used by the pairing scan.
func CurrentTolerance(cfg *config.Config) queue.ToleranceFunc {
	return func(entry models.QueueEntry) int {
		waitingSeconds := int(Now().Sub(entry.EnqueuedAt).Seconds())
		return matchmaker.CalculateTolerance(cfg, waitingSeconds)
	}
}

// defaultMatchmaker implements the Matchmaker interface against a queue.Store.
type defaultMatchmaker struct {
	cfg         *config.Config
	store       queue.Store
	ratings     matchmaker.RatingProvider
	lifecycle   *Lifecycle
	duelMetrics metrics.DuelMetrics
}

// New returns a defaultMatchmaker of the Matchmaker interface together with
// its lifecycle manager. The caller is responsible for starting the
// lifecycle's background sweep.
func New(cfg *config.Config, store queue.Store, ratings matchmaker.RatingProvider, duelMetrics metrics.DuelMetrics) (matchmaker.Matchmaker, *Lifecycle) {
	m := &defaultMatchmaker{
		cfg:         cfg,
		store:       store,
		ratings:     ratings,
		duelMetrics: duelMetrics,
	}
	m.lifecycle = NewLifecycle(cfg, m.requeue, duelMetrics)

	return m, m.lifecycle
}

func (m *defaultMatchmaker) Enqueue(rootScope *envelope.Scope, playerID playerdata.ID) (*models.MatchCandidate, error) {
	scope := rootScope.NewChildScope("defaultMatchmaker.Enqueue")
	defer scope.Finish()
	startTime := Now()
	defer func() {
		m.duelMetrics.AddEnqueueElapsedTimeMs(constants.DefaultMatchPool, constants.EnqueueFunction, time.Since(startTime))
	}()

	// step 1: full reset of any previous state for this player
	if _, err := m.Dequeue(scope, playerID); err != nil {
		return nil, err
	}

	rating, ok, err := m.ratings.GetRating(scope, playerID)
	if err != nil {
		scope.Log.Errorf("error resolving rating for player %s: %s", playerID, err)
		return nil, err
	}
	if !ok {
		rating = m.cfg.DefaultRating
	}

	// fresh enqueue, so the wait is zero and the tolerance is the base delta
	tolerance := matchmaker.CalculateTolerance(m.cfg, 0)
	entry := models.QueueEntry{
		PlayerID:    playerID,
		SkillRating: rating,
		EnqueuedAt:  Now(),
	}
	scope.Log.Infof("player %s enqueued with rating %d, tolerance %d", playerID, rating, tolerance)

	opponent, err := m.store.PairOrEnqueue(entry, tolerance)
	if err != nil {
		scope.Log.Errorf("error pairing player %s: %s", playerID, err)
		m.duelMetrics.AddUnmatchedReason(constants.DefaultMatchPool, constants.UnmatchedReasonStoreUnavailable)
		return nil, err
	}
	defer m.publishQueueMetrics(scope)

	if opponent == nil {
		scope.Log.Infof("no match found for player %s, waiting in queue", playerID)
		reason := constants.UnmatchedReasonNoOpponentInRange
		if count, countErr := m.store.Count(); countErr == nil && count == 1 {
			// the player is alone in the queue, nobody was in range to begin with
			reason = constants.UnmatchedReasonEmptyQueue
		}
		m.duelMetrics.AddUnmatchedReason(constants.DefaultMatchPool, reason)
		return nil, nil
	}

	// the enqueuing player becomes PlayerA, the side that initiates the duel
	cand := models.MatchCandidate{
		MatchID:   utils.GenerateUUID(),
		PlayerA:   playerID,
		PlayerB:   opponent.PlayerID,
		CreatedAt: Now(),
		State:     models.CandidateAwaitingAccept,
	}
	m.lifecycle.Register(cand, entry, *opponent)
	m.duelMetrics.AddMatchCreated(constants.DefaultMatchPool)
	scope.Log.Infof("match found: %s", common.LogJSONFormatter(cand))

	return &cand, nil
}

func (m *defaultMatchmaker) Dequeue(rootScope *envelope.Scope, playerID playerdata.ID) (bool, error) {
	scope := rootScope.NewChildScope("defaultMatchmaker.Dequeue")
	defer scope.Finish()

	removed, err := m.store.Remove(playerID)
	if err != nil {
		scope.Log.Errorf("error dequeuing player %s: %s", playerID, err)
		return false, err
	}
	cancelled := m.lifecycle.CancelForPlayer(scope, playerID)

	if removed {
		scope.Log.Infof("player %s dequeued", playerID)
	}
	m.publishQueueMetrics(scope)

	return removed || cancelled, nil
}

func (m *defaultMatchmaker) Accept(rootScope *envelope.Scope, playerID playerdata.ID, matchID string) (bool, error) {
	scope := rootScope.NewChildScope("defaultMatchmaker.Accept")
	defer scope.Finish()

	return m.lifecycle.Accept(scope, playerID, matchID)
}

func (m *defaultMatchmaker) GetStatus(rootScope *envelope.Scope, playerID playerdata.ID) (*models.QueueStatus, error) {
	scope := rootScope.NewChildScope("defaultMatchmaker.GetStatus")
	defer scope.Finish()

	entry, queued, err := m.store.Get(playerID)
	if err != nil {
		return nil, err
	}
	if queued {
		waitingSeconds := int(Now().Sub(entry.EnqueuedAt).Seconds())
		return &models.QueueStatus{
			State:            constants.StateQueued,
			WaitingSeconds:   waitingSeconds,
			CurrentTolerance: matchmaker.CalculateTolerance(m.cfg, waitingSeconds),
		}, nil
	}

	if cand, ok := m.lifecycle.CandidateForPlayer(playerID); ok && !cand.State.Terminal() {
		matchID := cand.MatchID
		return &models.QueueStatus{
			State:   constants.StateMatched,
			MatchID: &matchID,
		}, nil
	}

	return nil, nil
}

func (m *defaultMatchmaker) Candidate(rootScope *envelope.Scope, matchID string) (models.MatchCandidate, error) {
	cand, ok := m.lifecycle.Candidate(matchID)
	if !ok {
		return models.MatchCandidate{}, models.ErrMatchNotFound
	}

	return cand, nil
}

func (m *defaultMatchmaker) FinishMatch(rootScope *envelope.Scope, matchID string) {
	scope := rootScope.NewChildScope("defaultMatchmaker.FinishMatch")
	defer scope.Finish()

	m.lifecycle.MarkFinished(scope, matchID)
}

// requeue puts a player back into the queue keeping the original EnqueuedAt,
// so the wait-based tolerance keeps widening from the first enqueue.
func (m *defaultMatchmaker) requeue(scope *envelope.Scope, entry models.QueueEntry) {
	if err := m.store.Enqueue(entry); err != nil {
		scope.Log.Errorf("error re-enqueuing player %s: %s", entry.PlayerID, err)
		return
	}
	scope.Log.Infof("player %s re-enqueued, original wait preserved", entry.PlayerID)
	m.publishQueueMetrics(scope)
}

func (m *defaultMatchmaker) publishQueueMetrics(scope *envelope.Scope) {
	count, err := m.store.Count()
	if err != nil {
		return
	}
	m.duelMetrics.PlayersInMatchQueue(constants.DefaultMatchPool, count)

	ratings, err := m.store.Ratings()
	if err != nil || len(ratings) == 0 {
		return
	}
	mean := stat.Mean(ratings, nil)
	stddev := float64(0)
	if len(ratings) > 1 {
		stddev = stat.StdDev(ratings, nil)
	}
	m.duelMetrics.QueueRatingSpread(constants.DefaultMatchPool, mean, stddev)
}
