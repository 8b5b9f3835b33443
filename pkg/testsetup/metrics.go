package testsetup

import (
	"time"

	"github.com/AccelByte/extend-pvp-duel/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) PlayersInMatchQueue(matchPool string, numPlayers int) {
}

func (s stubMetricsCollection) QueueRatingSpread(matchPool string, mean float64, stddev float64) {
}

func (s stubMetricsCollection) AddEnqueueElapsedTimeMs(matchPool, function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddSimulationElapsedTimeMs(matchPool string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddMatchCreated(matchPool string) {
}

func (s stubMetricsCollection) AddMatchExpired(matchPool string, reason string) {
}

func (s stubMetricsCollection) AddUnmatchedReason(matchPool string, reason string) {
}

func NewMetrics() metrics.DuelMetrics {
	return stubMetricsCollection{}
}
