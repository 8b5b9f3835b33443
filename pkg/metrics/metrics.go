// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type DuelMetrics interface {
	PlayersInMatchQueue(matchPool string, numPlayers int)
	QueueRatingSpread(matchPool string, mean float64, stddev float64)
	AddEnqueueElapsedTimeMs(matchPool, function string, elapsedTime time.Duration)
	AddSimulationElapsedTimeMs(matchPool string, elapsedTime time.Duration)
	AddMatchCreated(matchPool string)
	AddMatchExpired(matchPool string, reason string)
	AddUnmatchedReason(matchPool string, reason string)
}

func NewMetrics(registry *prometheus.Registry) DuelMetrics {
	return setupPrometheusMetrics(registry)
}
