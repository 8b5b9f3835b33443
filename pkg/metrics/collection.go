// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	playersInMatchQueue   prometheus.GaugeVec
	queueRatingMean       prometheus.GaugeVec
	queueRatingStddev     prometheus.GaugeVec
	enqueueElapsedTime    prometheus.HistogramVec
	simulationElapsedTime prometheus.HistogramVec
	matchesCreated        prometheus.CounterVec
	matchesExpired        prometheus.CounterVec
	unmatchedReasons      prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	playersInMatchQueue := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ab_pvpduel_players_in_match_queue",
			Help: "A gauge of the number of players waiting in the match queue",
		}, []string{"matchpool"})

	queueRatingMean := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ab_pvpduel_queue_rating_mean",
			Help: "A gauge of the mean skill rating of the waiting players",
		}, []string{"matchpool"})

	queueRatingStddev := factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ab_pvpduel_queue_rating_stddev",
			Help: "A gauge of the skill rating standard deviation of the waiting players",
		}, []string{"matchpool"})

	//nolint:promlinter
	enqueueElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ab_pvpduel_enqueue_elapsed_time_ms",
			Help:    "A histogram of enqueue function elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"matchpool", "function"})
	//nolint:promlinter
	simulationElapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ab_pvpduel_simulation_elapsed_time_ms",
			Help:    "A histogram of duel simulation elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"matchpool"})

	matchesCreated := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_pvpduel_matches_created",
			Help: "A counter of match candidates produced by the matchmaker",
		}, []string{"matchpool"})

	matchesExpired := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_pvpduel_matches_expired",
			Help: "A counter of match candidates expired or cancelled before acceptance",
		}, []string{"matchpool", "reason"})

	unmatchedReasons := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_pvpduel_unmatched_reasons",
			Help: "A counter of reasons an enqueue attempt did not produce a match",
		}, []string{"matchpool", "reason"})

	return prometheusMetrics{
		playersInMatchQueue:   *playersInMatchQueue,
		queueRatingMean:       *queueRatingMean,
		queueRatingStddev:     *queueRatingStddev,
		enqueueElapsedTime:    *enqueueElapsedTime,
		simulationElapsedTime: *simulationElapsedTime,
		matchesCreated:        *matchesCreated,
		matchesExpired:        *matchesExpired,
		unmatchedReasons:      *unmatchedReasons,
	}
}

func (metrics prometheusMetrics) PlayersInMatchQueue(matchPool string, numPlayers int) {
	metrics.playersInMatchQueue.With(prometheus.Labels{"matchpool": matchPool}).Set(float64(numPlayers))
}

func (metrics prometheusMetrics) QueueRatingSpread(matchPool string, mean float64, stddev float64) {
	metrics.queueRatingMean.With(prometheus.Labels{"matchpool": matchPool}).Set(mean)
	metrics.queueRatingStddev.With(prometheus.Labels{"matchpool": matchPool}).Set(stddev)
}

func (metrics prometheusMetrics) AddEnqueueElapsedTimeMs(matchPool, function string, elapsedTime time.Duration) {
	metrics.enqueueElapsedTime.With(prometheus.Labels{"matchpool": matchPool, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddSimulationElapsedTimeMs(matchPool string, elapsedTime time.Duration) {
	metrics.simulationElapsedTime.With(prometheus.Labels{"matchpool": matchPool}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddMatchCreated(matchPool string) {
	metrics.matchesCreated.With(prometheus.Labels{"matchpool": matchPool}).Add(float64(1))
}

func (metrics prometheusMetrics) AddMatchExpired(matchPool string, reason string) {
	metrics.matchesExpired.With(prometheus.Labels{"matchpool": matchPool, "reason": reason}).Add(float64(1))
}

func (metrics prometheusMetrics) AddUnmatchedReason(matchPool string, reason string) {
	metrics.unmatchedReasons.With(prometheus.Labels{"matchpool": matchPool, "reason": reason}).Add(float64(1))
}
