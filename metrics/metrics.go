// Package metrics exposes Prometheus collectors for the matching pipeline.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search results.
const (
	SearchOK        = "ok"
	SearchNoGames   = "no_games"
	SearchNoMatches = "no_candidates"
	SearchError     = "error"
	SearchLimited   = "rate_limited"
)

var (
	MatchSearches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "squadup_match_searches_total",
			Help: "Total number of match searches by outcome",
		},
		[]string{"result"},
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "squadup_match_candidates_scored_total",
			Help: "Total number of candidates run through the compatibility scorer",
		},
	)

	MatchTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "squadup_match_transitions_total",
			Help: "Total number of accept/reject attempts by outcome",
		},
		[]string{"action", "result"}, // action: accept, reject; result: ok, not_found, error
	)

	MatchSearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "squadup_match_search_duration_seconds",
			Help:    "Duration of a full match search, scoring and persistence included",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "squadup_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
)

// RecordSearch counts one search and observes its duration.
func RecordSearch(result string, scored int, duration time.Duration) {
	MatchSearches.WithLabelValues(result).Inc()
	if scored > 0 {
		CandidatesScored.Add(float64(scored))
	}
	MatchSearchDuration.Observe(duration.Seconds())
}

// RecordTransition counts one accept or reject attempt.
func RecordTransition(action, result string) {
	MatchTransitions.WithLabelValues(action, result).Inc()
}

// RecordHTTPRequest counts a served request. route is the gin route template,
// not the raw path, to keep cardinality bounded.
func RecordHTTPRequest(method, route string, status int) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
