package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSearch(t *testing.T) {
	beforeOK := testutil.ToFloat64(MatchSearches.WithLabelValues(SearchOK))
	beforeScored := testutil.ToFloat64(CandidatesScored)

	RecordSearch(SearchOK, 7, 15*time.Millisecond)

	assert.Equal(t, beforeOK+1, testutil.ToFloat64(MatchSearches.WithLabelValues(SearchOK)))
	assert.Equal(t, beforeScored+7, testutil.ToFloat64(CandidatesScored))
}

func TestRecordSearchWithoutCandidates(t *testing.T) {
	beforeScored := testutil.ToFloat64(CandidatesScored)
	before := testutil.ToFloat64(MatchSearches.WithLabelValues(SearchNoGames))

	RecordSearch(SearchNoGames, 0, time.Millisecond)

	assert.Equal(t, beforeScored, testutil.ToFloat64(CandidatesScored))
	assert.Equal(t, before+1, testutil.ToFloat64(MatchSearches.WithLabelValues(SearchNoGames)))
}

func TestRecordTransition(t *testing.T) {
	tests := []struct {
		action string
		result string
	}{
		{"accept", "ok"},
		{"accept", "not_found"},
		{"reject", "ok"},
		{"reject", "error"},
	}
	for _, tt := range tests {
		t.Run(tt.action+"_"+tt.result, func(t *testing.T) {
			before := testutil.ToFloat64(MatchTransitions.WithLabelValues(tt.action, tt.result))
			RecordTransition(tt.action, tt.result)
			assert.Equal(t, before+1, testutil.ToFloat64(MatchTransitions.WithLabelValues(tt.action, tt.result)))
		})
	}
}

func TestRecordHTTPRequestUnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("GET", "", 404)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
