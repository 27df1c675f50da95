package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAIEvaluationsCounter(t *testing.T) {
	before := testutil.ToFloat64(AIEvaluations.WithLabelValues("feedback", OutcomeOK))
	AIEvaluations.WithLabelValues("feedback", OutcomeOK).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(AIEvaluations.WithLabelValues("feedback", OutcomeOK)))
}

func TestObserveAI(t *testing.T) {
	ObserveAI("parse", time.Now().Add(-time.Second))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(AIDuration), 1)
}

func TestHandlerExposesCollectors(t *testing.T) {
	CacheLookups.WithLabelValues(CacheHit).Inc()
	StoriesEvaluated.Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "star_coach_ai_cache_lookups_total")
	assert.Contains(t, body, "star_coach_stories_evaluated_total")
}
