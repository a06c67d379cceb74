package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circprog/internal/clock"
	"circprog/internal/config"
	"circprog/internal/progress"
)

func TestObserverCountsDrawableActivity(t *testing.T) {
	obs := NewObserver()
	cfg := config.Default()
	cfg.InDuration = 0
	cfg.OutDuration = 0
	cfg.TransformDuration = 50 * time.Millisecond
	cfg.KeepDuration = 10 * time.Millisecond

	clk := clock.NewManual(time.Unix(0, 0))
	d, err := progress.New(cfg, clk, progress.WithObserver(obs))
	require.NoError(t, err)

	d.Start()
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.activeGauge))

	clk.Advance(10 * clock.FrameInterval)
	assert.Equal(t, 10.0, testutil.ToFloat64(obs.ticks))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.runStates.WithLabelValues("running")))
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.phases.WithLabelValues("keep_stretch")))

	d.Stop()
	assert.Equal(t, 1.0, testutil.ToFloat64(obs.runStates.WithLabelValues("stopped")))
	assert.Equal(t, 0.0, testutil.ToFloat64(obs.activeGauge))
}

func TestHandlerServesMetrics(t *testing.T) {
	obs := NewObserver()
	obs.Ticked()
	obs.RunStateChanged(progress.Stopped, progress.Starting)

	rec := httptest.NewRecorder()
	obs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "circprog_ticks_total 1"))
	assert.True(t, strings.Contains(body, `circprog_run_state_transitions_total{to="starting"} 1`))

	count, err := testutil.GatherAndCount(obs.Registry())
	require.NoError(t, err)
	// ticks, one run state series and the gauge; no phase series yet.
	assert.Equal(t, 3, count)
}
