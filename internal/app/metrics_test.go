package app

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecorder(t *testing.T) {
	m := NewMetrics("test")

	m.Rejected("insert")
	m.Rejected("insert")
	m.Rejected("delete")
	m.Shifted("insert")
	m.MarkersRefreshed(3)
	m.MarkersRefreshed(2)
	m.PagesOpen(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejections.WithLabelValues("insert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejections.WithLabelValues("delete")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.shifts.WithLabelValues("insert")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.refreshes))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.markers))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.pages))
}

func TestMetricsScripts(t *testing.T) {
	m := NewMetrics("test")

	m.ScriptRun(10*time.Millisecond, nil)
	m.ScriptRun(time.Millisecond, errors.New("boom"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.scripts.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scripts.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.scriptDuration))
}

func TestMetricsWriteText(t *testing.T) {
	m := NewMetrics("frostline")
	m.Rejected("move")

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	assert.Contains(t, buf.String(), `frostline_guard_rejections_total{op="move"} 1`)
	assert.Contains(t, buf.String(), "# HELP frostline_markers")
}
