package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wisefido-monitor/internal/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_OnTick(t *testing.T) {
	c := NewCollector("test")

	snapshot := models.Snapshot{
		Seq: 1,
		At:  time.Now(),
		Patients: []models.Patient{
			{ID: 1, Vitals: models.Vitals{HeartRate: 98, Temperature: 38.2, SpO2: 89}},
			{ID: 2, Vitals: models.Vitals{HeartRate: 88, Temperature: 37.2, SpO2: 91}},
			{ID: 3, Vitals: models.Vitals{HeartRate: 72, Temperature: 36.8, SpO2: 98}},
			{ID: 4, Vitals: models.Vitals{HeartRate: 70, Temperature: 36.6, SpO2: 97}},
		},
		Alarms: []models.Alarm{{ID: "a"}, {ID: "b"}},
	}
	require.NoError(t, c.OnTick(context.Background(), snapshot))
	require.NoError(t, c.OnTick(context.Background(), snapshot))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.TicksTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.ActiveAlarms))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PatientsByStatus.WithLabelValues("critical")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PatientsByStatus.WithLabelValues("warning")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.PatientsByStatus.WithLabelValues("normal")))
}

func TestCollector_OnAlarm(t *testing.T) {
	c := NewCollector("test")
	ctx := context.Background()

	require.NoError(t, c.OnTick(ctx, models.Snapshot{Alarms: []models.Alarm{{ID: "a"}, {ID: "b"}}}))
	require.NoError(t, c.OnAlarm(ctx, models.AlarmEvent{Kind: models.AlarmEventRaised, Alarm: models.Alarm{Severity: models.SeverityCritical}}))
	require.NoError(t, c.OnAlarm(ctx, models.AlarmEvent{Kind: models.AlarmEventRaised, Alarm: models.Alarm{Severity: models.SeverityWarning}}))
	require.NoError(t, c.OnAlarm(ctx, models.AlarmEvent{Kind: models.AlarmEventAcknowledged, Alarm: models.Alarm{Severity: models.SeverityWarning}}))

	assert.Equal(t, 1.0, testutil.ToFloat64(c.AlarmsRaisedTotal.WithLabelValues("CRITICAL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AlarmsRaisedTotal.WithLabelValues("WARNING")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AlarmsAcknowledgedTotal))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ActiveAlarms))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("wisefido_monitor")
	require.NoError(t, c.OnTick(context.Background(), models.Snapshot{}))

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "wisefido_monitor_simulation_ticks_total 1")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestCollectors_AreIndependent(t *testing.T) {
	a := NewCollector("same")
	b := NewCollector("same")

	require.NoError(t, a.OnTick(context.Background(), models.Snapshot{}))

	assert.Equal(t, 1.0, testutil.ToFloat64(a.TicksTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.TicksTotal))
}
