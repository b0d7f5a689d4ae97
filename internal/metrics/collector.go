// Package metrics exposes simulation counters in Prometheus format.
package metrics

import (
	"context"
	"net/http"

	"wisefido-monitor/internal/models"
	"wisefido-monitor/internal/vitals"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector tick and alarm metrics. Registered as both a tick and an alarm sink.
type Collector struct {
	registry *prometheus.Registry

	TicksTotal              prometheus.Counter
	AlarmsRaisedTotal       *prometheus.CounterVec
	AlarmsAcknowledgedTotal prometheus.Counter
	ActiveAlarms            prometheus.Gauge
	PatientsByStatus        *prometheus.GaugeVec
}

// NewCollector creates the metrics on a private registry; namespace must be a
// valid metric prefix (no dashes)
func NewCollector(namespace string) *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,

		TicksTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "ticks_total",
			Help:      "Total number of completed simulation ticks.",
		}),

		AlarmsRaisedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alarms",
			Name:      "raised_total",
			Help:      "Total alarms raised by severity.",
		}, []string{"severity"}),

		AlarmsAcknowledgedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alarms",
			Name:      "acknowledged_total",
			Help:      "Total alarms acknowledged.",
		}),

		ActiveAlarms: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "alarms",
			Name:      "active",
			Help:      "Alarms currently standing.",
		}),

		PatientsByStatus: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "patients",
			Name:      "by_status",
			Help:      "Patients per list status after the last tick.",
		}, []string{"status"}),
	}
}

// OnTick records one tick
func (c *Collector) OnTick(_ context.Context, snapshot models.Snapshot) error {
	c.TicksTotal.Inc()
	c.ActiveAlarms.Set(float64(len(snapshot.Alarms)))

	counts := map[vitals.Tier]int{
		vitals.TierNormal:   0,
		vitals.TierWarning:  0,
		vitals.TierCritical: 0,
	}
	for _, p := range snapshot.Patients {
		counts[vitals.ListStatus(p.Vitals)]++
	}
	for tier, n := range counts {
		c.PatientsByStatus.WithLabelValues(string(tier)).Set(float64(n))
	}
	return nil
}

// OnAlarm counts raised and acknowledged alarms
func (c *Collector) OnAlarm(_ context.Context, event models.AlarmEvent) error {
	switch event.Kind {
	case models.AlarmEventRaised:
		c.AlarmsRaisedTotal.WithLabelValues(string(event.Alarm.Severity)).Inc()
	case models.AlarmEventAcknowledged:
		c.AlarmsAcknowledgedTotal.Inc()
		// corrected on the next tick
		c.ActiveAlarms.Dec()
	}
	return nil
}

// Handler scrape endpoint for this collector's registry
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}
