// Package prometheus records run metrics and writes them in the node-exporter
// textfile format, for scraping by a textfile collector after each run.
package prometheus

import (
	"time"

	"github.com/fwojciec/freitagsfoo"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "freitagsfoo"

// Metrics holds the gauges and counters of one extraction run.
type Metrics struct {
	registry *prometheus.Registry

	hosts         prometheus.Gauge
	talks         prometheus.Gauge
	persons       prometheus.Gauge
	duration      prometheus.Gauge
	lastSuccessTS prometheus.Gauge
	runsTotal     *prometheus.CounterVec
}

// NewMetrics creates metrics registered on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.hosts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "hosts",
		Help:      "Number of hosts of the extracted meetup",
	})
	m.talks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "talks",
		Help:      "Number of talks of the extracted meetup",
	})
	m.persons = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "persons",
		Help:      "Number of distinct speakers of the extracted meetup",
	})
	m.duration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Time spent on the last run",
	})
	m.lastSuccessTS = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix timestamp of the last successful run",
	})
	m.runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "runs_total",
		Help:      "Number of runs by result code",
	}, []string{"code"})

	m.registry.MustRegister(
		m.hosts, m.talks, m.persons,
		m.duration, m.lastSuccessTS, m.runsTotal,
	)
	return m
}

// ObserveRecord sets the record gauges.
func (m *Metrics) ObserveRecord(record *freitagsfoo.Record) {
	m.hosts.Set(float64(len(record.Hosts)))
	m.talks.Set(float64(len(record.Talks)))

	seen := make(map[string]bool)
	for _, talk := range record.Talks {
		for _, p := range talk.Persons {
			seen[p] = true
		}
	}
	m.persons.Set(float64(len(seen)))
}

// ObserveRun counts a finished run. Failed runs are labelled with their
// error code; successful runs with "ok".
func (m *Metrics) ObserveRun(begin, end time.Time, err error) {
	m.duration.Set(end.Sub(begin).Seconds())

	code := "ok"
	if err != nil {
		code = freitagsfoo.ErrorCode(err)
	} else {
		m.lastSuccessTS.Set(float64(end.Unix()))
	}
	m.runsTotal.WithLabelValues(code).Inc()
}

// WriteFile atomically writes all metrics to path in the textfile format.
func (m *Metrics) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
