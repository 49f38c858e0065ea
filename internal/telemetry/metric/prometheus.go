package metric

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/hashgen-go/internal/core/service"
)

const namespace = "hashgen"

// Registry holds the metrics of a benchmark run.
type Registry struct {
	reg *prometheus.Registry

	StageDuration   *prometheus.GaugeVec
	StageRecords    *prometheus.GaugeVec
	StageThroughput *prometheus.GaugeVec
	RunsTotal       prometheus.Counter
	OutputBytes     prometheus.Gauge
	TotalDuration   prometheus.Gauge
	LastRunTime     prometheus.Gauge
}

// NewRegistry creates a registry with every hashgen metric registered.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		StageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stage",
			Name:      "duration_seconds",
			Help:      "Wall time of the last run of each pipeline stage.",
		}, []string{"stage"}),
		StageRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stage",
			Name:      "records",
			Help:      "Records processed by each pipeline stage.",
		}, []string{"stage"}),
		StageThroughput: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stage",
			Name:      "records_per_second",
			Help:      "Records per second achieved by each pipeline stage.",
		}, []string{"stage"}),
		RunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed benchmark runs.",
		}),
		OutputBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "output_bytes",
			Help:      "Size of the output file written by the last run.",
		}),
		TotalDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "total_duration_seconds",
			Help:      "Hash, sort and write time of the last run.",
		}),
		LastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run started.",
		}),
	}

	r.reg.MustRegister(
		r.StageDuration,
		r.StageRecords,
		r.StageThroughput,
		r.RunsTotal,
		r.OutputBytes,
		r.TotalDuration,
		r.LastRunTime,
	)
	return r
}

// ObserveStage implements service.StageObserver.
func (r *Registry) ObserveStage(stage service.Stage, elapsed time.Duration, records int) {
	s := string(stage)
	r.StageDuration.WithLabelValues(s).Set(elapsed.Seconds())
	r.StageRecords.WithLabelValues(s).Set(float64(records))
	if elapsed > 0 {
		r.StageThroughput.WithLabelValues(s).Set(float64(records) / elapsed.Seconds())
	}
}

// ObserveRun records the totals of a finished run.
func (r *Registry) ObserveRun(report *service.Report) {
	r.RunsTotal.Inc()
	r.OutputBytes.Set(float64(report.Bytes))
	r.TotalDuration.Set(report.TotalTime)
	r.LastRunTime.Set(float64(report.StartedAt.Unix()))
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes the registry to path in the text exposition format.
// The file is written to a temporary name and renamed into place.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
