// Package metrics records organizer activity as Prometheus metrics.
//
// A one-shot CLI has nothing to scrape it, so the collected values are
// written to a node_exporter textfile when the run ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Demoen/organizer-application/pkg/models"
)

// Recorder holds the organizer's metrics in a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	reg *prometheus.Registry

	filesScanned  prometheus.Counter
	projectsFound prometheus.Counter
	dirsProtected prometheus.Counter
	scanDuration  prometheus.Histogram
	opsPlanned    prometheus.Counter
	opsApplied    prometheus.Counter
	applies       *prometheus.CounterVec
	applyDuration prometheus.Histogram
	undos         *prometheus.CounterVec
	historyDepth  prometheus.Gauge
	suggestions   *prometheus.CounterVec
}

// New creates a Recorder with its own registry
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,

		filesScanned: f.NewCounter(prometheus.CounterOpts{
			Name: "organizer_scan_files_total",
			Help: "Loose files found at scan roots",
		}),
		projectsFound: f.NewCounter(prometheus.CounterOpts{
			Name: "organizer_scan_projects_total",
			Help: "Project directories detected by scans",
		}),
		dirsProtected: f.NewCounter(prometheus.CounterOpts{
			Name: "organizer_scan_protected_dirs_total",
			Help: "Installed-program and application-data directories left alone",
		}),
		scanDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "organizer_scan_duration_seconds",
			Help:    "Time spent scanning a root",
			Buckets: prometheus.DefBuckets,
		}),
		opsPlanned: f.NewCounter(prometheus.CounterOpts{
			Name: "organizer_plan_operations_total",
			Help: "Operations emitted by the planner",
		}),
		opsApplied: f.NewCounter(prometheus.CounterOpts{
			Name: "organizer_apply_operations_total",
			Help: "Operations applied and kept, implicit directory creations included",
		}),
		applies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "organizer_apply_runs_total",
			Help: "Plan applications by outcome",
		}, []string{"status"}),
		applyDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "organizer_apply_duration_seconds",
			Help:    "Time spent applying a plan",
			Buckets: prometheus.DefBuckets,
		}),
		undos: f.NewCounterVec(prometheus.CounterOpts{
			Name: "organizer_undo_runs_total",
			Help: "Undo requests by outcome",
		}, []string{"result"}),
		historyDepth: f.NewGauge(prometheus.GaugeOpts{
			Name: "organizer_history_batches",
			Help: "Batches currently available for undo",
		}),
		suggestions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "organizer_name_suggestions_total",
			Help: "Project name suggestions by outcome",
		}, []string{"result"}),
	}
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// ObserveScan records one completed scan
func (r *Recorder) ObserveScan(files, projects, protected int, d time.Duration) {
	if r == nil {
		return
	}
	r.filesScanned.Add(float64(files))
	r.projectsFound.Add(float64(projects))
	r.dirsProtected.Add(float64(protected))
	r.scanDuration.Observe(d.Seconds())
}

// ObservePlan records the size of a generated plan
func (r *Recorder) ObservePlan(p *models.Plan) {
	if r == nil || p == nil {
		return
	}
	r.opsPlanned.Add(float64(len(p.Operations)))
}

// ObserveApply records the outcome of one apply
func (r *Recorder) ObserveApply(report *models.ApplyReport) {
	if r == nil || report == nil {
		return
	}
	r.applies.WithLabelValues(string(report.Status)).Inc()
	r.applyDuration.Observe(report.Duration.Seconds())
	if report.Status == models.StatusSuccess {
		r.opsApplied.Add(float64(len(report.Applied)))
	}
}

// ObserveUndo records an undo outcome: "success", "empty" or "failed"
func (r *Recorder) ObserveUndo(result string) {
	if r == nil {
		return
	}
	r.undos.WithLabelValues(result).Inc()
}

// SetHistoryDepth records how many batches remain undoable
func (r *Recorder) SetHistoryDepth(n int) {
	if r == nil {
		return
	}
	r.historyDepth.Set(float64(n))
}

// ObserveSuggestion records whether a name suggestion was used
func (r *Recorder) ObserveSuggestion(ok bool) {
	if r == nil {
		return
	}
	result := "unavailable"
	if ok {
		result = "used"
	}
	r.suggestions.WithLabelValues(result).Inc()
}

// WriteTextfile writes all metrics in the Prometheus text format
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
