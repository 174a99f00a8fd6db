package metrics

import (
	"net/http"

	"go-order-pipeline/internal/model"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	Runs          *prometheus.CounterVec // kind, status
	Files         *prometheus.CounterVec // kind, outcome
	OrderLines    prometheus.Counter
	ZeroQtyLines  prometheus.Counter
	Records       *prometheus.CounterVec // kind
	InvoiceMatch  *prometheus.CounterVec // result
	PasteEntries  prometheus.Counter
	RunLatencySec *prometheus.HistogramVec // kind
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderbatch_runs_total"}, []string{"kind", "status"})
	files := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderbatch_files_total"}, []string{"kind", "outcome"})
	lines := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderbatch_order_lines_total"})
	zero := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderbatch_zero_quantity_lines_total"})
	records := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderbatch_records_total"}, []string{"kind"})
	match := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "orderbatch_invoice_match_total"}, []string{"result"})
	paste := prometheus.NewCounter(prometheus.CounterOpts{Name: "orderbatch_paste_entries_total"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "orderbatch_run_latency_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"kind"})

	r.MustRegister(runs, files, lines, zero, records, match, paste, latency)
	return &Registry{
		reg:           r,
		Runs:          runs,
		Files:         files,
		OrderLines:    lines,
		ZeroQtyLines:  zero,
		Records:       records,
		InvoiceMatch:  match,
		PasteEntries:  paste,
		RunLatencySec: latency,
	}
}

// ObserveRun records the outcome of a shipment or management run.
func (r *Registry) ObserveRun(kind string, m model.RunMetrics, err error) {
	status := "completed"
	if err != nil {
		status = "failed"
	}
	r.Runs.WithLabelValues(kind, status).Inc()
	r.Files.WithLabelValues(kind, "recognized").Add(float64(m.FilesRecognized - m.FilesFailed))
	r.Files.WithLabelValues(kind, "unrecognized").Add(float64(m.FilesUnrecognized))
	r.Files.WithLabelValues(kind, "failed").Add(float64(m.FilesFailed))
	r.OrderLines.Add(float64(m.OrderLines))
	r.ZeroQtyLines.Add(float64(m.ZeroQuantityLines))
	r.Records.WithLabelValues(kind).Add(float64(m.Records))
	r.RunLatencySec.WithLabelValues(kind).Observe(m.Duration.Seconds())
}

// ObserveInvoices records reconciliation hits and misses.
func (r *Registry) ObserveInvoices(matched, unmatched int) {
	r.InvoiceMatch.WithLabelValues("matched").Add(float64(matched))
	r.InvoiceMatch.WithLabelValues("unmatched").Add(float64(unmatched))
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
