// Package metrics counts pipeline outcomes for the node exporter textfile collector.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons.
const (
	ReasonInvalid   = "invalid"
	ReasonDuplicate = "duplicate"
)

// Recorder owns a private registry with the library counters. A nil Recorder
// discards everything.
type Recorder struct {
	registry *prometheus.Registry

	ArticlesReceived  prometheus.Counter
	ArticlesRejected  *prometheus.CounterVec
	ArticlesPersisted *prometheus.CounterVec
	CatalogRefreshes  prometheus.Counter
}

// NewRecorder registers all counters on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ArticlesReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "articles_received_total",
			Help: "Total number of candidate articles handed to the pipeline",
		}),
		ArticlesRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "articles_rejected_total",
			Help: "Total number of candidate articles dropped during preparation",
		}, []string{"reason"}),
		ArticlesPersisted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "articles_persisted_total",
			Help: "Total number of articles written to the store",
		}, []string{"year"}),
		CatalogRefreshes: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_refreshes_total",
			Help: "Total number of catalog index refreshes",
		}),
	}
}

// Received counts n candidates.
func (r *Recorder) Received(n int) {
	if r == nil {
		return
	}
	r.ArticlesReceived.Add(float64(n))
}

// Rejected counts one dropped candidate.
func (r *Recorder) Rejected(reason string) {
	if r == nil {
		return
	}
	r.ArticlesRejected.WithLabelValues(reason).Inc()
}

// Persisted counts n articles stored for year.
func (r *Recorder) Persisted(year, n int) {
	if r == nil {
		return
	}
	r.ArticlesPersisted.WithLabelValues(strconv.Itoa(year)).Add(float64(n))
}

// Refreshed counts one catalog refresh.
func (r *Recorder) Refreshed() {
	if r == nil {
		return
	}
	r.CatalogRefreshes.Inc()
}

// Flush writes the registry to path in text exposition format. An empty path is a no-op.
func (r *Recorder) Flush(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
