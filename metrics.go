package mdblog

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render kinds used as metric labels.
const (
	kindList = "list"
	kindPost = "post"
	kindFeed = "feed"
)

// Metrics records page renders, shared by the static build and the server.
type Metrics struct {
	reg            *prom.Registry
	renders        *prom.CounterVec
	renderDuration *prom.HistogramVec
	postsLoaded    prom.Gauge
}

// NewMetrics registers the collectors on reg, a fresh registry when nil.
func NewMetrics(reg *prom.Registry) *Metrics {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	m := &Metrics{
		reg: reg,
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "mdblog",
			Name:      "renders_total",
			Help:      "Rendered pages by kind",
		}, []string{"kind"}),
		renderDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "mdblog",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering a page, including reading the posts",
			Buckets:   prom.DefBuckets,
		}, []string{"kind"}),
		postsLoaded: prom.NewGauge(prom.GaugeOpts{
			Namespace: "mdblog",
			Name:      "posts_loaded",
			Help:      "Number of posts found by the last listing",
		}),
	}
	reg.MustRegister(m.renders, m.renderDuration, m.postsLoaded)
	return m
}

func (m *Metrics) observeRender(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(kind).Inc()
	m.renderDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (m *Metrics) setPostsLoaded(n int) {
	if m == nil {
		return
	}
	m.postsLoaded.Set(float64(n))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Registry is the registry the collectors were registered on.
func (m *Metrics) Registry() *prom.Registry {
	return m.reg
}
