package dataformat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/thrustcurve/dataformat/idmap"
)

// Metrics are the server's prometheus collectors.
type Metrics struct {
	rendered *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg, together
// with a gauge reporting the size of the identifier registry.
func NewMetrics(reg prometheus.Registerer, ids *idmap.Registry) *Metrics {
	m := &Metrics{
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataformat_documents_rendered_total",
			Help: "Documents rendered, by format and endpoint.",
		}, []string{"format", "endpoint"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dataformat_request_errors_total",
			Help: "Requests answered with an error document, by endpoint.",
		}, []string{"endpoint"}),
	}
	compat := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "dataformat_compat_ids",
		Help: "Identifiers assigned a compatibility integer.",
	}, func() float64 {
		return float64(ids.Len())
	})

	reg.MustRegister(m.rendered, m.errors, compat)
	return m
}

func (m *Metrics) documentRendered(format, endpoint string) {
	m.rendered.WithLabelValues(format, endpoint).Inc()
}

func (m *Metrics) requestFailed(endpoint string) {
	m.errors.WithLabelValues(endpoint).Inc()
}
