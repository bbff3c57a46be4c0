package parcel

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for body codec operations.
type Metrics struct {
	classificationsTotal *prometheus.CounterVec
	decodeTotal          *prometheus.CounterVec
	encodeTotal          *prometheus.CounterVec
	rejectionsTotal      *prometheus.CounterVec
}

var (
	metricsInstance *Metrics
	metricsOnce     sync.Once
)

// GetMetrics returns the singleton metrics instance, registered with the
// default Prometheus registerer.
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metricsInstance = &Metrics{
			classificationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "parcel",
					Subsystem: "body",
					Name:      "classifications_total",
					Help:      "Total number of request content type classifications",
				},
				[]string{"result"},
			),
			decodeTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "parcel",
					Subsystem: "body",
					Name:      "decode_total",
					Help:      "Total number of request body decode operations",
				},
				[]string{"mode", "result"},
			),
			encodeTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "parcel",
					Subsystem: "body",
					Name:      "encode_total",
					Help:      "Total number of response body encode operations",
				},
				[]string{"mode", "result"},
			),
			rejectionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "parcel",
					Subsystem: "body",
					Name:      "rejections_total",
					Help:      "Total number of rejected request bodies",
				},
				[]string{"kind"},
			),
		}
	})
	return metricsInstance
}

// RecordClassification records a content type classification.
func (m *Metrics) RecordClassification(msgpack bool) {
	result := "other"
	if msgpack {
		result = "msgpack"
	}
	m.classificationsTotal.WithLabelValues(result).Inc()
}

// RecordDecode records a decode operation.
func (m *Metrics) RecordDecode(mode Mode, err error) {
	m.decodeTotal.WithLabelValues(mode.String(), result(err)).Inc()
}

// RecordEncode records an encode operation.
func (m *Metrics) RecordEncode(mode Mode, err error) {
	m.encodeTotal.WithLabelValues(mode.String(), result(err)).Inc()
}

// RecordRejection records a rejection by kind.
func (m *Metrics) RecordRejection(kind RejectionKind) {
	m.rejectionsTotal.WithLabelValues(kind.String()).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
