package gnrccoap

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks optional Prometheus counters for the receive loop.
// Every method handles a nil receiver gracefully, so a nil *Metrics
// (the default, since SetMetrics is never called) is a zero-overhead
// no-op — grounded on the same nil-receiver pattern used throughout
// the pack's NFS/RPC metrics.
type Metrics struct {
	// Parsed counts datagrams that decoded successfully.
	Parsed prometheus.Counter
	// Dropped counts datagrams rejected before dispatch, by reason.
	// Labels: reason=[parse_error, unsupported_type, wrong_direction,
	//                 token_mismatch, pool_exhausted, mailbox_full]
	Dropped *prometheus.CounterVec
	// Dispatched counts requests successfully routed to a handler.
	Dispatched prometheus.Counter
}

// NewMetrics creates and registers gocoap's Prometheus metrics. If
// registerer is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		Parsed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gocoap_datagrams_parsed_total",
			Help: "Total inbound datagrams successfully parsed.",
		}),
		Dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gocoap_datagrams_dropped_total",
			Help: "Total inbound datagrams dropped before dispatch, by reason.",
		}, []string{"reason"}),
		Dispatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gocoap_requests_dispatched_total",
			Help: "Total requests successfully routed to a handler.",
		}),
	}
	registerer.MustRegister(m.Parsed, m.Dropped, m.Dispatched)
	return m
}

func (m *Metrics) recordParsed() {
	if m == nil {
		return
	}
	m.Parsed.Inc()
}

func (m *Metrics) recordDropped(reason string) {
	if m == nil {
		return
	}
	m.Dropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) recordDispatched() {
	if m == nil {
		return
	}
	m.Dispatched.Inc()
}
