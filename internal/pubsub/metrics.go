package pubsub

import "github.com/prometheus/client_golang/prometheus"

type busMetrics struct {
	published   *prometheus.CounterVec
	dropped     *prometheus.CounterVec
	subscribers *prometheus.GaugeVec
}

func (b *Bus) initMetrics(registry prometheus.Registerer) {
	b.metrics = &busMetrics{
		published: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hackx_bus_events_published_total",
				Help: "Total events published per topic",
			},
			[]string{"topic"},
		),
		dropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hackx_bus_events_dropped_total",
				Help: "Events dropped because a subscriber buffer was full",
			},
			[]string{"topic"},
		),
		subscribers: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "hackx_bus_subscribers",
				Help: "Current subscriber count per topic",
			},
			[]string{"topic"},
		),
	}
	registry.MustRegister(
		b.metrics.published,
		b.metrics.dropped,
		b.metrics.subscribers,
	)
}
