package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	allocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "flatset_allocations_total",
		Help: "The total number of buffers allocated",
	}, []string{"allocator"})

	allocatedElementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "flatset_allocated_elements_total",
		Help: "The total element capacity allocated",
	}, []string{"allocator"})

	allocationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "flatset_allocation_failures_total",
		Help: "The total number of refused allocations",
	}, []string{"allocator"})

	outstandingElements = promauto.NewGaugeVec(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "flatset_outstanding_elements",
		Help: "The element capacity currently allocated and not yet returned",
	}, []string{"allocator"})
)
