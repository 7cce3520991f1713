package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "flatsetctl_commands_total",
		Help: "The total number of commands executed",
	}, []string{"command", "outcome"})

	setElements = promauto.NewGauge(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "flatsetctl_set_elements",
		Help: "The number of elements in the session's set",
	})

	setCapacity = promauto.NewGauge(prometheus.GaugeOpts{ //nolint:gochecknoglobals
		Name: "flatsetctl_set_capacity",
		Help: "The element capacity of the session's set",
	})
)

func observe(command string, err error, s *Session) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}

	commandsTotal.WithLabelValues(command, outcome).Inc()
	setElements.Set(float64(s.set.Size()))
	setCapacity.Set(float64(s.set.Capacity()))
}
