package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/freightworks/loadplan/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	allocations *prometheus.CounterVec
	utilization *prometheus.GaugeVec
	statuses    *prometheus.CounterVec
	sequenceOps *prometheus.CounterVec
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (*PromSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	allocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loadplan_allocations_total",
		Help: "Total number of allocation runs",
	}, []string{"vehicle_id", "overloaded"})
	utilization := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "loadplan_trailer_utilization_percent",
		Help: "Volume utilization of the trailer after the last allocation",
	}, []string{"vehicle_id"})
	statuses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loadplan_delivery_status_changes_total",
		Help: "Total number of delivery status transitions",
	}, []string{"status"})
	sequenceOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "loadplan_sequence_operations_total",
		Help: "Total number of sequencing operations",
	}, []string{"op"})

	s := &PromSink{allocations: allocations, utilization: utilization, statuses: statuses, sequenceOps: sequenceOps}
	for _, c := range []prometheus.Collector{allocations, utilization, statuses, sequenceOps} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordAllocation increments the allocation counter and updates the
// utilization gauge.
func (s *PromSink) RecordAllocation(res coremetrics.AllocationResult) error {
	s.allocations.WithLabelValues(res.VehicleID, strconv.FormatBool(res.Overloaded)).Inc()
	s.utilization.WithLabelValues(res.VehicleID).Set(res.UtilizationPct)
	return nil
}

// RecordStatusChange increments the status transition counter.
func (s *PromSink) RecordStatusChange(ch coremetrics.StatusChange) error {
	s.statuses.WithLabelValues(ch.Status.String()).Inc()
	return nil
}

// RecordSequenceOp increments the sequencing operation counter.
func (s *PromSink) RecordSequenceOp(op string, _ int) error {
	s.sequenceOps.WithLabelValues(op).Inc()
	return nil
}
