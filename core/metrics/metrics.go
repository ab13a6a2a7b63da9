// Package metrics defines the sink interfaces the planning session records
// into. Implementations live under infra/metrics.
package metrics

import (
	"time"

	"github.com/freightworks/loadplan/core/model"
)

// AllocationResult is one allocation run to be recorded.
type AllocationResult struct {
	LayoutID       string
	VehicleID      string
	Placed         int
	Skipped        int
	TotalWeight    float64
	TotalVolume    float64
	UtilizationPct float64
	Overloaded     bool
	Time           time.Time
}

// StatusChange is one delivery status transition to be recorded.
type StatusChange struct {
	LoadMapID string
	JobID     string
	Status    model.DeliveryStatus
	Time      time.Time
}

// Sink records planning results for observability purposes.
type Sink interface {
	RecordAllocation(res AllocationResult) error
	RecordStatusChange(ch StatusChange) error
}

// SequenceRecorder is implemented by sinks that also track sequencing
// operations.
type SequenceRecorder interface {
	RecordSequenceOp(op string, items int) error
}

// Config selects and parameterizes the metric sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled" yaml:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port" yaml:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled" yaml:"influx_enabled"`
	InfluxURL         string `json:"influx_url" yaml:"influx_url"`
	InfluxToken       string `json:"influx_token" yaml:"influx_token"`
	InfluxOrg         string `json:"influx_org" yaml:"influx_org"`
	InfluxBucket      string `json:"influx_bucket" yaml:"influx_bucket"`
}
