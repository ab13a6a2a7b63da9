package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/freightworks/loadplan/core/metrics"
	"github.com/freightworks/loadplan/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink when the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.Sink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAllocation writes the allocation result as a line protocol point.
func (s *InfluxSink) RecordAllocation(res coremetrics.AllocationResult) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("allocation_event").
		AddTag("layout_id", res.LayoutID).
		AddTag("vehicle_id", res.VehicleID).
		AddTag("overloaded", strconv.FormatBool(res.Overloaded)).
		AddField("placed", res.Placed).
		AddField("skipped", res.Skipped).
		AddField("total_weight", round3(res.TotalWeight)).
		AddField("total_volume", round3(res.TotalVolume)).
		AddField("utilization_pct", round3(res.UtilizationPct)).
		SetTime(res.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordStatusChange writes the status transition as a line protocol point.
func (s *InfluxSink) RecordStatusChange(ch coremetrics.StatusChange) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("delivery_status_event").
		AddTag("load_map_id", ch.LoadMapID).
		AddTag("job_id", ch.JobID).
		AddTag("status", ch.Status.String()).
		AddField("value", 1).
		SetTime(ch.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close shuts down the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
