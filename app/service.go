// Package app wires the planning engine to its collaborators from the
// configuration.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/freightworks/loadplan/api/loadmaps"
	"github.com/freightworks/loadplan/api/plans"
	"github.com/freightworks/loadplan/config"
	"github.com/freightworks/loadplan/core/allocation"
	"github.com/freightworks/loadplan/core/jobtracker"
	coremetrics "github.com/freightworks/loadplan/core/metrics"
	"github.com/freightworks/loadplan/core/model"
	"github.com/freightworks/loadplan/core/planstore"
	"github.com/freightworks/loadplan/core/session"
	"github.com/freightworks/loadplan/infra/jobsource"
	"github.com/freightworks/loadplan/infra/logger"
	"github.com/freightworks/loadplan/infra/metrics"
	"github.com/freightworks/loadplan/infra/mqtt"
	"github.com/freightworks/loadplan/internal/eventbus"
)

// Service orchestrates one planning session and its HTTP surfaces.
type Service struct {
	Session *session.Session
	Store   planstore.Store

	cfg     *config.Config
	tracker jobtracker.Tracker
	bus     eventbus.EventBus
	log     logger.Logger
}

// New creates a Service for the given vehicle from the configuration. Jobs
// are fetched from the job source when one is configured; otherwise the
// session starts empty and items are added through the session API.
func New(ctx context.Context, cfg *config.Config, vehicleID string) (*Service, error) {
	logg := logger.New("service")

	var store planstore.Store
	switch cfg.Store.Backend {
	case "sqlite":
		s, err := planstore.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("plan store: %w", err)
		}
		store = s
	default:
		store = planstore.NewMemoryStore()
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	var tracker jobtracker.Tracker
	if cfg.MQTT.Broker != "" {
		tr, err := mqtt.NewPahoTracker(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt tracker: %w", err)
		}
		tracker = tr
	}

	layout := model.TrailerLayout{
		ID:        uuid.NewString(),
		VehicleID: vehicleID,
		Length:    cfg.Trailer.Length,
		Width:     cfg.Trailer.Width,
		Height:    cfg.Trailer.Height,
		MaxWeight: cfg.Trailer.MaxWeight,
		MaxVolume: cfg.Trailer.MaxVolume,
	}
	loadMap := model.VehicleLoadMap{
		ID:        uuid.NewString(),
		VehicleID: vehicleID,
		Date:      time.Now().UTC(),
	}

	eng, err := allocation.New(cfg.Allocation)
	if err != nil {
		return nil, err
	}
	bus := eventbus.New()
	sess, err := session.New(session.RoleAdmin, layout, loadMap, eng, store, tracker, bus, sink, logg)
	if err != nil {
		return nil, err
	}

	svc := &Service{Session: sess, Store: store, cfg: cfg, tracker: tracker, bus: bus, log: logg}
	if cfg.JobSource.BaseURL != "" {
		if err := svc.loadJobs(ctx, vehicleID); err != nil {
			logg.Errorf("job source: %v", err)
		}
	}
	return svc, nil
}

// loadJobs pulls the vehicle's jobs from the job source and seeds the
// session with them.
func (s *Service) loadJobs(ctx context.Context, vehicleID string) error {
	src, err := jobsource.New(s.cfg.JobSource)
	if err != nil {
		return err
	}
	jobs, err := src.Jobs(ctx, vehicleID)
	if err != nil {
		return err
	}
	estimated := time.Now().UTC()
	for _, job := range jobs {
		estimated = estimated.Add(30 * time.Minute)
		if err := s.Session.AddJob(job, estimated); err != nil {
			s.log.Warnf("skipping job %s: %v", job.ID, err)
		}
	}
	s.log.Infof("loaded %d jobs for vehicle %s", len(jobs), vehicleID)
	return nil
}

// Run serves the HTTP API and the Prometheus endpoint until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/plans", plans.NewHandler(s.Store))
	mux.Handle("/api/loadmaps/status", loadmaps.NewStatusHandler(s.Session))
	srv := &http.Server{Addr: s.cfg.API.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	s.log.Infof("serving API on %s", s.cfg.API.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.bus != nil {
		s.bus.Close()
	}
	if s.tracker != nil {
		if err := s.tracker.Close(); err != nil {
			return err
		}
	}
	return s.Store.Close()
}
