// Package session orchestrates one trailer planning session. Every mutation
// of the layout or the load map flows through the Session so derived fields
// (totals, utilization, sequence numbers, position classes) are recomputed
// atomically before the call returns. Collaborator propagation is
// fire-and-forget: a failed callback is reported but never rolls the
// in-memory state back.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/freightworks/loadplan/core/allocation"
	"github.com/freightworks/loadplan/core/capacity"
	"github.com/freightworks/loadplan/core/events"
	"github.com/freightworks/loadplan/core/jobtracker"
	"github.com/freightworks/loadplan/core/logger"
	"github.com/freightworks/loadplan/core/metrics"
	"github.com/freightworks/loadplan/core/model"
	"github.com/freightworks/loadplan/core/placement"
	"github.com/freightworks/loadplan/core/planstore"
	"github.com/freightworks/loadplan/core/sequencing"
	"github.com/freightworks/loadplan/internal/eventbus"
)

// syncTimeout bounds the fire-and-forget callback to the job tracker.
const syncTimeout = 3 * time.Second

// Session owns one trailer layout and its vehicle load map for the duration
// of a planning interaction. Only one session edits a given layout at a
// time; the version counter exists for a future optimistic-concurrency
// check on write-back.
type Session struct {
	role    Role
	alloc   *allocation.Engine
	store   planstore.Store
	tracker jobtracker.Tracker
	bus     eventbus.EventBus
	sink    metrics.Sink
	log     logger.Logger
	now     func() time.Time

	mu      sync.Mutex
	layout  model.TrailerLayout
	loadMap model.VehicleLoadMap
	version uint64
}

// New creates a Session for the given caller role. The allocation engine and
// logger are required; store, tracker, bus and sink are optional
// collaborators.
func New(role Role, layout model.TrailerLayout, loadMap model.VehicleLoadMap, alloc *allocation.Engine, store planstore.Store, tracker jobtracker.Tracker, bus eventbus.EventBus, sink metrics.Sink, log logger.Logger) (*Session, error) {
	if alloc == nil || log == nil {
		return nil, fmt.Errorf("session: nil parameter provided to New")
	}
	s := &Session{
		role:    role,
		alloc:   alloc,
		store:   store,
		tracker: tracker,
		bus:     bus,
		sink:    sink,
		log:     log,
		now:     time.Now,
		layout:  layout.Clone(),
		loadMap: loadMap.Clone(),
	}
	s.loadMap.TotalDeliveries = len(s.loadMap.Items)
	s.loadMap.CompletedDeliveries = sequencing.CompletedCount(s.loadMap.Items)
	return s, nil
}

// Layout returns a copy of the current trailer layout.
func (s *Session) Layout() model.TrailerLayout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout.Clone()
}

// LoadMap returns a copy of the current vehicle load map.
func (s *Session) LoadMap() model.VehicleLoadMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadMap.Clone()
}

// Version returns the mutation counter, bumped on every state change.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Summary recomputes the capacity totals for the current layout.
func (s *Session) Summary() capacity.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return capacity.ForLayout(s.layout)
}

func (s *Session) requireAdmin(op string) error {
	if s.role != RoleAdmin {
		return PermissionError{Op: op, Role: s.role}
	}
	return nil
}

// AddJob derives a cargo item and a delivery drop from the job record and
// appends them to the session. Admin only.
func (s *Session) AddJob(job model.Job, estimated time.Time) error {
	if err := s.requireAdmin("add job"); err != nil {
		return err
	}
	item := job.CargoItem()
	if err := item.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layout.Items = append(s.layout.Items, item)
	drop := model.DeliveryItem{
		ID:               uuid.NewString(),
		JobID:            job.ID,
		DeliverySequence: len(s.loadMap.Items) + 1,
		EstimatedTime:    estimated,
		IsFlexible:       job.Priority != model.PriorityHigh,
	}
	s.loadMap.Items = sequencing.Renumber(append(s.loadMap.Items, drop))
	s.loadMap.TotalDeliveries = len(s.loadMap.Items)
	s.loadMap.IsOptimized = false
	s.version++
	return nil
}

// RemoveItem deletes a consignment and its drop, then repairs the sequence
// numbering. Admin only.
func (s *Session) RemoveItem(id string) error {
	if err := s.requireAdmin("remove item"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var jobID string
	idx := -1
	for i, it := range s.layout.Items {
		if it.ID == id {
			idx, jobID = i, it.JobID
			break
		}
	}
	if idx < 0 {
		return model.UnknownItemError{Op: "remove item", ID: id}
	}
	s.layout.Items = append(s.layout.Items[:idx:idx], s.layout.Items[idx+1:]...)
	drops := make([]model.DeliveryItem, 0, len(s.loadMap.Items))
	for _, d := range s.loadMap.Items {
		if d.JobID != jobID {
			drops = append(drops, d)
		}
	}
	s.loadMap.Items = sequencing.Renumber(drops)
	s.loadMap.TotalDeliveries = len(s.loadMap.Items)
	s.loadMap.CompletedDeliveries = sequencing.CompletedCount(s.loadMap.Items)
	s.version++
	return nil
}

// Allocate runs the shelf packer over the current cargo items, using the
// trailer deck (length by width) as the 2-D footprint. Admin only.
func (s *Session) Allocate() (capacity.Summary, error) {
	if err := s.requireAdmin("allocate"); err != nil {
		return capacity.Summary{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	env := allocation.Envelope{Width: s.layout.Length, Height: s.layout.Width}
	placed, err := s.alloc.Allocate(s.layout.Items, env)
	if err != nil {
		return capacity.Summary{}, err
	}
	s.layout.Items = placed
	s.version++
	sum := capacity.ForLayout(s.layout)

	nPlaced, nSkipped := 0, 0
	for _, it := range placed {
		if it.Placed {
			nPlaced++
		} else {
			nSkipped++
		}
	}
	if sum.Overloaded() {
		s.log.Warnf("layout %s overloaded: %.1f%% of %0.1f m³", s.layout.ID, sum.UtilizationPct, s.layout.MaxVolume)
	}
	s.publish(events.AllocationEvent{LayoutID: s.layout.ID, Placed: nPlaced, Skipped: nSkipped, Summary: sum})
	if s.sink != nil {
		rec := metrics.AllocationResult{
			LayoutID:       s.layout.ID,
			VehicleID:      s.layout.VehicleID,
			Placed:         nPlaced,
			Skipped:        nSkipped,
			TotalWeight:    sum.TotalWeight,
			TotalVolume:    sum.TotalVolume,
			UtilizationPct: sum.UtilizationPct,
			Overloaded:     sum.Overloaded(),
			Time:           s.now(),
		}
		if err := s.sink.RecordAllocation(rec); err != nil {
			s.log.Errorf("metrics error: %v", err)
		}
	}
	return sum, nil
}

// OptimizeByTime reorders the load map by estimated delivery time. Admin
// only.
func (s *Session) OptimizeByTime() error {
	if err := s.requireAdmin("optimize by time"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadMap.Items = sequencing.OptimizeByTime(s.loadMap.Items)
	s.loadMap.IsOptimized = true
	s.version++
	s.publish(events.SequenceEvent{LoadMapID: s.loadMap.ID, Op: "optimize", Items: len(s.loadMap.Items)})
	s.recordSequenceOp("optimize")
	return nil
}

// Swap exchanges the delivery sequence of two drops. Drivers may only swap
// drops that are both marked flexible.
func (s *Session) Swap(idA, idB string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role != RoleAdmin {
		for _, d := range s.loadMap.Items {
			if (d.ID == idA || d.ID == idB) && !d.IsFlexible {
				return PermissionError{Op: "swap non-flexible drop", Role: s.role}
			}
		}
	}
	items, err := sequencing.Swap(s.loadMap.Items, idA, idB)
	if err != nil {
		return err
	}
	s.loadMap.Items = items
	s.version++
	s.publish(events.SequenceEvent{LoadMapID: s.loadMap.ID, Op: "swap", Items: len(items)})
	s.recordSequenceOp("swap")
	return nil
}

// UpdateStatus transitions one drop's delivery status, recomputes the
// completed counter and propagates the change to the job tracker. A
// propagation failure is returned as a SyncError after the state change has
// been committed.
func (s *Session) UpdateStatus(id string, status model.DeliveryStatus) error {
	s.mu.Lock()
	items, completed, err := sequencing.UpdateStatus(s.loadMap.Items, id, status, s.now())
	if err != nil {
		s.mu.Unlock()
		return err
	}
	var jobID string
	for _, d := range items {
		if d.ID == id {
			jobID = d.JobID
			break
		}
	}
	s.loadMap.Items = items
	s.loadMap.CompletedDeliveries = completed
	s.version++
	mapID := s.loadMap.ID
	s.mu.Unlock()

	now := s.now()
	s.publish(events.StatusEvent{JobID: jobID, Status: status, Time: now})
	if s.sink != nil {
		ch := metrics.StatusChange{LoadMapID: mapID, JobID: jobID, Status: status, Time: now}
		if err := s.sink.RecordStatusChange(ch); err != nil {
			s.log.Errorf("metrics error: %v", err)
		}
	}
	if s.tracker != nil {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		if err := s.tracker.ReportStatus(ctx, jobID, status); err != nil {
			s.log.Warnf("status propagation failed for job %s: %v", jobID, err)
			s.publish(events.SyncFailureEvent{JobID: jobID, Err: err})
			return SyncError{JobID: jobID, Err: err}
		}
	}
	return nil
}

// Accept returns a rejected consignment to the allocated state.
func (s *Session) Accept(id string) error {
	return s.placementOp(id, func(items []model.CargoItem) ([]model.CargoItem, error) {
		return placement.Accept(items, id)
	})
}

// Reject marks a consignment as rejected.
func (s *Session) Reject(id string) error {
	return s.placementOp(id, func(items []model.CargoItem) ([]model.CargoItem, error) {
		return placement.Reject(items, id)
	})
}

// Move repositions a consignment. Admin only: drivers do not rearrange the
// physical load.
func (s *Session) Move(id string, pos model.Position) error {
	if err := s.requireAdmin("move"); err != nil {
		return err
	}
	return s.placementOp(id, func(items []model.CargoItem) ([]model.CargoItem, error) {
		return placement.Move(items, id, pos)
	})
}

func (s *Session) placementOp(id string, op func([]model.CargoItem) ([]model.CargoItem, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := op(s.layout.Items)
	if err != nil {
		return err
	}
	s.layout.Items = items
	s.version++
	for _, it := range items {
		if it.ID == id {
			s.publish(events.PlacementEvent{ItemID: id, State: it.State})
			break
		}
	}
	return nil
}

// AddNote appends a note to a drop, into the field matching the caller role.
func (s *Session) AddNote(id, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.loadMap.Items {
		if s.loadMap.Items[i].ID != id {
			continue
		}
		if s.role == RoleAdmin {
			s.loadMap.Items[i].AdminNotes = note
		} else {
			s.loadMap.Items[i].DriverNotes = note
		}
		s.version++
		return nil
	}
	return model.UnknownItemError{Op: "add note", ID: id}
}

// SavePlan stores a named deep snapshot of the current layout and load map.
// Admin only.
func (s *Session) SavePlan(ctx context.Context, name, description string) (planstore.LoadPlan, error) {
	if err := s.requireAdmin("save plan"); err != nil {
		return planstore.LoadPlan{}, err
	}
	if s.store == nil {
		return planstore.LoadPlan{}, fmt.Errorf("save plan: no store configured")
	}
	s.mu.Lock()
	layout := s.layout.Clone()
	drops := append([]model.DeliveryItem(nil), s.loadMap.Items...)
	s.mu.Unlock()
	plan, err := s.store.Save(ctx, name, description, layout, drops)
	if err != nil {
		return planstore.LoadPlan{}, SyncError{JobID: "", Err: err}
	}
	s.log.Infof("saved load plan %s (%s)", plan.ID, name)
	return plan, nil
}

func (s *Session) publish(e eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}

func (s *Session) recordSequenceOp(op string) {
	if sr, ok := s.sink.(metrics.SequenceRecorder); ok {
		if err := sr.RecordSequenceOp(op, len(s.loadMap.Items)); err != nil {
			s.log.Errorf("metrics error: %v", err)
		}
	}
}
