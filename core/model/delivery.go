package model

import "time"

// DeliveryStatus tracks the driver-facing progress of one drop.
type DeliveryStatus int

const (
	StatusPending DeliveryStatus = iota
	StatusInProgress
	StatusCompleted
)

// String returns a human-readable representation of the delivery status.
func (s DeliveryStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseDeliveryStatus converts the wire representation used by the job
// tracker back into a DeliveryStatus.
func ParseDeliveryStatus(s string) (DeliveryStatus, bool) {
	switch s {
	case "pending":
		return StatusPending, true
	case "in_progress":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	default:
		return StatusPending, false
	}
}

// PositionClass is the delivery-position class of a consignment on the
// trailer: tail is first off, bulkhead is last off.
type PositionClass int

const (
	PositionTail PositionClass = iota
	PositionMiddle
	PositionBulkhead
)

// String returns a human-readable representation of the position class.
func (p PositionClass) String() string {
	switch p {
	case PositionTail:
		return "tail"
	case PositionMiddle:
		return "middle"
	case PositionBulkhead:
		return "bulkhead"
	default:
		return "unknown"
	}
}

// DeliveryItem is one drop on a vehicle load map.
type DeliveryItem struct {
	ID    string `json:"id"`
	JobID string `json:"job_id"`

	// DeliverySequence is the unload order, contiguous from 1..N within a
	// load map.
	DeliverySequence int           `json:"delivery_sequence"`
	Position         PositionClass `json:"position"`

	EstimatedTime time.Time  `json:"estimated_time"`
	ActualTime    *time.Time `json:"actual_time,omitempty"`

	Status      DeliveryStatus `json:"status"`
	DriverNotes string         `json:"driver_notes,omitempty"`
	AdminNotes  string         `json:"admin_notes,omitempty"`

	// IsFlexible marks drops whose sequence may be changed without admin
	// approval.
	IsFlexible bool `json:"is_flexible"`
}

// VehicleLoadMap holds the delivery schedule of one vehicle for one day.
type VehicleLoadMap struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	DriverID  string    `json:"driver_id"`
	Date      time.Time `json:"date"`

	Items []DeliveryItem `json:"items"`

	TotalDeliveries     int  `json:"total_deliveries"`
	CompletedDeliveries int  `json:"completed_deliveries"`
	IsOptimized         bool `json:"is_optimized"`
}

// Clone returns a deep copy of the load map.
func (m VehicleLoadMap) Clone() VehicleLoadMap {
	cp := m
	cp.Items = append([]DeliveryItem(nil), m.Items...)
	return cp
}
