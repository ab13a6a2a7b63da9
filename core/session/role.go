package session

// Role is the capability flag supplied by the caller. It gates which
// planning operations are permitted; it is not an authentication mechanism.
type Role int

const (
	// RoleDriver may re-sequence flexible drops, update delivery status,
	// accept or reject consignments and add notes.
	RoleDriver Role = iota
	// RoleAdmin may additionally allocate, optimize, reposition consignments
	// and save load plans.
	RoleAdmin
)

// String returns a human-readable representation of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleDriver:
		return "driver"
	default:
		return "unknown"
	}
}
