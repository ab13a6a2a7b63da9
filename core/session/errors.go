package session

import "fmt"

// PermissionError reports a role-gated operation invoked by a caller whose
// role does not allow it. The session state is left unchanged.
type PermissionError struct {
	Op   string
	Role Role
}

func (e PermissionError) Error() string {
	return fmt.Sprintf("%s: not permitted for role %s", e.Op, e.Role)
}

// SyncError reports that propagating a state change to an external
// collaborator failed. The in-memory state is authoritative and has already
// advanced; the caller can retry the propagation independently.
type SyncError struct {
	JobID string
	Err   error
}

func (e SyncError) Error() string {
	return fmt.Sprintf("sync failed for job %s: %v", e.JobID, e.Err)
}

// Unwrap exposes the underlying collaborator failure.
func (e SyncError) Unwrap() error { return e.Err }
