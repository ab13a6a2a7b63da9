package metrics

// NopSink discards all records. Used when no sink is configured or a backend
// is unreachable.
type NopSink struct{}

func (NopSink) RecordAllocation(AllocationResult) error { return nil }
func (NopSink) RecordStatusChange(StatusChange) error   { return nil }
