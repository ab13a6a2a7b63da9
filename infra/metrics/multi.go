package metrics

import (
	"errors"

	coremetrics "github.com/freightworks/loadplan/core/metrics"
)

// MultiSink fans records out to several sinks. Errors are joined so one
// failing backend does not hide the others.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink over the given sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordAllocation forwards the record to every sink.
func (m *MultiSink) RecordAllocation(res coremetrics.AllocationResult) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordAllocation(res); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordStatusChange forwards the record to every sink.
func (m *MultiSink) RecordStatusChange(ch coremetrics.StatusChange) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordStatusChange(ch); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordSequenceOp forwards to every sink implementing SequenceRecorder.
func (m *MultiSink) RecordSequenceOp(op string, items int) error {
	var errs []error
	for _, s := range m.sinks {
		if sr, ok := s.(coremetrics.SequenceRecorder); ok {
			if err := sr.RecordSequenceOp(op, items); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
