package model

import "fmt"

// UnknownItemError reports an operation that named an item id absent from the
// collection it targeted. The collection is left untouched.
type UnknownItemError struct {
	Op string
	ID string
}

func (e UnknownItemError) Error() string {
	return fmt.Sprintf("%s: unknown item %q", e.Op, e.ID)
}

// TransitionError reports an invalid delivery-status transition.
type TransitionError struct {
	ID   string
	From DeliveryStatus
	To   DeliveryStatus
}

func (e TransitionError) Error() string {
	return fmt.Sprintf("item %s: invalid status transition %s -> %s", e.ID, e.From, e.To)
}
