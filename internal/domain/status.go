package domain

import "errors"

type OrderStatus string

const (
	StatusPaid      OrderStatus = "paid"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every stage in workflow order.
var OrderStatuses = []OrderStatus{StatusPaid, StatusPreparing, StatusReady, StatusDelivered}

var ErrStatusNotForward = errors.New("order status can only move forward")

// Index returns the position of s in the workflow, or -1 for an unknown status.
func (s OrderStatus) Index() int {
	for i, known := range OrderStatuses {
		if s == known {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool {
	return s.Index() >= 0
}

// Reached reports whether stage has been passed through by the time the
// order sits at s. The current stage counts as reached.
func (s OrderStatus) Reached(stage OrderStatus) bool {
	return stage.Index() >= 0 && s.Index() >= stage.Index()
}

// CanAdvanceTo reports whether moving from s to target is a legal
// transition. Skipping stages forward is allowed; moving backward or
// staying in place is not.
func (s OrderStatus) CanAdvanceTo(target OrderStatus) bool {
	return target.Valid() && target.Index() > s.Index()
}
