package model

// TransitionPolicy selects the set of allowed status changes.
type TransitionPolicy string

const (
	// TransitionPermissive lets operators move an order to any status.
	TransitionPermissive TransitionPolicy = "permissive"
	// TransitionStrict only moves orders forward or cancels open ones.
	TransitionStrict TransitionPolicy = "strict"
)

// TransitionTable maps a status to the statuses it may move to.
// Rewriting the current status is always allowed.
type TransitionTable map[OrderStatus][]OrderStatus

// NewTransitionTable builds the table for policy. Unknown policies fall back
// to permissive.
func NewTransitionTable(policy TransitionPolicy) TransitionTable {
	if policy == TransitionStrict {
		return TransitionTable{
			OrderStatusPending:        {OrderStatusPreparing, OrderStatusCancelled},
			OrderStatusPreparing:      {OrderStatusOutForDelivery, OrderStatusCancelled},
			OrderStatusOutForDelivery: {OrderStatusDelivered, OrderStatusCancelled},
			OrderStatusDelivered:      nil,
			OrderStatusCancelled:      nil,
		}
	}

	table := make(TransitionTable, len(OrderStatuses))
	for _, from := range OrderStatuses {
		table[from] = append([]OrderStatus(nil), OrderStatuses...)
	}
	return table
}

// Allows reports whether an order in status from may be set to to.
func (t TransitionTable) Allows(from, to OrderStatus) bool {
	if !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range t[from] {
		if next == to {
			return true
		}
	}
	return false
}
