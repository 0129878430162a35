package ledger

import "github.com/andresuchdata/craftledger/internal/domain"

// Outcome is the cost-realization bucket of an order.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeInFlight
	OutcomeDelivered
	OutcomeReturnedFree
	OutcomeReturnedPaid
	OutcomeLostDamaged
)

var outcomeNames = map[Outcome]string{
	OutcomeUnknown:      "unknown",
	OutcomeInFlight:     "in_flight",
	OutcomeDelivered:    "delivered",
	OutcomeReturnedFree: "returned_free",
	OutcomeReturnedPaid: "returned_paid",
	OutcomeLostDamaged:  "lost_damaged",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

// Attempted reports whether the delivery attempt has a known result.
func (o Outcome) Attempted() bool {
	switch o {
	case OutcomeDelivered, OutcomeReturnedFree, OutcomeReturnedPaid, OutcomeLostDamaged:
		return true
	}
	return false
}

// Classify maps an order status to its outcome bucket.
func Classify(status domain.OrderStatus) Outcome {
	switch status {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusShipped:
		return OutcomeInFlight
	case domain.StatusDelivered:
		return OutcomeDelivered
	case domain.StatusReturnedFree:
		return OutcomeReturnedFree
	case domain.StatusReturnedPaid:
		return OutcomeReturnedPaid
	case domain.StatusLostDamaged:
		return OutcomeLostDamaged
	}
	return OutcomeUnknown
}

// ShippingDispatched reports whether a parcel has left for the customer, so the
// shipment has been paid for in the cash-flow view.
func ShippingDispatched(status domain.OrderStatus) bool {
	switch status {
	case domain.StatusShipped, domain.StatusDelivered, domain.StatusReturnedFree,
		domain.StatusReturnedPaid, domain.StatusLostDamaged:
		return true
	}
	return false
}

// Buckets partitions orders by outcome, preserving input order inside each bucket.
type Buckets map[Outcome][]domain.Order

// Partition classifies every order.
func Partition(orders []domain.Order) Buckets {
	buckets := make(Buckets)
	for _, o := range orders {
		outcome := Classify(o.Status)
		buckets[outcome] = append(buckets[outcome], o)
	}
	return buckets
}

// Count returns the number of orders in a bucket.
func (b Buckets) Count(o Outcome) int {
	return len(b[o])
}

// Attempted is the number of orders whose delivery outcome is known.
func (b Buckets) Attempted() int {
	var n int
	for outcome, orders := range b {
		if outcome.Attempted() {
			n += len(orders)
		}
	}
	return n
}
