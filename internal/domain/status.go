package domain

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidStatusValue возвращается для неизвестного литерала статуса
var ErrInvalidStatusValue = errors.New("invalid status value")

// DeliveryStatus этап доставки заказа
type DeliveryStatus string

const (
	DeliveryPending        DeliveryStatus = "PENDING"
	DeliveryConfirmed      DeliveryStatus = "CONFIRMED"
	DeliveryProcessing     DeliveryStatus = "PROCESSING"
	DeliveryShipped        DeliveryStatus = "SHIPPED"
	DeliveryOutForDelivery DeliveryStatus = "OUT_FOR_DELIVERY"
	DeliveryDelivered      DeliveryStatus = "DELIVERED"
	DeliveryCancelled      DeliveryStatus = "CANCELLED"
	DeliveryReturned       DeliveryStatus = "RETURNED"
)

// allDelivery is the canonical order; the first six entries are the forward sequence.
var allDelivery = []DeliveryStatus{
	DeliveryPending,
	DeliveryConfirmed,
	DeliveryProcessing,
	DeliveryShipped,
	DeliveryOutForDelivery,
	DeliveryDelivered,
	DeliveryCancelled,
	DeliveryReturned,
}

var deliveryLabels = map[DeliveryStatus]string{
	DeliveryPending:        "Pending",
	DeliveryConfirmed:      "Confirmed",
	DeliveryProcessing:     "Processing",
	DeliveryShipped:        "Shipped",
	DeliveryOutForDelivery: "Out for Delivery",
	DeliveryDelivered:      "Delivered",
	DeliveryCancelled:      "Cancelled",
	DeliveryReturned:       "Returned",
}

// AllDeliveryStatuses returns the eight statuses in canonical order.
func AllDeliveryStatuses() []DeliveryStatus {
	out := make([]DeliveryStatus, len(allDelivery))
	copy(out, allDelivery)
	return out
}

// ParseDeliveryStatus accepts only the exact upper-case literals.
func ParseDeliveryStatus(s string) (DeliveryStatus, error) {
	st := DeliveryStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: delivery status %q", ErrInvalidStatusValue, s)
	}
	return st, nil
}

func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryLabels[s]
	return ok
}

// Label человекочитаемое название статуса
func (s DeliveryStatus) Label() string {
	if l, ok := deliveryLabels[s]; ok {
		return l
	}
	return string(s)
}

// rank позиция в каноническом порядке, 0 для неизвестных
func (s DeliveryStatus) rank() int {
	for i, v := range allDelivery {
		if v == s {
			return i + 1
		}
	}
	return 0
}

// IsLegalTransition решает, допустим ли переход current -> target.
// Only the direction of forward progress is checked, not adjacency:
// PENDING -> DELIVERED is legal.
func IsLegalTransition(current, target DeliveryStatus) (bool, error) {
	if !current.Valid() {
		return false, fmt.Errorf("%w: current %q", ErrInvalidStatusValue, current)
	}
	if !target.Valid() {
		return false, fmt.Errorf("%w: target %q", ErrInvalidStatusValue, target)
	}
	if current == target {
		return false, nil
	}

	switch {
	case target == DeliveryCancelled:
		return current != DeliveryDelivered && current != DeliveryReturned, nil
	case target == DeliveryReturned:
		return current == DeliveryDelivered, nil
	case current == DeliveryCancelled || current == DeliveryReturned:
		return false, nil
	case current == DeliveryDelivered:
		return false, nil
	}
	return target.rank() > current.rank(), nil
}

// AvailableNextStatuses все статусы, в которые можно перейти из current
func AvailableNextStatuses(current DeliveryStatus) ([]DeliveryStatus, error) {
	if !current.Valid() {
		return nil, fmt.Errorf("%w: current %q", ErrInvalidStatusValue, current)
	}
	out := make([]DeliveryStatus, 0, len(allDelivery))
	for _, s := range allDelivery {
		if s == current {
			continue
		}
		ok, err := IsLegalTransition(current, s)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// PaymentStatus состояние оплаты. Переходы не ограничиваются.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

var paymentLabels = map[PaymentStatus]string{
	PaymentPending:  "Pending",
	PaymentPaid:     "Paid",
	PaymentFailed:   "Failed",
	PaymentRefunded: "Refunded",
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	st := PaymentStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("%w: payment status %q", ErrInvalidStatusValue, s)
	}
	return st, nil
}

func (s PaymentStatus) Valid() bool {
	_, ok := paymentLabels[s]
	return ok
}

func (s PaymentStatus) Label() string {
	if l, ok := paymentLabels[s]; ok {
		return l
	}
	return string(s)
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(s); m {
	case PaymentMethodCOD, PaymentMethodOnline:
		return m, nil
	default:
		return "", fmt.Errorf("%w: payment method %q", ErrInvalidStatusValue, s)
	}
}

// SortByStatus returns a copy ordered by canonical status rank.
// Unknown statuses go last; ties keep their original order.
func SortByStatus(orders []Order) []Order {
	out := make([]Order, len(orders))
	copy(out, orders)
	prio := func(s DeliveryStatus) int {
		if r := s.rank(); r > 0 {
			return r
		}
		return 999
	}
	sort.SliceStable(out, func(i, j int) bool {
		return prio(out[i].DeliveryStatus) < prio(out[j].DeliveryStatus)
	})
	return out
}

// StatusCounts число заказов в каждом статусе, все статусы инициализированы нулём
func StatusCounts(orders []Order) map[DeliveryStatus]int {
	counts := make(map[DeliveryStatus]int, len(allDelivery))
	for _, s := range allDelivery {
		counts[s] = 0
	}
	for _, o := range orders {
		counts[o.DeliveryStatus]++
	}
	return counts
}
