package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
)

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrRemoteFetch       = errors.New("remote fetch failed")
	ErrRemoteUpdate      = errors.New("remote update failed")
	ErrClosed            = errors.New("order view closed")
)

// User-facing messages recorded by the synchronizer.
const (
	MsgFetchFailed   = "Failed to fetch orders. Please try again."
	MsgUpdateFailed  = "Failed to update order status. Please try again."
	MsgDetailFailed  = "Failed to load order details"
	MsgInvalidStatus = "Invalid delivery status"

	MsgPaymentFailed  = "Failed to update payment status. Please try again."
	MsgInvalidPayment = "Invalid payment status"
)

// FilterAll selects every order.
const FilterAll = "all"

// OrderSource источник данных заказов; *backend.Session его реализует
type OrderSource interface {
	FetchOrders(ctx context.Context, f backend.OrderFilters) ([]domain.Order, error)
	FetchOrderDetail(ctx context.Context, id string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, upd backend.StatusUpdate) (*domain.Order, error)
}

var _ OrderSource = (*backend.Session)(nil)

// OrderListSynchronizer держит список заказов одного экрана и синхронизирует
// его с бэкендом. Status changes are write-through: the local record only
// changes after the backend acknowledged the update.
//
// The mutex is never held across a remote call. Two concurrent updates of
// the same order both reach the backend; whichever acknowledgement is
// applied last wins locally.
type OrderListSynchronizer struct {
	src OrderSource
	log *slog.Logger

	mu      sync.Mutex
	orders  []domain.Order
	version uint64
	errMsg  string
	closed  bool

	memoVersion uint64
	memo        map[string][]domain.Order
}

func NewOrderListSynchronizer(src OrderSource, log *slog.Logger) *OrderListSynchronizer {
	if log == nil {
		log = slog.Default()
	}
	return &OrderListSynchronizer{
		src:    src,
		log:    log.With("component", "order_sync"),
		orders: []domain.Order{},
		memo:   make(map[string][]domain.Order),
	}
}

// Activate loads the collection. A payload of the wrong shape leaves an
// empty collection and no message; any other failure leaves an empty
// collection and a message.
func (s *OrderListSynchronizer) Activate(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.errMsg = ""
	s.mu.Unlock()

	list, err := s.src.FetchOrders(ctx, backend.OrderFilters{})

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	switch {
	case err == nil:
		for _, o := range list {
			if !o.TotalConsistent() {
				s.log.Warn("order total differs from items", "order_id", o.ID,
					"total", o.TotalAmount.String(), "items_total", o.ItemsTotal().String())
			}
		}
		s.replace(list)
		s.log.Info("orders loaded", "count", len(list))
		return nil
	case errors.Is(err, backend.ErrMalformedResponse):
		s.log.Warn("orders payload has unexpected shape", "err", err)
		s.replace(nil)
		return nil
	default:
		s.log.Error("fetch orders", "err", err)
		s.replace(nil)
		s.errMsg = messageOr(err, MsgFetchFailed)
		return fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}
}

// replace swaps the collection; callers hold s.mu.
func (s *OrderListSynchronizer) replace(list []domain.Order) {
	s.orders = append(make([]domain.Order, 0, len(list)), list...)
	s.version++
}

// normalizeSelector maps a filter selector to "all" or an upper-case status literal.
func normalizeSelector(sel string) string {
	sel = strings.TrimSpace(sel)
	if sel == "" || strings.EqualFold(sel, FilterAll) {
		return FilterAll
	}
	return strings.ToUpper(sel)
}

// ApplyFilter returns the orders whose delivery status matches selector
// ("all" or a status literal in any case), in collection order. Results
// are memoized per collection version; an unknown selector matches nothing.
func (s *OrderListSynchronizer) ApplyFilter(selector string) ([]domain.Order, error) {
	key := normalizeSelector(selector)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if key != FilterAll && !domain.DeliveryStatus(key).Valid() {
		// not cached: the memo stays bounded by the number of statuses
		return []domain.Order{}, nil
	}
	if s.memoVersion != s.version {
		clear(s.memo)
		s.memoVersion = s.version
	}
	res, ok := s.memo[key]
	if !ok {
		res = make([]domain.Order, 0, len(s.orders))
		for _, o := range s.orders {
			if key == FilterAll || string(o.DeliveryStatus) == key {
				res = append(res, o)
			}
		}
		s.memo[key] = res
	}
	return slices.Clone(res), nil
}

// RequestStatusChange validates target, checks the transition against the
// local record and only then asks the backend to apply it.
func (s *OrderListSynchronizer) RequestStatusChange(ctx context.Context, orderID, target string) error {
	st, err := domain.ParseDeliveryStatus(target)
	if err != nil {
		s.setErr(MsgInvalidStatus)
		return err
	}
	return s.change(ctx, orderID, backend.StatusUpdate{DeliveryStatus: st})
}

// RequestPaymentStatusChange sets the payment status; any member of the
// enumeration is accepted from any current value.
func (s *OrderListSynchronizer) RequestPaymentStatusChange(ctx context.Context, orderID, target string) error {
	ps, err := domain.ParsePaymentStatus(target)
	if err != nil {
		s.setErr(MsgInvalidPayment)
		return err
	}
	return s.change(ctx, orderID, backend.StatusUpdate{PaymentStatus: ps})
}

// StatusChange новые статусы заказа; пустое поле не меняется
type StatusChange struct {
	Delivery string
	Payment  string
}

// RequestChange applies a delivery and a payment change as one backend
// update. Both values are validated before anything is sent, so a bad
// payment value never lets the delivery change through.
func (s *OrderListSynchronizer) RequestChange(ctx context.Context, orderID string, ch StatusChange) error {
	var upd backend.StatusUpdate
	if ch.Delivery != "" {
		st, err := domain.ParseDeliveryStatus(ch.Delivery)
		if err != nil {
			s.setErr(MsgInvalidStatus)
			return err
		}
		upd.DeliveryStatus = st
	}
	if ch.Payment != "" {
		ps, err := domain.ParsePaymentStatus(ch.Payment)
		if err != nil {
			s.setErr(MsgInvalidPayment)
			return err
		}
		upd.PaymentStatus = ps
	}
	if upd == (backend.StatusUpdate{}) {
		return fmt.Errorf("%w: no status to change", ErrInvalidInput)
	}
	return s.change(ctx, orderID, upd)
}

// change dispatches an already parsed update. The delivery part, if any,
// must be a legal transition from the local record.
func (s *OrderListSynchronizer) change(ctx context.Context, orderID string, upd backend.StatusUpdate) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	i := s.indexOf(orderID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
	}
	cur := s.orders[i].DeliveryStatus
	s.mu.Unlock()

	if st := upd.DeliveryStatus; st != "" {
		legal, err := domain.IsLegalTransition(cur, st)
		if err != nil {
			// the stored record carries a status we do not know
			s.setErr(MsgInvalidStatus)
			return err
		}
		if !legal {
			s.setErr(fmt.Sprintf("Cannot change status from %s to %s", cur.Label(), st.Label()))
			return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, cur, st)
		}
	}

	ack, err := s.src.UpdateOrderStatus(ctx, orderID, upd)
	if err != nil {
		s.log.Error("update order status", "order_id", orderID,
			"delivery", upd.DeliveryStatus, "payment", upd.PaymentStatus, "err", err)
		fallback := MsgUpdateFailed
		if upd.DeliveryStatus == "" {
			fallback = MsgPaymentFailed
		}
		s.setErr(messageOr(err, fallback))
		return fmt.Errorf("%w: %w", ErrRemoteUpdate, err)
	}

	return s.apply(orderID, ack, func(o *domain.Order) {
		if upd.DeliveryStatus != "" {
			o.DeliveryStatus = upd.DeliveryStatus
		}
		if upd.PaymentStatus != "" {
			o.PaymentStatus = upd.PaymentStatus
		}
	})
}

// apply writes an acknowledged change into the current record of orderID.
// The collection may have been replaced while the call was in flight, so
// the record is looked up again.
func (s *OrderListSynchronizer) apply(orderID string, ack *domain.Order, mutate func(*domain.Order)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	i := s.indexOf(orderID)
	if i < 0 {
		s.log.Warn("acknowledged order no longer in view", "order_id", orderID)
		return nil
	}
	mutate(&s.orders[i])
	if ack != nil && !ack.UpdatedAt.IsZero() {
		s.orders[i].UpdatedAt = ack.UpdatedAt
	}
	s.version++
	return nil
}

// RequestOrderDetail fetches the full record of one order. It does not
// touch the collection.
func (s *OrderListSynchronizer) RequestOrderDetail(ctx context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	o, err := s.src.FetchOrderDetail(ctx, orderID)
	if err != nil {
		s.log.Error("fetch order detail", "order_id", orderID, "err", err)
		s.setErr(MsgDetailFailed)
		return nil, fmt.Errorf("%w: %w", ErrRemoteFetch, err)
	}
	return o, nil
}

// Orders returns a copy of the whole collection.
func (s *OrderListSynchronizer) Orders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.orders)
}

// Lookup returns the local record of orderID.
func (s *OrderListSynchronizer) Lookup(orderID string) (domain.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(orderID)
	if i < 0 {
		return domain.Order{}, false
	}
	return s.orders[i], true
}

// Err сообщение об ошибке для пользователя; пустое, если ошибки нет
func (s *OrderListSynchronizer) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *OrderListSynchronizer) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Counts returns the number of orders per delivery status; every status is present.
func (s *OrderListSynchronizer) Counts() map[domain.DeliveryStatus]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.StatusCounts(s.orders)
}

// Sorted returns the collection ordered by delivery stage.
func (s *OrderListSynchronizer) Sorted() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.SortByStatus(s.orders)
}

// Close drops the collection. Later calls return ErrClosed; acknowledgements
// that arrive afterwards are discarded.
func (s *OrderListSynchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.orders = nil
	s.memo = nil
	s.version++
}

func (s *OrderListSynchronizer) setErr(msg string) {
	s.mu.Lock()
	s.errMsg = msg
	s.mu.Unlock()
}

// indexOf needs s.mu held.
func (s *OrderListSynchronizer) indexOf(id string) int {
	return slices.IndexFunc(s.orders, func(o domain.Order) bool { return o.ID == id })
}

// messageOr prefers the reason reported by the backend.
func messageOr(err error, fallback string) string {
	if m := backend.Message(err); m != "" {
		return m
	}
	return fallback
}
