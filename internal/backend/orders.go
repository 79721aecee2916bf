package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"shopadmin/internal/domain"
)

// OrderFilters параметры выборки заказов на стороне бэкенда
type OrderFilters struct {
	Status        domain.DeliveryStatus
	PaymentStatus domain.PaymentStatus
	Search        string
	Page          int
	Limit         int
}

func (f OrderFilters) values() url.Values {
	q := url.Values{}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.PaymentStatus != "" {
		q.Set("paymentStatus", string(f.PaymentStatus))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// StatusUpdate тело запроса смены статусов; пустые поля не отправляются
type StatusUpdate struct {
	DeliveryStatus domain.DeliveryStatus `json:"deliveryStatus,omitempty"`
	PaymentStatus  domain.PaymentStatus  `json:"paymentStatus,omitempty"`
}

// FetchOrders returns ErrMalformedResponse when the payload is not a list of orders.
func (s *Session) FetchOrders(ctx context.Context, f OrderFilters) ([]domain.Order, error) {
	raw, err := s.do(ctx, "fetch orders", http.MethodGet, "/admin/orders", f.values(), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Order](s.client.validate, unwrapData(raw))
}

func (s *Session) FetchOrderDetail(ctx context.Context, id string) (*domain.Order, error) {
	raw, err := s.do(ctx, "fetch order detail", http.MethodGet, "/admin/order/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Order](s.client.validate, unwrapData(raw))
}

// UpdateOrderStatus returns the acknowledged order, or nil when the
// backend acknowledged without echoing it.
func (s *Session) UpdateOrderStatus(ctx context.Context, id string, upd StatusUpdate) (*domain.Order, error) {
	const op = "update order status"
	raw, err := s.do(ctx, op, http.MethodPut, "/admin/order/"+url.PathEscape(id)+"/status", nil, upd)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return nil, &RemoteError{Op: op, StatusCode: http.StatusOK, Message: msg}
	}
	data := unwrapData(raw)
	if firstByte(data) != '{' || string(data) == string(raw) {
		return nil, nil
	}
	o, err := decodeOne[domain.Order](s.client.validate, data)
	if err != nil {
		// acknowledged; the echo is advisory
		s.client.log.Warn("order status ack has unexpected shape", "order_id", id, "err", err)
		return nil, nil
	}
	return o, nil
}
