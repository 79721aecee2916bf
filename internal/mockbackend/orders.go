package mockbackend

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotEnoughStock = errors.New("not enough stock")
	ErrInvalidState   = errors.New("invalid state")
)

// OrderService бэкендовая логика заказов: создание со списанием остатков и смена статусов
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, tx repository.TxManager) *OrderService {
	return &OrderService{products: products, orders: orders, tx: tx}
}

// ItemRequest позиция создаваемого заказа
type ItemRequest struct {
	ProductID string
	Quantity  int64
}

// CreateOrder проверяет наличие товара, атомарно списывает запас и считает сумму по текущим ценам
func (s *OrderService) CreateOrder(ctx context.Context, userID string, method domain.PaymentMethod, addr domain.ShippingAddress, items []ItemRequest) (*domain.Order, error) {
	if userID == "" || len(items) == 0 {
		return nil, ErrInvalidInput
	}
	for _, it := range items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// accumulate updates to avoid partial state
		productCopies := make(map[string]*domain.Product)
		lines := make([]domain.OrderItem, 0, len(items))
		total := decimal.Zero
		for _, it := range items {
			p, ok := productCopies[it.ProductID]
			if !ok {
				var err error
				p, err = s.products.GetByID(ctx, it.ProductID)
				if err != nil {
					return err
				}
			}
			if p.Stock < it.Quantity {
				return ErrNotEnoughStock
			}
			p.Stock -= it.Quantity
			productCopies[p.ID] = p
			lines = append(lines, domain.OrderItem{ProductID: p.ID, Quantity: it.Quantity, Price: p.Price})
			total = total.Add(p.Price.Mul(decimal.NewFromInt(it.Quantity)))
		}
		for _, p := range productCopies {
			if err := s.products.Update(ctx, p); err != nil {
				return err
			}
		}

		o := domain.Order{
			UserID:          userID,
			TotalAmount:     total,
			DeliveryStatus:  domain.DeliveryPending,
			PaymentStatus:   domain.PaymentPending,
			PaymentMethod:   method,
			ShippingAddress: addr,
			OrderItems:      lines,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus меняет статусы заказа. Delivery transitions follow
// domain.IsLegalTransition; entering CANCELLED or RETURNED puts the
// items back in stock.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, delivery domain.DeliveryStatus, payment domain.PaymentStatus) (*domain.Order, error) {
	if id == "" || (delivery == "" && payment == "") {
		return nil, ErrInvalidInput
	}
	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if delivery != "" && delivery != o.DeliveryStatus {
			ok, err := domain.IsLegalTransition(o.DeliveryStatus, delivery)
			if err != nil {
				return err
			}
			if !ok {
				return ErrInvalidState
			}
			if delivery == domain.DeliveryCancelled || delivery == domain.DeliveryReturned {
				// return stock
				for _, it := range o.OrderItems {
					p, err := s.products.GetByID(ctx, it.ProductID)
					if errors.Is(err, repository.ErrNotFound) {
						continue
					}
					if err != nil {
						return err
					}
					p.Stock += it.Quantity
					if err := s.products.Update(ctx, p); err != nil {
						return err
					}
				}
			}
			o.DeliveryStatus = delivery
		}
		if payment != "" {
			o.PaymentStatus = payment
		}
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
