package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod способ оплаты заказа
type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// UserDetails контактные данные пользователя
type UserDetails struct {
	ID      string `json:"id,omitempty"`
	UserID  string `json:"userId,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Pincode string `json:"pincode,omitempty"`
}

// User учётная запись покупателя или администратора
type User struct {
	ID          string       `json:"id" validate:"required"`
	Name        string       `json:"name"`
	Username    string       `json:"username"`
	IsAdmin     bool         `json:"isAdmin"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	UserDetails *UserDetails `json:"userDetails,omitempty" validate:"-"`
}

// Category категория каталога
type Category struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// Product товар каталога
type Product struct {
	ID          string          `json:"id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Slug        string          `json:"slug"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Stock       int64           `json:"stock" validate:"gte=0"`
	CategoryID  string          `json:"categoryId"`
	Images      []string        `json:"images"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Category    *Category       `json:"category,omitempty" validate:"-"`
}

// ShippingAddress адрес доставки заказа
type ShippingAddress struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// OrderItem позиция в заказе
type OrderItem struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"orderId,omitempty"`
	ProductID string          `json:"productId" validate:"required"`
	Quantity  int64           `json:"quantity" validate:"gte=1"`
	Price     decimal.Decimal `json:"price" validate:"gte=0"`
	Product   *Product        `json:"product,omitempty" validate:"-"`
}

// Order сущность заказа в том виде, в каком её отдаёт бэкенд
type Order struct {
	ID              string          `json:"id" validate:"required"`
	UserID          string          `json:"userId"`
	TotalAmount     decimal.Decimal `json:"totalAmount" validate:"gte=0"`
	DeliveryStatus  DeliveryStatus  `json:"deliveryStatus" validate:"delivery_status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" validate:"omitempty,payment_status"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentID       string          `json:"paymentId,omitempty"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	User            *User           `json:"user,omitempty" validate:"-"`
	OrderItems      []OrderItem     `json:"orderItems,omitempty" validate:"dive"`
}

// ItemsTotal сумма price*quantity по позициям
func (o Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range o.OrderItems {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

// TotalConsistent reports whether TotalAmount matches the line items.
// Summary rows without items are treated as consistent.
func (o Order) TotalConsistent() bool {
	if len(o.OrderItems) == 0 {
		return true
	}
	return o.ItemsTotal().Equal(o.TotalAmount)
}

// CustomerName имя покупателя для отображения
func (o Order) CustomerName() string {
	if o.User != nil && o.User.Name != "" {
		return o.User.Name
	}
	return "Unknown"
}

// Analytics агрегаты для страницы аналитики
type Analytics struct {
	TotalOrders    int              `json:"totalOrders"`
	TotalRevenue   decimal.Decimal  `json:"totalRevenue"`
	TotalUsers     int              `json:"totalUsers"`
	TotalProducts  int              `json:"totalProducts"`
	RevenueByMonth []MonthRevenue   `json:"revenueByMonth"`
	OrdersByStatus []StatusCount    `json:"ordersByStatus"`
	TopProducts    []ProductSales   `json:"topProducts"`
	UserGrowth     []MonthUserCount `json:"userGrowth"`
}

type MonthRevenue struct {
	Month   string          `json:"month"`
	Revenue decimal.Decimal `json:"revenue"`
}

type StatusCount struct {
	Status DeliveryStatus `json:"status"`
	Count  int            `json:"count"`
}

type ProductSales struct {
	Product string `json:"product"`
	Sales   int64  `json:"sales"`
}

type MonthUserCount struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

// DashboardStats сводка для главной страницы
type DashboardStats struct {
	TotalOrders       int             `json:"totalOrders"`
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalUsers        int             `json:"totalUsers"`
	TotalProducts     int             `json:"totalProducts"`
	PendingOrders     int             `json:"pendingOrders"`
	CompletedOrders   int             `json:"completedOrders"`
	CancelledOrders   int             `json:"cancelledOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}
