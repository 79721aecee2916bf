package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
)

const topProductsLimit = 10

// monthLayout is the label of a month bucket, e.g. "Mar 2025".
const monthLayout = "Jan 2006"

// AnalyticsSource данные, из которых считается аналитика
type AnalyticsSource interface {
	FetchOrders(ctx context.Context, f backend.OrderFilters) ([]domain.Order, error)
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchUsers(ctx context.Context) ([]domain.User, error)
}

var _ AnalyticsSource = (*backend.Session)(nil)

// AnalyticsService aggregates orders, products and users on the console
// side; the backend has no analytics endpoints.
type AnalyticsService struct {
	src AnalyticsSource
}

func NewAnalyticsService(src AnalyticsSource) *AnalyticsService {
	return &AnalyticsService{src: src}
}

type snapshot struct {
	orders   []domain.Order
	products []domain.Product
	users    []domain.User
}

// load fetches the three collections concurrently; the first failure cancels the rest.
func (s *AnalyticsService) load(ctx context.Context) (*snapshot, error) {
	g, ctx := errgroup.WithContext(ctx)
	var snap snapshot
	g.Go(func() error {
		var err error
		snap.orders, err = s.src.FetchOrders(ctx, backend.OrderFilters{})
		if err != nil {
			return fmt.Errorf("orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.products, err = s.src.FetchProducts(ctx)
		if err != nil {
			return fmt.Errorf("products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		snap.users, err = s.src.FetchUsers(ctx)
		if err != nil {
			return fmt.Errorf("users: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *AnalyticsService) Analytics(ctx context.Context) (*domain.Analytics, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildAnalytics(snap.orders, snap.products, snap.users), nil
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildDashboard(snap.orders, snap.products, snap.users), nil
}

// BuildAnalytics считает агрегаты. Month buckets are chronological.
func BuildAnalytics(orders []domain.Order, products []domain.Product, users []domain.User) *domain.Analytics {
	return &domain.Analytics{
		TotalOrders:    len(orders),
		TotalRevenue:   revenue(orders),
		TotalUsers:     len(users),
		TotalProducts:  len(products),
		RevenueByMonth: revenueByMonth(orders),
		OrdersByStatus: ordersByStatus(orders),
		TopProducts:    topProducts(orders, topProductsLimit),
		UserGrowth:     userGrowth(users),
	}
}

// BuildDashboard: pending counts every order still moving forward,
// completed is DELIVERED and cancelled is CANCELLED.
func BuildDashboard(orders []domain.Order, products []domain.Product, users []domain.User) *domain.DashboardStats {
	st := &domain.DashboardStats{
		TotalOrders:       len(orders),
		TotalRevenue:      revenue(orders),
		TotalUsers:        len(users),
		TotalProducts:     len(products),
		AverageOrderValue: decimal.Zero,
	}
	for _, o := range orders {
		switch o.DeliveryStatus {
		case domain.DeliveryDelivered:
			st.CompletedOrders++
		case domain.DeliveryCancelled:
			st.CancelledOrders++
		case domain.DeliveryReturned:
			// closed, but neither completed nor cancelled
		default:
			st.PendingOrders++
		}
	}
	if len(orders) > 0 {
		st.AverageOrderValue = st.TotalRevenue.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}
	return st
}

func revenue(orders []domain.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.TotalAmount)
	}
	return sum
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func revenueByMonth(orders []domain.Order) []domain.MonthRevenue {
	byMonth := make(map[time.Time]decimal.Decimal)
	for _, o := range orders {
		m := monthStart(o.CreatedAt)
		byMonth[m] = byMonth[m].Add(o.TotalAmount)
	}
	months := sortedMonths(byMonth)
	out := make([]domain.MonthRevenue, 0, len(months))
	for _, m := range months {
		out = append(out, domain.MonthRevenue{Month: m.Format(monthLayout), Revenue: byMonth[m]})
	}
	return out
}

func userGrowth(users []domain.User) []domain.MonthUserCount {
	byMonth := make(map[time.Time]int)
	for _, u := range users {
		byMonth[monthStart(u.CreatedAt)]++
	}
	months := sortedMonths(byMonth)
	out := make([]domain.MonthUserCount, 0, len(months))
	for _, m := range months {
		out = append(out, domain.MonthUserCount{Month: m.Format(monthLayout), Users: byMonth[m]})
	}
	return out
}

func sortedMonths[V any](m map[time.Time]V) []time.Time {
	keys := make([]time.Time, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// ordersByStatus lists statuses that occur, in canonical order.
func ordersByStatus(orders []domain.Order) []domain.StatusCount {
	counts := domain.StatusCounts(orders)
	out := make([]domain.StatusCount, 0, len(counts))
	for _, st := range domain.AllDeliveryStatuses() {
		if n := counts[st]; n > 0 {
			out = append(out, domain.StatusCount{Status: st, Count: n})
		}
	}
	return out
}

// topProducts ranks products by units sold; ties go alphabetically.
func topProducts(orders []domain.Order, limit int) []domain.ProductSales {
	sales := make(map[string]int64)
	for _, o := range orders {
		for _, it := range o.OrderItems {
			name := it.ProductID
			if it.Product != nil && it.Product.Name != "" {
				name = it.Product.Name
			}
			sales[name] += it.Quantity
		}
	}
	out := make([]domain.ProductSales, 0, len(sales))
	for name, n := range sales {
		out = append(out, domain.ProductSales{Product: name, Sales: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].Product < out[j].Product
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
