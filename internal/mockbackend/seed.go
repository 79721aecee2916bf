package mockbackend

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
	"shopadmin/internal/repository"
)

const (
	SeedAdminUsername = "admin"
	SeedAdminPassword = "admin123"
)

type seedProduct struct {
	name, category string
	price          string
	stock          int64
}

var seedProducts = []seedProduct{
	{"Organic Honey", "Grocery", "349.00", 40},
	{"Basmati Rice 5kg", "Grocery", "699.50", 25},
	{"Cotton Kurta", "Apparel", "1299.00", 15},
	{"Steel Water Bottle", "Home", "450.00", 60},
	{"Ceramic Mug Set", "Home", "899.00", 3},
	{"Yoga Mat", "Fitness", "1100.00", 0},
}

// seedOrder describes one order: item picks (product index, qty), and
// the chain of delivery statuses it walks through after creation.
type seedOrder struct {
	customer int
	items    [][2]int64
	path     []domain.DeliveryStatus
	paid     bool
	ageDays  int
}

var seedOrders = []seedOrder{
	{0, [][2]int64{{0, 2}, {3, 1}}, nil, false, 1},
	{1, [][2]int64{{1, 1}}, []domain.DeliveryStatus{domain.DeliveryConfirmed}, true, 3},
	{2, [][2]int64{{2, 1}, {0, 1}}, []domain.DeliveryStatus{domain.DeliveryProcessing}, true, 12},
	{0, [][2]int64{{3, 2}}, []domain.DeliveryStatus{domain.DeliveryShipped}, true, 20},
	{1, [][2]int64{{4, 1}}, []domain.DeliveryStatus{domain.DeliveryOutForDelivery}, false, 35},
	{2, [][2]int64{{1, 2}, {3, 1}}, []domain.DeliveryStatus{domain.DeliveryDelivered}, true, 48},
	{0, [][2]int64{{2, 1}}, []domain.DeliveryStatus{domain.DeliveryCancelled}, false, 64},
	{1, [][2]int64{{0, 1}}, []domain.DeliveryStatus{domain.DeliveryDelivered, domain.DeliveryReturned}, true, 90},
}

// Seed fills store with an admin, a few customers, a small catalog and
// orders in every delivery status.
func Seed(ctx context.Context, store *repository.MemoryStore) error {
	users := repository.NewMemoryUsers(store)
	cats := repository.NewMemoryCategories(store)
	orders := repository.NewMemoryOrders(store)
	svc := NewOrderService(store, orders, repository.NewMemoryTx(store))

	admin := domain.User{Name: "Store Admin", Username: SeedAdminUsername, IsAdmin: true}
	if err := users.Create(ctx, &admin, SeedAdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	customers := []domain.User{
		{Name: "Asha Rao", Username: "asha", UserDetails: &domain.UserDetails{Email: "asha@example.com", Phone: "9800000001", City: "Pune", State: "MH", Pincode: "411001"}},
		{Name: "Vikram Shah", Username: "vikram", UserDetails: &domain.UserDetails{Email: "vikram@example.com", Phone: "9800000002", City: "Surat", State: "GJ", Pincode: "395003"}},
		{Name: "Meera Iyer", Username: "meera", UserDetails: &domain.UserDetails{Email: "meera@example.com", Phone: "9800000003", City: "Chennai", State: "TN", Pincode: "600001"}},
	}
	for i := range customers {
		if err := users.Create(ctx, &customers[i], "password"); err != nil {
			return fmt.Errorf("seed user %s: %w", customers[i].Username, err)
		}
	}

	catIDs := make(map[string]string)
	productIDs := make([]string, 0, len(seedProducts))
	for _, sp := range seedProducts {
		cid, ok := catIDs[sp.category]
		if !ok {
			c := domain.Category{Name: sp.category}
			if err := cats.Create(ctx, &c); err != nil {
				return fmt.Errorf("seed category: %w", err)
			}
			cid = c.ID
			catIDs[sp.category] = cid
		}
		p := domain.Product{
			Name:       sp.name,
			Slug:       slugify(sp.name),
			Price:      decimal.RequireFromString(sp.price),
			Stock:      sp.stock,
			CategoryID: cid,
			IsActive:   true,
		}
		if err := store.Create(ctx, &p); err != nil {
			return fmt.Errorf("seed product: %w", err)
		}
		productIDs = append(productIDs, p.ID)
	}

	now := time.Now().UTC()
	for _, so := range seedOrders {
		cust := customers[so.customer]
		items := make([]ItemRequest, 0, len(so.items))
		for _, it := range so.items {
			items = append(items, ItemRequest{ProductID: productIDs[it[0]], Quantity: it[1]})
		}
		addr := domain.ShippingAddress{
			Name:    cust.Name,
			Address: "12 Market Road",
			City:    cust.UserDetails.City,
			State:   cust.UserDetails.State,
			Pincode: cust.UserDetails.Pincode,
			Phone:   cust.UserDetails.Phone,
		}
		method := domain.PaymentMethodCOD
		if so.paid {
			method = domain.PaymentMethodOnline
		}
		o, err := svc.CreateOrder(ctx, cust.ID, method, addr, items)
		if err != nil {
			return fmt.Errorf("seed order: %w", err)
		}
		for _, st := range so.path {
			if _, err := svc.UpdateStatus(ctx, o.ID, st, ""); err != nil {
				return fmt.Errorf("seed order %s -> %s: %w", o.ID, st, err)
			}
		}
		if so.paid {
			if _, err := svc.UpdateStatus(ctx, o.ID, "", domain.PaymentPaid); err != nil {
				return err
			}
		}
		// backdate so analytics has several months to group by
		cur, err := orders.GetByID(ctx, o.ID)
		if err != nil {
			return err
		}
		cur.CreatedAt = now.AddDate(0, 0, -so.ageDays)
		if err := orders.Update(ctx, cur); err != nil {
			return err
		}
	}
	return nil
}
