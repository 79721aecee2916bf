package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
)

type fakeStore struct {
	fakeSource
	products   []domain.Product
	categories []domain.Category
	users      []domain.User
	productErr error
	csv        []byte
	created    []backend.ProductInput
}

func (f *fakeStore) FetchProducts(context.Context) ([]domain.Product, error) {
	return f.products, f.productErr
}

func (f *fakeStore) FetchProduct(_ context.Context, id string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, &backend.RemoteError{Op: "fetch product", StatusCode: 404, Message: "Not found"}
}

func (f *fakeStore) CreateProduct(_ context.Context, in backend.ProductInput) (*domain.Product, error) {
	f.created = append(f.created, in)
	return &domain.Product{ID: "new", Name: in.Name, Price: in.Price, Stock: in.Stock}, nil
}

func (f *fakeStore) UpdateProduct(_ context.Context, id string, in backend.ProductInput) (*domain.Product, error) {
	return &domain.Product{ID: id, Name: in.Name, Price: in.Price, Stock: in.Stock}, nil
}

func (f *fakeStore) FetchCategories(context.Context) ([]domain.Category, error) {
	return f.categories, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, in backend.CategoryInput) (*domain.Category, error) {
	return &domain.Category{ID: "c-new", Name: in.Name}, nil
}

func (f *fakeStore) FetchUsers(context.Context) ([]domain.User, error) { return f.users, nil }

func (f *fakeStore) FetchUser(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (f *fakeStore) DownloadUsersCSV(context.Context) ([]byte, error) { return f.csv, nil }

func (f *fakeStore) DeleteUser(context.Context, string) error { return nil }

func (f *fakeStore) Profile(context.Context) (*domain.User, error) { return &domain.User{}, nil }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(name string, qty int64, price string) domain.OrderItem {
	return domain.OrderItem{ProductID: "p-" + name, Quantity: qty, Price: d(price), Product: &domain.Product{Name: name}}
}

func analyticsFixture() *fakeStore {
	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	mk := func(id string, st domain.DeliveryStatus, at time.Time, total string, items ...domain.OrderItem) domain.Order {
		o := order(id, st)
		o.CreatedAt = at
		o.TotalAmount = d(total)
		o.OrderItems = items
		return o
	}
	return &fakeStore{
		fakeSource: fakeSource{orders: []domain.Order{
			mk("o1", domain.DeliveryDelivered, feb, "300", item("Mug", 2, "100"), item("Honey", 1, "100")),
			mk("o2", domain.DeliveryPending, jan, "150.50", item("Honey", 3, "50.1666")),
			mk("o3", domain.DeliveryCancelled, feb, "49.50", item("Kurta", 1, "49.50")),
			mk("o4", domain.DeliveryShipped, jan, "0"),
		}},
		products: []domain.Product{
			{ID: "p1", Name: "Mug", Price: d("100"), Stock: 0},
			{ID: "p2", Name: "Honey", Price: d("50"), Stock: 4},
			{ID: "p3", Name: "Kurta", Price: d("49.50"), Stock: 20},
		},
		users: []domain.User{
			{ID: "u1", CreatedAt: jan},
			{ID: "u2", CreatedAt: feb},
			{ID: "u3", CreatedAt: feb},
		},
	}
}

func TestAnalytics(t *testing.T) {
	a, err := NewAnalyticsService(analyticsFixture()).Analytics(context.Background())
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if a.TotalOrders != 4 || a.TotalUsers != 3 || a.TotalProducts != 3 {
		t.Fatalf("totals: %+v", a)
	}
	if !a.TotalRevenue.Equal(d("500")) {
		t.Fatalf("revenue %s", a.TotalRevenue)
	}
	if len(a.RevenueByMonth) != 2 || a.RevenueByMonth[0].Month != "Jan 2025" || !a.RevenueByMonth[0].Revenue.Equal(d("150.50")) ||
		a.RevenueByMonth[1].Month != "Feb 2025" || !a.RevenueByMonth[1].Revenue.Equal(d("349.50")) {
		t.Fatalf("revenue by month: %+v", a.RevenueByMonth)
	}
	wantStatus := []domain.DeliveryStatus{domain.DeliveryPending, domain.DeliveryShipped, domain.DeliveryDelivered, domain.DeliveryCancelled}
	if len(a.OrdersByStatus) != len(wantStatus) {
		t.Fatalf("orders by status: %+v", a.OrdersByStatus)
	}
	for i, st := range wantStatus {
		if a.OrdersByStatus[i].Status != st || a.OrdersByStatus[i].Count != 1 {
			t.Fatalf("orders by status[%d]: %+v", i, a.OrdersByStatus[i])
		}
	}
	if len(a.TopProducts) != 3 || a.TopProducts[0] != (domain.ProductSales{Product: "Honey", Sales: 4}) ||
		a.TopProducts[1] != (domain.ProductSales{Product: "Mug", Sales: 2}) {
		t.Fatalf("top products: %+v", a.TopProducts)
	}
	if len(a.UserGrowth) != 2 || a.UserGrowth[1].Users != 2 {
		t.Fatalf("user growth: %+v", a.UserGrowth)
	}
}

func TestTopProducts_Limit(t *testing.T) {
	o := order("o1", domain.DeliveryPending)
	for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"} {
		o.OrderItems = append(o.OrderItems, item(n, 1, "1"))
	}
	top := topProducts([]domain.Order{o}, topProductsLimit)
	if len(top) != 10 || top[0].Product != "a" || top[9].Product != "j" {
		t.Fatalf("top: %+v", top)
	}
}

func TestDashboard(t *testing.T) {
	st, err := NewAnalyticsService(analyticsFixture()).Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if st.PendingOrders != 2 || st.CompletedOrders != 1 || st.CancelledOrders != 1 {
		t.Fatalf("counts: %+v", st)
	}
	if !st.AverageOrderValue.Equal(d("125")) {
		t.Fatalf("average %s", st.AverageOrderValue)
	}
	if empty := BuildDashboard(nil, nil, nil); !empty.AverageOrderValue.IsZero() {
		t.Fatalf("average of nothing: %s", empty.AverageOrderValue)
	}
}

func TestAnalytics_FailureCancels(t *testing.T) {
	src := analyticsFixture()
	src.productErr = errors.New("boom")
	if _, err := NewAnalyticsService(src).Analytics(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	src := analyticsFixture()
	cs := NewCatalogService(src)

	if _, err := cs.CreateProduct(ctx, backend.ProductInput{Name: "", Price: d("1")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := cs.CreateProduct(ctx, backend.ProductInput{Name: "X", Price: d("-1")}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid price, got %v", err)
	}
	if _, err := cs.UpdateProduct(ctx, "", backend.ProductInput{Name: "X"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid id, got %v", err)
	}
	if p, err := cs.CreateProduct(ctx, backend.ProductInput{Name: "Tea", Price: d("5"), Stock: 3}); err != nil || p.ID != "new" {
		t.Fatalf("create: %v", err)
	}
	if len(src.created) != 1 {
		t.Fatalf("invalid input reached the backend: %d", len(src.created))
	}

	list, _ := cs.ListProducts(ctx, ProductFilter{NameSubstring: "HON"})
	if len(list) != 1 || list[0].ID != "p2" {
		t.Fatalf("filter: %+v", list)
	}
	if _, err := cs.CreateCategory(ctx, backend.CategoryInput{Name: "  "}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid category, got %v", err)
	}

	ov, err := cs.Stock(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(ov.OutOfStock) != 1 || len(ov.LowStock) != 1 || ov.InStock != 1 {
		t.Fatalf("stock: %+v", ov)
	}
	if !ov.TotalValue.Equal(d("1190")) {
		t.Fatalf("stock value %s", ov.TotalValue)
	}
}

func TestUsersExportPassThrough(t *testing.T) {
	src := &fakeStore{csv: []byte("ID,Name\nu1,Asha\n")}
	got, err := NewUserService(src).ExportCSV(context.Background())
	if err != nil || !bytes.Equal(got, src.csv) {
		t.Fatalf("export: %q %v", got, err)
	}
	if _, err := NewUserService(src).Get(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestWriteOrdersCSV(t *testing.T) {
	o := order("o1", domain.DeliveryOutForDelivery)
	o.User = &domain.User{ID: "u1", Name: "Asha, Rao"}
	o.TotalAmount = d("12.5")
	o.ShippingAddress.City = "Pune"
	o.OrderItems = []domain.OrderItem{item("Mug", 2, "5"), item("Tea", 1, "2.5")}
	anon := order("o2", domain.DeliveryPending)

	var buf bytes.Buffer
	if err := WriteOrdersCSV(&buf, []domain.Order{o, anon}); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 || rows[0][0] != "Order ID" {
		t.Fatalf("rows: %v", rows)
	}
	want := []string{"o1", "Asha, Rao", "12.50", "Out for Delivery", "Pending", "COD", "3", "Pune", "2025-03-10T12:00:00Z"}
	for i := range want {
		if rows[1][i] != want[i] {
			t.Fatalf("col %d: got %q want %q", i, rows[1][i], want[i])
		}
	}
	if rows[2][1] != "Unknown" {
		t.Fatalf("anonymous customer: %q", rows[2][1])
	}
}
