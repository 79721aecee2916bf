package service

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"shopadmin/internal/backend"
	"shopadmin/internal/domain"
)

var ErrInvalidInput = errors.New("invalid input")

// LowStockThreshold товары с остатком ниже порога считаются заканчивающимися
const LowStockThreshold = 10

// CatalogSource операции каталога на стороне бэкенда
type CatalogSource interface {
	FetchProducts(ctx context.Context) ([]domain.Product, error)
	FetchProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, in backend.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in backend.ProductInput) (*domain.Product, error)
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, in backend.CategoryInput) (*domain.Category, error)
}

var _ CatalogSource = (*backend.Session)(nil)

// CatalogService инкапсулирует логику вокруг товаров и категорий
type CatalogService struct {
	src CatalogSource
}

func NewCatalogService(src CatalogSource) *CatalogService {
	return &CatalogService{src: src}
}

func validProduct(in backend.ProductInput) bool {
	return strings.TrimSpace(in.Name) != "" && !in.Price.IsNegative() && in.Stock >= 0
}

func (s *CatalogService) CreateProduct(ctx context.Context, in backend.ProductInput) (*domain.Product, error) {
	if !validProduct(in) {
		return nil, ErrInvalidInput
	}
	return s.src.CreateProduct(ctx, in)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, in backend.ProductInput) (*domain.Product, error) {
	if id == "" || !validProduct(in) {
		return nil, ErrInvalidInput
	}
	return s.src.UpdateProduct(ctx, id, in)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	return s.src.FetchProduct(ctx, id)
}

// ProductFilter фильтр списка товаров на стороне консоли
type ProductFilter struct {
	NameSubstring string
	CategoryID    string
}

func (s *CatalogService) ListProducts(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	list, err := s.src.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(f.NameSubstring)
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.src.FetchCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, in backend.CategoryInput) (*domain.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrInvalidInput
	}
	return s.src.CreateCategory(ctx, in)
}

// StockOverview сводка по остаткам
type StockOverview struct {
	InStock    int              `json:"inStock"`
	LowStock   []domain.Product `json:"lowStock"`
	OutOfStock []domain.Product `json:"outOfStock"`
	TotalValue decimal.Decimal  `json:"totalValue"`
}

// Stock splits the catalog by LowStockThreshold and values the inventory at list price.
func (s *CatalogService) Stock(ctx context.Context) (*StockOverview, error) {
	list, err := s.src.FetchProducts(ctx)
	if err != nil {
		return nil, err
	}
	return summarizeStock(list), nil
}

func summarizeStock(list []domain.Product) *StockOverview {
	ov := &StockOverview{LowStock: []domain.Product{}, OutOfStock: []domain.Product{}, TotalValue: decimal.Zero}
	for _, p := range list {
		switch {
		case p.Stock <= 0:
			ov.OutOfStock = append(ov.OutOfStock, p)
		case p.Stock < LowStockThreshold:
			ov.LowStock = append(ov.LowStock, p)
		default:
			ov.InStock++
		}
		ov.TotalValue = ov.TotalValue.Add(p.Price.Mul(decimal.NewFromInt(p.Stock)))
	}
	return ov
}
