package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"

	"shopadmin/internal/domain"
)

// ProductInput поля создания и редактирования товара
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Slug        string          `json:"slug" binding:"required"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	CategoryID  string          `json:"categoryId" binding:"required"`
	Images      []string        `json:"images"`
	IsActive    bool            `json:"isActive"`
}

// CategoryInput поля создания категории
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// FetchProducts reads data.products, falling back to a bare list.
func (s *Session) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	raw, err := s.do(ctx, "fetch products", http.MethodGet, "/products", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Product](s.client.validate, pick(unwrapData(raw), "products"))
}

func (s *Session) FetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	raw, err := s.do(ctx, "fetch product", http.MethodGet, "/product/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Product](s.client.validate, unwrapData(raw))
}

func (s *Session) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	raw, err := s.do(ctx, "create product", http.MethodPost, "/product", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Product](s.client.validate, unwrapData(raw))
}

func (s *Session) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	raw, err := s.do(ctx, "update product", http.MethodPut, "/product/"+url.PathEscape(id), nil, in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Product](s.client.validate, unwrapData(raw))
}

func (s *Session) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	raw, err := s.do(ctx, "fetch categories", http.MethodGet, "/categories", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Category](s.client.validate, unwrapData(raw))
}

func (s *Session) CreateCategory(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	raw, err := s.do(ctx, "create category", http.MethodPost, "/category", nil, in)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Category](s.client.validate, unwrapData(raw))
}
