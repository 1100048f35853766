// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avelichko/prodcatalog/internal/store"
	"github.com/go-playground/validator/v10"
)

// ProductService defines the methods for managing products.
// It abstracts the underlying business logic and data access.
type ProductService interface {
	// List applies the query pipeline (search, filters, pagination) to the
	// current store contents and returns one page plus the post-filter total.
	List(ctx context.Context, query ListQuery) (*ProductPage, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id string) (*ProductDto, error)

	// Create validates the payload and adds a new product to the system.
	// Returns a *FieldError if the payload is invalid.
	Create(ctx context.Context, payload ProductPayload) (*ProductDto, error)

	// Update validates the payload and replaces all fields of an existing
	// product except its ID. Returns a *FieldError if the payload is invalid,
	// ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id string, payload ProductPayload) (*ProductDto, error)

	// DeleteByID removes a product by its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id string) error
}

// Service implements ProductService and provides methods to manage products.
type Service struct {
	repository store.ProductStore
	validate   *validator.Validate
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
		validate:   newValidator(),
	}
}

// ProductPayload represents the data transfer object for creating or fully
// replacing a product. Update does not support sparse payloads: every field
// must be resupplied.
type ProductPayload struct {
	Name        string  `json:"name"        validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
	Category    string  `json:"category"    validate:"required"`
	Stock       *int    `json:"stock"       validate:"required,gte=0"`
}

// normalize trims the text fields so that whitespace-only values fail the
// required rule.
func (p *ProductPayload) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id string) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %s: %w", id, err)
	}

	return toDto(product), nil
}

// Create validates the payload, creates a new product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, payload ProductPayload) (*ProductDto, error) {
	payload.normalize()
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}

	p, err := s.repository.Create(ctx, toRecord(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return toDto(p), nil
}

// Update validates the payload, replaces the product's fields and returns the
// updated product as a ProductDto.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) Update(ctx context.Context, id string, payload ProductPayload) (*ProductDto, error) {
	payload.normalize()
	if err := s.validatePayload(payload); err != nil {
		return nil, err
	}

	updated, err := s.repository.Update(ctx, id, toRecord(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %s: %w", id, err)
	}

	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID.
// Returns ErrProductNotFound if no product exists with the given ID.
func (s *Service) DeleteByID(ctx context.Context, id string) error {
	return s.repository.DeleteByID(ctx, id)
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Stock:       product.Stock,
	}
}

// toRecord converts a validated ProductPayload to a store.Product.
func toRecord(payload ProductPayload) store.Product {
	return store.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Price:       payload.Price,
		Category:    payload.Category,
		Stock:       *payload.Stock,
	}
}
