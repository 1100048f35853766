package store

import (
	"context"
	"slices"
	"sync"

	"github.com/avelichko/prodcatalog/internal/errors"
	"github.com/google/uuid"
)

// memory implements ProductStore using a mutex-guarded slice. The slice keeps
// insertion order so that pagination over list results stays stable between
// reads absent mutation.
type memory struct {
	mu       sync.RWMutex
	products []Product
}

// NewMemoryStore creates a new in-memory instance of ProductStore.
func NewMemoryStore() ProductStore {
	return &memory{
		products: make([]Product, 0),
	}
}

// FindAll retrieves all products in insertion order.
func (s *memory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Defensive copy: callers must not observe their filtering mutate the store.
	list := make([]Product, len(s.products))
	copy(list, s.products)
	return list, nil
}

// FindByID retrieves a product by its ID.
func (s *memory) FindByID(_ context.Context, id string) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	product := s.products[i]
	return &product, nil
}

// Create assigns a fresh unique ID, appends the product and returns the stored record.
func (s *memory) Create(_ context.Context, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product.ID = uuid.NewString()
	s.products = append(s.products, product)
	return &product, nil
}

// Update replaces all fields of an existing product except its ID.
func (s *memory) Update(_ context.Context, id string, product Product) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, errors.ErrProductNotFound
	}
	product.ID = id
	s.products[i] = product
	return &product, nil
}

// DeleteByID deletes a product by its ID.
func (s *memory) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return errors.ErrProductNotFound
	}
	s.products = slices.Delete(s.products, i, i+1)
	return nil
}

// indexOf returns the position of the product with the given ID, or -1.
// Callers must hold the mutex.
func (s *memory) indexOf(id string) int {
	return slices.IndexFunc(s.products, func(p Product) bool {
		return p.ID == id
	})
}
