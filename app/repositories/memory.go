package repositories

import (
	"context"
	"sync"

	"github.com/groovecrate/vinylstore/app/models"
)

// MemoryAdminRepository is a map-backed AdminRepository for tests.
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	nextID uint
	byMail map[string]models.Admin
}

func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{byMail: make(map[string]models.Admin)}
}

func (r *MemoryAdminRepository) FindByEmail(_ context.Context, email string) (models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.byMail[email]
	if !ok {
		return models.Admin{}, ErrNotFound
	}
	return admin, nil
}

func (r *MemoryAdminRepository) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	admin.ID = r.nextID
	r.byMail[admin.Email] = *admin
	return nil
}

func (r *MemoryAdminRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.byMail)), nil
}

// MemoryProductRepository is a map-backed ProductRepository for tests.
// Its DecrementQuantity holds the write lock across check and mutation, the
// in-process equivalent of the SQL conditional update.
type MemoryProductRepository struct {
	mu     sync.RWMutex
	nextID uint
	m      map[uint]models.Product
}

func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{m: make(map[uint]models.Product)}
}

func (r *MemoryProductRepository) All(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Product, 0, len(r.m))
	for _, p := range r.m {
		out = append(out, p)
	}
	return out, nil
}

func (r *MemoryProductRepository) Find(_ context.Context, id uint) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.m[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

func (r *MemoryProductRepository) Create(_ context.Context, p *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	r.m[p.ID] = *p
	return nil
}

func (r *MemoryProductRepository) Update(_ context.Context, id uint, fields map[string]interface{}) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.m[id]
	if !ok {
		return models.Product{}, ErrNotFound
	}

	for col, val := range fields {
		switch col {
		case "name":
			p.Name = val.(string)
		case "album":
			p.Album = val.(string)
		case "artist":
			p.Artist = val.(string)
		case "link":
			p.Link = val.(string)
		case "price":
			p.Price = val.(float64)
		case "quantity":
			p.Quantity = val.(int)
		case "cover_url":
			p.CoverURL = val.(string)
		}
	}

	r.m[id] = p
	return p, nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.m[id]; !ok {
		return ErrNotFound
	}
	delete(r.m, id)
	return nil
}

func (r *MemoryProductRepository) DecrementQuantity(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.m[id]
	if !ok {
		return ErrNotFound
	}
	if p.Quantity <= 0 {
		return ErrOutOfStock
	}
	p.Quantity--
	r.m[id] = p
	return nil
}
