package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/groovecrate/vinylstore/app/models"
	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/pkg/logger"
	"github.com/groovecrate/vinylstore/pkg/metrics"
	"github.com/groovecrate/vinylstore/pkg/session"
	"github.com/groovecrate/vinylstore/pkg/ws"
)

// EventPublisher receives catalog change events. The WebSocket hub implements
// it; tests pass nil or a recorder.
type EventPublisher interface {
	Publish(ev ws.Event)
}

// CreateProductInput is the validated body of POST /api/products.
type CreateProductInput struct {
	Name     string   `json:"name"     validate:"required,min=1,max=200"`
	Album    string   `json:"album"    validate:"nullable,max=200"`
	Artist   string   `json:"artist"   validate:"nullable,max=200"`
	Link     string   `json:"link"     validate:"nullable,url"`
	Price    *float64 `json:"price"    validate:"required,gte=0"`
	Quantity *int     `json:"quantity" validate:"nullable,gte=0"`
}

// UpdateProductInput is the body of PUT /api/products/{id}. Every field is
// optional; only present fields are applied.
type UpdateProductInput struct {
	Name     *string  `json:"name"     validate:"nullable,min=1,max=200"`
	Album    *string  `json:"album"    validate:"nullable,max=200"`
	Artist   *string  `json:"artist"   validate:"nullable,max=200"`
	Link     *string  `json:"link"     validate:"nullable,url"`
	Price    *float64 `json:"price"    validate:"nullable,gte=0"`
	Quantity *int     `json:"quantity" validate:"nullable,gte=0"`
}

// CatalogService implements the product operations. Mutating operations check
// the caller's admin capability themselves; purchase and the reads are public.
type CatalogService struct {
	products repositories.ProductRepository
	auth     *AuthService
	events   EventPublisher
}

func NewCatalogService(products repositories.ProductRepository, auth *AuthService, events EventPublisher) *CatalogService {
	return &CatalogService{products: products, auth: auth, events: events}
}

// List returns all products in store-defined order.
func (s *CatalogService) List(ctx context.Context) ([]models.Product, error) {
	return s.products.All(ctx)
}

// Get returns a single product.
func (s *CatalogService) Get(ctx context.Context, id uint) (models.Product, error) {
	return s.products.Find(ctx, id)
}

// Create persists a new product. Requires an authenticated admin session.
func (s *CatalogService) Create(ctx context.Context, sess *session.Session, in CreateProductInput) (models.Product, error) {
	if !s.auth.IsAuthenticated(ctx, sess) {
		return models.Product{}, ErrUnauthorized
	}

	p := models.Product{
		Name:   in.Name,
		Album:  in.Album,
		Artist: in.Artist,
		Link:   in.Link,
		Price:  *in.Price,
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}

	if err := s.products.Create(ctx, &p); err != nil {
		return models.Product{}, err
	}

	logger.WithCtx(ctx).Info("product created", "product_id", p.ID, "name", p.Name)
	s.publish(ws.Event{Type: ws.ProductCreated, Product: &p})
	return p, nil
}

// Update applies the present fields to the product. The update is atomic:
// validation happens before anything is written, so an invalid price leaves
// the record untouched.
func (s *CatalogService) Update(ctx context.Context, sess *session.Session, id uint, in UpdateProductInput) (models.Product, error) {
	if !s.auth.IsAuthenticated(ctx, sess) {
		return models.Product{}, ErrUnauthorized
	}

	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Album != nil {
		fields["album"] = *in.Album
	}
	if in.Artist != nil {
		fields["artist"] = *in.Artist
	}
	if in.Link != nil {
		fields["link"] = *in.Link
	}
	if in.Price != nil {
		fields["price"] = *in.Price
	}
	if in.Quantity != nil {
		fields["quantity"] = *in.Quantity
	}

	p, err := s.products.Update(ctx, id, fields)
	if err != nil {
		return models.Product{}, err
	}

	logger.WithCtx(ctx).Info("product updated", "product_id", p.ID)
	s.publish(ws.Event{Type: ws.ProductUpdated, Product: &p})
	return p, nil
}

// Delete removes the product. Requires an authenticated admin session.
func (s *CatalogService) Delete(ctx context.Context, sess *session.Session, id uint) error {
	if !s.auth.IsAuthenticated(ctx, sess) {
		return ErrUnauthorized
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	logger.WithCtx(ctx).Info("product deleted", "product_id", id)
	s.publish(ws.Event{Type: ws.ProductDeleted, ID: id})
	return nil
}

// Purchase decrements the product's stock by one. Public. The decrement is a
// single conditional mutation at the store, so concurrent purchases of the
// last unit cannot both succeed.
func (s *CatalogService) Purchase(ctx context.Context, id uint) (models.Product, error) {
	if err := s.products.DecrementQuantity(ctx, id); err != nil {
		switch {
		case errors.Is(err, ErrOutOfStock):
			metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
		case errors.Is(err, ErrNotFound):
			metrics.PurchasesTotal.WithLabelValues("not_found").Inc()
		default:
			metrics.PurchasesTotal.WithLabelValues("error").Inc()
		}
		return models.Product{}, err
	}

	metrics.PurchasesTotal.WithLabelValues("ok").Inc()

	p, err := s.products.Find(ctx, id)
	if err != nil {
		// The decrement committed; report success even if the re-read raced
		// with a delete.
		return models.Product{ID: id}, nil
	}

	logger.WithCtx(ctx).Info("product purchased", "product_id", id, "remaining", p.Quantity)
	s.publish(ws.Event{Type: ws.ProductPurchased, Product: &p})
	return p, nil
}

// AttachCover records the public URL of an uploaded cover image.
func (s *CatalogService) AttachCover(ctx context.Context, sess *session.Session, id uint, url string) (models.Product, error) {
	if !s.auth.IsAuthenticated(ctx, sess) {
		return models.Product{}, ErrUnauthorized
	}
	if url == "" {
		return models.Product{}, fmt.Errorf("%w: empty cover url", ErrInvalidInput)
	}

	p, err := s.products.Update(ctx, id, map[string]interface{}{"cover_url": url})
	if err != nil {
		return models.Product{}, err
	}

	s.publish(ws.Event{Type: ws.ProductUpdated, Product: &p})
	return p, nil
}

func (s *CatalogService) publish(ev ws.Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}
