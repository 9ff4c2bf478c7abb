package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/groovecrate/vinylstore/app/models"
	"github.com/groovecrate/vinylstore/app/repositories"
	"github.com/groovecrate/vinylstore/app/services"
	"github.com/groovecrate/vinylstore/pkg/auth"
	"github.com/groovecrate/vinylstore/pkg/cache"
	"github.com/groovecrate/vinylstore/pkg/session"
	"github.com/groovecrate/vinylstore/pkg/ws"
)

type eventRecorder struct {
	mu     sync.Mutex
	events []ws.Event
}

func (r *eventRecorder) Publish(ev ws.Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

func (r *eventRecorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, ev := range r.events {
		out[i] = ev.Type
	}
	return out
}

type catalogFixture struct {
	svc      *services.CatalogService
	auth     *services.AuthService
	products *repositories.MemoryProductRepository
	events   *eventRecorder
	sess     *session.Session
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	ctx := context.Background()

	admins := repositories.NewMemoryAdminRepository()
	hash, err := auth.HashPassword("secret")
	require.NoError(t, err)
	require.NoError(t, admins.Create(ctx, &models.Admin{Email: "a@x.com", PasswordHash: hash}))

	sessions := session.NewStore(cache.NewMemory(), session.DefaultOptions(time.Hour))
	authSvc := services.NewAuthService(admins, sessions, auth.NewTokens("test-secret", time.Hour))

	res, err := authSvc.Login(ctx, "a@x.com", "secret")
	require.NoError(t, err)

	products := repositories.NewMemoryProductRepository()
	events := &eventRecorder{}
	return &catalogFixture{
		svc:      services.NewCatalogService(products, authSvc, events),
		auth:     authSvc,
		products: products,
		events:   events,
		sess:     &res.Session,
	}
}

func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }
func sptr(v string) *string  { return &v }

func TestCreateThenListIncludesProduct(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{
		Name:     "Kind of Blue",
		Artist:   "Miles Davis",
		Price:    f64(29.99),
		Quantity: iptr(3),
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	list, err := fx.svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, p.ID, list[0].ID)
	assert.Equal(t, "Kind of Blue", list[0].Name)
	assert.Equal(t, 29.99, list[0].Price)
	assert.Equal(t, 3, list[0].Quantity)

	assert.Equal(t, []string{ws.ProductCreated}, fx.events.types())
}

func TestCreateRequiresAuth(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	in := services.CreateProductInput{Name: "LP", Price: f64(1)}

	_, err := fx.svc.Create(ctx, nil, in)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = fx.svc.Create(ctx, &session.Session{ID: "forged", Email: "a@x.com"}, in)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	list, err := fx.svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list, "rejected create must not mutate the store")
	assert.Empty(t, fx.events.types())
}

func TestUpdateAppliesOnlyPresentFields(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{
		Name:  "Blue Train",
		Album: "Blue Train",
		Price: f64(19.99),
	})
	require.NoError(t, err)

	updated, err := fx.svc.Update(ctx, fx.sess, p.ID, services.UpdateProductInput{
		Price: f64(24.99),
	})
	require.NoError(t, err)
	assert.Equal(t, 24.99, updated.Price)
	assert.Equal(t, "Blue Train", updated.Name, "absent fields stay unchanged")
}

func TestUpdateUnknownIDIsNotFound(t *testing.T) {
	fx := newCatalogFixture(t)
	_, err := fx.svc.Update(context.Background(), fx.sess, 999, services.UpdateProductInput{
		Name: sptr("x"),
	})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateRequiresAuth(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{Name: "LP", Price: f64(9.99)})
	require.NoError(t, err)

	_, err = fx.svc.Update(ctx, nil, p.ID, services.UpdateProductInput{Price: f64(0)})
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	got, err := fx.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.Price)
}

func TestDeleteThenOperateIsNotFound(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{Name: "LP", Price: f64(5)})
	require.NoError(t, err)

	require.NoError(t, fx.svc.Delete(ctx, fx.sess, p.ID))

	assert.ErrorIs(t, fx.svc.Delete(ctx, fx.sess, p.ID), services.ErrNotFound)
	_, err = fx.svc.Update(ctx, fx.sess, p.ID, services.UpdateProductInput{Name: sptr("y")})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteRequiresAuth(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{Name: "LP", Price: f64(5)})
	require.NoError(t, err)

	assert.ErrorIs(t, fx.svc.Delete(ctx, nil, p.ID), services.ErrUnauthorized)

	_, err = fx.svc.Get(ctx, p.ID)
	assert.NoError(t, err)
}

func TestPurchaseDecrementsQuantity(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{
		Name: "LP", Price: f64(5), Quantity: iptr(2),
	})
	require.NoError(t, err)

	got, err := fx.svc.Purchase(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Quantity)
}

func TestPurchaseUnknownIDIsNotFound(t *testing.T) {
	fx := newCatalogFixture(t)
	_, err := fx.svc.Purchase(context.Background(), 12345)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPurchaseOutOfStock(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{
		Name: "LP", Price: f64(5), Quantity: iptr(0),
	})
	require.NoError(t, err)

	_, err = fx.svc.Purchase(ctx, p.ID)
	assert.ErrorIs(t, err, services.ErrOutOfStock)
}

func TestConcurrentPurchaseOfLastUnit(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{
		Name: "LP", Price: f64(5), Quantity: iptr(1),
	})
	require.NoError(t, err)

	const callers = 16
	errs := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fx.svc.Purchase(ctx, p.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, outOfStock int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, services.ErrOutOfStock):
			outOfStock++
		}
	}
	assert.Equal(t, 1, ok, "exactly one purchase wins the last unit")
	assert.Equal(t, callers-1, outOfStock)

	final, err := fx.svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, final.Quantity, "quantity never goes negative")
}

func TestAttachCover(t *testing.T) {
	fx := newCatalogFixture(t)
	ctx := context.Background()

	p, err := fx.svc.Create(ctx, fx.sess, services.CreateProductInput{Name: "LP", Price: f64(5)})
	require.NoError(t, err)

	updated, err := fx.svc.AttachCover(ctx, fx.sess, p.ID, "http://localhost:8080/storage/covers/x.png")
	require.NoError(t, err)
	assert.NotEmpty(t, updated.CoverURL)

	_, err = fx.svc.AttachCover(ctx, nil, p.ID, "http://x")
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}
