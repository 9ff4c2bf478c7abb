package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/groovecrate/vinylstore/app/models"
)

// wrap converts GORM errors into the repository taxonomy.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// GormAdminRepository is the SQL-backed admin store.
type GormAdminRepository struct {
	db *gorm.DB
}

func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

func (r *GormAdminRepository) FindByEmail(ctx context.Context, email string) (models.Admin, error) {
	var admin models.Admin
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	return admin, wrap(err)
}

func (r *GormAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	return wrap(r.db.WithContext(ctx).Create(admin).Error)
}

func (r *GormAdminRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Admin{}).Count(&n).Error
	return n, wrap(err)
}

// GormProductRepository is the SQL-backed product store.
type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) All(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	return products, wrap(err)
}

func (r *GormProductRepository) Find(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return p, wrap(err)
}

func (r *GormProductRepository) Create(ctx context.Context, p *models.Product) error {
	return wrap(r.db.WithContext(ctx).Create(p).Error)
}

func (r *GormProductRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (models.Product, error) {
	var updated models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Product
		if err := tx.First(&p, id).Error; err != nil {
			return err
		}
		if len(fields) > 0 {
			if err := tx.Model(&p).Updates(fields).Error; err != nil {
				return err
			}
		}
		return tx.First(&updated, id).Error
	})
	return updated, wrap(err)
}

func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) DecrementQuantity(ctx context.Context, id uint) error {
	// Single conditional UPDATE so two concurrent purchases can never both
	// consume the last unit; the guard lives in the WHERE clause.
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND quantity > 0", id).
		UpdateColumn("quantity", gorm.Expr("quantity - 1"))
	if res.Error != nil {
		return wrap(res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Zero rows: either the product is gone or the guard failed.
	var p models.Product
	if err := r.db.WithContext(ctx).Select("id").First(&p, id).Error; err != nil {
		return wrap(err)
	}
	return ErrOutOfStock
}
