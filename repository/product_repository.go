package repository

import (
	"context"
	"strings"

	"storefront/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository struct{ DB *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{DB: db} }

// ProductFilter fields compose with AND; Search matches title OR description.
// Nil / empty fields do not restrict the listing.
type ProductFilter struct {
	Category string
	Sold     *bool
	IsSale   *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Search   string
}

func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]entity.Product, error) {
	q := r.DB.WithContext(ctx).Model(&entity.Product{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Sold != nil {
		q = q.Where("sold = ?", *f.Sold)
	}
	if f.IsSale != nil {
		q = q.Where("is_sale = ?", *f.IsSale)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		pattern := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!')", pattern, pattern)
	}

	out := []entity.Product{}
	err := q.Order("created_at DESC").Order("id DESC").Find(&out).Error
	return out, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*entity.Product, error) {
	var p entity.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs returns the products keyed by id; missing ids are simply absent.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint) (map[uint]entity.Product, error) {
	out := make(map[uint]entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []entity.Product
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, p := range rows {
		out[p.ID] = p
	}
	return out, nil
}

// เช็คว่าสินค้ามีอยู่จริงมั้ย
func (r *ProductRepository) Exists(tx *gorm.DB, id uint) (bool, error) {
	var cnt int64
	if err := tx.Model(&entity.Product{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

// Update returns the number of matched rows so callers can tell a missing product apart.
func (r *ProductRepository) Update(ctx context.Context, id uint, updates map[string]any) (int64, error) {
	res := r.DB.WithContext(ctx).Model(&entity.Product{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

// escapeLike escapes LIKE wildcards using '!' as the escape character,
// which reads the same in sqlite, postgres and mysql string literals.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
