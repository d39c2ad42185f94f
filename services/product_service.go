package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/entity"
	"storefront/repository"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	DefaultMostBoughtLimit = 10
	MaxMostBoughtLimit     = 100
)

// RankingCache holds the ranked product ids of MostBought. It is optional.
// Get reports the cache generation it read; Set must be given that same
// generation and stores nothing once Invalidate has moved past it.
type RankingCache interface {
	Get(ctx context.Context, limit int) (ids []uint, gen int64, ok bool, err error)
	Set(ctx context.Context, gen int64, limit int, ids []uint) error
	Invalidate(ctx context.Context) error
}

type ProductService struct {
	Repo      *repository.ProductRepository
	OrderRepo *repository.OrderRepository // ranking ใช้ข้อมูล order
	Cache     RankingCache
}

func NewProductService(repo *repository.ProductRepository, orderRepo *repository.OrderRepository, cache RankingCache) *ProductService {
	return &ProductService{Repo: repo, OrderRepo: orderRepo, Cache: cache}
}

// ----- DTOs from Controller -----
type NewProductIn struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Description string           `json:"description"`
	Category    string           `json:"category" binding:"max=100"`
	ImageURL    string           `json:"image_url" binding:"omitempty,url,max=500"`
	Sold        bool             `json:"sold"`
	IsSale      bool             `json:"is_sale"`
	DateOfSale  *time.Time       `json:"date_of_sale"`
}

type ProductPatchIn struct {
	Title       *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" binding:"omitempty,max=100"`
	ImageURL    *string          `json:"image_url" binding:"omitempty,max=500"`
	Sold        *bool            `json:"sold"`
	IsSale      *bool            `json:"is_sale"`
	DateOfSale  *time.Time       `json:"date_of_sale"`
}

func (s *ProductService) List(ctx context.Context, f repository.ProductFilter) ([]entity.Product, error) {
	if f.MinPrice != nil && f.MaxPrice != nil && f.MinPrice.GreaterThan(*f.MaxPrice) {
		return []entity.Product{}, nil
	}
	out, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id uint) (*entity.Product, error) {
	p, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "product")
	}
	return p, nil
}

// MostBought returns up to limit products ranked by quantity ordered in
// non-cancelled orders. Products that were never ordered do not appear.
func (s *ProductService) MostBought(ctx context.Context, limit int) ([]entity.Product, error) {
	if limit <= 0 {
		limit = DefaultMostBoughtLimit
	}
	if limit > MaxMostBoughtLimit {
		limit = MaxMostBoughtLimit
	}

	ids, gen, hit, cacheable := s.cachedRanking(ctx, limit)
	if !hit {
		ranks, err := s.OrderRepo.RankProducts(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("rank products: %w", err)
		}
		ids = make([]uint, 0, len(ranks))
		for _, r := range ranks {
			ids = append(ids, r.ProductID)
		}
		if cacheable {
			if err := s.Cache.Set(ctx, gen, limit, ids); err != nil {
				log.Warn().Err(err).Int("limit", limit).Msg("cannot cache most bought ranking")
			}
		}
	}

	byID, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load ranked products: %w", err)
	}
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// cachedRanking reads the cache before the ranking query runs, so the
// generation it returns predates any order placed during that query.
func (s *ProductService) cachedRanking(ctx context.Context, limit int) (ids []uint, gen int64, hit, cacheable bool) {
	if s.Cache == nil {
		return nil, 0, false, false
	}
	ids, gen, hit, err := s.Cache.Get(ctx, limit)
	if err != nil {
		log.Warn().Err(err).Int("limit", limit).Msg("most bought cache read failed")
		return nil, 0, false, false
	}
	return ids, gen, hit, true
}

// Create เพิ่มสินค้า (staff เท่านั้น)
func (s *ProductService) Create(ctx context.Context, in *NewProductIn) (*entity.Product, error) {
	if in.Price == nil || in.Price.IsNegative() {
		return nil, invalidArgument("price must be a non-negative number")
	}
	p := &entity.Product{
		Title:       strings.TrimSpace(in.Title),
		Price:       in.Price.Round(2),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    in.ImageURL,
		Sold:        in.Sold,
		IsSale:      in.IsSale,
		DateOfSale:  in.DateOfSale,
	}
	if p.Title == "" {
		return nil, invalidArgument("title is required")
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// Update แก้ไขสินค้า; orders ที่สร้างไปแล้วเก็บราคาเดิมไว้ ไม่เปลี่ยนตาม
func (s *ProductService) Update(ctx context.Context, id uint, in *ProductPatchIn) (*entity.Product, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return nil, invalidArgument("title cannot be empty")
		}
		updates["title"] = t
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, invalidArgument("price must be a non-negative number")
		}
		updates["price"] = in.Price.Round(2)
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Category != nil {
		updates["category"] = strings.TrimSpace(*in.Category)
	}
	if in.ImageURL != nil {
		updates["image_url"] = *in.ImageURL
	}
	if in.Sold != nil {
		updates["sold"] = *in.Sold
	}
	if in.IsSale != nil {
		updates["is_sale"] = *in.IsSale
	}
	if in.DateOfSale != nil {
		updates["date_of_sale"] = *in.DateOfSale
	}

	if len(updates) > 0 {
		if _, err := s.Repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update product %d: %w", id, err)
		}
	}
	return s.Get(ctx, id)
}
