package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/entity"
	"storefront/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ActionIncrease = "increase"
	ActionDecrease = "decrease"
)

type CartService struct {
	DB          *gorm.DB
	CartRepo    *repository.CartRepository
	ProductRepo *repository.ProductRepository
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, pr *repository.ProductRepository) *CartService {
	return &CartService{DB: db, CartRepo: cr, ProductRepo: pr}
}

type AddToCartIn struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateQuantityIn struct {
	Action string `json:"action" binding:"required"`
}

type SetQuantityIn struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CartView struct {
	Items    []entity.CartLine `json:"items"`
	Subtotal decimal.Decimal   `json:"subtotal"`
}

// QuantityResult is either the updated line or Removed=true when the line was deleted.
type QuantityResult struct {
	Line    *entity.CartLine `json:"item,omitempty"`
	Removed bool             `json:"removed"`
}

func (s *CartService) Get(ctx context.Context, userID uint) (*CartView, error) {
	lines, err := s.CartRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	subtotal := decimal.Zero
	for _, it := range lines {
		subtotal = subtotal.Add(it.Product.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return &CartView{Items: lines, Subtotal: subtotal}, nil
}

func (s *CartService) GetLine(ctx context.Context, userID, lineID uint) (*entity.CartLine, error) {
	line, err := s.CartRepo.FindForUser(ctx, userID, lineID)
	if err != nil {
		return nil, notFoundOr(err, "cart item")
	}
	return line, nil
}

// Add merges quantity into the user's line for the product, creating it when
// missing. created tells the caller which of the two happened.
func (s *CartService) Add(ctx context.Context, userID uint, in *AddToCartIn) (line *entity.CartLine, created bool, err error) {
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty <= 0 {
		return nil, false, invalidArgument("quantity must be a positive integer")
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := s.ProductRepo.Exists(tx, in.ProductID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("product %d: %w", in.ProductID, ErrNotFound)
		}
		line, created, err = s.CartRepo.UpsertLine(tx, userID, in.ProductID, qty)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, err
		}
		return nil, false, fmt.Errorf("add to cart: %w", err)
	}
	return line, created, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID uint, action string) (*QuantityResult, error) {
	if action != ActionIncrease && action != ActionDecrease {
		return nil, invalidArgument("invalid action %q, expected increase or decrease", action)
	}

	var out QuantityResult
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if action == ActionIncrease {
			n, err := s.CartRepo.Increment(tx, userID, lineID)
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("cart item %d: %w", lineID, ErrNotFound)
			}
		} else {
			removed, found, err := s.CartRepo.Decrement(tx, userID, lineID)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("cart item %d: %w", lineID, ErrNotFound)
			}
			if removed {
				out.Removed = true
				return nil
			}
		}
		line, err := s.CartRepo.FindInTx(tx, userID, lineID)
		if err != nil {
			return err
		}
		out.Line = line
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update cart quantity: %w", err)
	}
	return &out, nil
}

// SetQuantity sets the line to exactly qty. Use RemoveItem to drop a line.
func (s *CartService) SetQuantity(ctx context.Context, userID, lineID uint, qty int) (*entity.CartLine, error) {
	if qty < 1 {
		return nil, invalidArgument("quantity must be a positive integer")
	}

	var line *entity.CartLine
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.CartRepo.SetQuantity(tx, userID, lineID, qty); err != nil {
			return err
		}
		// ไม่ใช้ RowsAffected: mysql นับ 0 เมื่อค่าเดิมเท่ากัน
		var err error
		line, err = s.CartRepo.FindInTx(tx, userID, lineID)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, "cart item")
	}
	return line, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, lineID uint) error {
	n, err := s.CartRepo.RemoveLine(ctx, userID, lineID)
	if err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("cart item %d: %w", lineID, ErrNotFound)
	}
	return nil
}

// Clear ลบทุกรายการในตะกร้า; ตะกร้าว่างอยู่แล้วก็ไม่ error
func (s *CartService) Clear(ctx context.Context, userID uint) error {
	if err := s.CartRepo.ClearCart(ctx, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
