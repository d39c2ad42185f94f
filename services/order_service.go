package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/entity"
	"storefront/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	CartRepo *repository.CartRepository

	Events EventPublisher
	Cache  RankingCache
	now    func() time.Time
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	events EventPublisher,
	cache RankingCache,
) *OrderService {
	if events == nil {
		events = NopEventPublisher{}
	}
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, Events: events, Cache: cache, now: time.Now}
}

type PlaceOrderIn struct {
	PaymentMode string `json:"payment_mode" binding:"omitempty,max=10"`
}

// Place สร้างออเดอร์จากตะกร้าใน DB: one order per cart line at the product's
// current price, then the cart lines are deleted, all in one transaction.
func (s *OrderService) Place(ctx context.Context, userID uint, in *PlaceOrderIn) ([]entity.Order, error) {
	mode, ok := entity.ParsePaymentMode(in.PaymentMode)
	if !ok {
		return nil, invalidArgument("payment_mode must be COD or ONLINE")
	}

	var orders []entity.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lines, err := s.CartRepo.LockForCheckout(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		orders = make([]entity.Order, 0, len(lines))
		lineIDs := make([]uint, 0, len(lines))
		for _, it := range lines {
			orders = append(orders, entity.Order{
				UserID:      userID,
				ProductID:   it.ProductID,
				Price:       it.Product.Price,
				Quantity:    it.Quantity,
				PaymentMode: mode,
			})
			lineIDs = append(lineIDs, it.ID)
		}
		if err := s.Repo.CreateOrders(tx, orders); err != nil {
			return err
		}

		// เคลียร์ cart; a short count means another checkout already took these lines
		n, err := s.CartRepo.DeleteLines(tx, userID, lineIDs)
		if err != nil {
			return err
		}
		if n != int64(len(lineIDs)) {
			return ErrCartChanged
		}

		for i := range orders {
			orders[i].Product = lines[i].Product
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrEmptyCart) || errors.Is(err, ErrCartChanged) {
			return nil, err
		}
		return nil, fmt.Errorf("place order: %w", err)
	}

	s.afterChange(ctx, EventOrderCreated, orders...)
	log.Info().Uint("userId", userID).Int("orders", len(orders)).Str("paymentMode", string(mode)).Msg("order placed")
	return orders, nil
}

// Cancel marks the order cancelled. It never touches the cart.
func (s *OrderService) Cancel(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	n, err := s.Repo.MarkCancelled(ctx, userID, orderID)
	if err != nil {
		return nil, fmt.Errorf("cancel order %d: %w", orderID, err)
	}

	o, err := s.Repo.FindForUser(ctx, userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	if n == 0 {
		return nil, ErrAlreadyCancelled
	}

	s.afterChange(ctx, EventOrderCancelled, *o)
	return o, nil
}

func (s *OrderService) List(ctx context.Context, userID uint) ([]entity.Order, error) {
	out, err := s.Repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.FindForUser(ctx, userID, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	return o, nil
}

// afterChange runs the post-commit side effects. Their failures are logged only:
// the database is the source of truth. They run even if the request context is
// already cancelled since the orders are committed.
func (s *OrderService) afterChange(ctx context.Context, kind string, orders ...entity.Order) {
	ctx = context.WithoutCancel(ctx)
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("cannot invalidate most bought cache")
		}
	}

	at := s.now()
	events := make([]OrderEvent, 0, len(orders))
	for i := range orders {
		events = append(events, NewOrderEvent(kind, &orders[i], at))
	}
	if err := s.Events.Publish(ctx, events...); err != nil {
		log.Warn().Err(err).Str("kind", kind).Int("events", len(events)).Msg("cannot publish order events")
	}
}
