package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront/entity"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

const (
	EventOrderCreated   = "created"
	EventOrderCancelled = "cancelled"
)

type OrderEvent struct {
	Kind        string             `json:"kind"`
	OrderID     uint               `json:"order_id"`
	UserID      uint               `json:"user_id"`
	ProductID   uint               `json:"product_id"`
	Quantity    int                `json:"quantity"`
	Price       decimal.Decimal    `json:"price"`
	PaymentMode entity.PaymentMode `json:"payment_mode"`
	IsCancelled bool               `json:"is_cancelled"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

func NewOrderEvent(kind string, o *entity.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Kind:        kind,
		OrderID:     o.ID,
		UserID:      o.UserID,
		ProductID:   o.ProductID,
		Quantity:    o.Quantity,
		Price:       o.Price,
		PaymentMode: o.PaymentMode,
		IsCancelled: o.IsCancelled,
		OccurredAt:  at,
	}
}

// EventPublisher announces order changes after they are committed.
type EventPublisher interface {
	Publish(ctx context.Context, events ...OrderEvent) error
}

type NopEventPublisher struct{}

func (NopEventPublisher) Publish(context.Context, ...OrderEvent) error { return nil }

// messageWriter is the part of *kafka.Writer the publisher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaEventPublisher struct {
	writer messageWriter
}

func NewKafkaEventPublisher(w messageWriter) *KafkaEventPublisher {
	return &KafkaEventPublisher{writer: w}
}

func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...OrderEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, ev := range events {
		data, err := json.Marshal(ev)
		if err != nil {
			return err
		}
		// order-created-1 or order-cancelled-1
		msgs = append(msgs, kafka.Message{
			Key:   []byte(fmt.Sprintf("order-%s-%d", ev.Kind, ev.OrderID)),
			Value: data,
		})
	}
	return p.writer.WriteMessages(ctx, msgs...)
}
