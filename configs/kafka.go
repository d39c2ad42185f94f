package configs

import (
	"time"

	"github.com/segmentio/kafka-go"
)

// NewKafkaWriter returns nil when no brokers are configured.
func NewKafkaWriter(cfg *Config) *kafka.Writer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafka.Hash{}, // events of one order land on one partition
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}
