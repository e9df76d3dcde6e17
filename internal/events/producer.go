package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type KafkaProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaProducer(brokers, topic string, logger *zap.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaProducer{
		writer: writer,
		logger: logger,
	}
}

func (p *KafkaProducer) PublishSaleRecorded(event SaleRecordedEvent) error {
	if err := p.publish(event.EventID, event); err != nil {
		return err
	}

	p.logger.Info("Sale event published",
		zap.String("event_id", event.EventID),
		zap.String("sale_id", event.SaleID))

	return nil
}

func (p *KafkaProducer) PublishStockDeducted(event StockDeductedEvent) error {
	if err := p.publish(event.EventID, event); err != nil {
		return err
	}

	p.logger.Info("Stock event published",
		zap.String("event_id", event.EventID),
		zap.String("product_id", event.ProductID))

	return nil
}

func (p *KafkaProducer) publish(key string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal event", zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: eventBytes,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish message",
			zap.String("event_id", key),
			zap.Error(err))
		return err
	}

	return nil
}

func (p *KafkaProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
