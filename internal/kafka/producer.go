// Package kafka publishes audit activity events for downstream consumers
// (reporting, alerting). Publishing is best-effort and never blocks or fails
// the originating request.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/support-desk/internal/config"
	"github.com/nguyentranbao-ct/support-desk/internal/models"
	kafkago "github.com/segmentio/kafka-go"
)

type ActivityEventProducer interface {
	PublishActivity(ctx context.Context, activity *models.Activity)
	Close() error
}

type producer struct {
	writer *kafkago.Writer
}

// NewActivityEventProducer returns a no-op producer when no brokers are
// configured.
func NewActivityEventProducer(cfg *config.Config) ActivityEventProducer {
	if len(cfg.Kafka.Brokers) == 0 || cfg.Kafka.Topic == "" {
		return &producer{}
	}
	return &producer{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Kafka.Brokers...),
			Topic:        cfg.Kafka.Topic,
			Balancer:     &kafkago.LeastBytes{},
			BatchTimeout: 10 * time.Millisecond,
		},
	}
}

func (p *producer) PublishActivity(ctx context.Context, activity *models.Activity) {
	if p.writer == nil {
		return
	}
	body, err := json.Marshal(activity)
	if err != nil {
		log.Errorw(ctx, "marshal activity event", "error", err)
		return
	}
	if err := p.writer.WriteMessages(ctx, kafkago.Message{Value: body}); err != nil {
		log.Errorw(ctx, "write activity event", "error", err, "activity_id", activity.ID)
	}
}

func (p *producer) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
