package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/pkg/logger"
	kafkago "github.com/segmentio/kafka-go"
)

var _ inventory.AlertPublisher = (*AlertProducer)(nil)

// AlertProducer publica eventos de alerta en un tópico de Kafka.
// Los eventos se particionan por item_id para que las alertas de un mismo
// artículo lleguen en orden al consumidor.
type AlertProducer struct {
	writer *kafkago.Writer
	log    *logger.Logger
}

// NewAlertProducer construye el productor contra los brokers indicados.
func NewAlertProducer(brokers []string, topic string, log *logger.Logger) *AlertProducer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		Compression:  kafkago.Snappy,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &AlertProducer{writer: writer, log: log}
}

// PublishAlertEvent serializa y publica el evento. El caller decide qué hacer
// ante un error; aquí solo se reporta.
func (p *AlertProducer) PublishAlertEvent(ctx context.Context, event *inventory.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(event.ItemID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte("inventory.alert." + event.AlertType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish alert event: %w", err)
	}
	p.log.Debug().
		Str("alert_id", event.AlertID).
		Str("item_id", event.ItemID).
		Str("alert_type", event.AlertType).
		Msg("Evento de alerta publicado")
	return nil
}

// Close cierra el writer liberando conexiones pendientes.
func (p *AlertProducer) Close() error {
	return p.writer.Close()
}
