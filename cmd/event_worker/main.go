package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-event-management/config"
	"github.com/oksasatya/go-ddd-event-management/internal/domain/entity"
	"github.com/oksasatya/go-ddd-event-management/pkg/helpers"
)

const consumerTag = "event-worker"

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEventsQueue); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, consumerTag, false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			if err := handle(msg.Body, logger); err != nil {
				helpers.LogError(logger, "bad message", err, logrus.Fields{"delivery_tag": msg.DeliveryTag})
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEventsQueue).Info("event worker listening")
	<-stop
	logger.Info("shutting down...")
	_ = ch.Cancel(consumerTag, false)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// handle decodes one event change and logs it. Undecodable or unknown
// messages are errors; the caller drops them without requeue.
func handle(body []byte, logger *logrus.Logger) error {
	var change entity.EventChange
	if err := json.Unmarshal(body, &change); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	fields := logrus.Fields{
		"type":        change.Type,
		"event_id":    change.EventID,
		"occurred_at": change.OccurredAt.Format(time.RFC3339),
	}
	switch change.Type {
	case entity.EventCreated, entity.EventUpdated:
		if change.Event == nil {
			return fmt.Errorf("%s without event payload", change.Type)
		}
		fields["name"] = change.Event.Name
		fields["date"] = change.Event.Date
		fields["location"] = change.Event.Location
	case entity.EventDeleted:
	default:
		return fmt.Errorf("unknown change type %q", change.Type)
	}

	helpers.LogInfo(logger, "event changed", fields)
	return nil
}

