package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/silenusdev/assistant-marketing/internal/config"
	"github.com/silenusdev/assistant-marketing/internal/events"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Fatal("connect to broker", zap.Error(err))
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("open channel", zap.Error(err))
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(events.PlanEventsQueue, true, false, false, false, nil)
	if err != nil {
		logger.Fatal("declare queue", zap.Error(err))
	}

	deliveries, err := ch.Consume(events.PlanEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatal("start consumer", zap.Error(err))
	}

	logger.Info("worker consuming", zap.String("queue", events.PlanEventsQueue))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-stop:
			logger.Info("worker stopping")
			return
		case d, ok := <-deliveries:
			if !ok {
				logger.Warn("delivery channel closed")
				return
			}
			handle(d, logger)
		}
	}
}

func handle(d amqp.Delivery, logger *zap.Logger) {
	var event events.PlanGenerated
	if err := json.Unmarshal(d.Body, &event); err != nil {
		logger.Error("malformed event, dropping", zap.Error(err))
		d.Nack(false, false)
		return
	}

	if err := notify(event, logger); err != nil {
		if d.Redelivered {
			logger.Error("notification failed after redelivery, dropping",
				zap.Int("plan_id", event.PlanID), zap.Error(err))
			d.Nack(false, false)
			return
		}
		logger.Warn("notification failed, requeuing", zap.Int("plan_id", event.PlanID), zap.Error(err))
		d.Nack(false, true)
		return
	}

	d.Ack(false)
}

// notify stands in for a real notification channel. Swapping in email or
// webhook delivery only touches this function.
func notify(event events.PlanGenerated, logger *zap.Logger) error {
	logger.Info("plan ready",
		zap.Int("plan_id", event.PlanID),
		zap.Int("scenario_id", event.ScenarioID),
		zap.Int("item_count", event.ItemCount),
		zap.Time("generated_at", event.GeneratedAt))
	return nil
}
