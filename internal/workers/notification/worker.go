package notification

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"carnaval/config"
	"carnaval/infras/kafka"
	"carnaval/internal/domains/booking/model/dto"
)

// Worker consumes booking lifecycle events and fans them out to guests.
type Worker interface {
	Start(ctx context.Context)
}

type workerImpl struct {
	broker kafka.Client
	cfg    *config.Config
}

func New(broker kafka.Client, cfg *config.Config) Worker {
	return &workerImpl{
		broker: broker,
		cfg:    cfg,
	}
}

// Start blocks consuming the booking topic until ctx is cancelled. When no
// brokers are configured it returns immediately so local setups without
// Kafka keep working.
func (w *workerImpl) Start(ctx context.Context) {
	if len(w.cfg.Kafka.Brokers) == 0 {
		log.Info().Msg("No Kafka brokers configured, notification worker disabled.")

		return
	}

	w.broker.Consume(ctx, w.cfg.Kafka.ConsumerGroup, w.cfg.Kafka.BookingTopic, w.handle)
}

func (w *workerImpl) handle(message kafkaGo.Message) {
	var event dto.BookingEvent

	if err := json.Unmarshal(message.Value, &event); err != nil {
		log.Error().Err(err).Str("key", string(message.Key)).Msg("failed to decode booking event")

		return
	}

	// Delivery channels (email, push) plug in here. Until one is wired the
	// worker records the notification it would have sent.
	log.Info().
		Str("type", event.Type).
		Str("reference", event.Reference).
		Str("hotelID", event.HotelID).
		Str("status", event.Status).
		Msg("Booking notification dispatched.")
}
