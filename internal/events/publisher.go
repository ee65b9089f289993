package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Producer отправка сообщения в брокер (kafka.Producer)
type Producer interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// BrokerPublisher публикует события в топик брокера в JSON
type BrokerPublisher struct {
	producer Producer
	topic    string
}

// NewBrokerPublisher создает publisher поверх продюсера
func NewBrokerPublisher(producer Producer, topic string) *BrokerPublisher {
	return &BrokerPublisher{producer: producer, topic: topic}
}

func (p *BrokerPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", event.Type, err)
	}

	headers := map[string]string{
		"event-id":   event.ID,
		"event-type": string(event.Type),
	}
	return p.producer.Publish(ctx, p.topic, event.Key, payload, headers)
}

// NopPublisher используется, когда брокер выключен в конфиге
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}

func resourceKey(resourceID int64) string {
	return "resource-" + strconv.FormatInt(resourceID, 10)
}
