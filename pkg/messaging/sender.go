package messaging

import (
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// FacetPublisher replicates admin changes to the other instances over a topic
// exchange per change kind.
type FacetPublisher struct {
	conn   *amqp.Connection
	prefix string
}

func NewFacetPublisher(cfg RabbitConfig) (*FacetPublisher, error) {
	conn, err := amqp.DialConfig(cfg.Url, amqp.Config{Vhost: cfg.VHost})
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	for _, topic := range []ChangeTopic{FacetSavedTopic, FacetDeletedTopic, SettingsChangedTopic} {
		if err := defineTopic(ch, cfg.Prefix, topic); err != nil {
			conn.Close()
			return nil, fmt.Errorf("declare topic %s: %w", topic, err)
		}
	}
	return &FacetPublisher{conn: conn, prefix: cfg.Prefix}, nil
}

func (p *FacetPublisher) FacetSaved(def *types.FacetDefinition) error {
	return send(p.conn, p.prefix, FacetSavedTopic, def)
}

func (p *FacetPublisher) FacetDeleted(id int64) error {
	return send(p.conn, p.prefix, FacetDeletedTopic, FacetDeleted{Id: id})
}

func (p *FacetPublisher) SettingsChanged(settings *types.Settings) error {
	return send(p.conn, p.prefix, SettingsChangedTopic, settings)
}

func (p *FacetPublisher) Close() error {
	return p.conn.Close()
}

func defineTopic(ch *amqp.Channel, prefix string, topic ChangeTopic) error {
	name := getName(prefix, topic)
	if err := ch.ExchangeDeclare(
		name,    // name
		"topic", // type
		true,    // durable
		false,   // auto-delete
		false,   // internal
		false,   // noWait
		nil,     // arguments
	); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(
		name,  // name of the queue
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // noWait
		nil,   // arguments
	); err != nil {
		return err
	}
	return nil
}

func getName(prefix string, topic ChangeTopic) string {
	return fmt.Sprintf("%s_%s", prefix, topic)
}

func send[V any](c *amqp.Connection, prefix string, topic ChangeTopic, data V) error {
	bytes, err := json.Marshal(data)
	if err != nil {
		return err
	}
	ch, err := c.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	name := getName(prefix, topic)
	return ch.Publish(
		name,
		name,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        bytes,
		},
	)
}
