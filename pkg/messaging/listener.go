package messaging

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/webgrowth/facetfilter/pkg/types"
)

// FacetListener applies replicated changes on the consuming side. Handlers
// run on the consumer goroutine; a handler error drops the consumer, which
// surfaces in the logs rather than silently skipping changes.
type FacetListener struct {
	OnFacetSaved      func(def *types.FacetDefinition) error
	OnFacetDeleted    func(id int64) error
	OnSettingsChanged func(settings *types.Settings) error

	conn *amqp.Connection
}

func (l *FacetListener) Connect(cfg RabbitConfig) error {
	conn, err := amqp.DialConfig(cfg.Url, amqp.Config{Vhost: cfg.VHost})
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	l.conn = conn

	if l.OnFacetSaved != nil {
		if err := l.listen(cfg.Prefix, FacetSavedTopic, func(d amqp.Delivery) error {
			def := &types.FacetDefinition{}
			if err := json.Unmarshal(d.Body, def); err != nil {
				return err
			}
			return l.OnFacetSaved(def)
		}); err != nil {
			return err
		}
	}
	if l.OnFacetDeleted != nil {
		if err := l.listen(cfg.Prefix, FacetDeletedTopic, func(d amqp.Delivery) error {
			var msg FacetDeleted
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				return err
			}
			return l.OnFacetDeleted(msg.Id)
		}); err != nil {
			return err
		}
	}
	if l.OnSettingsChanged != nil {
		if err := l.listen(cfg.Prefix, SettingsChangedTopic, func(d amqp.Delivery) error {
			settings := &types.Settings{}
			if err := json.Unmarshal(d.Body, settings); err != nil {
				return err
			}
			return l.OnSettingsChanged(settings)
		}); err != nil {
			return err
		}
	}
	return nil
}

func (l *FacetListener) Close() error {
	if l.conn == nil {
		return nil
	}
	return l.conn.Close()
}

func (l *FacetListener) listen(prefix string, topic ChangeTopic, handle func(amqp.Delivery) error) error {
	ch, err := l.conn.Channel()
	if err != nil {
		return err
	}
	name := getName(prefix, topic)
	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		false, // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	if err = ch.QueueBind(q.Name, name, name, false, nil); err != nil {
		return err
	}
	deliveries, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	go func(msgs <-chan amqp.Delivery) {
		defer ch.Close()
		for d := range msgs {
			if err := handle(d); err != nil {
				log.Printf("Error processing %s message: %v", topic, err)
				return
			}
			d.Ack(false)
		}
	}(deliveries)
	return nil
}
