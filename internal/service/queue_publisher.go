package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/library-membership/internal/queue"
)

// QueuePublisher publishes membership events to RabbitMQ. Each publish
// opens its own connection; errors are logged and returned so the caller
// can ignore them without interrupting the request.
type QueuePublisher struct {
	URL string
	log *log.Logger
}

func NewQueuePublisher(url string) *QueuePublisher {
	return &QueuePublisher{URL: url, log: log.New("rabbitmq")}
}

// PublishMemberDeleted sends ev to the durable member.deleted queue as a
// persistent JSON message.
func (p *QueuePublisher) PublishMemberDeleted(ctx context.Context, ev queue.MemberDeletedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		p.log.Errorf("marshal event failed: %v", err)
		return err
	}

	conn, err := amqp.Dial(p.URL)
	if err != nil {
		p.log.Errorf("dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Errorf("channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(
		queue.MemberDeletedQueue, // name
		true,                     // durable
		false,                    // autoDelete
		false,                    // exclusive
		false,                    // noWait
		nil,                      // args
	); err != nil {
		p.log.Errorf("queue declare failed: %v", err)
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := ch.PublishWithContext(ctx,
		"",                       // default exchange
		queue.MemberDeletedQueue, // routing key = queue name
		false,                    // mandatory
		false,                    // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	); err != nil {
		p.log.Errorf("publish failed: %v", err)
		return err
	}
	return nil
}
