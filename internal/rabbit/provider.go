package rabbit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lomoval/famboard/internal/model"
	log "github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

var ErrUnknownKind = fmt.Errorf("unknown notification kind")

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Queue    string
}

type Provider struct {
	conn       *amqp.Connection
	queue      amqp.Queue
	channel    *amqp.Channel
	connString string
	queueName  string
}

func New(config Config) *Provider {
	return &Provider{
		connString: fmt.Sprintf(
			"amqp://%s:%s@%s:%d/",
			config.User,
			config.Password,
			config.Host,
			config.Port,
		),
		queueName: config.Queue,
	}
}

func (r *Provider) Connect() error {
	var err error
	r.conn, err = amqp.Dial(r.connString)
	if err != nil {
		return err
	}

	r.channel, err = r.conn.Channel()
	if err != nil {
		return err
	}
	r.queue, err = r.channel.QueueDeclare(
		r.queueName,
		false,
		true,
		false,
		false,
		nil,
	)
	return err
}

func (r *Provider) Close() {
	r.conn.Close()
}

func (r *Provider) Publish(n model.Notification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	return r.channel.Publish(
		"",           // exchange
		r.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		})
}

// DecodeNotification parses a delivery body and rejects unknown kinds, so
// a consumer never acts on a notification it does not understand.
func DecodeNotification(body []byte) (model.Notification, error) {
	var n model.Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return model.Notification{}, fmt.Errorf("failed to parse notification: %w", err)
	}
	if !n.Kind.Valid() {
		return model.Notification{}, fmt.Errorf("%w: %q", ErrUnknownKind, n.Kind)
	}
	return n, nil
}

type NotificationProcess = func(n model.Notification)

// Consume delivers decoded notifications to process until ctx is done.
// Undecodable messages are dropped; they never stop the consumer.
func (r Provider) Consume(ctx context.Context, process NotificationProcess) error {
	msgs, err := r.channel.Consume(
		r.queue.Name, // queue
		"",           // consumer
		true,         // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-msgs:
			if !ok {
				return nil
			}
			n, err := DecodeNotification(m.Body)
			if err != nil {
				log.Errorf("dropping notification: %v", err)
				continue
			}
			process(n)
		}
	}
}
