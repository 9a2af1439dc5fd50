package tracking

import (
	"time"

	"github.com/matst80/car-finder/pkg/messaging"
	amqp "github.com/rabbitmq/amqp091-go"
)

const trackingPrefix = "global"

// RabbitTracking publishes storefront events on the tracking topic.
type RabbitTracking struct {
	*EventTracker
	connection *amqp.Connection
}

func NewRabbitTracking(url, country string) (*RabbitTracking, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer ch.Close()
	if err := messaging.DefineTopic(ch, trackingPrefix, messaging.TrackingTopic); err != nil {
		conn.Close()
		return nil, err
	}
	ret := &RabbitTracking{connection: conn}
	ret.EventTracker = NewEventTracker(country, ret.send, 50, time.Second)
	return ret, nil
}

func (t *RabbitTracking) send(data any) error {
	return messaging.SendChange(t.connection, trackingPrefix, messaging.TrackingTopic, data)
}

func (t *RabbitTracking) Close() error {
	t.EventTracker.Close()
	return t.connection.Close()
}
