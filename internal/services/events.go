package services

// EventPublisher publishes catalog change events to the message broker.
// Implemented by *rabbitmq.Client; a nil publisher disables publishing.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}
