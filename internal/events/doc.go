// Package events defines domain events raised by the services and the
// emitters that deliver them. InMemoryEventEmitter fans events out to
// registered handlers; KafkaPublisher is a handler that forwards them to a
// Kafka topic.
package events
