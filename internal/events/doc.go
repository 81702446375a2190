// Package events carries ActionEvents from the services that mutate lists
// to the components that react to them.
//
// Services publish through EventEmitter without knowing who listens. The
// in-memory emitter fans events out to registered handlers in process; the
// Kafka emitter publishes them to a topic and KafkaConsumer feeds them back
// into an in-memory emitter on the consuming side.
package events
