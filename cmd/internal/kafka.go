package internal

import (
	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/sanLimbu/todo-list/internal"
	"github.com/sanLimbu/todo-list/internal/envvar"
)

// KafkaProducer holds the producer and the topic events are written to.
type KafkaProducer struct {
	Producer *kafka.Producer
	Topic    string
}

// KafkaConsumer holds the consumer subscribed to the events topic.
type KafkaConsumer struct {
	Consumer *kafka.Consumer
}

func kafkaConfig(conf *envvar.Configuration) (string, string, error) {
	host, err := conf.Get("KAFKA_HOST")
	if err != nil {
		return "", "", internal.WrapErrorf(err, internal.ErrorCodeUnknown, "conf.Get KAFKA_HOST")
	}

	return host, conf.Default("KAFKA_TOPIC", "todos"), nil
}

// NewKafkaProducer instantiates the Kafka producer using configuration defined in environment variables.
func NewKafkaProducer(conf *envvar.Configuration) (*KafkaProducer, error) {
	host, topic, err := kafkaConfig(conf)
	if err != nil {
		return nil, err
	}

	// Publishing is fire and forget, delivery reports would fill the events channel.
	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":   host,
		"go.delivery.reports": false,
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "kafka.NewProducer")
	}

	return &KafkaProducer{
		Producer: p,
		Topic:    topic,
	}, nil
}

// NewKafkaConsumer instantiates the Kafka consumer using configuration defined in environment variables.
func NewKafkaConsumer(conf *envvar.Configuration, groupID string) (*KafkaConsumer, error) {
	host, topic, err := kafkaConfig(conf)
	if err != nil {
		return nil, err
	}

	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  host,
		"group.id":           groupID,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": false,
	})
	if err != nil {
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "kafka.NewConsumer")
	}

	if err := c.Subscribe(topic, nil); err != nil {
		c.Close()
		return nil, internal.WrapErrorf(err, internal.ErrorCodeUnknown, "consumer.Subscribe")
	}

	return &KafkaConsumer{
		Consumer: c,
	}, nil
}
