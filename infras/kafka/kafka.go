package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"resort/config"
	"resort/infras/otel"
	"resort/shared/constant"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const dialTimeout = 10 * time.Second

var ErrEmptyTopic = errors.New("kafka topic is empty")

// Message is an outgoing record. Value is sent as JSON.
type Message struct {
	Key   string
	Value any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("encode kafka message %q: %w", m.Key, err)
	}

	return kafkaGo.Message{Key: []byte(m.Key), Value: value}, nil
}

// DecodeValue unmarshals the JSON payload of msg into T.
func DecodeValue[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("decode kafka message %q: %w", msg.Key, err)
	}

	return value, nil
}

// Handler processes one record. The offset is committed once it returns,
// whatever the result, so a failing record is logged and skipped.
type Handler func(ctx context.Context, message kafkaGo.Message) error

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error
}

type kafkaClientImpl struct {
	config    *config.Config
	otel      otel.Otel
	dialer    *kafkaGo.Dialer
	transport *kafkaGo.Transport
}

func New(config *config.Config, otel otel.Otel) Client {
	dialer := &kafkaGo.Dialer{Timeout: dialTimeout, DualStack: true}
	transport := &kafkaGo.Transport{DialTimeout: dialTimeout}

	if sasl := config.Kafka.SASL; sasl.Username != "" {
		mechanism := plain.Mechanism{Username: sasl.Username, Password: sasl.Password}
		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	log.Info().Bool("enabled", config.Kafka.Enable).Strs("brokers", config.Kafka.Brokers).Msg("kafka client ready")

	return &kafkaClientImpl{
		config:    config,
		otel:      otel,
		dialer:    dialer,
		transport: transport,
	}
}

func (k *kafkaClientImpl) writer(topic string) *kafkaGo.Writer {
	return &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(k.config.Kafka.Brokers...),
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".SendMessages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if topic == "" {
		return ErrEmptyTopic
	}

	scope.SetAttribute("kafka.topic", topic)
	scope.SetAttribute("kafka.messages", len(messages))

	records := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		record, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		records = append(records, record)
	}

	writer := k.writer(topic)

	defer func() {
		if closeErr := writer.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("topic", topic).Msg("failed to close kafka writer")
		}
	}()

	if err = writer.WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("messages", len(records)).Msg("kafka messages sent")

	return nil
}

// Consume reads topic as consumerGroup until ctx is done. Records are handled
// one at a time, in partition order.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler Handler) error {
	if topic == "" {
		return ErrEmptyTopic
	}

	if consumerGroup == "" {
		consumerGroup = k.config.Kafka.ConsumerGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.config.Kafka.Brokers,
		Topic:       topic,
		GroupID:     consumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.FirstOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to close kafka reader")
		}
	}()

	for {
		msg, err := reader.FetchMessage(ctx)

		switch {
		case ctx.Err() != nil:
			return nil
		case err != nil:
			log.Error().Err(err).Str("topic", topic).Msg("failed to fetch kafka message")

			continue
		}

		k.handle(ctx, msg, handler)

		if err := reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Str("topic", topic).Int64("offset", msg.Offset).Msg("failed to commit kafka offset")
		}
	}
}

func (k *kafkaClientImpl) handle(ctx context.Context, msg kafkaGo.Message, handler Handler) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Consume")
	defer scope.End()

	scope.SetAttribute("kafka.topic", msg.Topic)
	scope.SetAttribute("kafka.partition", msg.Partition)
	scope.SetAttribute("kafka.offset", msg.Offset)

	if err := handler(ctx, msg); err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("topic", msg.Topic).Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("kafka message not handled")
	}
}
