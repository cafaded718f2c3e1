// Package service delivers booking confirmation emails, either directly or through
// the confirmation topic consumed by the worker.
package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"resort/config"
	"resort/infras/kafka"
	"resort/infras/otel"
	"resort/infras/smtp"
	"resort/internal/domains/notification/model"
	"resort/shared/constant"
	"resort/shared/timezone"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	displayDateFormat = "Monday, January 2, 2006"
)

//go:embed templates/*.html
var templates embed.FS

var confirmationTemplate = template.Must(template.ParseFS(templates, "templates/booking_confirmation.html"))

type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, confirmation model.BookingConfirmation) error
	Deliver(ctx context.Context, confirmation model.BookingConfirmation) error
	Consume(ctx context.Context)
}

type notifierImpl struct {
	broker kafka.Client
	mailer smtp.Mailer
	cfg    *config.Config
	otel   otel.Otel
}

func New(broker kafka.Client, mailer smtp.Mailer, cfg *config.Config, otel otel.Otel) Notifier {
	return &notifierImpl{
		broker: broker,
		mailer: mailer,
		cfg:    cfg,
		otel:   otel,
	}
}

func (s *notifierImpl) NotifyBookingConfirmed(ctx context.Context, confirmation model.BookingConfirmation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.NotifyBookingConfirmed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if confirmation.GuestEmail == constant.Empty {
		log.Warn().Str("booking_id", confirmation.BookingID).Msg("booking has no guest email, skipping confirmation")

		return nil
	}

	if !s.cfg.Kafka.Enable {
		return s.Deliver(ctx, confirmation)
	}

	message := kafka.Message{
		Key:   confirmation.BookingID,
		Value: confirmation,
	}

	if err = s.broker.SendMessages(ctx, s.cfg.Kafka.Topic.BookingConfirmation, message); err != nil {
		log.Error().Err(err).Str("booking_id", confirmation.BookingID).Msg("failed to publish booking confirmation")

		return fmt.Errorf("failed to publish booking confirmation: %w", err)
	}

	return nil
}

func (s *notifierImpl) Deliver(ctx context.Context, confirmation model.BookingConfirmation) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Deliver")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	html, err := Render(confirmation)
	if err != nil {
		log.Error().Err(err).Str("booking_id", confirmation.BookingID).Msg("failed to render booking confirmation")

		return err
	}

	if err = s.mailer.Send(ctx, confirmation.GuestEmail, confirmation.Subject(), html); err != nil {
		log.Error().Err(err).Str("booking_id", confirmation.BookingID).Msg("failed to send booking confirmation")

		return fmt.Errorf("failed to send booking confirmation: %w", err)
	}

	return nil
}

// Consume blocks until ctx is done, mailing every confirmation read from the topic.
func (s *notifierImpl) Consume(ctx context.Context) {
	topic := s.cfg.Kafka.Topic.BookingConfirmation

	log.Info().Str("topic", topic).Str("group", s.cfg.Kafka.ConsumerGroup).Msg("starting booking confirmation consumer")

	err := s.broker.Consume(ctx, s.cfg.Kafka.ConsumerGroup, topic, func(ctx context.Context, message kafkaGo.Message) error {
		confirmation, err := kafka.DecodeValue[model.BookingConfirmation](message)
		if err != nil {
			return err
		}

		return s.Deliver(context.WithoutCancel(ctx), confirmation)
	})
	if err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("booking confirmation consumer stopped")
	}
}

type confirmationView struct {
	ResortName string
	BookingID  string
	GuestName  string
	Title      string
	CheckIn    string
	CheckOut   string
	Rooms      []model.Room
	Year       int
}

func Render(confirmation model.BookingConfirmation) (string, error) {
	view := confirmationView{
		ResortName: model.ResortName,
		BookingID:  confirmation.BookingID,
		GuestName:  confirmation.GuestName,
		Title:      confirmation.Title(),
		CheckIn:    timezone.Format(confirmation.CheckIn, displayDateFormat),
		CheckOut:   timezone.Format(confirmation.CheckOut, displayDateFormat),
		Rooms:      confirmation.Rooms,
		Year:       timezone.Now().Year(),
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, view); err != nil {
		return constant.Empty, fmt.Errorf("failed to render confirmation template: %w", err)
	}

	return buf.String(), nil
}
