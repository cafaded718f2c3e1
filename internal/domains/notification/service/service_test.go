package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"resort/config"
	"resort/infras/kafka"
	kafkaMocks "resort/infras/kafka/mocks"
	"resort/infras/otel/mocks"
	smtpMocks "resort/infras/smtp/mocks"
	"resort/internal/domains/notification/model"
	"resort/internal/domains/notification/service"
	"testing"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func confirmation() model.BookingConfirmation {
	return model.BookingConfirmation{
		BookingID:  "b-1",
		Kind:       model.KindBooking,
		GuestName:  "Jane Doe",
		GuestEmail: "jane@example.com",
		CheckIn:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		Rooms:      []model.Room{{Number: "101", Type: "Deluxe"}},
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		name         string
		confirmation func() model.BookingConfirmation
		contains     []string
	}{
		{
			name:         "room booking lists rooms",
			confirmation: confirmation,
			contains:     []string{"Dear Jane Doe", "Room 101", "Deluxe", "#b-1", "Room Booking"},
		},
		{
			name: "package booking shows title",
			confirmation: func() model.BookingConfirmation {
				c := confirmation()
				c.Kind = model.KindPackage
				c.PackageTitle = "Honeymoon Escape"

				return c
			},
			contains: []string{"Package: Honeymoon Escape"},
		},
		{
			name: "no rooms",
			confirmation: func() model.BookingConfirmation {
				c := confirmation()
				c.Rooms = nil

				return c
			},
			contains: []string{"No rooms assigned"},
		},
		{
			name: "guest name is escaped",
			confirmation: func() model.BookingConfirmation {
				c := confirmation()
				c.GuestName = "<b>Jane</b>"

				return c
			},
			contains: []string{"&lt;b&gt;Jane&lt;/b&gt;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, err := service.Render(tt.confirmation())

			assert.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, html, s)
			}
		})
	}
}

func TestNotifier_NotifyBookingConfirmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBroker := kafkaMocks.NewMockClient(ctrl)
	mockMailer := smtpMocks.NewMockMailer(ctrl)

	tests := []struct {
		name         string
		kafka        bool
		confirmation func() model.BookingConfirmation
		setupMock    func()
		wantErr      bool
	}{
		{
			name:         "kafka enabled publishes event",
			kafka:        true,
			confirmation: confirmation,
			setupMock: func() {
				mockBroker.EXPECT().
					SendMessages(gomock.Any(), "booking.confirmation", kafka.Message{Key: "b-1", Value: confirmation()}).
					Return(nil)
			},
		},
		{
			name:         "kafka publish error",
			kafka:        true,
			confirmation: confirmation,
			setupMock: func() {
				mockBroker.EXPECT().SendMessages(gomock.Any(), "booking.confirmation", gomock.Any()).Return(errors.New("broker down"))
			},
			wantErr: true,
		},
		{
			name:         "kafka disabled mails directly",
			confirmation: confirmation,
			setupMock: func() {
				mockMailer.EXPECT().
					Send(gomock.Any(), "jane@example.com", "Booking Confirmation #b-1 - Elysian Retreat", gomock.Any()).
					Return(nil)
			},
		},
		{
			name:         "mailer error",
			confirmation: confirmation,
			setupMock: func() {
				mockMailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("smtp down"))
			},
			wantErr: true,
		},
		{
			name: "missing email is skipped",
			confirmation: func() model.BookingConfirmation {
				c := confirmation()
				c.GuestEmail = ""

				return c
			},
			setupMock: func() {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Kafka.Enable = tt.kafka
			cfg.Kafka.Topic.BookingConfirmation = "booking.confirmation"

			notifier := service.New(mockBroker, mockMailer, cfg, mocks.NewOtel())

			tt.setupMock()

			err := notifier.NotifyBookingConfirmed(context.Background(), tt.confirmation())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotifier_Consume(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockBroker := kafkaMocks.NewMockClient(ctrl)
	mockMailer := smtpMocks.NewMockMailer(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.ConsumerGroup = "resort-notification"
	cfg.Kafka.Topic.BookingConfirmation = "booking.confirmation"

	notifier := service.New(mockBroker, mockMailer, cfg, mocks.NewOtel())

	payload, err := json.Marshal(confirmation())
	assert.NoError(t, err)

	mockBroker.EXPECT().
		Consume(gomock.Any(), "resort-notification", "booking.confirmation", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string, handler kafka.Handler) error {
			assert.NoError(t, handler(ctx, kafkaGo.Message{Key: []byte("b-1"), Value: payload}))
			assert.Error(t, handler(ctx, kafkaGo.Message{Key: []byte("bad"), Value: []byte("{not json")}))

			return nil
		})

	mockMailer.EXPECT().
		Send(gomock.Any(), "jane@example.com", "Booking Confirmation #b-1 - Elysian Retreat", gomock.Any()).
		Return(nil).
		Times(1)

	notifier.Consume(context.Background())
}
