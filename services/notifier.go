package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sirupsen/logrus"
)

// EventPublisher fans dashboard events out to connected admins
type EventPublisher interface {
	Publish(eventType, message string, data interface{})
}

// PushSender delivers a push notification to an FCM topic
type PushSender interface {
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}

// UserTopic is the FCM topic a storefront user's devices subscribe to
func UserTopic(userID string) string {
	return "user_" + userID
}

// FirebasePushSender sends topic messages through Firebase Cloud Messaging
type FirebasePushSender struct {
	client *messaging.Client
}

// NewFirebasePushSender returns nil when app is nil
func NewFirebasePushSender(ctx context.Context, app *firebase.App) (*FirebasePushSender, error) {
	if app == nil {
		return nil, nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize messaging client: %w", err)
	}
	return &FirebasePushSender{client: client}, nil
}

func (s *FirebasePushSender) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound:     "default",
				ChannelID: "barrim_fcm_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	response, err := s.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	logrus.WithField("topic", topic).Printf("Notification sent successfully: %s", response)
	return nil
}

// publish is a no-op without a publisher
func publish(events EventPublisher, eventType, message string, data interface{}) {
	if events != nil {
		events.Publish(eventType, message, data)
	}
}
