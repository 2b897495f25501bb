package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"firebase.google.com/go/messaging"

	"sanaaBack/internal/models"
	"sanaaBack/internal/repositories"
)

// NotificationService delivers push notifications through FCM to every
// device a user registered.
type NotificationService struct {
	Client    *messaging.Client
	TokenRepo *repositories.NotifyTokenRepository
	Logger    *slog.Logger
}

func (s *NotificationService) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *NotificationService) RegisterToken(ctx context.Context, userID, token, platform string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.ErrInvalidInput
	}
	return s.TokenRepo.Save(ctx, models.NotifyToken{
		UserID:    userID,
		Token:     token,
		Platform:  strings.ToLower(strings.TrimSpace(platform)),
		CreatedAt: time.Now().UTC(),
	})
}

// Notify sends one message per registered device. Tokens FCM reports as
// unregistered are dropped.
func (s *NotificationService) Notify(ctx context.Context, userID, title, body string, data map[string]string) error {
	if s.Client == nil {
		return nil
	}
	tokens, err := s.TokenRepo.TokensByUser(ctx, userID)
	if err != nil {
		return err
	}
	var errs []error
	for _, token := range tokens {
		id, err := s.Client.Send(ctx, message(token, title, body, data))
		if err != nil {
			if messaging.IsRegistrationTokenNotRegistered(err) {
				s.logger().Info("fcm token unregistered", "user_id", userID)
				if err := s.TokenRepo.Delete(ctx, token); err != nil {
					errs = append(errs, err)
				}
				continue
			}
			s.logger().Error("fcm send failed", "user_id", userID, "err", err)
			errs = append(errs, err)
			continue
		}
		s.logger().Info("fcm sent", "user_id", userID, "message_id", id)
	}
	return errors.Join(errs...)
}

func message(token, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
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
}
