package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"sanaaBack/internal/models"
	"sanaaBack/internal/realtime"
	"sanaaBack/internal/repositories"
)

const maxChatMessageLength = 4000

var ErrEmptyMessage = errors.New("chat: empty message")

type ChatService struct {
	ChatRepo *repositories.ChatMessageRepository
	Broker   realtime.Broker
}

func (s *ChatService) participants(ctx context.Context, userID string, threadType models.ThreadType, threadID string) (string, string, error) {
	if threadType != models.ThreadBooking && threadType != models.ThreadQuote {
		return "", "", models.ErrInvalidInput
	}
	buyerID, sellerID, err := s.ChatRepo.ThreadParticipants(ctx, threadType, threadID)
	if err != nil {
		return "", "", err
	}
	if userID != buyerID && userID != sellerID {
		return "", "", models.ErrForbidden
	}
	return buyerID, sellerID, nil
}

func (s *ChatService) List(ctx context.Context, userID string, threadType models.ThreadType, threadID string, limit int) ([]models.ChatMessage, error) {
	if _, _, err := s.participants(ctx, userID, threadType, threadID); err != nil {
		return nil, err
	}
	return s.ChatRepo.ListByThread(ctx, threadType, threadID, limit)
}

func (s *ChatService) Send(ctx context.Context, userID string, threadType models.ThreadType, threadID, body string) (models.ChatMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}
	if len(body) > maxChatMessageLength {
		return models.ChatMessage{}, models.ErrInvalidInput
	}
	buyerID, sellerID, err := s.participants(ctx, userID, threadType, threadID)
	if err != nil {
		return models.ChatMessage{}, err
	}
	m := models.ChatMessage{
		ID:         uuid.NewString(),
		ThreadType: threadType,
		ThreadID:   threadID,
		SenderID:   userID,
		Body:       body,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.ChatRepo.Create(ctx, m); err != nil {
		return models.ChatMessage{}, err
	}
	publish(ctx, s.Broker, "chat_messages", m.ID, realtime.OpInsert, map[string]string{
		"thread_id": threadID,
		"buyer_id":  buyerID,
		"seller_id": sellerID,
	})
	return m, nil
}
