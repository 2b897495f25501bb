package models

import "time"

type ThreadType string

const (
	ThreadBooking ThreadType = "booking"
	ThreadQuote   ThreadType = "quote"
)

type ChatMessage struct {
	ID         string     `json:"id"`
	ThreadType ThreadType `json:"thread_type"`
	ThreadID   string     `json:"thread_id"`
	SenderID   string     `json:"sender_id"`
	Body       string     `json:"body"`
	CreatedAt  time.Time  `json:"created_at"`
}

type NotifyToken struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
