package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

type Profile struct {
	ID                string    `json:"id"`
	Email             string    `json:"email"`
	Password          string    `json:"password,omitempty"`
	PasswordHash      string    `json:"-"`
	FullName          string    `json:"full_name"`
	Role              Role      `json:"role"`
	Phone             string    `json:"phone,omitempty"`
	City              string    `json:"city,omitempty"`
	Bio               string    `json:"bio,omitempty"`
	CompanyName       string    `json:"company_name,omitempty"`
	PreferredLanguage string    `json:"preferred_language"`
	Portfolio         []string  `json:"portfolio"`
	EmailVerified     bool      `json:"email_verified"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ProfileUpdate carries the editable profile fields; nil leaves a field unchanged.
type ProfileUpdate struct {
	FullName          *string `json:"full_name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	City              *string `json:"city,omitempty"`
	Bio               *string `json:"bio,omitempty"`
	CompanyName       *string `json:"company_name,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
}

type Claims struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type Session struct {
	UserID       string
	Role         Role
	RefreshToken string
	ExpiresAt    time.Time
}
