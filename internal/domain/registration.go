package domain

import "time"

// PendingRegistration is a provisional signup awaiting OTP confirmation.
// Keyed by email: at most one live record per email, enforced by upsert.
// ExpiresAt is a Unix timestamp used as DynamoDB TTL; the store sweeps the
// record at or after that time, and verification re-checks expiry itself.
type PendingRegistration struct {
	Email        string    `json:"email" dynamodbav:"email"`
	OTPHash      string    `json:"-" dynamodbav:"otp_hash"`
	Name         string    `json:"name" dynamodbav:"name"`
	Phone        string    `json:"phone" dynamodbav:"phone"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	ExpiresAt    int64     `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
	Attempts     int       `json:"attempts" dynamodbav:"attempts"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}
