package domain

import "time"

// User is an account that can hold a session. PasswordHash is a
// bcrypt hash and never leaves the service layer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
