package users

import "time"

// User is an account that can log in with a password, Google, or both.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Nome         string    `json:"nome"`
	Role         string    `json:"role"`
	GoogleSub    string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
