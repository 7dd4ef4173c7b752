package auth

import "time"

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	LastLogin    *time.Time
	CreatedAt    time.Time
}
