package models

import "time"

// User is the domain-facing shape of an account. Users live in the identity
// store, which has its own schema and is not managed by GORM; the repository
// adapter translates between the store's native record and this shape on
// every read and write.
type User struct {
	ID           string
	Username     string
	Email        string
	Phone        string
	DisplayName  string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
