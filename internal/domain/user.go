package domain

import "time"

// User is the domain entity for a user account.
// Rows created through the web signup carry names and a password hash;
// rows created through the member import API carry only username and email.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
}
