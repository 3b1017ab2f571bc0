package dto

import "time"

// Envelope statuses used by the JSON API.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
)

// AddUserRequest is the JSON body for POST /users.
type AddUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// MessageResponse is the {status, message} envelope.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// UserResponse is one user in the listing.
type UserResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UsersData wraps the user list inside the data envelope.
type UsersData struct {
	Users []UserResponse `json:"users"`
}

// ListUsersResponse is the {status, data:{users}} envelope for GET /users.
type ListUsersResponse struct {
	Status string    `json:"status"`
	Data   UsersData `json:"data"`
}
