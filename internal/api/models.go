package api

import (
	"bytes"
	"encoding/json"
	"time"
)

// Common request/response structures

// SignupRequest defines the payload for the user signup endpoint.
type SignupRequest struct {
	Name     string `json:"name"     validate:"required,min=1"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// SignupResponse defines the successful response for the signup endpoint.
// It is a summary of the created user; the password hash is never included.
type SignupResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateTaskRequest represents the request body for creating a new task.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required,min=1"`
	Description string     `json:"description" validate:"omitempty"`
	Status      string     `json:"status"      validate:"omitempty,oneof=pending completed"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateTaskRequest represents the request body for partially updating a
// task. Nil fields were absent from the payload and are left unchanged.
// DueDate is tri-state so an explicit null clears the date.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"       validate:"omitempty"`
	Description *string      `json:"description" validate:"omitempty"`
	Status      *string      `json:"status"      validate:"omitempty,oneof=pending completed"`
	DueDate     NullableTime `json:"due_date"`
}

// NullableTime distinguishes an absent JSON field from an explicit null.
// Set is true whenever the field appeared in the payload; Time is nil for
// an explicit null.
type NullableTime struct {
	Set  bool
	Time *time.Time
}

// UnmarshalJSON implements json.Unmarshaler. It is only invoked when the
// field is present in the payload, which is what flips Set.
func (n *NullableTime) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(data, []byte("null")) {
		n.Time = nil
		return nil
	}

	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	n.Time = &t
	return nil
}

// MarshalJSON implements json.Marshaler for symmetry in tests.
func (n NullableTime) MarshalJSON() ([]byte, error) {
	if n.Time == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Time)
}

// TaskResponse represents the response data for a task.
type TaskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	UserID      string     `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DeleteTaskResponse confirms a successful deletion.
type DeleteTaskResponse struct {
	Message string `json:"message"`
}
