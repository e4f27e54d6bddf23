// Package api contains shared JSON request/response structs.
// This package is shared between the CLI and the server.
package api

// Token is the response body for a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
	IsGlobal bool   `json:"is_global"`
}

// CreateAccountRequest is the request body for creating a new account.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	IsGlobal bool   `json:"is_global,omitempty"`
}

// UpdateAccountRequest is the request body for a partial account update.
// Only fields present in the JSON body are applied.
type UpdateAccountRequest struct {
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	IsGlobal *bool   `json:"is_global,omitempty"`
}

// UserResponse represents a user in API responses.
// The password hash is never exposed.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	AccountID string `json:"account_id"`
}

// CreateUserRequest is the request body for creating a new user.
// AccountID is an admin-only override; when omitted the new user is
// created in the caller's account.
type CreateUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	AccountID string `json:"account_id,omitempty"`
}

// UpdateUserRequest is the request body for a partial user update.
type UpdateUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
	Password *string `json:"password,omitempty"`
}

// JobResponse represents a job in API responses.
type JobResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Command string `json:"command"`
	Status  string `json:"status"`
	OwnerID string `json:"owner_id"`
}

// CreateJobRequest is the request body for creating a new job.
// Status is optional; jobs are created stopped unless the caller
// explicitly requests an immediate running state.
type CreateJobRequest struct {
	Name    string `json:"name"`
	Command string `json:"command"`
	Status  string `json:"status,omitempty"`
}

// MessageResponse is a generic informational response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
