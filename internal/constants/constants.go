package constants

import "time"

// Context keys
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyRequestID = "request_id"
	ContextKeyTaskID    = "task_id"
)

// Authentication
const (
	TokenType               = "bearer"
	DefaultAccessTokenTTL   = 30 * time.Minute
	MaxPasswordBytes        = 72 // bcrypt input limit
	AuthenticateHeaderValue = "Bearer"
	RequestIDHeader         = "X-Request-Id"
)

// Task defaults
const (
	DefaultTaskCategory = "Inbox"
)

// Pagination
const (
	DefaultPageSize = 100
	MaxPageSize     = 100
	MinPageSize     = 1
)
