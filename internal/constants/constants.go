package constants

import "time"

// Session / context keys
const (
	SessionCookieName = "pomoweb_session"
	ContextKeyUserID  = "user_id"
)

// Validation limits
const (
	MinPasswordLength = 6
	MaxDescriptionLen = 255
)

// DefaultEstimatedUnits is the fallback when a task's estimate is absent or unparseable.
const DefaultEstimatedUnits = 1

// ResetTokenValidity is how long a password-reset token stays verifiable.
const ResetTokenValidity = 3600 * time.Second

// Landing pages after login, by role
const (
	AdminLandingPath = "/admin"
	UserLandingPath  = "/home"
	LoginPath        = "/login"
)
