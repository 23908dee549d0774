package dto

import (
	"time"
)

// CreateEventRequest represents a new event posting
type CreateEventRequest struct {
	Title            string    `json:"title" binding:"required,max=255"`
	Description      string    `json:"description" binding:"required"`
	EventType        string    `json:"eventType" binding:"required"`
	Location         string    `json:"location" binding:"required"`
	DateTime         time.Time `json:"dateTime" binding:"required"`
	ContactEmail     *string   `json:"contactEmail,omitempty" binding:"omitempty,email"`
	ContactPhone     *string   `json:"contactPhone,omitempty"`
	RegistrationLink *string   `json:"registrationLink,omitempty"`
}

// UpdateEventRequest represents a partial event update. Pointer fields
// distinguish absent from present-but-empty.
type UpdateEventRequest struct {
	Title            *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Description      *string    `json:"description,omitempty"`
	EventType        *string    `json:"eventType,omitempty"`
	Location         *string    `json:"location,omitempty"`
	DateTime         *time.Time `json:"dateTime,omitempty"`
	ContactEmail     *string    `json:"contactEmail,omitempty"`
	ContactPhone     *string    `json:"contactPhone,omitempty"`
	RegistrationLink *string    `json:"registrationLink,omitempty"`
}
