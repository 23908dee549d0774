package models

import (
	"time"
)

// EventType classifies an event posting.
type EventType string

// Supported event types.
const (
	EventTypeWorkshop     EventType = "Workshop"
	EventTypeSeminar      EventType = "Seminar"
	EventTypeCulturalFest EventType = "Cultural Fest"
	EventTypeSportsEvent  EventType = "Sports Event"
	EventTypeWebinar      EventType = "Webinar"
	EventTypeConference   EventType = "Conference"
	EventTypeOther        EventType = "Other"
)

// Valid reports whether the event type is one of the supported values.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeWorkshop, EventTypeSeminar, EventTypeCulturalFest,
		EventTypeSportsEvent, EventTypeWebinar, EventTypeConference,
		EventTypeOther:
		return true
	}
	return false
}

// Event represents an event posting announced by a college.
type Event struct {
	ID                  int64     `json:"id" db:"id"`
	Title               string    `json:"title" db:"title"`
	Description         string    `json:"description" db:"description"`
	EventType           EventType `json:"eventType" db:"event_type"`
	Location            string    `json:"location" db:"location"`
	DateTime            time.Time `json:"dateTime" db:"date_time"`
	OrganizingCollegeID int64     `json:"-" db:"organizing_college_id"`
	ContactEmail        *string   `json:"contactEmail,omitempty" db:"contact_email"`
	ContactPhone        *string   `json:"contactPhone,omitempty" db:"contact_phone"`
	RegistrationLink    *string   `json:"registrationLink,omitempty" db:"registration_link"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt           time.Time `json:"updatedAt" db:"updated_at"`

	// OrganizingCollege is the expanded reference, populated on reads.
	OrganizingCollege *CollegeSummary `json:"organizingCollege,omitempty"`
}
