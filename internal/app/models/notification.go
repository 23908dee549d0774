package models

import (
	"time"
)

// NotificationType identifies what kind of activity produced a notification.
type NotificationType string

// Notification types emitted by the fan-out pipeline.
const (
	NotificationTypeEvent        NotificationType = "new-event"
	NotificationTypeForumPost    NotificationType = "forum-post"
	NotificationTypeForumMention NotificationType = "forum-mention"
	NotificationTypeResource     NotificationType = "new-resource"
)

// Notification is a per-recipient record of platform activity.
type Notification struct {
	ID          int64            `json:"id" db:"id"`
	RecipientID int64            `json:"-" db:"recipient_id"`
	SenderID    *int64           `json:"-" db:"sender_id"`
	Type        NotificationType `json:"type" db:"type"`
	Message     string           `json:"message" db:"message"`
	Read        bool             `json:"read" db:"read"`
	Link        *string          `json:"link,omitempty" db:"link"`
	RelatedID   *int64           `json:"relatedId,omitempty" db:"related_id"`
	CreatedAt   time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time        `json:"updatedAt" db:"updated_at"`

	Sender *CollegeSummary `json:"sender,omitempty"`
}
