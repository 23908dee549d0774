package dto

import (
	"time"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
)

// NotificationResponse represents a single notification
type NotificationResponse struct {
	ID        int64                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Message   string                 `json:"message"`
	Read      bool                   `json:"read"`
	Link      *string                `json:"link,omitempty"`
	RelatedID *int64                 `json:"relatedId,omitempty"`
	Sender    *models.CollegeSummary `json:"sender,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// ToNotificationResponse maps a notification entity to its API representation
func ToNotificationResponse(n *models.Notification) *NotificationResponse {
	if n == nil {
		return nil
	}
	return &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		Read:      n.Read,
		Link:      n.Link,
		RelatedID: n.RelatedID,
		Sender:    n.Sender,
		CreatedAt: n.CreatedAt,
	}
}
