package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/repositories"
	"github.com/collegeconnect/collegeconnect/internal/pkg/metrics"
)

// NotificationListLimit caps how many notifications a single list request
// returns.
const NotificationListLimit = 20

// NotificationService handles notification listing and the fan-out pipeline
// that runs after every create operation.
type NotificationService struct {
	notificationRepo repositories.INotificationRepository
	collegeRepo      repositories.ICollegeRepository
	logger           zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo repositories.INotificationRepository,
	collegeRepo repositories.ICollegeRepository,
	logger zerolog.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		collegeRepo:      collegeRepo,
		logger:           logger,
	}
}

// GetForCollege returns the newest notifications of a college, capped at
// NotificationListLimit.
func (s *NotificationService) GetForCollege(ctx context.Context, collegeID int64) ([]*models.Notification, error) {
	return s.notificationRepo.GetByRecipient(ctx, collegeID, NotificationListLimit)
}

// CountUnread returns the number of unread notifications of a college.
func (s *NotificationService) CountUnread(ctx context.Context, collegeID int64) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, collegeID)
}

// MarkRead marks a single notification of the college as read.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, collegeID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, collegeID)
}

// MarkAllRead marks every notification of the college as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, collegeID int64) error {
	return s.notificationRepo.MarkAllRead(ctx, collegeID)
}

// NotifyEventCreated fans an event announcement out to every other college.
// Fan-out is best effort: the event already exists, so a failure here is
// logged and counted but never propagated to the caller's response.
func (s *NotificationService) NotifyEventCreated(ctx context.Context, event *models.Event, sender *models.College) {
	message := fmt.Sprintf("New Event: %q by %s on %s.",
		event.Title, sender.Name, event.DateTime.Format("Jan 2, 2006"))
	link := fmt.Sprintf("/events/%d", event.ID)

	s.fanOutToAll(ctx, sender, models.NotificationTypeEvent, message, link, event.ID)
}

// NotifyForumPostCreated fans a forum post out to every other college, then
// sends a dedicated mention notification to each mentioned college. A college
// that is both in the broadcast set and mentioned receives both records.
func (s *NotificationService) NotifyForumPostCreated(ctx context.Context, post *models.ForumPost, sender *models.College) {
	message := fmt.Sprintf("New Forum Post: %q by %s.", post.Title, sender.Name)
	link := fmt.Sprintf("/forum/%d", post.ID)

	s.fanOutToAll(ctx, sender, models.NotificationTypeForumPost, message, link, post.ID)

	if len(post.MentionedCollegeIDs) == 0 {
		return
	}

	mentionMessage := fmt.Sprintf("%s mentioned your college in a post: %q.", sender.Name, post.Title)
	notifications := make([]*models.Notification, 0, len(post.MentionedCollegeIDs))
	for _, recipientID := range post.MentionedCollegeIDs {
		notifications = append(notifications, &models.Notification{
			RecipientID: recipientID,
			SenderID:    &sender.ID,
			Type:        models.NotificationTypeForumMention,
			Message:     mentionMessage,
			Link:        &link,
			RelatedID:   &post.ID,
		})
	}
	s.insertBatch(ctx, models.NotificationTypeForumMention, notifications)
}

// NotifyResourceCreated fans a resource announcement out to every other
// college.
func (s *NotificationService) NotifyResourceCreated(ctx context.Context, resource *models.Resource, sender *models.College) {
	message := fmt.Sprintf("New Resource: %q shared by %s.", resource.Title, sender.Name)
	link := fmt.Sprintf("/resources/%d", resource.ID)

	s.fanOutToAll(ctx, sender, models.NotificationTypeResource, message, link, resource.ID)
}

// fanOutToAll writes one notification per college other than the sender.
func (s *NotificationService) fanOutToAll(ctx context.Context, sender *models.College, notifType models.NotificationType, message, link string, relatedID int64) {
	recipientIDs, err := s.collegeRepo.GetAllOtherIDs(ctx, sender.ID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("type", string(notifType)).
			Int64("senderId", sender.ID).
			Msg("Failed to resolve notification recipients")
		metrics.NotificationFanOutFailures.WithLabelValues(string(notifType)).Inc()
		return
	}
	if len(recipientIDs) == 0 {
		return
	}

	notifications := make([]*models.Notification, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		notifications = append(notifications, &models.Notification{
			RecipientID: recipientID,
			SenderID:    &sender.ID,
			Type:        notifType,
			Message:     message,
			Link:        &link,
			RelatedID:   &relatedID,
		})
	}
	s.insertBatch(ctx, notifType, notifications)
}

func (s *NotificationService) insertBatch(ctx context.Context, notifType models.NotificationType, notifications []*models.Notification) {
	if len(notifications) == 0 {
		return
	}
	if err := s.notificationRepo.InsertMany(ctx, notifications); err != nil {
		s.logger.Error().Err(err).
			Str("type", string(notifType)).
			Int("count", len(notifications)).
			Msg("Failed to persist notification fan-out batch")
		metrics.NotificationFanOutFailures.WithLabelValues(string(notifType)).Inc()
		return
	}
	metrics.NotificationsFanOutTotal.WithLabelValues(string(notifType)).Add(float64(len(notifications)))
}
