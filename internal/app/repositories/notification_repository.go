package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/logger"
)

// NotificationRepository handles database operations for notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// InsertMany stores one notification per recipient in a single batch insert.
func (r *NotificationRepository) InsertMany(ctx context.Context, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	builder := squirrel.Insert("notifications").
		Columns("recipient_id", "sender_id", "type", "message", "link", "related_id").
		PlaceholderFormat(squirrel.Dollar)

	for _, n := range notifications {
		builder = builder.Values(n.RecipientID, n.SenderID, n.Type, n.Message, n.Link, n.RelatedID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building insert notifications SQL")
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing insert notifications query")
		return err
	}
	return nil
}

// GetByRecipient retrieves the newest notifications for a recipient, capped
// at limit, with sender summaries joined in.
func (r *NotificationRepository) GetByRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error) {
	sql, args, err := squirrel.Select(
		"n.id", "n.recipient_id", "n.sender_id", "n.type", "n.message", "n.read",
		"n.link", "n.related_id", "n.created_at", "n.updated_at",
		"c.name", "c.logo",
	).From("notifications n").
		LeftJoin("colleges c ON n.sender_id = c.id").
		Where(squirrel.Eq{"n.recipient_id": recipientID}).
		OrderBy("n.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		var senderName, senderLogo *string
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.Message, &n.Read,
			&n.Link, &n.RelatedID, &n.CreatedAt, &n.UpdatedAt,
			&senderName, &senderLogo,
		)
		if err != nil {
			return nil, err
		}
		if n.SenderID != nil && senderName != nil {
			summary := &models.CollegeSummary{ID: *n.SenderID, Name: *senderName}
			if senderLogo != nil {
				summary.Logo = *senderLogo
			}
			n.Sender = summary
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// CountUnread returns the number of unread notifications for a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID, "read": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// MarkRead marks a single notification as read. A notification owned by
// another college yields a forbidden error, a missing one yields not found.
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	selectSQL, selectArgs, err := squirrel.Select("recipient_id").
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	var ownerID int64
	if err := r.db.QueryRow(ctx, selectSQL, selectArgs...).Scan(&ownerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotificationNotFound
		}
		logger.Error().Err(err).Msg("Error looking up notification recipient")
		return err
	}
	if ownerID != recipientID {
		return apperrors.NewForbiddenError("Only the recipient can mark this notification as read")
	}

	sql, args, err := squirrel.Update("notifications").
		Set("read", true).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing mark notification read query")
		return err
	}
	return nil
}

// MarkAllRead marks every notification of a recipient as read. Calling it
// with nothing unread is a no-op.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) error {
	sql, args, err := squirrel.Update("notifications").
		Set("read", true).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"recipient_id": recipientID, "read": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing mark all notifications read query")
		return err
	}
	return nil
}
