package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
)

// ICollegeRepository defines data access for college accounts.
type ICollegeRepository interface {
	Create(ctx context.Context, college *models.College) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.College, error)
	GetByEmail(ctx context.Context, email string) (*models.College, error)
	GetSummariesByIDs(ctx context.Context, ids []int64) (map[int64]*models.CollegeSummary, error)
	Update(ctx context.Context, college *models.College) error
	GetAll(ctx context.Context) ([]*models.College, error)
	GetAllOtherIDs(ctx context.Context, excludeID int64) ([]int64, error)
	SetResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*models.College, error)
	ClearResetToken(ctx context.Context, id int64) error
	GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.College, error)
	ResetPassword(ctx context.Context, id int64, passwordHash string) error
}

// IEventRepository defines data access for event postings.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	GetAll(ctx context.Context) ([]*models.Event, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, id int64) error
}

// IForumPostRepository defines data access for forum posts.
type IForumPostRepository interface {
	Create(ctx context.Context, post *models.ForumPost) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.ForumPost, error)
	GetAll(ctx context.Context) ([]*models.ForumPost, error)
	Update(ctx context.Context, post *models.ForumPost) error
	Delete(ctx context.Context, id int64) error
}

// IResourceRepository defines data access for shared resources.
type IResourceRepository interface {
	Create(ctx context.Context, resource *models.Resource) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Resource, error)
	GetAll(ctx context.Context) ([]*models.Resource, error)
	Update(ctx context.Context, resource *models.Resource) error
	Delete(ctx context.Context, id int64) error
}

// INotificationRepository defines data access for notifications.
type INotificationRepository interface {
	InsertMany(ctx context.Context, notifications []*models.Notification) error
	GetByRecipient(ctx context.Context, recipientID int64, limit int) ([]*models.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int64, error)
	MarkRead(ctx context.Context, id, recipientID int64) error
	MarkAllRead(ctx context.Context, recipientID int64) error
}

// Repositories holds all the repository instances
type Repositories struct {
	CollegeRepository      *CollegeRepository
	EventRepository        *EventRepository
	ForumPostRepository    *ForumPostRepository
	ResourceRepository     *ResourceRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CollegeRepository:      NewCollegeRepository(db),
		EventRepository:        NewEventRepository(db),
		ForumPostRepository:    NewForumPostRepository(db),
		ResourceRepository:     NewResourceRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
