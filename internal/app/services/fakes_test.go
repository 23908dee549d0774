package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// In-memory repository fakes shared by the service tests.

type fakeCollegeRepo struct {
	mu       sync.Mutex
	nextID   int64
	colleges map[int64]*models.College
	failList bool
}

func newFakeCollegeRepo() *fakeCollegeRepo {
	return &fakeCollegeRepo{nextID: 1, colleges: make(map[int64]*models.College)}
}

func (r *fakeCollegeRepo) Create(_ context.Context, college *models.College) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.colleges {
		if existing.Name == college.Name {
			return 0, apperrors.ErrNameAlreadyInUse
		}
		if existing.Email == college.Email {
			return 0, apperrors.ErrEmailAlreadyInUse
		}
	}
	stored := *college
	stored.ID = r.nextID
	if stored.Logo == "" {
		stored.Logo = "/uploads/default_college_logo.png"
	}
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.colleges[stored.ID] = &stored
	r.nextID++
	return stored.ID, nil
}

func (r *fakeCollegeRepo) GetByID(_ context.Context, id int64) (*models.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	college, ok := r.colleges[id]
	if !ok {
		return nil, apperrors.ErrCollegeNotFound
	}
	copied := *college
	return &copied, nil
}

func (r *fakeCollegeRepo) GetByEmail(_ context.Context, email string) (*models.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, college := range r.colleges {
		if college.Email == email {
			copied := *college
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCollegeNotFound
}

func (r *fakeCollegeRepo) GetSummariesByIDs(_ context.Context, ids []int64) (map[int64]*models.CollegeSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[int64]*models.CollegeSummary)
	for _, id := range ids {
		if college, ok := r.colleges[id]; ok {
			result[id] = college.Summary()
		}
	}
	return result, nil
}

func (r *fakeCollegeRepo) Update(_ context.Context, college *models.College) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.colleges[college.ID]
	if !ok {
		return apperrors.ErrCollegeNotFound
	}
	for id, other := range r.colleges {
		if id != college.ID && other.Name == college.Name {
			return apperrors.ErrNameAlreadyInUse
		}
	}
	copied := *college
	copied.Email = existing.Email
	copied.UpdatedAt = time.Now()
	r.colleges[college.ID] = &copied
	return nil
}

func (r *fakeCollegeRepo) GetAll(_ context.Context) ([]*models.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList {
		return nil, apperrors.ErrCollegeNotFound
	}
	var result []*models.College
	for _, college := range r.colleges {
		copied := *college
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeCollegeRepo) GetAllOtherIDs(_ context.Context, excludeID int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int64
	for id := range r.colleges {
		if id != excludeID {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *fakeCollegeRepo) SetResetToken(_ context.Context, email, tokenHash string, expiresAt time.Time) (*models.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, college := range r.colleges {
		if college.Email == email {
			college.ResetPasswordTokenHash = &tokenHash
			expires := expiresAt
			college.ResetPasswordExpiresAt = &expires
			copied := *college
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCollegeNotFound
}

func (r *fakeCollegeRepo) ClearResetToken(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	college, ok := r.colleges[id]
	if !ok {
		return apperrors.ErrCollegeNotFound
	}
	college.ResetPasswordTokenHash = nil
	college.ResetPasswordExpiresAt = nil
	return nil
}

func (r *fakeCollegeRepo) GetByResetTokenHash(_ context.Context, tokenHash string) (*models.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, college := range r.colleges {
		if college.ResetPasswordTokenHash != nil && *college.ResetPasswordTokenHash == tokenHash {
			if college.ResetPasswordExpiresAt == nil || college.ResetPasswordExpiresAt.Before(time.Now()) {
				return nil, apperrors.ErrInvalidResetToken
			}
			copied := *college
			return &copied, nil
		}
	}
	return nil, apperrors.ErrInvalidResetToken
}

func (r *fakeCollegeRepo) ResetPassword(_ context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	college, ok := r.colleges[id]
	if !ok {
		return apperrors.ErrCollegeNotFound
	}
	college.Password = passwordHash
	college.ResetPasswordTokenHash = nil
	college.ResetPasswordExpiresAt = nil
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{nextID: 1, events: make(map[int64]*models.Event)}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *event
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.events[stored.ID] = &stored
	r.nextID++
	return stored.ID, nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (r *fakeEventRepo) GetAll(_ context.Context) ([]*models.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Event
	for _, event := range r.events {
		copied := *event
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DateTime.Before(result[j].DateTime) })
	return result, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[event.ID]; !ok {
		return apperrors.ErrEventNotFound
	}
	copied := *event
	copied.UpdatedAt = time.Now()
	r.events[event.ID] = &copied
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}

type fakeForumPostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*models.ForumPost
}

func newFakeForumPostRepo() *fakeForumPostRepo {
	return &fakeForumPostRepo{nextID: 1, posts: make(map[int64]*models.ForumPost)}
}

func (r *fakeForumPostRepo) Create(_ context.Context, post *models.ForumPost) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *post
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.posts[stored.ID] = &stored
	r.nextID++
	return stored.ID, nil
}

func (r *fakeForumPostRepo) GetByID(_ context.Context, id int64) (*models.ForumPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	post, ok := r.posts[id]
	if !ok {
		return nil, apperrors.ErrForumPostNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *fakeForumPostRepo) GetAll(_ context.Context) ([]*models.ForumPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.ForumPost
	for _, post := range r.posts {
		copied := *post
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeForumPostRepo) Update(_ context.Context, post *models.ForumPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return apperrors.ErrForumPostNotFound
	}
	copied := *post
	copied.UpdatedAt = time.Now()
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakeForumPostRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return apperrors.ErrForumPostNotFound
	}
	delete(r.posts, id)
	return nil
}

type fakeResourceRepo struct {
	mu        sync.Mutex
	nextID    int64
	resources map[int64]*models.Resource
	failNext  error
}

func newFakeResourceRepo() *fakeResourceRepo {
	return &fakeResourceRepo{nextID: 1, resources: make(map[int64]*models.Resource)}
}

func (r *fakeResourceRepo) Create(_ context.Context, resource *models.Resource) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext != nil {
		err := r.failNext
		r.failNext = nil
		return 0, err
	}
	stored := *resource
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.resources[stored.ID] = &stored
	r.nextID++
	return stored.ID, nil
}

func (r *fakeResourceRepo) GetByID(_ context.Context, id int64) (*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resource, ok := r.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceEntryNotFound
	}
	copied := *resource
	return &copied, nil
}

func (r *fakeResourceRepo) GetAll(_ context.Context) ([]*models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Resource
	for _, resource := range r.resources {
		copied := *resource
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeResourceRepo) Update(_ context.Context, resource *models.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[resource.ID]; !ok {
		return apperrors.ErrResourceEntryNotFound
	}
	copied := *resource
	copied.UpdatedAt = time.Now()
	r.resources[resource.ID] = &copied
	return nil
}

func (r *fakeResourceRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources[id]; !ok {
		return apperrors.ErrResourceEntryNotFound
	}
	delete(r.resources, id)
	return nil
}

type fakeNotificationRepo struct {
	mu            sync.Mutex
	nextID        int64
	notifications []*models.Notification
	failInsert    error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) InsertMany(_ context.Context, notifications []*models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failInsert != nil {
		return r.failInsert
	}
	now := time.Now()
	for _, n := range notifications {
		stored := *n
		stored.ID = r.nextID
		stored.CreatedAt = now
		stored.UpdatedAt = now
		r.notifications = append(r.notifications, &stored)
		r.nextID++
	}
	return nil
}

func (r *fakeNotificationRepo) GetByRecipient(_ context.Context, recipientID int64, limit int) ([]*models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*models.Notification
	for i := len(r.notifications) - 1; i >= 0 && len(result) < limit; i-- {
		if r.notifications[i].RecipientID == recipientID {
			copied := *r.notifications[i]
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (r *fakeNotificationRepo) CountUnread(_ context.Context, recipientID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			if n.RecipientID != recipientID {
				return apperrors.NewForbiddenError("Only the recipient can mark this notification as read")
			}
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, recipientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.RecipientID == recipientID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) all() []*models.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*models.Notification, len(r.notifications))
	copy(result, r.notifications)
	return result
}

// fakeEmailSender records outgoing reset mails instead of sending them.
type fakeEmailSender struct {
	mu       sync.Mutex
	sent     []sentEmail
	failWith error
}

type sentEmail struct {
	toEmail  string
	toName   string
	resetURL string
}

func (s *fakeEmailSender) SendPasswordResetEmail(toEmail, toName, resetURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.sent = append(s.sent, sentEmail{toEmail: toEmail, toName: toName, resetURL: resetURL})
	return nil
}
