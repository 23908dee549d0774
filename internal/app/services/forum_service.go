package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/repositories"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// ForumService handles forum posts, mention expansion and fan-out.
type ForumService struct {
	forumRepo           repositories.IForumPostRepository
	collegeRepo         repositories.ICollegeRepository
	notificationService *NotificationService
	logger              zerolog.Logger
}

// NewForumService creates a new ForumService
func NewForumService(
	forumRepo repositories.IForumPostRepository,
	collegeRepo repositories.ICollegeRepository,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *ForumService {
	return &ForumService{
		forumRepo:           forumRepo,
		collegeRepo:         collegeRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Create stores a new forum post and fans notifications out: a general one to
// every other college and a mention one to each mentioned college. The
// mention list is stored exactly as submitted.
func (s *ForumService) Create(ctx context.Context, author *models.College, req *dto.CreateForumPostRequest) (*models.ForumPost, error) {
	post := &models.ForumPost{
		Title:               req.Title,
		Content:             req.Content,
		PostedByID:          author.ID,
		MentionedCollegeIDs: req.MentionedColleges,
	}

	id, err := s.forumRepo.Create(ctx, post)
	if err != nil {
		return nil, err
	}

	created, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notificationService.NotifyForumPostCreated(ctx, created, author)

	s.logger.Info().Int64("postId", created.ID).Int64("collegeId", author.ID).Msg("Forum post created")
	return created, nil
}

// GetAll returns all forum posts, newest first, with mention references
// expanded.
func (s *ForumService) GetAll(ctx context.Context) ([]*models.ForumPost, error) {
	posts, err := s.forumRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.expandMentions(ctx, posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetByID returns a single forum post with mention references expanded.
func (s *ForumService) GetByID(ctx context.Context, id int64) (*models.ForumPost, error) {
	post, err := s.forumRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.expandMentions(ctx, []*models.ForumPost{post}); err != nil {
		return nil, err
	}
	return post, nil
}

// Update applies a partial update to a forum post. Only the author may
// update it. Changing the mention list does not retract or emit
// notifications.
func (s *ForumService) Update(ctx context.Context, collegeID, postID int64, req *dto.UpdateForumPostRequest) (*models.ForumPost, error) {
	post, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.PostedByID != collegeID {
		return nil, apperrors.NewForbiddenError("Only the posting college can update this post")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperrors.NewValidationError("Title cannot be empty")
		}
		post.Title = *req.Title
	}
	if req.Content != nil {
		if *req.Content == "" {
			return nil, apperrors.NewValidationError("Content cannot be empty")
		}
		post.Content = *req.Content
	}
	if req.MentionedColleges != nil {
		post.MentionedCollegeIDs = *req.MentionedColleges
	}

	if err := s.forumRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, postID)
}

// Delete removes a forum post. Only the author may delete it.
func (s *ForumService) Delete(ctx context.Context, collegeID, postID int64) error {
	post, err := s.forumRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.PostedByID != collegeID {
		return apperrors.NewForbiddenError("Only the posting college can delete this post")
	}

	if err := s.forumRepo.Delete(ctx, postID); err != nil {
		return err
	}

	s.logger.Info().Int64("postId", postID).Int64("collegeId", collegeID).Msg("Forum post deleted")
	return nil
}

// expandMentions resolves mention ID lists into college summaries, keeping
// submission order and duplicates. IDs of colleges that no longer exist are
// skipped.
func (s *ForumService) expandMentions(ctx context.Context, posts []*models.ForumPost) error {
	idSet := make(map[int64]struct{})
	for _, post := range posts {
		for _, id := range post.MentionedCollegeIDs {
			idSet[id] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		for _, post := range posts {
			post.MentionedColleges = []*models.CollegeSummary{}
		}
		return nil
	}

	ids := make([]int64, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	summaries, err := s.collegeRepo.GetSummariesByIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, post := range posts {
		expanded := make([]*models.CollegeSummary, 0, len(post.MentionedCollegeIDs))
		for _, id := range post.MentionedCollegeIDs {
			if summary, ok := summaries[id]; ok {
				expanded = append(expanded, summary)
			}
		}
		post.MentionedColleges = expanded
	}
	return nil
}
