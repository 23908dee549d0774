package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

func newTestForumService(collegeRepo *fakeCollegeRepo) (*ForumService, *fakeNotificationRepo) {
	notifRepo := newFakeNotificationRepo()
	notifSvc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	return NewForumService(newFakeForumPostRepo(), collegeRepo, notifSvc, zerolog.Nop()), notifRepo
}

func TestForumServiceCreateExpandsMentions(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _ := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 3)

	post, err := svc.Create(context.Background(), colleges[0], &dto.CreateForumPostRequest{
		Title:             "Joint hackathon?",
		Content:           "Looking for co-hosts this winter.",
		MentionedColleges: []int64{colleges[2].ID, colleges[1].ID},
	})
	require.NoError(t, err)

	// Mention order is the submission order, not ID order.
	assert.Equal(t, []int64{colleges[2].ID, colleges[1].ID}, post.MentionedCollegeIDs)
	require.Len(t, post.MentionedColleges, 2)
	assert.Equal(t, colleges[2].ID, post.MentionedColleges[0].ID)
	assert.Equal(t, colleges[2].Name, post.MentionedColleges[0].Name)
	assert.Equal(t, colleges[1].ID, post.MentionedColleges[1].ID)
}

func TestForumServiceCreateWithoutMentions(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, notifRepo := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 3)

	post, err := svc.Create(context.Background(), colleges[0], &dto.CreateForumPostRequest{
		Title:   "General question",
		Content: "Anyone run exchange programs?",
	})
	require.NoError(t, err)
	assert.NotNil(t, post.MentionedColleges)
	assert.Empty(t, post.MentionedColleges)

	// Broadcast only, no mention records.
	for _, n := range notifRepo.all() {
		assert.Equal(t, models.NotificationTypeForumPost, n.Type)
	}
	assert.Len(t, notifRepo.all(), 2)
}

func TestForumServiceMentionsKeepDuplicates(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _ := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)

	post, err := svc.Create(context.Background(), colleges[0], &dto.CreateForumPostRequest{
		Title:             "Emphasis",
		Content:           "Mentioning twice on purpose.",
		MentionedColleges: []int64{colleges[1].ID, colleges[1].ID},
	})
	require.NoError(t, err)
	require.Len(t, post.MentionedColleges, 2)
	assert.Equal(t, post.MentionedColleges[0].ID, post.MentionedColleges[1].ID)
}

func TestForumServiceMentionsSkipMissingColleges(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _ := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)

	post, err := svc.Create(context.Background(), colleges[0], &dto.CreateForumPostRequest{
		Title:             "Stale mention",
		Content:           "One of these colleges is gone.",
		MentionedColleges: []int64{colleges[1].ID, 9999},
	})
	require.NoError(t, err)

	// The stored list keeps the stale ID, the expansion drops it.
	assert.Equal(t, []int64{colleges[1].ID, 9999}, post.MentionedCollegeIDs)
	require.Len(t, post.MentionedColleges, 1)
	assert.Equal(t, colleges[1].ID, post.MentionedColleges[0].ID)
}

func TestForumServiceUpdate(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, notifRepo := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 3)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], &dto.CreateForumPostRequest{
		Title:   "Draft",
		Content: "v1",
	})
	require.NoError(t, err)
	notified := len(notifRepo.all())

	newMentions := []int64{colleges[1].ID}
	updated, err := svc.Update(ctx, colleges[0].ID, created.ID, &dto.UpdateForumPostRequest{
		Content:           strPtr("v2"),
		MentionedColleges: &newMentions,
	})
	require.NoError(t, err)
	assert.Equal(t, "Draft", updated.Title)
	assert.Equal(t, "v2", updated.Content)
	assert.Equal(t, newMentions, updated.MentionedCollegeIDs)

	// Adding a mention on update does not emit a mention notification.
	assert.Len(t, notifRepo.all(), notified)
}

func TestForumServiceUpdateValidation(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _ := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], &dto.CreateForumPostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, colleges[0].ID, created.ID, &dto.UpdateForumPostRequest{Title: strPtr("")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.Update(ctx, colleges[0].ID, created.ID, &dto.UpdateForumPostRequest{Content: strPtr("")})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestForumServiceUpdateRequiresOwnership(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _ := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], &dto.CreateForumPostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, colleges[1].ID, created.ID, &dto.UpdateForumPostRequest{Title: strPtr("X")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestForumServiceDelete(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _ := newTestForumService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], &dto.CreateForumPostRequest{Title: "T", Content: "C"})
	require.NoError(t, err)

	err = svc.Delete(ctx, colleges[1].ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, colleges[0].ID, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrForumPostNotFound)
}
