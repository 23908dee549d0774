package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

func seedColleges(t *testing.T, repo *fakeCollegeRepo, count int) []*models.College {
	t.Helper()
	colleges := make([]*models.College, 0, count)
	for i := 0; i < count; i++ {
		college := &models.College{
			Name:        fmt.Sprintf("College %d", i+1),
			Email:       fmt.Sprintf("college%d@edu.test", i+1),
			Password:    "hash",
			Address:     "1 Campus Way",
			City:        "Springfield",
			State:       "Illinois",
			Country:     "USA",
			Description: "test",
		}
		id, err := repo.Create(context.Background(), college)
		require.NoError(t, err)
		college.ID = id
		colleges = append(colleges, college)
	}
	return colleges
}

func TestNotifyEventCreatedFansOutToAllOthers(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 4)
	sender := colleges[0]

	event := &models.Event{
		ID:       42,
		Title:    "Tech Fest",
		DateTime: time.Date(2026, time.September, 5, 10, 0, 0, 0, time.UTC),
	}
	svc.NotifyEventCreated(context.Background(), event, sender)

	all := notifRepo.all()
	require.Len(t, all, 3)
	recipients := make(map[int64]bool)
	for _, n := range all {
		recipients[n.RecipientID] = true
		assert.Equal(t, models.NotificationTypeEvent, n.Type)
		assert.Equal(t, `New Event: "Tech Fest" by College 1 on Sep 5, 2026.`, n.Message)
		require.NotNil(t, n.Link)
		assert.Equal(t, "/events/42", *n.Link)
		require.NotNil(t, n.SenderID)
		assert.Equal(t, sender.ID, *n.SenderID)
		assert.False(t, n.Read)
	}
	assert.False(t, recipients[sender.ID], "sender must not be notified")
	assert.Len(t, recipients, 3)
}

func TestNotifyForumPostCreatedIncludesMentions(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 4)
	sender := colleges[0]

	post := &models.ForumPost{
		ID:                  7,
		Title:               "Collaboration ideas",
		PostedByID:          sender.ID,
		MentionedCollegeIDs: []int64{colleges[1].ID, colleges[2].ID},
	}
	svc.NotifyForumPostCreated(context.Background(), post, sender)

	all := notifRepo.all()
	// 3 broadcast + 2 mentions, mentioned colleges get both records.
	require.Len(t, all, 5)

	var broadcasts, mentions int
	for _, n := range all {
		switch n.Type {
		case models.NotificationTypeForumPost:
			broadcasts++
			assert.Equal(t, `New Forum Post: "Collaboration ideas" by College 1.`, n.Message)
		case models.NotificationTypeForumMention:
			mentions++
			assert.Equal(t, `College 1 mentioned your college in a post: "Collaboration ideas".`, n.Message)
		default:
			t.Fatalf("unexpected notification type %q", n.Type)
		}
		require.NotNil(t, n.Link)
		assert.Equal(t, "/forum/7", *n.Link)
	}
	assert.Equal(t, 3, broadcasts)
	assert.Equal(t, 2, mentions)
}

func TestNotifyForumPostMentionsPreserveDuplicates(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 2)
	sender := colleges[0]

	post := &models.ForumPost{
		ID:                  1,
		Title:               "Dup mentions",
		PostedByID:          sender.ID,
		MentionedCollegeIDs: []int64{colleges[1].ID, colleges[1].ID},
	}
	svc.NotifyForumPostCreated(context.Background(), post, sender)

	var mentions int
	for _, n := range notifRepo.all() {
		if n.Type == models.NotificationTypeForumMention {
			mentions++
		}
	}
	assert.Equal(t, 2, mentions, "duplicate mentions each produce a record")
}

func TestNotifyResourceCreated(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 3)
	sender := colleges[2]

	resource := &models.Resource{ID: 9, Title: "Algorithms Notes"}
	svc.NotifyResourceCreated(context.Background(), resource, sender)

	all := notifRepo.all()
	require.Len(t, all, 2)
	for _, n := range all {
		assert.Equal(t, models.NotificationTypeResource, n.Type)
		assert.Equal(t, `New Resource: "Algorithms Notes" shared by College 3.`, n.Message)
		require.NotNil(t, n.Link)
		assert.Equal(t, "/resources/9", *n.Link)
	}
}

func TestFanOutFailureIsSwallowed(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	notifRepo.failInsert = assert.AnError
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 2)

	// Must not panic or surface the error; the created entity stands.
	svc.NotifyEventCreated(context.Background(), &models.Event{ID: 1, Title: "x", DateTime: time.Now()}, colleges[0])
	assert.Empty(t, notifRepo.all())
}

func TestFanOutWithSingleCollege(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 1)

	svc.NotifyEventCreated(context.Background(), &models.Event{ID: 1, Title: "x", DateTime: time.Now()}, colleges[0])
	assert.Empty(t, notifRepo.all(), "no recipients when the sender is the only college")
}

func TestNotificationListCapAndReadFlow(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 2)
	sender, recipient := colleges[0], colleges[1]
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		svc.NotifyEventCreated(ctx, &models.Event{ID: int64(i + 1), Title: "e", DateTime: time.Now()}, sender)
	}

	listed, err := svc.GetForCollege(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Len(t, listed, NotificationListLimit)

	count, err := svc.CountUnread(ctx, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 25, count)

	require.NoError(t, svc.MarkRead(ctx, listed[0].ID, recipient.ID))
	count, err = svc.CountUnread(ctx, recipient.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 24, count)

	require.NoError(t, svc.MarkAllRead(ctx, recipient.ID))
	count, err = svc.CountUnread(ctx, recipient.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Marking all read twice is a harmless no-op.
	require.NoError(t, svc.MarkAllRead(ctx, recipient.ID))
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	notifRepo := newFakeNotificationRepo()
	svc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	colleges := seedColleges(t, collegeRepo, 3)
	sender := colleges[0]
	ctx := context.Background()

	svc.NotifyEventCreated(ctx, &models.Event{ID: 1, Title: "e", DateTime: time.Now()}, sender)

	listed, err := svc.GetForCollege(ctx, colleges[1].ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// Another college cannot mark someone else's notification.
	err = svc.MarkRead(ctx, listed[0].ID, colleges[2].ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// A notification that does not exist at all is reported as missing.
	err = svc.MarkRead(ctx, listed[0].ID+100, colleges[1].ID)
	assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

	// The real recipient can still mark it.
	require.NoError(t, svc.MarkRead(ctx, listed[0].ID, colleges[1].ID))
	unread, err := svc.CountUnread(ctx, colleges[1].ID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
