package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func newTestEventService(collegeRepo *fakeCollegeRepo) (*EventService, *fakeEventRepo, *fakeNotificationRepo) {
	eventRepo := newFakeEventRepo()
	notifRepo := newFakeNotificationRepo()
	notifSvc := NewNotificationService(notifRepo, collegeRepo, zerolog.Nop())
	return NewEventService(eventRepo, notifSvc, zerolog.Nop()), eventRepo, notifRepo
}

func createEventRequest() *dto.CreateEventRequest {
	return &dto.CreateEventRequest{
		Title:       "Annual Tech Fest",
		Description: "Two days of talks and workshops",
		EventType:   "Workshop",
		Location:    "Main Auditorium",
		DateTime:    time.Date(2026, time.October, 12, 9, 0, 0, 0, time.UTC),
	}
}

func TestEventServiceCreate(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, notifRepo := newTestEventService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 3)
	organizer := colleges[0]

	event, err := svc.Create(context.Background(), organizer, createEventRequest())
	require.NoError(t, err)
	assert.Equal(t, "Annual Tech Fest", event.Title)
	assert.Equal(t, models.EventTypeWorkshop, event.EventType)
	assert.Equal(t, organizer.ID, event.OrganizingCollegeID)

	// Creation notifies the two other colleges.
	assert.Len(t, notifRepo.all(), 2)
}

func TestEventServiceCreateInvalidType(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, eventRepo, notifRepo := newTestEventService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)

	req := createEventRequest()
	req.EventType = "Rave"
	_, err := svc.Create(context.Background(), colleges[0], req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Nothing is persisted and nobody is notified.
	events, err := eventRepo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, notifRepo.all())
}

func TestEventServiceCreateSurvivesFanOutFailure(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, notifRepo := newTestEventService(collegeRepo)
	notifRepo.failInsert = assert.AnError
	colleges := seedColleges(t, collegeRepo, 2)

	event, err := svc.Create(context.Background(), colleges[0], createEventRequest())
	require.NoError(t, err, "fan-out failure must not fail the create")
	assert.NotZero(t, event.ID)
	assert.Empty(t, notifRepo.all())
}

func TestEventServiceUpdatePatchSemantics(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _ := newTestEventService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)
	organizer := colleges[0]
	ctx := context.Background()

	created, err := svc.Create(ctx, organizer, createEventRequest())
	require.NoError(t, err)

	// Only the provided fields change; a present-but-empty description
	// overwrites.
	updated, err := svc.Update(ctx, organizer.ID, created.ID, &dto.UpdateEventRequest{
		Location:    strPtr("Open Grounds"),
		Description: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Open Grounds", updated.Location)
	assert.Empty(t, updated.Description)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.EventType, updated.EventType)
}

func TestEventServiceUpdateValidation(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _ := newTestEventService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 1)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], createEventRequest())
	require.NoError(t, err)

	_, err = svc.Update(ctx, colleges[0].ID, created.ID, &dto.UpdateEventRequest{Title: strPtr("")})
	assert.Error(t, err)

	_, err = svc.Update(ctx, colleges[0].ID, created.ID, &dto.UpdateEventRequest{EventType: strPtr("Party")})
	assert.Error(t, err)
}

func TestEventServiceUpdateRequiresOwnership(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, _ := newTestEventService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], createEventRequest())
	require.NoError(t, err)

	_, err = svc.Update(ctx, colleges[1].ID, created.ID, &dto.UpdateEventRequest{Title: strPtr("Hijacked")})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestEventServiceDelete(t *testing.T) {
	collegeRepo := newFakeCollegeRepo()
	svc, _, notifRepo := newTestEventService(collegeRepo)
	colleges := seedColleges(t, collegeRepo, 2)
	ctx := context.Background()

	created, err := svc.Create(ctx, colleges[0], createEventRequest())
	require.NoError(t, err)
	notified := len(notifRepo.all())

	// A non-organizer cannot delete.
	err = svc.Delete(ctx, colleges[1].ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.Delete(ctx, colleges[0].ID, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	// Deleting the event does not retract the earlier notifications.
	assert.Len(t, notifRepo.all(), notified)

	err = svc.Delete(ctx, colleges[0].ID, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}
