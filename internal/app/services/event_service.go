package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/collegeconnect/collegeconnect/internal/app/models"
	"github.com/collegeconnect/collegeconnect/internal/app/models/dto"
	"github.com/collegeconnect/collegeconnect/internal/app/repositories"
	"github.com/collegeconnect/collegeconnect/internal/pkg/apperrors"
)

// EventService handles event postings and their notification fan-out.
type EventService struct {
	eventRepo           repositories.IEventRepository
	notificationService *NotificationService
	logger              zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo repositories.IEventRepository,
	notificationService *NotificationService,
	logger zerolog.Logger,
) *EventService {
	return &EventService{
		eventRepo:           eventRepo,
		notificationService: notificationService,
		logger:              logger,
	}
}

// Create stores a new event posting and fans a notification out to every
// other college. The event stands even when fan-out fails.
func (s *EventService) Create(ctx context.Context, organizer *models.College, req *dto.CreateEventRequest) (*models.Event, error) {
	eventType := models.EventType(req.EventType)
	if !eventType.Valid() {
		return nil, apperrors.NewValidationError("Invalid event type: " + req.EventType)
	}

	event := &models.Event{
		Title:               req.Title,
		Description:         req.Description,
		EventType:           eventType,
		Location:            req.Location,
		DateTime:            req.DateTime,
		OrganizingCollegeID: organizer.ID,
		ContactEmail:        req.ContactEmail,
		ContactPhone:        req.ContactPhone,
		RegistrationLink:    req.RegistrationLink,
	}

	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	created, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.notificationService.NotifyEventCreated(ctx, created, organizer)

	s.logger.Info().Int64("eventId", created.ID).Int64("collegeId", organizer.ID).Msg("Event created")
	return created, nil
}

// GetAll returns all events ordered by event date.
func (s *EventService) GetAll(ctx context.Context) ([]*models.Event, error) {
	return s.eventRepo.GetAll(ctx)
}

// GetByID returns a single event.
func (s *EventService) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// Update applies a partial update to an event. Only the organizing college
// may update it.
func (s *EventService) Update(ctx context.Context, collegeID, eventID int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizingCollegeID != collegeID {
		return nil, apperrors.NewForbiddenError("Only the organizing college can update this event")
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, apperrors.NewValidationError("Title cannot be empty")
		}
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.EventType != nil {
		eventType := models.EventType(*req.EventType)
		if !eventType.Valid() {
			return nil, apperrors.NewValidationError("Invalid event type: " + *req.EventType)
		}
		event.EventType = eventType
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.DateTime != nil {
		event.DateTime = *req.DateTime
	}
	if req.ContactEmail != nil {
		event.ContactEmail = req.ContactEmail
	}
	if req.ContactPhone != nil {
		event.ContactPhone = req.ContactPhone
	}
	if req.RegistrationLink != nil {
		event.RegistrationLink = req.RegistrationLink
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByID(ctx, eventID)
}

// Delete removes an event. Only the organizing college may delete it. No
// notifications are retracted; records created by earlier fan-out stand.
func (s *EventService) Delete(ctx context.Context, collegeID, eventID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizingCollegeID != collegeID {
		return apperrors.NewForbiddenError("Only the organizing college can delete this event")
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}

	s.logger.Info().Int64("eventId", eventID).Int64("collegeId", collegeID).Msg("Event deleted")
	return nil
}
