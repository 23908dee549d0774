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

// EventRepository handles database operations for event postings
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

// selectEventQuery joins the organizing college summary onto each row.
func selectEventQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"e.id", "e.title", "e.description", "e.event_type", "e.location", "e.date_time",
		"e.organizing_college_id", "e.contact_email", "e.contact_phone", "e.registration_link",
		"e.created_at", "e.updated_at",
		"c.name", "c.logo",
	).From("events e").
		Join("colleges c ON e.organizing_college_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanEvent(row pgx.Row) (*models.Event, error) {
	var e models.Event
	var organizerName, organizerLogo string
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.EventType, &e.Location, &e.DateTime,
		&e.OrganizingCollegeID, &e.ContactEmail, &e.ContactPhone, &e.RegistrationLink,
		&e.CreatedAt, &e.UpdatedAt,
		&organizerName, &organizerLogo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, err
	}
	e.OrganizingCollege = &models.CollegeSummary{
		ID:   e.OrganizingCollegeID,
		Name: organizerName,
		Logo: organizerLogo,
	}
	return &e, nil
}

// Create inserts a new event posting
func (r *EventRepository) Create(ctx context.Context, event *models.Event) (int64, error) {
	sql, args, err := squirrel.Insert("events").
		Columns("title", "description", "event_type", "location", "date_time",
			"organizing_college_id", "contact_email", "contact_phone", "registration_link").
		Values(event.Title, event.Description, event.EventType, event.Location,
			event.DateTime, event.OrganizingCollegeID, event.ContactEmail,
			event.ContactPhone, event.RegistrationLink).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create event query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single event with its organizer summary
func (r *EventRepository) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	sql, args, err := selectEventQuery().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanEvent(r.db.QueryRow(ctx, sql, args...))
}

// GetAll retrieves all events ordered by event date ascending
func (r *EventRepository) GetAll(ctx context.Context) ([]*models.Event, error) {
	sql, args, err := selectEventQuery().OrderBy("e.date_time ASC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Update persists the mutable fields of an event
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	sql, args, err := squirrel.Update("events").
		Set("title", event.Title).
		Set("description", event.Description).
		Set("event_type", event.EventType).
		Set("location", event.Location).
		Set("date_time", event.DateTime).
		Set("contact_email", event.ContactEmail).
		Set("contact_phone", event.ContactPhone).
		Set("registration_link", event.RegistrationLink).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": event.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update event SQL")
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update event query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}

// Delete removes an event posting
func (r *EventRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("events").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete event query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrEventNotFound
	}
	return nil
}
