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
	"github.com/collegeconnect/collegeconnect/internal/pkg/dberrors"
	"github.com/collegeconnect/collegeconnect/internal/pkg/filestorage"
	"github.com/collegeconnect/collegeconnect/internal/pkg/logger"
)

const collegeColumns = `id, name, email, password, address, city, state, country, description,
	logo, website, contact_number, reset_password_token_hash, reset_password_expires_at,
	created_at, updated_at`

// CollegeRepository handles database operations for college accounts
type CollegeRepository struct {
	db *pgxpool.Pool
}

// NewCollegeRepository creates a new CollegeRepository
func NewCollegeRepository(db *pgxpool.Pool) *CollegeRepository {
	return &CollegeRepository{db: db}
}

func scanCollege(row pgx.Row) (*models.College, error) {
	var c models.College
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Password, &c.Address, &c.City, &c.State,
		&c.Country, &c.Description, &c.Logo, &c.Website, &c.ContactNumber,
		&c.ResetPasswordTokenHash, &c.ResetPasswordExpiresAt,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCollegeNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Create inserts a new college account. Unique constraint violations on name
// or email are mapped to the corresponding conflict errors.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) (int64, error) {
	logo := college.Logo
	if logo == "" {
		logo = filestorage.DefaultLogoPath
	}

	sql, args, err := squirrel.Insert("colleges").
		Columns("name", "email", "password", "address", "city", "state", "country",
			"description", "logo", "website", "contact_number").
		Values(college.Name, college.Email, college.Password, college.Address,
			college.City, college.State, college.Country, college.Description,
			logo, college.Website, college.ContactNumber).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create college SQL")
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "colleges_name_key") {
			return 0, apperrors.ErrNameAlreadyInUse
		}
		if dberrors.IsDuplicateConstraintError(err, "colleges_email_key") {
			return 0, apperrors.ErrEmailAlreadyInUse
		}
		logger.Error().Err(err).Msg("Error executing create college query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a college by its identifier
func (r *CollegeRepository) GetByID(ctx context.Context, id int64) (*models.College, error) {
	sql, args, err := squirrel.Select(collegeColumns).
		From("colleges").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanCollege(r.db.QueryRow(ctx, sql, args...))
}

// GetByEmail retrieves a college by its email address
func (r *CollegeRepository) GetByEmail(ctx context.Context, email string) (*models.College, error) {
	sql, args, err := squirrel.Select(collegeColumns).
		From("colleges").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanCollege(r.db.QueryRow(ctx, sql, args...))
}

// GetSummariesByIDs retrieves reference summaries for a set of college IDs.
// Unknown IDs are simply absent from the result map.
func (r *CollegeRepository) GetSummariesByIDs(ctx context.Context, ids []int64) (map[int64]*models.CollegeSummary, error) {
	result := make(map[int64]*models.CollegeSummary, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	sql, args, err := squirrel.Select("id", "name", "logo").
		From("colleges").
		Where(squirrel.Eq{"id": ids}).
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

	for rows.Next() {
		var s models.CollegeSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Logo); err != nil {
			return nil, err
		}
		result[s.ID] = &s
	}
	return result, rows.Err()
}

// Update persists the mutable profile fields of a college
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	sql, args, err := squirrel.Update("colleges").
		Set("name", college.Name).
		Set("address", college.Address).
		Set("city", college.City).
		Set("state", college.State).
		Set("country", college.Country).
		Set("description", college.Description).
		Set("logo", college.Logo).
		Set("website", college.Website).
		Set("contact_number", college.ContactNumber).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": college.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update college SQL")
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "colleges_name_key") {
			return apperrors.ErrNameAlreadyInUse
		}
		logger.Error().Err(err).Msg("Error executing update college query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// GetAll retrieves every registered college ordered by name
func (r *CollegeRepository) GetAll(ctx context.Context) ([]*models.College, error) {
	sql, args, err := squirrel.Select(collegeColumns).
		From("colleges").
		OrderBy("name ASC").
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

	var colleges []*models.College
	for rows.Next() {
		c, err := scanCollege(rows)
		if err != nil {
			return nil, err
		}
		colleges = append(colleges, c)
	}
	return colleges, rows.Err()
}

// GetAllOtherIDs retrieves the IDs of every college except the given one.
// This is the recipient set for notification fan-out.
func (r *CollegeRepository) GetAllOtherIDs(ctx context.Context, excludeID int64) ([]int64, error) {
	sql, args, err := squirrel.Select("id").
		From("colleges").
		Where(squirrel.NotEq{"id": excludeID}).
		OrderBy("id ASC").
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

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetResetToken stores the reset token digest and expiry for the college with
// the given email, returning the updated account.
func (r *CollegeRepository) SetResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) (*models.College, error) {
	sql, args, err := squirrel.Update("colleges").
		Set("reset_password_token_hash", tokenHash).
		Set("reset_password_expires_at", expiresAt).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"email": email}).
		Suffix("RETURNING " + collegeColumns).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanCollege(r.db.QueryRow(ctx, sql, args...))
}

// ClearResetToken removes any outstanding reset token from the college row.
// Used to roll the token back when the reset email cannot be delivered.
func (r *CollegeRepository) ClearResetToken(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Update("colleges").
		Set("reset_password_token_hash", nil).
		Set("reset_password_expires_at", nil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing clear reset token query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}

// GetByResetTokenHash retrieves the college holding an unexpired reset token
// with the given digest.
func (r *CollegeRepository) GetByResetTokenHash(ctx context.Context, tokenHash string) (*models.College, error) {
	sql, args, err := squirrel.Select(collegeColumns).
		From("colleges").
		Where(squirrel.Eq{"reset_password_token_hash": tokenHash}).
		Where(squirrel.Gt{"reset_password_expires_at": time.Now()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	college, err := scanCollege(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, apperrors.ErrCollegeNotFound) {
			return nil, apperrors.ErrInvalidResetToken
		}
		return nil, err
	}
	return college, nil
}

// ResetPassword replaces the password hash and clears any outstanding reset
// token in a single statement.
func (r *CollegeRepository) ResetPassword(ctx context.Context, id int64, passwordHash string) error {
	sql, args, err := squirrel.Update("colleges").
		Set("password", passwordHash).
		Set("reset_password_token_hash", nil).
		Set("reset_password_expires_at", nil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing reset password query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCollegeNotFound
	}
	return nil
}
