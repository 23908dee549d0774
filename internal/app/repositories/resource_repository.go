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

// ResourceRepository handles database operations for shared resources
type ResourceRepository struct {
	db *pgxpool.Pool
}

// NewResourceRepository creates a new ResourceRepository
func NewResourceRepository(db *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func selectResourceQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"r.id", "r.title", "r.description", "r.category", "r.file", "r.original_file_name",
		"r.uploaded_by_id", "r.created_at", "r.updated_at",
		"c.name", "c.logo",
	).From("resources r").
		Join("colleges c ON r.uploaded_by_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanResource(row pgx.Row) (*models.Resource, error) {
	var res models.Resource
	var uploaderName, uploaderLogo string
	err := row.Scan(
		&res.ID, &res.Title, &res.Description, &res.Category, &res.File,
		&res.OriginalFileName, &res.UploadedByID, &res.CreatedAt, &res.UpdatedAt,
		&uploaderName, &uploaderLogo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrResourceEntryNotFound
		}
		return nil, err
	}
	res.UploadedBy = &models.CollegeSummary{
		ID:   res.UploadedByID,
		Name: uploaderName,
		Logo: uploaderLogo,
	}
	return &res, nil
}

// Create inserts a new resource record
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) (int64, error) {
	sql, args, err := squirrel.Insert("resources").
		Columns("title", "description", "category", "file", "original_file_name", "uploaded_by_id").
		Values(resource.Title, resource.Description, resource.Category, resource.File,
			resource.OriginalFileName, resource.UploadedByID).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create resource SQL")
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create resource query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single resource with its uploader summary
func (r *ResourceRepository) GetByID(ctx context.Context, id int64) (*models.Resource, error) {
	sql, args, err := selectResourceQuery().Where(squirrel.Eq{"r.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanResource(r.db.QueryRow(ctx, sql, args...))
}

// GetAll retrieves all resources, newest first
func (r *ResourceRepository) GetAll(ctx context.Context) ([]*models.Resource, error) {
	sql, args, err := selectResourceQuery().OrderBy("r.created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []*models.Resource
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

// Update persists the mutable metadata fields of a resource. The stored file
// is immutable after upload.
func (r *ResourceRepository) Update(ctx context.Context, resource *models.Resource) error {
	sql, args, err := squirrel.Update("resources").
		Set("title", resource.Title).
		Set("description", resource.Description).
		Set("category", resource.Category).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": resource.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update resource SQL")
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update resource query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceEntryNotFound
	}
	return nil
}

// Delete removes a resource record
func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("resources").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete resource query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrResourceEntryNotFound
	}
	return nil
}
