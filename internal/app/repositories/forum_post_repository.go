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

// ForumPostRepository handles database operations for forum posts
type ForumPostRepository struct {
	db *pgxpool.Pool
}

// NewForumPostRepository creates a new ForumPostRepository
func NewForumPostRepository(db *pgxpool.Pool) *ForumPostRepository {
	return &ForumPostRepository{db: db}
}

func selectForumPostQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"p.id", "p.title", "p.content", "p.posted_by_id", "p.mentioned_colleges",
		"p.created_at", "p.updated_at",
		"c.name", "c.logo",
	).From("forum_posts p").
		Join("colleges c ON p.posted_by_id = c.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanForumPost(row pgx.Row) (*models.ForumPost, error) {
	var p models.ForumPost
	var authorName, authorLogo string
	err := row.Scan(
		&p.ID, &p.Title, &p.Content, &p.PostedByID, &p.MentionedCollegeIDs,
		&p.CreatedAt, &p.UpdatedAt,
		&authorName, &authorLogo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrForumPostNotFound
		}
		return nil, err
	}
	p.PostedBy = &models.CollegeSummary{
		ID:   p.PostedByID,
		Name: authorName,
		Logo: authorLogo,
	}
	return &p, nil
}

// Create inserts a new forum post. The mention list is stored exactly as
// submitted.
func (r *ForumPostRepository) Create(ctx context.Context, post *models.ForumPost) (int64, error) {
	mentions := post.MentionedCollegeIDs
	if mentions == nil {
		mentions = []int64{}
	}

	sql, args, err := squirrel.Insert("forum_posts").
		Columns("title", "content", "posted_by_id", "mentioned_colleges").
		Values(post.Title, post.Content, post.PostedByID, mentions).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create forum post SQL")
		return 0, err
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create forum post query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a single forum post with its author summary
func (r *ForumPostRepository) GetByID(ctx context.Context, id int64) (*models.ForumPost, error) {
	sql, args, err := selectForumPostQuery().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanForumPost(r.db.QueryRow(ctx, sql, args...))
}

// GetAll retrieves all forum posts, newest first
func (r *ForumPostRepository) GetAll(ctx context.Context) ([]*models.ForumPost, error) {
	sql, args, err := selectForumPostQuery().OrderBy("p.created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*models.ForumPost
	for rows.Next() {
		p, err := scanForumPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Update persists the mutable fields of a forum post
func (r *ForumPostRepository) Update(ctx context.Context, post *models.ForumPost) error {
	mentions := post.MentionedCollegeIDs
	if mentions == nil {
		mentions = []int64{}
	}

	sql, args, err := squirrel.Update("forum_posts").
		Set("title", post.Title).
		Set("content", post.Content).
		Set("mentioned_colleges", mentions).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": post.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update forum post SQL")
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing update forum post query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrForumPostNotFound
	}
	return nil
}

// Delete removes a forum post
func (r *ForumPostRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("forum_posts").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete forum post query")
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrForumPostNotFound
	}
	return nil
}
