package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
)

// PostgresImageRepository implements ImageRepository using PostgreSQL.
// Tags are stored as a text[] column.
type PostgresImageRepository struct {
	db *database.PostgresDB
}

// NewPostgresImageRepository creates a new PostgreSQL image repository
func NewPostgresImageRepository(db *database.PostgresDB) *PostgresImageRepository {
	return &PostgresImageRepository{db: db}
}

const imageColumns = `
	id, file_name, stored_path, mime_type, size_bytes, category, tags,
	uploaded_by, created_at, updated_at`

// Create inserts image metadata
func (r *PostgresImageRepository) Create(ctx context.Context, image *domain.ImageAsset) error {
	query := `
		INSERT INTO images (
			id, file_name, stored_path, mime_type, size_bytes, category, tags,
			uploaded_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Pool().Exec(ctx, query,
		image.ID,
		image.FileName,
		image.StoredPath,
		image.MIMEType,
		image.SizeBytes,
		image.Category,
		image.Tags,
		image.UploadedBy,
		image.CreatedAt,
		image.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	return nil
}

// GetByID retrieves image metadata by ID, returning nil when not found
func (r *PostgresImageRepository) GetByID(ctx context.Context, id string) (*domain.ImageAsset, error) {
	query := `SELECT ` + imageColumns + ` FROM images WHERE id = $1`

	image := &domain.ImageAsset{}
	err := scanImage(r.db.Pool().QueryRow(ctx, query, id), image)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return image, nil
}

// List retrieves image metadata matching the filter, newest first
func (r *PostgresImageRepository) List(ctx context.Context, filter dto.ImageListFilter) ([]*domain.ImageAsset, error) {
	var conds []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		conds = append(conds, fmt.Sprintf("file_name ILIKE $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("$%d = ANY(tags)", len(args)))
	}

	query := `SELECT ` + imageColumns + ` FROM images`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	var images []*domain.ImageAsset
	for rows.Next() {
		image := &domain.ImageAsset{}
		if err := scanImage(rows, image); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate images: %w", err)
	}
	return images, nil
}

// Update persists the mutable metadata fields of an image
func (r *PostgresImageRepository) Update(ctx context.Context, image *domain.ImageAsset) error {
	query := `
		UPDATE images
		SET file_name = $2, category = $3, tags = $4, updated_at = $5
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		image.ID,
		image.FileName,
		image.Category,
		image.Tags,
		image.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes image metadata. The caller removes the file on disk.
func (r *PostgresImageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanImage(row pgx.Row, image *domain.ImageAsset) error {
	err := row.Scan(
		&image.ID, &image.FileName, &image.StoredPath, &image.MIMEType,
		&image.SizeBytes, &image.Category, &image.Tags, &image.UploadedBy,
		&image.CreatedAt, &image.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("failed to scan image: %w", err)
	}
	return nil
}
