package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// PostgresCityRepository implements CityRepository using PostgreSQL
type PostgresCityRepository struct {
	db *database.PostgresDB
}

// NewPostgresCityRepository creates a new PostgreSQL city repository
func NewPostgresCityRepository(db *database.PostgresDB) *PostgresCityRepository {
	return &PostgresCityRepository{db: db}
}

// Create inserts a new city
func (r *PostgresCityRepository) Create(ctx context.Context, city *domain.City) error {
	query := `
		INSERT INTO cities (id, name, english_name, country, code, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.Pool().Exec(ctx, query,
		city.ID,
		city.Name,
		city.EnglishName,
		city.Country,
		city.Code,
		city.IsActive,
		city.CreatedAt,
		city.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}

// GetByID retrieves a city by ID, returning nil when not found
func (r *PostgresCityRepository) GetByID(ctx context.Context, id string) (*domain.City, error) {
	query := `
		SELECT id, name, english_name, country, code, is_active, created_at, updated_at
		FROM cities
		WHERE id = $1`

	city := &domain.City{}
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&city.ID, &city.Name, &city.EnglishName, &city.Country,
		&city.Code, &city.IsActive, &city.CreatedAt, &city.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan city: %w", err)
	}
	return city, nil
}

// List retrieves all cities ordered by name
func (r *PostgresCityRepository) List(ctx context.Context) ([]*domain.City, error) {
	query := `
		SELECT id, name, english_name, country, code, is_active, created_at, updated_at
		FROM cities
		ORDER BY name`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	var cities []*domain.City
	for rows.Next() {
		city := &domain.City{}
		if err := rows.Scan(
			&city.ID, &city.Name, &city.EnglishName, &city.Country,
			&city.Code, &city.IsActive, &city.CreatedAt, &city.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, city)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cities: %w", err)
	}
	return cities, nil
}

// Update persists the mutable fields of a city
func (r *PostgresCityRepository) Update(ctx context.Context, city *domain.City) error {
	query := `
		UPDATE cities
		SET name = $2, english_name = $3, country = $4, code = $5, is_active = $6, updated_at = $7
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		city.ID,
		city.Name,
		city.EnglishName,
		city.Country,
		city.Code,
		city.IsActive,
		city.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a city
func (r *PostgresCityRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
