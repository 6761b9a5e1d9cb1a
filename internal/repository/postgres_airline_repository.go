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

// PostgresAirlineRepository implements AirlineRepository using PostgreSQL
type PostgresAirlineRepository struct {
	db *database.PostgresDB
}

// NewPostgresAirlineRepository creates a new PostgreSQL airline repository
func NewPostgresAirlineRepository(db *database.PostgresDB) *PostgresAirlineRepository {
	return &PostgresAirlineRepository{db: db}
}

const airlineColumns = `
	id, name, english_name, code, country, logo_image_id,
	contact_phone, contact_email, description, is_active, created_at, updated_at`

// Create inserts a new airline
func (r *PostgresAirlineRepository) Create(ctx context.Context, airline *domain.Airline) error {
	query := `
		INSERT INTO airlines (
			id, name, english_name, code, country, logo_image_id,
			contact_phone, contact_email, description, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Pool().Exec(ctx, query,
		airline.ID,
		airline.Name,
		airline.EnglishName,
		airline.Code,
		airline.Country,
		airline.LogoImageID,
		airline.ContactPhone,
		airline.ContactEmail,
		airline.Description,
		airline.IsActive,
		airline.CreatedAt,
		airline.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create airline: %w", err)
	}
	return nil
}

// GetByID retrieves an airline by ID, returning nil when not found
func (r *PostgresAirlineRepository) GetByID(ctx context.Context, id string) (*domain.Airline, error) {
	query := `SELECT ` + airlineColumns + ` FROM airlines WHERE id = $1`
	return r.scanAirline(r.db.Pool().QueryRow(ctx, query, id))
}

// GetByCode retrieves an airline by its IATA code, returning nil when not found
func (r *PostgresAirlineRepository) GetByCode(ctx context.Context, code string) (*domain.Airline, error) {
	query := `SELECT ` + airlineColumns + ` FROM airlines WHERE UPPER(code) = UPPER($1)`
	return r.scanAirline(r.db.Pool().QueryRow(ctx, query, code))
}

// List retrieves all airlines ordered by name
func (r *PostgresAirlineRepository) List(ctx context.Context) ([]*domain.Airline, error) {
	query := `SELECT ` + airlineColumns + ` FROM airlines ORDER BY name`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query airlines: %w", err)
	}
	defer rows.Close()

	var airlines []*domain.Airline
	for rows.Next() {
		airline := &domain.Airline{}
		if err := r.scanAirlineFields(rows, airline); err != nil {
			return nil, err
		}
		airlines = append(airlines, airline)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate airlines: %w", err)
	}
	return airlines, nil
}

// Update persists the mutable fields of an airline
func (r *PostgresAirlineRepository) Update(ctx context.Context, airline *domain.Airline) error {
	query := `
		UPDATE airlines
		SET name = $2, english_name = $3, code = $4, country = $5, logo_image_id = $6,
		    contact_phone = $7, contact_email = $8, description = $9, is_active = $10,
		    updated_at = $11
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		airline.ID,
		airline.Name,
		airline.EnglishName,
		airline.Code,
		airline.Country,
		airline.LogoImageID,
		airline.ContactPhone,
		airline.ContactEmail,
		airline.Description,
		airline.IsActive,
		airline.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to update airline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an airline
func (r *PostgresAirlineRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM airlines WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete airline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PostgresAirlineRepository) scanAirline(row pgx.Row) (*domain.Airline, error) {
	airline := &domain.Airline{}
	if err := r.scanAirlineFields(row, airline); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return airline, nil
}

func (r *PostgresAirlineRepository) scanAirlineFields(row pgx.Row, airline *domain.Airline) error {
	err := row.Scan(
		&airline.ID, &airline.Name, &airline.EnglishName, &airline.Code,
		&airline.Country, &airline.LogoImageID, &airline.ContactPhone,
		&airline.ContactEmail, &airline.Description, &airline.IsActive,
		&airline.CreatedAt, &airline.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("failed to scan airline: %w", err)
	}
	return nil
}
