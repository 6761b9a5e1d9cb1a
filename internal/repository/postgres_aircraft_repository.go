package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// PostgresAircraftRepository implements AircraftRepository using PostgreSQL
type PostgresAircraftRepository struct {
	db *database.PostgresDB
}

// NewPostgresAircraftRepository creates a new PostgreSQL aircraft repository
func NewPostgresAircraftRepository(db *database.PostgresDB) *PostgresAircraftRepository {
	return &PostgresAircraftRepository{db: db}
}

const aircraftSelect = `
	SELECT a.id, a.model, a.manufacturer, a.airline_id, COALESCE(al.name, ''),
	       a.economy_seats, a.business_seats, a.first_seats,
	       a.cruise_speed, a.range_km, a.is_active, a.created_at, a.updated_at
	FROM aircraft a
	LEFT JOIN airlines al ON al.id = a.airline_id`

// Create inserts a new aircraft
func (r *PostgresAircraftRepository) Create(ctx context.Context, aircraft *domain.Aircraft) error {
	query := `
		INSERT INTO aircraft (
			id, model, manufacturer, airline_id, economy_seats, business_seats,
			first_seats, cruise_speed, range_km, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.Pool().Exec(ctx, query,
		aircraft.ID,
		aircraft.Model,
		aircraft.Manufacturer,
		aircraft.AirlineID,
		aircraft.EconomySeats,
		aircraft.BusinessSeats,
		aircraft.FirstSeats,
		aircraft.CruiseSpeed,
		aircraft.RangeKM,
		aircraft.IsActive,
		aircraft.CreatedAt,
		aircraft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create aircraft: %w", err)
	}
	return nil
}

// GetByID retrieves an aircraft by ID, returning nil when not found
func (r *PostgresAircraftRepository) GetByID(ctx context.Context, id string) (*domain.Aircraft, error) {
	query := aircraftSelect + ` WHERE a.id = $1`

	aircraft := &domain.Aircraft{}
	err := r.scanAircraft(r.db.Pool().QueryRow(ctx, query, id), aircraft)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return aircraft, nil
}

// List retrieves all aircraft with their airline name resolved
func (r *PostgresAircraftRepository) List(ctx context.Context) ([]*domain.Aircraft, error) {
	return r.queryAircraft(ctx, aircraftSelect+` ORDER BY a.model`)
}

// ListByAirline retrieves all aircraft belonging to one airline
func (r *PostgresAircraftRepository) ListByAirline(ctx context.Context, airlineID string) ([]*domain.Aircraft, error) {
	return r.queryAircraft(ctx, aircraftSelect+` WHERE a.airline_id = $1 ORDER BY a.model`, airlineID)
}

// Update persists the mutable fields of an aircraft
func (r *PostgresAircraftRepository) Update(ctx context.Context, aircraft *domain.Aircraft) error {
	query := `
		UPDATE aircraft
		SET model = $2, manufacturer = $3, airline_id = $4, economy_seats = $5,
		    business_seats = $6, first_seats = $7, cruise_speed = $8, range_km = $9,
		    is_active = $10, updated_at = $11
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		aircraft.ID,
		aircraft.Model,
		aircraft.Manufacturer,
		aircraft.AirlineID,
		aircraft.EconomySeats,
		aircraft.BusinessSeats,
		aircraft.FirstSeats,
		aircraft.CruiseSpeed,
		aircraft.RangeKM,
		aircraft.IsActive,
		aircraft.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update aircraft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes an aircraft
func (r *PostgresAircraftRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM aircraft WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete aircraft: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PostgresAircraftRepository) queryAircraft(ctx context.Context, query string, args ...any) ([]*domain.Aircraft, error) {
	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query aircraft: %w", err)
	}
	defer rows.Close()

	var list []*domain.Aircraft
	for rows.Next() {
		aircraft := &domain.Aircraft{}
		if err := r.scanAircraft(rows, aircraft); err != nil {
			return nil, err
		}
		list = append(list, aircraft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate aircraft: %w", err)
	}
	return list, nil
}

func (r *PostgresAircraftRepository) scanAircraft(row pgx.Row, aircraft *domain.Aircraft) error {
	err := row.Scan(
		&aircraft.ID, &aircraft.Model, &aircraft.Manufacturer,
		&aircraft.AirlineID, &aircraft.AirlineName,
		&aircraft.EconomySeats, &aircraft.BusinessSeats, &aircraft.FirstSeats,
		&aircraft.CruiseSpeed, &aircraft.RangeKM, &aircraft.IsActive,
		&aircraft.CreatedAt, &aircraft.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("failed to scan aircraft: %w", err)
	}
	return nil
}
