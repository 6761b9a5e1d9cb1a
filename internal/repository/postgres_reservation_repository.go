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

// PostgresReservationRepository implements ReservationRepository using PostgreSQL
type PostgresReservationRepository struct {
	db *database.PostgresDB
}

// NewPostgresReservationRepository creates a new PostgreSQL reservation repository
func NewPostgresReservationRepository(db *database.PostgresDB) *PostgresReservationRepository {
	return &PostgresReservationRepository{db: db}
}

const reservationSelect = `
	SELECT r.id, r.package_id, COALESCE(p.name, ''), r.status, r.booking_code,
	       r.passenger_count, r.contact_name, r.contact_phone, r.created_by,
	       r.created_at, r.updated_at
	FROM reservations r
	LEFT JOIN packages p ON p.id = r.package_id`

// Create inserts a new reservation
func (r *PostgresReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		INSERT INTO reservations (
			id, package_id, status, booking_code, passenger_count,
			contact_name, contact_phone, created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Pool().Exec(ctx, query,
		reservation.ID,
		reservation.PackageID,
		string(reservation.Status),
		reservation.BookingCode,
		reservation.PassengerCount,
		reservation.ContactName,
		reservation.ContactPhone,
		reservation.CreatedBy,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolationCode {
			return ErrDuplicateKey
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// GetByID retrieves a reservation by ID, returning nil when not found
func (r *PostgresReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	return r.scanReservation(r.db.Pool().QueryRow(ctx, reservationSelect+` WHERE r.id = $1`, id))
}

// GetByBookingCode retrieves a reservation by its booking code, returning
// nil when not found
func (r *PostgresReservationRepository) GetByBookingCode(ctx context.Context, code string) (*domain.Reservation, error) {
	return r.scanReservation(r.db.Pool().QueryRow(ctx, reservationSelect+` WHERE r.booking_code = $1`, code))
}

// List retrieves all reservations, newest first
func (r *PostgresReservationRepository) List(ctx context.Context) ([]*domain.Reservation, error) {
	rows, err := r.db.Pool().Query(ctx, reservationSelect+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*domain.Reservation
	for rows.Next() {
		reservation := &domain.Reservation{}
		if err := r.scanReservationFields(rows, reservation); err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reservations: %w", err)
	}
	return reservations, nil
}

// Update persists the mutable fields of a reservation
func (r *PostgresReservationRepository) Update(ctx context.Context, reservation *domain.Reservation) error {
	query := `
		UPDATE reservations
		SET status = $2, passenger_count = $3, contact_name = $4,
		    contact_phone = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		reservation.ID,
		string(reservation.Status),
		reservation.PassengerCount,
		reservation.ContactName,
		reservation.ContactPhone,
		reservation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a reservation
func (r *PostgresReservationRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PostgresReservationRepository) scanReservation(row pgx.Row) (*domain.Reservation, error) {
	reservation := &domain.Reservation{}
	if err := r.scanReservationFields(row, reservation); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return reservation, nil
}

func (r *PostgresReservationRepository) scanReservationFields(row pgx.Row, reservation *domain.Reservation) error {
	var status string
	err := row.Scan(
		&reservation.ID, &reservation.PackageID, &reservation.PackageName,
		&status, &reservation.BookingCode, &reservation.PassengerCount,
		&reservation.ContactName, &reservation.ContactPhone, &reservation.CreatedBy,
		&reservation.CreatedAt, &reservation.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("failed to scan reservation: %w", err)
	}
	reservation.Status = domain.ReservationStatus(status)
	return nil
}
