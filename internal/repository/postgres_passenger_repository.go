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

// PostgresPassengerRepository implements PassengerRepository using
// PostgreSQL. Search and pagination run in SQL because the passenger
// table grows without bound.
type PostgresPassengerRepository struct {
	db *database.PostgresDB
}

// NewPostgresPassengerRepository creates a new PostgreSQL passenger repository
func NewPostgresPassengerRepository(db *database.PostgresDB) *PostgresPassengerRepository {
	return &PostgresPassengerRepository{db: db}
}

// passengerSortColumns whitelists the sort keys the list endpoint accepts
var passengerSortColumns = map[string]string{
	"created_at":      "created_at",
	"first_name":      "first_name",
	"last_name":       "last_name",
	"document_number": "document_number",
	"birth_date":      "birth_date",
}

const passengerColumns = `
	id, reservation_id, first_name, last_name, latin_first_name, latin_last_name,
	document_type, document_number, birth_date, gender, age_category, notes,
	created_at, updated_at`

// Create inserts a new passenger
func (r *PostgresPassengerRepository) Create(ctx context.Context, passenger *domain.Passenger) error {
	query := `
		INSERT INTO passengers (
			id, reservation_id, first_name, last_name, latin_first_name, latin_last_name,
			document_type, document_number, birth_date, gender, age_category, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := r.db.Pool().Exec(ctx, query,
		passenger.ID,
		passenger.ReservationID,
		passenger.FirstName,
		passenger.LastName,
		passenger.LatinFirstName,
		passenger.LatinLastName,
		passenger.DocumentType,
		passenger.DocumentNumber,
		passenger.BirthDate,
		passenger.Gender,
		passenger.AgeCategory,
		passenger.Notes,
		passenger.CreatedAt,
		passenger.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create passenger: %w", err)
	}
	return nil
}

// GetByID retrieves a passenger by ID, returning nil when not found
func (r *PostgresPassengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE id = $1`

	passenger := &domain.Passenger{}
	err := scanPassenger(r.db.Pool().QueryRow(ctx, query, id), passenger)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return passenger, nil
}

// List retrieves one page of passengers matching the filter, plus the
// total number of matches
func (r *PostgresPassengerRepository) List(ctx context.Context, filter dto.PassengerListFilter) ([]*domain.Passenger, int64, error) {
	where, args := passengerWhere(filter)

	var total int64
	countQuery := `SELECT COUNT(*) FROM passengers` + where
	if err := r.db.Pool().QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count passengers: %w", err)
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	order := orderClause(passengerSortColumns, filter.SortBy, filter.SortOrder, "created_at DESC")
	query := fmt.Sprintf(
		`SELECT %s FROM passengers%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		passengerColumns, where, order, limitArg, offsetArg,
	)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query passengers: %w", err)
	}
	defer rows.Close()

	passengers, err := collectPassengers(rows)
	if err != nil {
		return nil, 0, err
	}
	return passengers, total, nil
}

// ListByReservation retrieves all passengers attached to a reservation
func (r *PostgresPassengerRepository) ListByReservation(ctx context.Context, reservationID string) ([]*domain.Passenger, error) {
	query := `SELECT ` + passengerColumns + ` FROM passengers WHERE reservation_id = $1 ORDER BY created_at`

	rows, err := r.db.Pool().Query(ctx, query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query passengers: %w", err)
	}
	defer rows.Close()

	return collectPassengers(rows)
}

// Update persists the mutable fields of a passenger
func (r *PostgresPassengerRepository) Update(ctx context.Context, passenger *domain.Passenger) error {
	query := `
		UPDATE passengers
		SET first_name = $2, last_name = $3, latin_first_name = $4, latin_last_name = $5,
		    document_type = $6, document_number = $7, birth_date = $8, gender = $9,
		    age_category = $10, notes = $11, updated_at = $12
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		passenger.ID,
		passenger.FirstName,
		passenger.LastName,
		passenger.LatinFirstName,
		passenger.LatinLastName,
		passenger.DocumentType,
		passenger.DocumentNumber,
		passenger.BirthDate,
		passenger.Gender,
		passenger.AgeCategory,
		passenger.Notes,
		passenger.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update passenger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a passenger
func (r *PostgresPassengerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM passengers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete passenger: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// passengerWhere builds the WHERE clause shared by the count and page
// queries so both always see the same match set
func passengerWhere(filter dto.PassengerListFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(first_name ILIKE $%d OR last_name ILIKE $%d OR latin_first_name ILIKE $%d OR latin_last_name ILIKE $%d OR document_number ILIKE $%d)`,
			n, n, n, n, n,
		))
	}
	if filter.ReservationID != "" {
		args = append(args, filter.ReservationID)
		conds = append(conds, fmt.Sprintf("reservation_id = $%d", len(args)))
	}
	if filter.DocumentType != "" {
		args = append(args, filter.DocumentType)
		conds = append(conds, fmt.Sprintf("document_type = $%d", len(args)))
	}
	if filter.AgeCategory != "" {
		args = append(args, filter.AgeCategory)
		conds = append(conds, fmt.Sprintf("age_category = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func collectPassengers(rows pgx.Rows) ([]*domain.Passenger, error) {
	var passengers []*domain.Passenger
	for rows.Next() {
		passenger := &domain.Passenger{}
		if err := scanPassenger(rows, passenger); err != nil {
			return nil, err
		}
		passengers = append(passengers, passenger)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate passengers: %w", err)
	}
	return passengers, nil
}

func scanPassenger(row pgx.Row, passenger *domain.Passenger) error {
	err := row.Scan(
		&passenger.ID, &passenger.ReservationID,
		&passenger.FirstName, &passenger.LastName,
		&passenger.LatinFirstName, &passenger.LatinLastName,
		&passenger.DocumentType, &passenger.DocumentNumber,
		&passenger.BirthDate, &passenger.Gender, &passenger.AgeCategory,
		&passenger.Notes, &passenger.CreatedAt, &passenger.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return pgx.ErrNoRows
		}
		return fmt.Errorf("failed to scan passenger: %w", err)
	}
	return nil
}
