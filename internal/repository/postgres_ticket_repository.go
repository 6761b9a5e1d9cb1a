package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/domain"
	"github.com/alixtron0/tour-backoffice/internal/dto"
)

// PostgresTicketRepository implements TicketRepository using PostgreSQL.
// The flight, airline snapshot and passenger list are stored as JSONB so
// a ticket always renders exactly as it was issued.
type PostgresTicketRepository struct {
	db *database.PostgresDB
}

// NewPostgresTicketRepository creates a new PostgreSQL ticket repository
func NewPostgresTicketRepository(db *database.PostgresDB) *PostgresTicketRepository {
	return &PostgresTicketRepository{db: db}
}

// ticketSortColumns whitelists the sort keys the list endpoint accepts
var ticketSortColumns = map[string]string{
	"created_at":    "created_at",
	"ticket_number": "ticket_number",
	"booking_code":  "booking_code",
}

const ticketColumns = `
	id, ticket_number, booking_code, flight, airline, passengers,
	created_by, created_at, updated_at`

// Create inserts a new ticket
func (r *PostgresTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	flightJSON, err := json.Marshal(ticket.Flight)
	if err != nil {
		return fmt.Errorf("failed to marshal flight: %w", err)
	}
	var airlineJSON []byte
	if ticket.Airline != nil {
		if airlineJSON, err = json.Marshal(ticket.Airline); err != nil {
			return fmt.Errorf("failed to marshal airline: %w", err)
		}
	}
	passengersJSON, err := json.Marshal(ticket.Passengers)
	if err != nil {
		return fmt.Errorf("failed to marshal passengers: %w", err)
	}

	query := `
		INSERT INTO tickets (
			id, ticket_number, booking_code, flight, airline, passengers,
			created_by, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.db.Pool().Exec(ctx, query,
		ticket.ID,
		ticket.TicketNumber,
		ticket.BookingCode,
		flightJSON,
		airlineJSON,
		passengersJSON,
		ticket.CreatedBy,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

// GetByID retrieves a ticket by ID, returning nil when not found
func (r *PostgresTicketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`

	ticket, err := r.scanTicket(r.db.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return ticket, nil
}

// List retrieves one page of tickets matching the filter, plus the total
// number of matches
func (r *PostgresTicketRepository) List(ctx context.Context, filter dto.TicketListFilter) ([]*domain.Ticket, int64, error) {
	var conds []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(ticket_number ILIKE $%d OR booking_code ILIKE $%d OR passengers::text ILIKE $%d)`,
			n, n, n,
		))
	}
	if filter.BookingCode != "" {
		args = append(args, filter.BookingCode)
		conds = append(conds, fmt.Sprintf("booking_code = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM tickets`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	order := orderClause(ticketSortColumns, filter.SortBy, filter.SortOrder, "created_at DESC")
	query := fmt.Sprintf(
		`SELECT %s FROM tickets%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		ticketColumns, where, order, len(args)+1, len(args)+2,
	)
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.db.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*domain.Ticket
	for rows.Next() {
		ticket, err := r.scanTicket(rows)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, ticket)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate tickets: %w", err)
	}
	return tickets, total, nil
}

// Delete removes a ticket
func (r *PostgresTicketRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *PostgresTicketRepository) scanTicket(row pgx.Row) (*domain.Ticket, error) {
	ticket := &domain.Ticket{}
	var flightJSON, airlineJSON, passengersJSON []byte

	err := row.Scan(
		&ticket.ID, &ticket.TicketNumber, &ticket.BookingCode,
		&flightJSON, &airlineJSON, &passengersJSON,
		&ticket.CreatedBy, &ticket.CreatedAt, &ticket.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan ticket: %w", err)
	}

	if err := json.Unmarshal(flightJSON, &ticket.Flight); err != nil {
		return nil, fmt.Errorf("failed to unmarshal flight: %w", err)
	}
	if len(airlineJSON) > 0 {
		ticket.Airline = &domain.AirlineSnapshot{}
		if err := json.Unmarshal(airlineJSON, ticket.Airline); err != nil {
			return nil, fmt.Errorf("failed to unmarshal airline: %w", err)
		}
	}
	if err := json.Unmarshal(passengersJSON, &ticket.Passengers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal passengers: %w", err)
	}
	return ticket, nil
}
