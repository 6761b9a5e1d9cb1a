package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// PostgresRouteRepository implements RouteRepository using PostgreSQL
type PostgresRouteRepository struct {
	db *database.PostgresDB
}

// NewPostgresRouteRepository creates a new PostgreSQL route repository
func NewPostgresRouteRepository(db *database.PostgresDB) *PostgresRouteRepository {
	return &PostgresRouteRepository{db: db}
}

const routeSelect = `
	SELECT r.id, r.origin_city_id, r.destination_city_id,
	       COALESCE(o.name, ''), COALESCE(d.name, ''),
	       r.description, r.is_active, r.created_at, r.updated_at
	FROM routes r
	LEFT JOIN cities o ON o.id = r.origin_city_id
	LEFT JOIN cities d ON d.id = r.destination_city_id`

// Create inserts a new route
func (r *PostgresRouteRepository) Create(ctx context.Context, route *domain.Route) error {
	query := `
		INSERT INTO routes (id, origin_city_id, destination_city_id, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Pool().Exec(ctx, query,
		route.ID,
		route.OriginCityID,
		route.DestinationCityID,
		route.Description,
		route.IsActive,
		route.CreatedAt,
		route.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create route: %w", err)
	}
	return nil
}

// GetByID retrieves a route with its endpoint city names resolved,
// returning nil when not found
func (r *PostgresRouteRepository) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	query := routeSelect + ` WHERE r.id = $1`

	route := &domain.Route{}
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&route.ID, &route.OriginCityID, &route.DestinationCityID,
		&route.Origin, &route.Destination,
		&route.Description, &route.IsActive, &route.CreatedAt, &route.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan route: %w", err)
	}
	return route, nil
}

// List retrieves all routes with endpoint city names resolved
func (r *PostgresRouteRepository) List(ctx context.Context) ([]*domain.Route, error) {
	query := routeSelect + ` ORDER BY r.created_at DESC`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query routes: %w", err)
	}
	defer rows.Close()

	var routes []*domain.Route
	for rows.Next() {
		route := &domain.Route{}
		if err := rows.Scan(
			&route.ID, &route.OriginCityID, &route.DestinationCityID,
			&route.Origin, &route.Destination,
			&route.Description, &route.IsActive, &route.CreatedAt, &route.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan route: %w", err)
		}
		routes = append(routes, route)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate routes: %w", err)
	}
	return routes, nil
}

// Update persists the mutable fields of a route
func (r *PostgresRouteRepository) Update(ctx context.Context, route *domain.Route) error {
	query := `
		UPDATE routes
		SET origin_city_id = $2, destination_city_id = $3, description = $4,
		    is_active = $5, updated_at = $6
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		route.ID,
		route.OriginCityID,
		route.DestinationCityID,
		route.Description,
		route.IsActive,
		route.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a route
func (r *PostgresRouteRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
