package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/alixtron0/tour-backoffice/internal/database"
	"github.com/alixtron0/tour-backoffice/internal/domain"
)

// PostgresPackageRepository implements PackageRepository using PostgreSQL.
// Transport legs, room pricing, hotels and services are stored as JSONB.
type PostgresPackageRepository struct {
	db *database.PostgresDB
}

// NewPostgresPackageRepository creates a new PostgreSQL package repository
func NewPostgresPackageRepository(db *database.PostgresDB) *PostgresPackageRepository {
	return &PostgresPackageRepository{db: db}
}

const packageColumns = `
	id, name, route_id, start_date, end_date, transport_legs, rooms,
	hotels, services, base_price, is_visible, is_active, created_by,
	created_at, updated_at`

// Create inserts a new package
func (r *PostgresPackageRepository) Create(ctx context.Context, pkg *domain.Package) error {
	legs, rooms, hotels, services, err := marshalPackageJSON(pkg)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO packages (
			id, name, route_id, start_date, end_date, transport_legs, rooms,
			hotels, services, base_price, is_visible, is_active, created_by,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.db.Pool().Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.RouteID,
		pkg.StartDate,
		pkg.EndDate,
		legs,
		rooms,
		hotels,
		services,
		pkg.BasePrice,
		pkg.IsVisible,
		pkg.IsActive,
		pkg.CreatedBy,
		pkg.CreatedAt,
		pkg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create package: %w", err)
	}
	return nil
}

// GetByID retrieves a package by ID, returning nil when not found
func (r *PostgresPackageRepository) GetByID(ctx context.Context, id string) (*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`

	pkg, err := r.scanPackage(r.db.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return pkg, nil
}

// List retrieves all packages ordered by start date, newest first
func (r *PostgresPackageRepository) List(ctx context.Context) ([]*domain.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages ORDER BY start_date DESC`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	var packages []*domain.Package
	for rows.Next() {
		pkg, err := r.scanPackage(rows)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate packages: %w", err)
	}
	return packages, nil
}

// Update persists the mutable fields of a package
func (r *PostgresPackageRepository) Update(ctx context.Context, pkg *domain.Package) error {
	legs, rooms, hotels, services, err := marshalPackageJSON(pkg)
	if err != nil {
		return err
	}

	query := `
		UPDATE packages
		SET name = $2, route_id = $3, start_date = $4, end_date = $5,
		    transport_legs = $6, rooms = $7, hotels = $8, services = $9,
		    base_price = $10, is_visible = $11, is_active = $12, updated_at = $13
		WHERE id = $1`

	tag, err := r.db.Pool().Exec(ctx, query,
		pkg.ID,
		pkg.Name,
		pkg.RouteID,
		pkg.StartDate,
		pkg.EndDate,
		legs,
		rooms,
		hotels,
		services,
		pkg.BasePrice,
		pkg.IsVisible,
		pkg.IsActive,
		pkg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a package
func (r *PostgresPackageRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool().Exec(ctx, `DELETE FROM packages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete package: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func marshalPackageJSON(pkg *domain.Package) (legs, rooms, hotels, services []byte, err error) {
	if legs, err = json.Marshal(pkg.TransportLegs); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal transport legs: %w", err)
	}
	if rooms, err = json.Marshal(pkg.Rooms); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal rooms: %w", err)
	}
	if hotels, err = json.Marshal(pkg.Hotels); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal hotels: %w", err)
	}
	if services, err = json.Marshal(pkg.Services); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to marshal services: %w", err)
	}
	return legs, rooms, hotels, services, nil
}

func (r *PostgresPackageRepository) scanPackage(row pgx.Row) (*domain.Package, error) {
	pkg := &domain.Package{}
	var legsJSON, roomsJSON, hotelsJSON, servicesJSON []byte

	err := row.Scan(
		&pkg.ID, &pkg.Name, &pkg.RouteID, &pkg.StartDate, &pkg.EndDate,
		&legsJSON, &roomsJSON, &hotelsJSON, &servicesJSON,
		&pkg.BasePrice, &pkg.IsVisible, &pkg.IsActive, &pkg.CreatedBy,
		&pkg.CreatedAt, &pkg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan package: %w", err)
	}

	if err := json.Unmarshal(legsJSON, &pkg.TransportLegs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transport legs: %w", err)
	}
	if err := json.Unmarshal(roomsJSON, &pkg.Rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rooms: %w", err)
	}
	if err := json.Unmarshal(hotelsJSON, &pkg.Hotels); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hotels: %w", err)
	}
	if err := json.Unmarshal(servicesJSON, &pkg.Services); err != nil {
		return nil, fmt.Errorf("failed to unmarshal services: %w", err)
	}
	return pkg, nil
}
