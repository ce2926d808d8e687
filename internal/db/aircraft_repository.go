package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mtilvans/flightboard/pkg/card"
)

// AircraftRepository resolves transponder addresses to airframe
// reference data for the popup detail surface. It implements
// card.DetailSource.
type AircraftRepository struct {
	db *DB
}

// NewAircraftRepository creates a new aircraft repository.
func NewAircraftRepository(db *DB) *AircraftRepository {
	return &AircraftRepository{db: db}
}

// AircraftDetail returns the enrichment record for a hex address.
// Returns (nil, nil) when nothing is known about the address.
func (r *AircraftRepository) AircraftDetail(ctx context.Context, hex string) (*card.Detail, error) {
	var detail card.Detail
	var registration, typeDesc, operator, route sql.NullString

	err := r.db.QueryRowContext(ctx,
		`SELECT registration, type_description, operator, route
		 FROM airframes
		 WHERE icao = $1`,
		strings.ToLower(hex),
	).Scan(&registration, &typeDesc, &operator, &route)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query airframe %s: %w", hex, err)
	}

	detail.Registration = registration.String
	detail.TypeDescription = typeDesc.String
	detail.Operator = operator.String
	detail.Route = route.String
	return &detail, nil
}

// UpsertAirframe inserts or updates one airframe reference record.
// Used by operators seeding the enrichment database.
func (r *AircraftRepository) UpsertAirframe(ctx context.Context, icao, registration, typeDesignator, typeDescription, operator, route string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO airframes (icao, registration, type_designator, type_description, operator, route, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (icao) DO UPDATE SET
		     registration = EXCLUDED.registration,
		     type_designator = EXCLUDED.type_designator,
		     type_description = EXCLUDED.type_description,
		     operator = EXCLUDED.operator,
		     route = EXCLUDED.route,
		     updated_at = NOW()`,
		strings.ToLower(icao), registration, typeDesignator, typeDescription, operator, route,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert airframe %s: %w", icao, err)
	}
	return nil
}
