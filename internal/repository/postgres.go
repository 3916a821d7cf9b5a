package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nursultantorobaev/selfhub-services/internal/models"
)

// FetchAppointment retrieves a single appointment joined with its business
// and service fields, shaped for calendar export. It returns ErrNotFound
// when no such appointment exists.
func (r *Repository) FetchAppointment(ctx context.Context, id int64) (models.Appointment, error) {
	query := `
		SELECT
			a.appointment_id,
			to_char(a.appointment_date, 'YYYY-MM-DD'),
			to_char(a.start_time, 'HH24:MI'),
			COALESCE(s.duration_minutes, 0),
			COALESCE(s.name, ''),
			b.name,
			COALESCE(b.address, ''),
			COALESCE(b.city, ''),
			COALESCE(b.state, ''),
			COALESCE(b.zip, ''),
			COALESCE(a.customer_name, ''),
			COALESCE(a.customer_email, ''),
			COALESCE(a.notes, '')
		FROM public.appointments a
		JOIN public.businesses b ON b.business_id = a.business_id
		LEFT JOIN public.services s ON s.service_id = a.service_id
		WHERE a.appointment_id = $1;
	`

	var appt models.Appointment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&appt.ID,
		&appt.Date,
		&appt.StartTime,
		&appt.DurationMinutes,
		&appt.ServiceName,
		&appt.BusinessName,
		&appt.BusinessAddress,
		&appt.BusinessCity,
		&appt.BusinessState,
		&appt.BusinessZip,
		&appt.CustomerName,
		&appt.CustomerEmail,
		&appt.Notes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Appointment{}, fmt.Errorf("%w: appointment %d", ErrNotFound, id)
		}
		return models.Appointment{}, fmt.Errorf("failed to fetch appointment: %w", err)
	}

	return appt, nil
}

// FetchBusinessesMissingCoordinates retrieves businesses that still need
// geocoding: no latitude yet, fewer than 5 attempts, and a non-empty
// address. Results are ordered by creation date and limited to the
// specified count.
func (r *Repository) FetchBusinessesMissingCoordinates(
	ctx context.Context,
	limit int,
) ([]models.Business, error) {
	var businesses []models.Business
	query := `
		SELECT business_id, address
		FROM public.businesses
		WHERE
			latitude IS NULL
			AND geocoding_attempts < 5
			AND address IS NOT NULL AND address <> ''
		ORDER BY created_at ASC
		LIMIT $1;
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query businesses without coordinates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var business models.Business
		if errScan := rows.Scan(&business.ID, &business.Address); errScan != nil {
			return nil, fmt.Errorf("failed to scan business without coordinates: %w", errScan)
		}
		r.log.DebugContext(ctx, "Found a business awaiting coordinates",
			"ID", business.ID, "Address", business.Address)
		businesses = append(businesses, business)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return businesses, nil
}

// UpdateBusinessCoordinates updates the latitude and longitude of a
// business identified by businessID and clears the geocoding error. It
// returns an error if the update fails.
func (r *Repository) UpdateBusinessCoordinates(
	ctx context.Context,
	businessID int,
	point models.GeoPoint,
) error {
	query := `
		UPDATE businesses
		SET
			latitude = $1,
			longitude = $2,
			geocoding_error = NULL
		WHERE
			business_id = $3;
	`

	_, err := r.db.Exec(ctx, query, point.Latitude, point.Longitude, businessID)
	if err != nil {
		return fmt.Errorf("failed to update business coordinates: %w", err)
	}

	return nil
}

// IncrementGeocodeFailure increments the geocoding attempt count for a
// specific business identified by businessID and records the associated
// error message. If the update operation fails, it returns an error with
// additional context.
func (r *Repository) IncrementGeocodeFailure(ctx context.Context, businessID int, errMsg string) error {
	query := `
		UPDATE businesses
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE business_id = $2;
	`

	_, err := r.db.Exec(ctx, query, errMsg, businessID)
	if err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}
