package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-desk/internal/domain"
)

// PassengerRepo defines the persistence operations for Passengers.
// All operations are scoped by travel request ID to enforce ownership.
type PassengerRepo interface {
	// Create inserts a passenger. Returns domain.ErrConflict if the request
	// already has a main passenger and the new one is also flagged main.
	Create(ctx context.Context, p domain.Passenger) (domain.Passenger, error)

	// ListByRequest returns the passengers of a request, main passenger first.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Passenger, error)

	// Delete removes a passenger, scoped to the given travel request.
	// Returns domain.ErrNotFound if no such passenger exists under that request.
	Delete(ctx context.Context, requestID, passengerID uuid.UUID) error
}

// pgPassengerRepo is the Postgres implementation of PassengerRepo.
type pgPassengerRepo struct {
	db db
}

// NewPassengerRepo constructs a PassengerRepo backed by the provided db connection.
func NewPassengerRepo(db db) PassengerRepo {
	return &pgPassengerRepo{db: db}
}

func (r *pgPassengerRepo) Create(ctx context.Context, p domain.Passenger) (domain.Passenger, error) {
	const q = `
		INSERT INTO passengers (travel_request_id, full_name, is_main)
		VALUES (@travel_request_id, @full_name, @is_main)
		RETURNING id, travel_request_id, full_name, is_main, created_at`

	args := pgx.NamedArgs{
		"travel_request_id": p.TravelRequestID,
		"full_name":         p.FullName,
		"is_main":           p.IsMain,
	}

	result, err := scanPassenger(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("repo.PassengerRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

func (r *pgPassengerRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Passenger, error) {
	const q = `
		SELECT id, travel_request_id, full_name, is_main, created_at
		FROM passengers
		WHERE travel_request_id = @travel_request_id
		ORDER BY is_main DESC, created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"travel_request_id": requestID})
	if err != nil {
		return nil, fmt.Errorf("repo.PassengerRepo.ListByRequest: %w", err)
	}
	defer rows.Close()

	var out []domain.Passenger
	for rows.Next() {
		p, err := scanPassenger(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.PassengerRepo.ListByRequest: scan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PassengerRepo.ListByRequest: rows: %w", err)
	}
	return out, nil
}

func (r *pgPassengerRepo) Delete(ctx context.Context, requestID, passengerID uuid.UUID) error {
	const q = `DELETE FROM passengers WHERE id = @id AND travel_request_id = @travel_request_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": passengerID, "travel_request_id": requestID})
	if err != nil {
		return fmt.Errorf("repo.PassengerRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PassengerRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanPassenger(s scanner) (domain.Passenger, error) {
	var (
		p         domain.Passenger
		id        pgtype.UUID
		requestID pgtype.UUID
	)

	err := s.Scan(&id, &requestID, &p.FullName, &p.IsMain, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Passenger{}, domain.ErrNotFound
		}
		return domain.Passenger{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TravelRequestID = uuid.UUID(requestID.Bytes)
	return p, nil
}
