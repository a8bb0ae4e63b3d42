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

// LegRepo defines the persistence operations for travel legs.
// A leg is stored as a kind plus a JSONB payload; decoding the payload into
// its typed struct is the service layer's job.
type LegRepo interface {
	// Create inserts a leg under the given travel request.
	Create(ctx context.Context, leg domain.LegRecord) (domain.LegRecord, error)

	// ListByRequest returns all legs of a travel request in insertion order.
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.LegRecord, error)

	// Delete removes a leg, scoped to the given travel request.
	// Returns domain.ErrNotFound if no leg with that ID exists under that request.
	Delete(ctx context.Context, requestID, legID uuid.UUID) error
}

// pgLegRepo is the Postgres implementation of LegRepo.
type pgLegRepo struct {
	db db
}

// NewLegRepo constructs a LegRepo backed by the provided db connection.
func NewLegRepo(db db) LegRepo {
	return &pgLegRepo{db: db}
}

func (r *pgLegRepo) Create(ctx context.Context, leg domain.LegRecord) (domain.LegRecord, error) {
	const q = `
		INSERT INTO travel_legs (travel_request_id, kind, payload)
		VALUES (@travel_request_id, @kind, @payload)
		RETURNING id, travel_request_id, kind, payload, created_at`

	args := pgx.NamedArgs{
		"travel_request_id": leg.TravelRequestID,
		"kind":              string(leg.Kind),
		// string, not []byte: pgx would otherwise send bytea for a jsonb column.
		"payload": string(leg.Payload),
	}

	result, err := scanLeg(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.LegRecord{}, fmt.Errorf("repo.LegRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLegRepo) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.LegRecord, error) {
	const q = `
		SELECT id, travel_request_id, kind, payload, created_at
		FROM travel_legs
		WHERE travel_request_id = @travel_request_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"travel_request_id": requestID})
	if err != nil {
		return nil, fmt.Errorf("repo.LegRepo.ListByRequest: %w", err)
	}
	defer rows.Close()

	var legs []domain.LegRecord
	for rows.Next() {
		l, err := scanLeg(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LegRepo.ListByRequest: scan: %w", err)
		}
		legs = append(legs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LegRepo.ListByRequest: rows: %w", err)
	}
	return legs, nil
}

func (r *pgLegRepo) Delete(ctx context.Context, requestID, legID uuid.UUID) error {
	const q = `DELETE FROM travel_legs WHERE id = @id AND travel_request_id = @travel_request_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": legID, "travel_request_id": requestID})
	if err != nil {
		return fmt.Errorf("repo.LegRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.LegRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func scanLeg(s scanner) (domain.LegRecord, error) {
	var (
		l         domain.LegRecord
		id        pgtype.UUID
		requestID pgtype.UUID
		kind      string
	)

	err := s.Scan(&id, &requestID, &kind, &l.Payload, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.LegRecord{}, domain.ErrNotFound
		}
		return domain.LegRecord{}, err
	}

	l.ID = uuid.UUID(id.Bytes)
	l.TravelRequestID = uuid.UUID(requestID.Bytes)
	l.Kind = domain.LegKind(kind)
	return l, nil
}
