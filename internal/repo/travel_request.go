// Package repo contains all database access logic for the travel desk.
// Each resource has its own file with an interface and a Postgres implementation.
// Only SQL and type mapping live here.
package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-desk/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// psql builds Postgres-flavoured ($1, $2, ...) statements.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// uniqueViolation is the SQLSTATE Postgres reports for a unique constraint.
const uniqueViolation = "23505"

// TravelRequestRepo defines the persistence operations for the scalar part
// of a TravelRequest. Legs and passengers have their own repos.
type TravelRequestRepo interface {
	// Create inserts a new travel request and returns the persisted record
	// (with DB-generated id, created_at, and updated_at populated).
	// Returns domain.ErrConflict if the request number is already taken.
	Create(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error)

	// GetByID retrieves a single travel request by its UUID primary key.
	// Returns domain.ErrNotFound if no request with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelRequest, error)

	// List returns all travel requests ordered by trip_start_date descending.
	List(ctx context.Context) ([]domain.TravelRequest, error)

	// ListPaged returns one page of travel requests matching the filter and
	// the total number of matches.
	ListPaged(ctx context.Context, f domain.TravelRequestFilter, p domain.PaginationParams) ([]domain.TravelRequest, int64, error)

	// Update overwrites the mutable fields of an existing request and returns the
	// updated record. Returns domain.ErrNotFound if no request with that ID exists.
	Update(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error)

	// Delete removes a travel request (and, by cascade, its legs and passengers).
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgTravelRequestRepo is the Postgres implementation of TravelRequestRepo.
type pgTravelRequestRepo struct {
	db db
}

// NewTravelRequestRepo constructs a TravelRequestRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewTravelRequestRepo(db db) TravelRequestRepo {
	return &pgTravelRequestRepo{db: db}
}

var travelRequestColumns = []string{
	"id", "request_number", "title", "trip_start_date", "trip_end_date", "notes", "created_at", "updated_at",
}

// Create inserts a new travel request row and returns the full persisted record.
func (r *pgTravelRequestRepo) Create(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error) {
	const q = `
		INSERT INTO travel_requests (request_number, title, trip_start_date, trip_end_date, notes)
		VALUES (@request_number, @title, @trip_start_date, @trip_end_date, @notes)
		RETURNING id, request_number, title, trip_start_date, trip_end_date, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"request_number":  req.RequestNumber,
		"title":           req.Title,
		"trip_start_date": req.TripStartDate, // nil becomes NULL
		"trip_end_date":   req.TripEndDate,
		"notes":           req.Notes,
	}

	result, err := scanTravelRequest(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelRequest{}, fmt.Errorf("repo.TravelRequestRepo.Create: %w", mapWriteErr(err))
	}
	return result, nil
}

// GetByID retrieves a travel request by primary key.
func (r *pgTravelRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelRequest, error) {
	const q = `
		SELECT id, request_number, title, trip_start_date, trip_end_date, notes, created_at, updated_at
		FROM travel_requests
		WHERE id = @id`

	result, err := scanTravelRequest(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.TravelRequest{}, fmt.Errorf("repo.TravelRequestRepo.GetByID: %w", err)
	}
	return result, nil
}

// List returns all travel requests, most recent trip first. Requests without
// a start date sort last.
func (r *pgTravelRequestRepo) List(ctx context.Context) ([]domain.TravelRequest, error) {
	const q = `
		SELECT id, request_number, title, trip_start_date, trip_end_date, notes, created_at, updated_at
		FROM travel_requests
		ORDER BY trip_start_date DESC NULLS LAST, request_number`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelRequestRepo.List: %w", err)
	}
	reqs, err := collectTravelRequests(rows)
	if err != nil {
		return nil, fmt.Errorf("repo.TravelRequestRepo.List: %w", err)
	}
	return reqs, nil
}

// ListPaged composes the optional filters with squirrel and returns one page
// plus the unpaged match count.
func (r *pgTravelRequestRepo) ListPaged(ctx context.Context, f domain.TravelRequestFilter, p domain.PaginationParams) ([]domain.TravelRequest, int64, error) {
	where := travelRequestWhere(f)

	countSQL, countArgs, err := psql.Select("count(*)").From("travel_requests").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRequestRepo.ListPaged: build count: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRequestRepo.ListPaged: count: %w", err)
	}

	pageSQL, pageArgs, err := psql.Select(travelRequestColumns...).
		From("travel_requests").
		Where(where).
		OrderBy("trip_start_date DESC NULLS LAST", "request_number").
		Limit(uint64(p.Limit)).
		Offset(uint64(p.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRequestRepo.ListPaged: build page: %w", err)
	}

	rows, err := r.db.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRequestRepo.ListPaged: %w", err)
	}
	reqs, err := collectTravelRequests(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TravelRequestRepo.ListPaged: %w", err)
	}
	return reqs, total, nil
}

// travelRequestWhere translates a filter into a squirrel predicate.
// An empty filter yields an empty conjunction, which squirrel renders as (1=1).
func travelRequestWhere(f domain.TravelRequestFilter) sq.And {
	where := sq.And{}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		where = append(where, sq.Or{
			sq.ILike{"request_number": pattern},
			sq.ILike{"title": pattern},
		})
	}
	// Overlap test against [From, To]; an open trip end counts as ongoing.
	if f.From != nil {
		where = append(where, sq.Or{
			sq.Eq{"trip_end_date": nil},
			sq.GtOrEq{"trip_end_date": dateOnly(*f.From)},
		})
	}
	if f.To != nil {
		where = append(where, sq.LtOrEq{"trip_start_date": dateOnly(*f.To)})
	}
	return where
}

// Update overwrites the mutable fields of a travel request and returns the updated record.
func (r *pgTravelRequestRepo) Update(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error) {
	const q = `
		UPDATE travel_requests
		SET request_number  = @request_number,
		    title           = @title,
		    trip_start_date = @trip_start_date,
		    trip_end_date   = @trip_end_date,
		    notes           = @notes,
		    updated_at      = now()
		WHERE id = @id
		RETURNING id, request_number, title, trip_start_date, trip_end_date, notes, created_at, updated_at`

	args := pgx.NamedArgs{
		"id":              req.ID,
		"request_number":  req.RequestNumber,
		"title":           req.Title,
		"trip_start_date": req.TripStartDate,
		"trip_end_date":   req.TripEndDate,
		"notes":           req.Notes,
	}

	result, err := scanTravelRequest(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TravelRequest{}, fmt.Errorf("repo.TravelRequestRepo.Update: %w", mapWriteErr(err))
	}
	return result, nil
}

// Delete removes a travel request by primary key.
func (r *pgTravelRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM travel_requests WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TravelRequestRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TravelRequestRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing the scan
// helpers to be reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanTravelRequest maps a single database row into a domain.TravelRequest.
// It handles the UUID and the nullable trip date conversions.
func scanTravelRequest(s scanner) (domain.TravelRequest, error) {
	var (
		t         domain.TravelRequest
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &t.RequestNumber, &t.Title, &startDate, &endDate, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TravelRequest{}, domain.ErrNotFound
		}
		return domain.TravelRequest{}, err
	}

	t.ID = uuid.UUID(id.Bytes)
	if startDate.Valid {
		sd := startDate.Time
		t.TripStartDate = &sd
	}
	if endDate.Valid {
		ed := endDate.Time
		t.TripEndDate = &ed
	}
	return t, nil
}

func collectTravelRequests(rows pgx.Rows) ([]domain.TravelRequest, error) {
	defer rows.Close()

	var out []domain.TravelRequest
	for rows.Next() {
		t, err := scanTravelRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// mapWriteErr turns a unique violation into domain.ErrConflict and leaves
// every other error untouched.
func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
	}
	return err
}

func dateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}
