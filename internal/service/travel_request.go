// Package service contains the business logic for the travel desk API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here: services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/repo"
)

// TravelRequestService implements business logic for TravelRequest operations.
type TravelRequestService struct {
	repo repo.TravelRequestRepo
}

// NewTravelRequestService constructs a TravelRequestService backed by the provided repo.
func NewTravelRequestService(r repo.TravelRequestRepo) *TravelRequestService {
	return &TravelRequestService{repo: r}
}

// Create validates and persists a new travel request.
// Returns domain.ErrValidation for invalid input and domain.ErrConflict if
// the request number is already taken.
func (s *TravelRequestService) Create(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error) {
	req = normalizeTravelRequest(req)
	if err := validateTravelRequest(req); err != nil {
		return domain.TravelRequest{}, err
	}
	result, err := s.repo.Create(ctx, req)
	if err != nil {
		return domain.TravelRequest{}, fmt.Errorf("service.TravelRequestService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single travel request by ID, without legs or passengers.
func (s *TravelRequestService) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelRequest, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.TravelRequest{}, fmt.Errorf("service.TravelRequestService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all travel requests. Always returns a non-nil slice.
func (s *TravelRequestService) List(ctx context.Context) ([]domain.TravelRequest, error) {
	reqs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelRequestService.List: %w", err)
	}
	if reqs == nil {
		return []domain.TravelRequest{}, nil
	}
	return reqs, nil
}

// ListPaged returns one page of travel requests matching the filter and the
// total number of matches.
// Returns domain.ErrValidation if the date window is inverted.
func (s *TravelRequestService) ListPaged(ctx context.Context, f domain.TravelRequestFilter, p domain.PaginationParams) ([]domain.TravelRequest, int64, error) {
	f.Search = strings.TrimSpace(f.Search)
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return nil, 0, fmt.Errorf("%w: to must not be before from", domain.ErrValidation)
	}
	reqs, total, err := s.repo.ListPaged(ctx, f, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.TravelRequestService.ListPaged: %w", err)
	}
	if reqs == nil {
		reqs = []domain.TravelRequest{}
	}
	return reqs, total, nil
}

// Update validates and persists changes to an existing travel request.
func (s *TravelRequestService) Update(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error) {
	req = normalizeTravelRequest(req)
	if err := validateTravelRequest(req); err != nil {
		return domain.TravelRequest{}, err
	}
	result, err := s.repo.Update(ctx, req)
	if err != nil {
		return domain.TravelRequest{}, fmt.Errorf("service.TravelRequestService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a travel request and, by cascade, its legs and passengers.
func (s *TravelRequestService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TravelRequestService.Delete: %w", err)
	}
	return nil
}

func normalizeTravelRequest(req domain.TravelRequest) domain.TravelRequest {
	req.RequestNumber = strings.TrimSpace(req.RequestNumber)
	req.Title = strings.TrimSpace(req.Title)
	return req
}

// validateTravelRequest enforces business rules common to both Create and Update.
//   - RequestNumber must be non-empty.
//   - TripEndDate, if set together with TripStartDate, must not be before it.
func validateTravelRequest(req domain.TravelRequest) error {
	if req.RequestNumber == "" {
		return fmt.Errorf("%w: request_number is required", domain.ErrValidation)
	}
	if req.TripStartDate != nil && req.TripEndDate != nil && req.TripEndDate.Before(*req.TripStartDate) {
		return fmt.Errorf("%w: trip_end_date must not be before trip_start_date", domain.ErrValidation)
	}
	for name, d := range map[string]*time.Time{"trip_start_date": req.TripStartDate, "trip_end_date": req.TripEndDate} {
		if d != nil && !domain.BookableYear(d.Year()) {
			return fmt.Errorf("%w: %s must be between %d and %d", domain.ErrValidation, name, domain.MinBookingYear, domain.MaxBookingYear)
		}
	}
	return nil
}
