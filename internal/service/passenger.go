package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/repo"
)

// PassengerService manages the travellers of a travel request.
type PassengerService struct {
	requests   repo.TravelRequestRepo
	passengers repo.PassengerRepo
}

// NewPassengerService constructs a PassengerService backed by the provided repos.
func NewPassengerService(requests repo.TravelRequestRepo, passengers repo.PassengerRepo) *PassengerService {
	return &PassengerService{requests: requests, passengers: passengers}
}

// Create verifies the parent request exists, validates the passenger, then persists.
// Returns domain.ErrConflict if the request already has a main passenger.
func (s *PassengerService) Create(ctx context.Context, p domain.Passenger) (domain.Passenger, error) {
	if _, err := s.requests.GetByID(ctx, p.TravelRequestID); err != nil {
		return domain.Passenger{}, fmt.Errorf("service.PassengerService.Create: %w", err)
	}
	p.FullName = strings.TrimSpace(p.FullName)
	if p.FullName == "" {
		return domain.Passenger{}, fmt.Errorf("%w: full_name is required", domain.ErrValidation)
	}
	result, err := s.passengers.Create(ctx, p)
	if err != nil {
		return domain.Passenger{}, fmt.Errorf("service.PassengerService.Create: %w", err)
	}
	return result, nil
}

// ListByRequest returns the passengers of a request, main passenger first.
// Always returns a non-nil slice.
func (s *PassengerService) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Passenger, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return nil, fmt.Errorf("service.PassengerService.ListByRequest: %w", err)
	}
	out, err := s.passengers.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("service.PassengerService.ListByRequest: %w", err)
	}
	if out == nil {
		return []domain.Passenger{}, nil
	}
	return out, nil
}

// Delete removes a passenger, scoped to the given request.
func (s *PassengerService) Delete(ctx context.Context, requestID, passengerID uuid.UUID) error {
	if err := s.passengers.Delete(ctx, requestID, passengerID); err != nil {
		return fmt.Errorf("service.PassengerService.Delete: %w", err)
	}
	return nil
}
