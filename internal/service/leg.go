package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/repo"
)

// LegService implements business logic for the legs of a travel request.
// A leg arrives as a kind plus a JSON payload; the service decodes it into
// its typed struct, validates it, and stores the normalized encoding.
type LegService struct {
	requests repo.TravelRequestRepo
	legs     repo.LegRepo
}

// NewLegService constructs a LegService backed by the provided repos.
func NewLegService(requests repo.TravelRequestRepo, legs repo.LegRepo) *LegService {
	return &LegService{requests: requests, legs: legs}
}

// Create validates a leg payload and persists it under the given request.
// Returns domain.ErrValidation for an unknown kind or an invalid payload,
// domain.ErrNotFound if the parent request does not exist.
func (s *LegService) Create(ctx context.Context, requestID uuid.UUID, kind domain.LegKind, payload []byte) (domain.LegRecord, error) {
	if !kind.Valid() {
		return domain.LegRecord{}, fmt.Errorf("%w: unknown leg kind %q", domain.ErrValidation, kind)
	}
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return domain.LegRecord{}, fmt.Errorf("service.LegService.Create: %w", err)
	}
	normalized, err := normalizeLeg(kind, payload)
	if err != nil {
		return domain.LegRecord{}, err
	}
	result, err := s.legs.Create(ctx, domain.LegRecord{
		TravelRequestID: requestID,
		Kind:            kind,
		Payload:         normalized,
	})
	if err != nil {
		return domain.LegRecord{}, fmt.Errorf("service.LegService.Create: %w", err)
	}
	return result, nil
}

// ListByRequest returns the stored legs of a request in insertion order.
// Always returns a non-nil slice.
func (s *LegService) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.LegRecord, error) {
	if _, err := s.requests.GetByID(ctx, requestID); err != nil {
		return nil, fmt.Errorf("service.LegService.ListByRequest: %w", err)
	}
	legs, err := s.legs.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("service.LegService.ListByRequest: %w", err)
	}
	if legs == nil {
		return []domain.LegRecord{}, nil
	}
	return legs, nil
}

// Delete removes a leg, scoped to the given request.
func (s *LegService) Delete(ctx context.Context, requestID, legID uuid.UUID) error {
	if err := s.legs.Delete(ctx, requestID, legID); err != nil {
		return fmt.Errorf("service.LegService.Delete: %w", err)
	}
	return nil
}

// normalizeLeg decodes payload into the struct for kind, validates it and
// re-encodes it. Unknown JSON fields are dropped and any client-supplied id
// is cleared; the stored id is the row's primary key.
func normalizeLeg(kind domain.LegKind, payload []byte) ([]byte, error) {
	switch kind {
	case domain.LegFlight:
		return decodeValidate(payload, func(l *domain.Flight) error {
			l.ID = uuid.Nil
			return validateTransport(l.DepartureDate, l.DepartureTime, l.ArrivalDate, l.ArrivalTime)
		})
	case domain.LegPrivateJet:
		return decodeValidate(payload, func(l *domain.PrivateJet) error {
			l.ID = uuid.Nil
			return validateTransport(l.DepartureDate, l.DepartureTime, l.ArrivalDate, l.ArrivalTime)
		})
	case domain.LegTrain:
		return decodeValidate(payload, func(l *domain.Train) error {
			l.ID = uuid.Nil
			return validateTransport(l.DepartureDate, l.DepartureTime, l.ArrivalDate, l.ArrivalTime)
		})
	case domain.LegRentalCar:
		return decodeValidate(payload, func(l *domain.RentalCar) error {
			l.ID = uuid.Nil
			if l.PickupDate == nil {
				return fmt.Errorf("%w: pickup_date is required", domain.ErrValidation)
			}
			if l.ReturnDate != nil && l.ReturnDate.Before(l.PickupDate.Time) {
				return fmt.Errorf("%w: return_date must not be before pickup_date", domain.ErrValidation)
			}
			if err := validateDates(map[string]*types.Date{"pickup_date": l.PickupDate, "return_date": l.ReturnDate}); err != nil {
				return err
			}
			return validateClocks(map[string]string{"pickup_time": l.PickupTime, "return_time": l.ReturnTime})
		})
	case domain.LegCarWithDriver:
		return decodeValidate(payload, func(l *domain.CarWithDriver) error {
			l.ID = uuid.Nil
			if l.PickupDate == nil {
				return fmt.Errorf("%w: pickup_date is required", domain.ErrValidation)
			}
			if err := validateDates(map[string]*types.Date{"pickup_date": l.PickupDate}); err != nil {
				return err
			}
			return validateClocks(map[string]string{"pickup_time": l.PickupTime})
		})
	case domain.LegHotel:
		return decodeValidate(payload, func(l *domain.Hotel) error {
			l.ID = uuid.Nil
			if strings.TrimSpace(l.Name) == "" {
				return fmt.Errorf("%w: name is required", domain.ErrValidation)
			}
			if l.CheckInDate == nil {
				return fmt.Errorf("%w: check_in_date is required", domain.ErrValidation)
			}
			if l.CheckOutDate != nil && l.CheckOutDate.Before(l.CheckInDate.Time) {
				return fmt.Errorf("%w: check_out_date must not be before check_in_date", domain.ErrValidation)
			}
			for i, room := range l.Rooms {
				if room.NightlyPrice != nil && *room.NightlyPrice < 0 {
					return fmt.Errorf("%w: rooms[%d].nightly_price must not be negative", domain.ErrValidation, i)
				}
			}
			if err := validateDates(map[string]*types.Date{"check_in_date": l.CheckInDate, "check_out_date": l.CheckOutDate}); err != nil {
				return err
			}
			return validateClocks(map[string]string{"check_in_time": l.CheckInTime, "check_out_time": l.CheckOutTime})
		})
	case domain.LegEvent:
		return decodeValidate(payload, func(l *domain.Event) error {
			l.ID = uuid.Nil
			if strings.TrimSpace(l.Name) == "" {
				return fmt.Errorf("%w: name is required", domain.ErrValidation)
			}
			if l.EventDate == nil {
				return fmt.Errorf("%w: event_date is required", domain.ErrValidation)
			}
			if err := validateDates(map[string]*types.Date{"event_date": l.EventDate}); err != nil {
				return err
			}
			return validateClocks(map[string]string{"start_time": l.StartTime, "end_time": l.EndTime})
		})
	case domain.LegEmbassy:
		return decodeValidate(payload, func(l *domain.EmbassyService) error {
			l.ID = uuid.Nil
			if l.AppointmentDate == nil {
				return fmt.Errorf("%w: appointment_date is required", domain.ErrValidation)
			}
			if err := validateDates(map[string]*types.Date{"appointment_date": l.AppointmentDate}); err != nil {
				return err
			}
			return validateClocks(map[string]string{"appointment_time": l.AppointmentTime})
		})
	case domain.LegMeetAssist:
		return decodeValidate(payload, func(l *domain.MeetAssist) error {
			l.ID = uuid.Nil
			if l.ServiceDate == nil {
				return fmt.Errorf("%w: service_date is required", domain.ErrValidation)
			}
			if err := validateDates(map[string]*types.Date{"service_date": l.ServiceDate}); err != nil {
				return err
			}
			if !l.ServiceType.Valid() {
				return fmt.Errorf("%w: service_type must be one of ARRIVAL, DEPARTURE, BOTH, TRANSIT", domain.ErrValidation)
			}
			switch l.VIPTier {
			case "", domain.VIPTierStandard, domain.VIPTierVIP, domain.VIPTierVVIP:
			default:
				return fmt.Errorf("%w: vip_tier must be one of STANDARD, VIP, VVIP", domain.ErrValidation)
			}
			return validateClocks(map[string]string{"service_time": l.ServiceTime})
		})
	}
	return nil, fmt.Errorf("%w: unknown leg kind %q", domain.ErrValidation, kind)
}

func decodeValidate[T any](payload []byte, validate func(*T) error) ([]byte, error) {
	var leg T
	if err := json.Unmarshal(payload, &leg); err != nil {
		return nil, fmt.Errorf("%w: malformed leg payload: %v", domain.ErrValidation, err)
	}
	if err := validate(&leg); err != nil {
		return nil, err
	}
	out, err := json.Marshal(leg)
	if err != nil {
		return nil, fmt.Errorf("service.normalizeLeg: %w", err)
	}
	return out, nil
}

// validateTransport covers flights, jets and trains: a departure date is
// required and the arrival must not precede it.
func validateTransport(depDate *types.Date, depTime string, arrDate *types.Date, arrTime string) error {
	if depDate == nil {
		return fmt.Errorf("%w: departure_date is required", domain.ErrValidation)
	}
	if arrDate != nil && arrDate.Before(depDate.Time) {
		return fmt.Errorf("%w: arrival_date must not be before departure_date", domain.ErrValidation)
	}
	if err := validateDates(map[string]*types.Date{"departure_date": depDate, "arrival_date": arrDate}); err != nil {
		return err
	}
	return validateClocks(map[string]string{"departure_time": depTime, "arrival_time": arrTime})
}

// validateDates checks that every non-nil date falls within the supported
// booking years.
func validateDates(fields map[string]*types.Date) error {
	for name, d := range fields {
		if d == nil {
			continue
		}
		if !domain.BookableYear(d.Year()) {
			return fmt.Errorf("%w: %s must be between %d and %d", domain.ErrValidation, name, domain.MinBookingYear, domain.MaxBookingYear)
		}
	}
	return nil
}

// validateClocks checks that every non-empty value is a 24h "HH:MM" time.
func validateClocks(fields map[string]string) error {
	for name, v := range fields {
		if v == "" {
			continue
		}
		if _, err := time.Parse("15:04", v); err != nil || len(v) != 5 {
			return fmt.Errorf("%w: %s must be HH:MM", domain.ErrValidation, name)
		}
	}
	return nil
}
