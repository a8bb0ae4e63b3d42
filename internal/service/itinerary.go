package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/itinerary"
	"github.com/pkordes/travel-desk/internal/metrics"
	"github.com/pkordes/travel-desk/internal/repo"
)

// Itinerary is the result of a build: the hydrated request, its day
// sequence, the printable document and any advisory warnings.
type Itinerary struct {
	Request  domain.TravelRequest
	Days     []itinerary.Day
	Document itinerary.Document
	Warnings []itinerary.Warning
}

// ItineraryService loads a travel request with all of its legs and
// passengers and turns it into a day-by-day itinerary.
type ItineraryService struct {
	requests   repo.TravelRequestRepo
	legs       repo.LegRepo
	passengers repo.PassengerRepo
	metrics    *metrics.Metrics
	log        *slog.Logger
	now        func() time.Time
}

// NewItineraryService constructs an ItineraryService. m may be nil when
// metrics are disabled.
func NewItineraryService(requests repo.TravelRequestRepo, legs repo.LegRepo, passengers repo.PassengerRepo, m *metrics.Metrics, log *slog.Logger) *ItineraryService {
	return &ItineraryService{
		requests:   requests,
		legs:       legs,
		passengers: passengers,
		metrics:    m,
		log:        log,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for the "generated" stamp.
func (s *ItineraryService) WithClock(now func() time.Time) *ItineraryService {
	s.now = now
	return s
}

// Build produces the itinerary for a request.
// Returns domain.ErrNotFound if the request does not exist.
func (s *ItineraryService) Build(ctx context.Context, id uuid.UUID) (Itinerary, error) {
	start := time.Now()

	req, err := s.Load(ctx, id)
	if err != nil {
		s.metrics.ObserveBuild(outcomeOf(err), time.Since(start), 0)
		return Itinerary{}, fmt.Errorf("service.ItineraryService.Build: %w", err)
	}
	if err := checkSpan(req); err != nil {
		s.metrics.ObserveBuild(outcomeOf(err), time.Since(start), 0)
		return Itinerary{}, fmt.Errorf("service.ItineraryService.Build: %w", err)
	}

	days := itinerary.BuildDays(req)
	warnings := itinerary.OutOfRange(req, days)
	doc := itinerary.Render(req, days, itinerary.RenderOptions{GeneratedAt: s.now()})

	for _, w := range warnings {
		s.log.DebugContext(ctx, "itinerary item out of range",
			"request_id", req.ID,
			"date", w.Date.Format(time.DateOnly),
			"kind", w.Kind,
			"message", w.Message,
		)
	}
	outcome := metrics.OutcomeOK
	if len(days) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	s.metrics.ObserveBuild(outcome, time.Since(start), len(days))
	s.metrics.AddOutOfRange(len(warnings))

	if warnings == nil {
		warnings = []itinerary.Warning{}
	}
	return Itinerary{Request: req, Days: days, Document: doc, Warnings: warnings}, nil
}

// Export returns the flat rows of a request's itinerary.
func (s *ItineraryService) Export(ctx context.Context, id uuid.UUID) ([]domain.ItineraryRow, error) {
	req, err := s.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Export: %w", err)
	}
	if err := checkSpan(req); err != nil {
		return nil, fmt.Errorf("service.ItineraryService.Export: %w", err)
	}
	return itinerary.Flatten(req, itinerary.BuildDays(req)), nil
}

// Load fetches a request and hydrates its leg collections and passengers.
// A stored leg whose payload no longer decodes is skipped and logged so one
// bad row cannot take the whole itinerary down.
func (s *ItineraryService) Load(ctx context.Context, id uuid.UUID) (domain.TravelRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return domain.TravelRequest{}, err
	}
	legs, err := s.legs.ListByRequest(ctx, id)
	if err != nil {
		return domain.TravelRequest{}, err
	}
	passengers, err := s.passengers.ListByRequest(ctx, id)
	if err != nil {
		return domain.TravelRequest{}, err
	}

	for _, rec := range legs {
		if err := attachLeg(&req, rec); err != nil {
			s.log.WarnContext(ctx, "skipping undecodable leg",
				"request_id", id,
				"leg_id", rec.ID,
				"kind", rec.Kind,
				"error", err,
			)
		}
	}
	req.Passengers = passengers
	return req, nil
}

// attachLeg decodes one stored leg and appends it to the matching
// collection of req. The leg's id is taken from the record.
func attachLeg(req *domain.TravelRequest, rec domain.LegRecord) error {
	switch rec.Kind {
	case domain.LegFlight:
		return appendLeg(rec, &req.Flights, func(l *domain.Flight) { l.ID = rec.ID })
	case domain.LegPrivateJet:
		return appendLeg(rec, &req.PrivateJets, func(l *domain.PrivateJet) { l.ID = rec.ID })
	case domain.LegTrain:
		return appendLeg(rec, &req.Trains, func(l *domain.Train) { l.ID = rec.ID })
	case domain.LegRentalCar:
		return appendLeg(rec, &req.RentalCarsSelfDrive, func(l *domain.RentalCar) { l.ID = rec.ID })
	case domain.LegCarWithDriver:
		return appendLeg(rec, &req.CarsWithDriver, func(l *domain.CarWithDriver) { l.ID = rec.ID })
	case domain.LegHotel:
		return appendLeg(rec, &req.Hotels, func(l *domain.Hotel) { l.ID = rec.ID })
	case domain.LegEvent:
		return appendLeg(rec, &req.Events, func(l *domain.Event) { l.ID = rec.ID })
	case domain.LegEmbassy:
		return appendLeg(rec, &req.EmbassyServices, func(l *domain.EmbassyService) { l.ID = rec.ID })
	case domain.LegMeetAssist:
		return appendLeg(rec, &req.MeetAssist, func(l *domain.MeetAssist) { l.ID = rec.ID })
	}
	return fmt.Errorf("unknown leg kind %q", rec.Kind)
}

func appendLeg[T any](rec domain.LegRecord, dst *[]T, setID func(*T)) error {
	var leg T
	if err := json.Unmarshal(rec.Payload, &leg); err != nil {
		return err
	}
	setID(&leg)
	*dst = append(*dst, leg)
	return nil
}

// checkSpan rejects a request whose dates stretch the itinerary beyond
// domain.MaxItineraryDays.
func checkSpan(req domain.TravelRequest) error {
	if n := itinerary.SpanDays(req); n > domain.MaxItineraryDays {
		return fmt.Errorf("%w: itinerary spans %d days, the limit is %d", domain.ErrValidation, n, domain.MaxItineraryDays)
	}
	return nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, domain.ErrValidation):
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
