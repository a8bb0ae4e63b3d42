// Package handler implements the HTTP handlers for the travel desk API.
// All handlers are methods on Server. Methods are split into resource files
// (health.go, travel_request.go, leg.go, ...) but share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/service"
)

// TravelRequestServicer defines the business operations the travel request
// handlers depend on. Defining the interface in the consumer package lets
// handler tests inject a mock without touching the database.
type TravelRequestServicer interface {
	Create(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.TravelRequest, error)
	ListPaged(ctx context.Context, f domain.TravelRequestFilter, p domain.PaginationParams) ([]domain.TravelRequest, int64, error)
	Update(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// LegServicer defines the leg operations the handlers depend on.
type LegServicer interface {
	Create(ctx context.Context, requestID uuid.UUID, kind domain.LegKind, payload []byte) (domain.LegRecord, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.LegRecord, error)
	Delete(ctx context.Context, requestID, legID uuid.UUID) error
}

// PassengerServicer defines the passenger operations the handlers depend on.
type PassengerServicer interface {
	Create(ctx context.Context, p domain.Passenger) (domain.Passenger, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.Passenger, error)
	Delete(ctx context.Context, requestID, passengerID uuid.UUID) error
}

// ItineraryServicer builds and exports itineraries.
type ItineraryServicer interface {
	Build(ctx context.Context, id uuid.UUID) (service.Itinerary, error)
	Export(ctx context.Context, id uuid.UUID) ([]domain.ItineraryRow, error)
}

// Server holds the dependencies of every API handler.
type Server struct {
	requests    TravelRequestServicer
	legs        LegServicer
	passengers  PassengerServicer
	itineraries ItineraryServicer
	log         *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// Any servicer may be nil when the caller only mounts a subset of routes.
func NewServer(requests TravelRequestServicer, legs LegServicer, passengers PassengerServicer, itineraries ItineraryServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		requests:    requests,
		legs:        legs,
		passengers:  passengers,
		itineraries: itineraries,
		log:         log,
	}
}

// Routes returns a chi router serving the API.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/travel-requests", func(r chi.Router) {
		r.Get("/", s.ListTravelRequests)
		r.Post("/", s.CreateTravelRequest)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.GetTravelRequest)
			r.Put("/", s.UpdateTravelRequest)
			r.Delete("/", s.DeleteTravelRequest)

			r.Get("/legs", s.ListLegs)
			r.Post("/legs", s.CreateLeg)
			r.Delete("/legs/{legId}", s.DeleteLeg)

			r.Get("/passengers", s.ListPassengers)
			r.Post("/passengers", s.CreatePassenger)
			r.Delete("/passengers/{passengerId}", s.DeletePassenger)

			r.Get("/itinerary", s.GetItinerary)
			r.Get("/itinerary/print", s.PrintItinerary)
			r.Get("/itinerary/export", s.ExportItinerary)
		})
	})

	return r
}

// NewHealthHandler returns a router serving only the health check.
func NewHealthHandler() http.Handler {
	return NewServer(nil, nil, nil, nil, nil).Routes()
}
