// Package domain contains the core data types for the travel desk.
// Its only dependencies are uuid and the oapi-codegen date type, and it is
// imported by every other internal package (repo, service, itinerary, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Every date on a request or one of its legs must fall in a booking year
// between MinBookingYear and MaxBookingYear.
const (
	MinBookingYear = 2000
	MaxBookingYear = 2099
)

// MaxItineraryDays bounds the first-to-last day span of a built itinerary.
const MaxItineraryDays = 731

// BookableYear reports whether year lies within the booking window.
func BookableYear(year int) bool {
	return year >= MinBookingYear && year <= MaxBookingYear
}

// TravelRequest is the aggregate root for one planned trip.
// The scalar fields live in the travel_requests table; the leg collections
// and passengers are hydrated by the service layer before the itinerary is built.
type TravelRequest struct {
	ID            uuid.UUID  `json:"id"`
	RequestNumber string     `json:"request_number"`
	Title         string     `json:"title,omitempty"`
	TripStartDate *time.Time `json:"trip_start_date,omitempty"`
	TripEndDate   *time.Time `json:"trip_end_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	Flights             []Flight         `json:"flights,omitempty"`
	PrivateJets         []PrivateJet     `json:"private_jets,omitempty"`
	Trains              []Train          `json:"trains,omitempty"`
	RentalCarsSelfDrive []RentalCar      `json:"rental_cars_self_drive,omitempty"`
	CarsWithDriver      []CarWithDriver  `json:"cars_with_driver,omitempty"`
	Hotels              []Hotel          `json:"hotels,omitempty"`
	Events              []Event          `json:"events,omitempty"`
	EmbassyServices     []EmbassyService `json:"embassy_services,omitempty"`
	MeetAssist          []MeetAssist     `json:"meet_assist,omitempty"`
	Passengers          []Passenger      `json:"passengers,omitempty"`
}

// MainPassenger returns the passenger flagged as the main traveller, if any.
func (r TravelRequest) MainPassenger() (Passenger, bool) {
	for _, p := range r.Passengers {
		if p.IsMain {
			return p, true
		}
	}
	return Passenger{}, false
}

// TravelRequestFilter narrows a paged listing of travel requests.
// Zero values mean "no filter".
type TravelRequestFilter struct {
	// Search matches request_number or title, case-insensitively.
	Search string
	// From and To select requests whose stated trip range overlaps [From, To].
	From *time.Time
	To   *time.Time
}

// Passenger is a traveller attached to a travel request.
type Passenger struct {
	ID              uuid.UUID `json:"id"`
	TravelRequestID uuid.UUID `json:"travel_request_id"`
	FullName        string    `json:"full_name"`
	IsMain          bool      `json:"is_main"`
	CreatedAt       time.Time `json:"created_at"`
}
