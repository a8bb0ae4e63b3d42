package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
)

// LegKind identifies the type of a persisted leg.
type LegKind string

const (
	LegFlight        LegKind = "flight"
	LegPrivateJet    LegKind = "private_jet"
	LegTrain         LegKind = "train"
	LegRentalCar     LegKind = "rental_car"
	LegCarWithDriver LegKind = "car_with_driver"
	LegHotel         LegKind = "hotel"
	LegEvent         LegKind = "event"
	LegEmbassy       LegKind = "embassy"
	LegMeetAssist    LegKind = "meet_assist"
)

// LegKinds lists every supported leg kind in aggregate order.
var LegKinds = []LegKind{
	LegFlight, LegPrivateJet, LegTrain, LegRentalCar, LegCarWithDriver,
	LegHotel, LegEvent, LegEmbassy, LegMeetAssist,
}

// Valid reports whether k is one of the supported leg kinds.
func (k LegKind) Valid() bool {
	for _, known := range LegKinds {
		if k == known {
			return true
		}
	}
	return false
}

// LegRecord is the stored envelope of a leg. Payload is the JSON encoding
// of the kind-specific struct (Flight, Hotel, ...).
type LegRecord struct {
	ID              uuid.UUID
	TravelRequestID uuid.UUID
	Kind            LegKind
	Payload         []byte
	CreatedAt       time.Time
}

// Leg date fields are date-only values serialised as "2006-01-02".
// Time-of-day fields are "15:04" strings and are empty when unknown.

// Flight is a scheduled commercial flight.
type Flight struct {
	ID               uuid.UUID   `json:"id"`
	Airline          string      `json:"airline,omitempty"`
	FlightNumber     string      `json:"flight_number,omitempty"`
	DepartureAirport string      `json:"departure_airport,omitempty"`
	ArrivalAirport   string      `json:"arrival_airport,omitempty"`
	DepartureDate    *types.Date `json:"departure_date,omitempty"`
	DepartureTime    string      `json:"departure_time,omitempty"`
	ArrivalDate      *types.Date `json:"arrival_date,omitempty"`
	ArrivalTime      string      `json:"arrival_time,omitempty"`
	CabinClass       string      `json:"cabin_class,omitempty"`
	BookingReference string      `json:"booking_reference,omitempty"`
}

// PrivateJet is a chartered flight.
type PrivateJet struct {
	ID               uuid.UUID   `json:"id"`
	Operator         string      `json:"operator,omitempty"`
	AircraftType     string      `json:"aircraft_type,omitempty"`
	TailNumber       string      `json:"tail_number,omitempty"`
	DepartureAirport string      `json:"departure_airport,omitempty"`
	ArrivalAirport   string      `json:"arrival_airport,omitempty"`
	DepartureDate    *types.Date `json:"departure_date,omitempty"`
	DepartureTime    string      `json:"departure_time,omitempty"`
	ArrivalDate      *types.Date `json:"arrival_date,omitempty"`
	ArrivalTime      string      `json:"arrival_time,omitempty"`
	BookingReference string      `json:"booking_reference,omitempty"`
}

// Train is a rail segment.
type Train struct {
	ID               uuid.UUID   `json:"id"`
	Operator         string      `json:"operator,omitempty"`
	TrainNumber      string      `json:"train_number,omitempty"`
	DepartureStation string      `json:"departure_station,omitempty"`
	ArrivalStation   string      `json:"arrival_station,omitempty"`
	DepartureDate    *types.Date `json:"departure_date,omitempty"`
	DepartureTime    string      `json:"departure_time,omitempty"`
	ArrivalDate      *types.Date `json:"arrival_date,omitempty"`
	ArrivalTime      string      `json:"arrival_time,omitempty"`
	Class            string      `json:"class,omitempty"`
	BookingReference string      `json:"booking_reference,omitempty"`
}

// RentalCar is a self-drive rental with a pickup and a return.
type RentalCar struct {
	ID               uuid.UUID   `json:"id"`
	Company          string      `json:"company,omitempty"`
	VehicleType      string      `json:"vehicle_type,omitempty"`
	PickupLocation   string      `json:"pickup_location,omitempty"`
	PickupDate       *types.Date `json:"pickup_date,omitempty"`
	PickupTime       string      `json:"pickup_time,omitempty"`
	ReturnLocation   string      `json:"return_location,omitempty"`
	ReturnDate       *types.Date `json:"return_date,omitempty"`
	ReturnTime       string      `json:"return_time,omitempty"`
	BookingReference string      `json:"booking_reference,omitempty"`
}

// CarWithDriver is a chauffeured transfer. Only the pickup appears on the itinerary.
type CarWithDriver struct {
	ID              uuid.UUID   `json:"id"`
	Company         string      `json:"company,omitempty"`
	VehicleType     string      `json:"vehicle_type,omitempty"`
	PickupLocation  string      `json:"pickup_location,omitempty"`
	PickupDate      *types.Date `json:"pickup_date,omitempty"`
	PickupTime      string      `json:"pickup_time,omitempty"`
	DropoffLocation string      `json:"dropoff_location,omitempty"`
	DriverName      string      `json:"driver_name,omitempty"`
	DriverPhone     string      `json:"driver_phone,omitempty"`
}

// Hotel is a stay with a check-in and a check-out.
type Hotel struct {
	ID                 uuid.UUID   `json:"id"`
	Name               string      `json:"name,omitempty"`
	City               string      `json:"city,omitempty"`
	Country            string      `json:"country,omitempty"`
	Address            string      `json:"address,omitempty"`
	CheckInDate        *types.Date `json:"check_in_date,omitempty"`
	CheckInTime        string      `json:"check_in_time,omitempty"`
	CheckOutDate       *types.Date `json:"check_out_date,omitempty"`
	CheckOutTime       string      `json:"check_out_time,omitempty"`
	ConfirmationNumber string      `json:"confirmation_number,omitempty"`
	Rooms              []HotelRoom `json:"rooms,omitempty"`
}

// HotelRoom describes one booked room of a hotel stay.
type HotelRoom struct {
	Category     string   `json:"category,omitempty"`
	RoomNumber   string   `json:"room_number,omitempty"`
	NightlyPrice *float64 `json:"nightly_price,omitempty"`
	Currency     string   `json:"currency,omitempty"`
	BedType      string   `json:"bed_type,omitempty"`
	Capacity     int      `json:"capacity,omitempty"`
	Bathrooms    int      `json:"bathrooms,omitempty"`
}

// Event is a scheduled activity (dinner, meeting, show).
type Event struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name,omitempty"`
	EventType string      `json:"event_type,omitempty"`
	Location  string      `json:"location,omitempty"`
	EventDate *types.Date `json:"event_date,omitempty"`
	StartTime string      `json:"start_time,omitempty"`
	EndTime   string      `json:"end_time,omitempty"`
	Notes     string      `json:"notes,omitempty"`
}

// EmbassyService is a consular appointment (visa, passport, legalisation).
type EmbassyService struct {
	ID                uuid.UUID   `json:"id"`
	EmbassyName       string      `json:"embassy_name,omitempty"`
	ServiceType       string      `json:"service_type,omitempty"`
	Address           string      `json:"address,omitempty"`
	AppointmentDate   *types.Date `json:"appointment_date,omitempty"`
	AppointmentTime   string      `json:"appointment_time,omitempty"`
	ApplicationNumber string      `json:"application_number,omitempty"`
}

// MeetAssistServiceType says which direction a meet-and-assist covers.
type MeetAssistServiceType string

const (
	MeetAssistArrival   MeetAssistServiceType = "ARRIVAL"
	MeetAssistDeparture MeetAssistServiceType = "DEPARTURE"
	MeetAssistBoth      MeetAssistServiceType = "BOTH"
	MeetAssistTransit   MeetAssistServiceType = "TRANSIT"
)

// Valid reports whether t is a known service type.
func (t MeetAssistServiceType) Valid() bool {
	switch t {
	case MeetAssistArrival, MeetAssistDeparture, MeetAssistBoth, MeetAssistTransit:
		return true
	}
	return false
}

// VIPTier is the service level of a meet-and-assist booking.
type VIPTier string

const (
	VIPTierStandard VIPTier = "STANDARD"
	VIPTierVIP      VIPTier = "VIP"
	VIPTierVVIP     VIPTier = "VVIP"
)

// MeetAssist is an airport concierge booking.
type MeetAssist struct {
	ID           uuid.UUID             `json:"id"`
	Airport      string                `json:"airport,omitempty"`
	AirportName  string                `json:"airport_name,omitempty"`
	ServiceType  MeetAssistServiceType `json:"service_type,omitempty"`
	VIPTier      VIPTier               `json:"vip_tier,omitempty"`
	ServiceDate  *types.Date           `json:"service_date,omitempty"`
	ServiceTime  string                `json:"service_time,omitempty"`
	MeetingPoint string                `json:"meeting_point,omitempty"`
	FlightNumber string                `json:"flight_number,omitempty"`
	Provider     string                `json:"provider,omitempty"`
	FastTrack    bool                  `json:"fast_track,omitempty"`
	Lounge       bool                  `json:"lounge,omitempty"`
	Porterage    bool                  `json:"porterage,omitempty"`
	Buggy        bool                  `json:"buggy,omitempty"`
	GreeterName  string                `json:"greeter_name,omitempty"`
	GreeterPhone string                `json:"greeter_phone,omitempty"`
}
