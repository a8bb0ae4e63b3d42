// Package itinerary turns a hydrated travel request into a day-by-day
// schedule and renders that schedule into a printable document tree.
// Everything here is a pure function of its input: no I/O, no shared state.
package itinerary

import (
	"time"

	"github.com/pkordes/travel-desk/internal/domain"
)

// Kind identifies the variant of an Item.
type Kind string

const (
	KindFlight        Kind = "flight"
	KindPrivateJet    Kind = "private_jet"
	KindTrain         Kind = "train"
	KindRentalCar     Kind = "rental_car"
	KindCarWithDriver Kind = "car_with_driver"
	KindHotel         Kind = "hotel"
	KindEvent         Kind = "event"
	KindEmbassy       Kind = "embassy"
	KindMeetAssist    Kind = "meet_assist"
)

// Item is one dated occurrence of a leg on the itinerary.
// A leg contributes zero, one or two items (hotels and rental cars have two).
// The set of variants is closed: only the types in this file implement Item.
type Item interface {
	Kind() Kind
	// Date is the calendar day the occurrence falls on, at midnight UTC.
	Date() time.Time
	isItem()
}

// FlightItem is a commercial flight, placed on its departure day.
type FlightItem struct {
	On     time.Time
	Flight domain.Flight
}

// PrivateJetItem is a charter flight, placed on its departure day.
type PrivateJetItem struct {
	On  time.Time
	Jet domain.PrivateJet
}

// TrainItem is a rail segment, placed on its departure day.
type TrainItem struct {
	On    time.Time
	Train domain.Train
}

// RentalCarItem is either the pickup or the return of a self-drive rental.
type RentalCarItem struct {
	On       time.Time
	Car      domain.RentalCar
	IsPickup bool
}

// CarWithDriverItem is a chauffeured pickup.
type CarWithDriverItem struct {
	On  time.Time
	Car domain.CarWithDriver
}

// HotelItem is either the check-in or the check-out of a stay.
type HotelItem struct {
	On        time.Time
	Hotel     domain.Hotel
	IsCheckIn bool
}

// EventItem is a scheduled activity.
type EventItem struct {
	On    time.Time
	Event domain.Event
}

// EmbassyItem is a consular appointment.
type EmbassyItem struct {
	On      time.Time
	Service domain.EmbassyService
}

// MeetAssistItem is an airport concierge service.
type MeetAssistItem struct {
	On      time.Time
	Service domain.MeetAssist
}

func (FlightItem) Kind() Kind        { return KindFlight }
func (PrivateJetItem) Kind() Kind    { return KindPrivateJet }
func (TrainItem) Kind() Kind         { return KindTrain }
func (RentalCarItem) Kind() Kind     { return KindRentalCar }
func (CarWithDriverItem) Kind() Kind { return KindCarWithDriver }
func (HotelItem) Kind() Kind         { return KindHotel }
func (EventItem) Kind() Kind         { return KindEvent }
func (EmbassyItem) Kind() Kind       { return KindEmbassy }
func (MeetAssistItem) Kind() Kind    { return KindMeetAssist }

func (i FlightItem) Date() time.Time        { return i.On }
func (i PrivateJetItem) Date() time.Time    { return i.On }
func (i TrainItem) Date() time.Time         { return i.On }
func (i RentalCarItem) Date() time.Time     { return i.On }
func (i CarWithDriverItem) Date() time.Time { return i.On }
func (i HotelItem) Date() time.Time         { return i.On }
func (i EventItem) Date() time.Time         { return i.On }
func (i EmbassyItem) Date() time.Time       { return i.On }
func (i MeetAssistItem) Date() time.Time    { return i.On }

func (FlightItem) isItem()        {}
func (PrivateJetItem) isItem()    {}
func (TrainItem) isItem()         {}
func (RentalCarItem) isItem()     {}
func (CarWithDriverItem) isItem() {}
func (HotelItem) isItem()         {}
func (EventItem) isItem()         {}
func (EmbassyItem) isItem()       {}
func (MeetAssistItem) isItem()    {}
