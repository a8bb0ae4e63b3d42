package itinerary

import (
	"cmp"
	"strings"

	"github.com/pkordes/travel-desk/internal/domain"
)

// Hotels without an explicit time fall back to the usual front-desk hours.
const (
	DefaultCheckInTime  = "15:00"
	DefaultCheckOutTime = "11:00"
)

// unknownPriority sorts anything unrecognised after every known item.
const unknownPriority = 50

// Priority is the fallback same-day rank of an item; lower sorts first.
// It applies when either item has no time or both times are equal.
func Priority(it Item) int {
	switch v := it.(type) {
	case HotelItem:
		if v.IsCheckIn {
			return 7
		}
		return 1
	case MeetAssistItem:
		switch v.Service.ServiceType {
		case domain.MeetAssistDeparture, domain.MeetAssistBoth:
			return 2
		case domain.MeetAssistArrival:
			return 4
		case domain.MeetAssistTransit:
			return 5
		}
		return unknownPriority
	case FlightItem, PrivateJetItem, TrainItem:
		return 3
	case RentalCarItem:
		if v.IsPickup {
			return 6
		}
		return 10
	case CarWithDriverItem:
		return 6
	case EventItem:
		return 8
	case EmbassyItem:
		return 9
	}
	return unknownPriority
}

// TimeOf returns the "15:04" time the item happens at, or "" when unknown.
// Hotels always have a time because of the check-in/check-out defaults.
func TimeOf(it Item) string {
	var t string
	switch v := it.(type) {
	case FlightItem:
		t = v.Flight.DepartureTime
	case PrivateJetItem:
		t = v.Jet.DepartureTime
	case TrainItem:
		t = v.Train.DepartureTime
	case EventItem:
		t = v.Event.StartTime
	case HotelItem:
		if v.IsCheckIn {
			return cmp.Or(strings.TrimSpace(v.Hotel.CheckInTime), DefaultCheckInTime)
		}
		return cmp.Or(strings.TrimSpace(v.Hotel.CheckOutTime), DefaultCheckOutTime)
	case EmbassyItem:
		t = v.Service.AppointmentTime
	case MeetAssistItem:
		t = v.Service.ServiceTime
	case RentalCarItem:
		if v.IsPickup {
			t = v.Car.PickupTime
		} else {
			t = v.Car.ReturnTime
		}
	case CarWithDriverItem:
		t = v.Car.PickupTime
	}
	return strings.TrimSpace(t)
}

// compareItems orders two items of the same day: by time when both have
// one and they differ, otherwise by Priority.
func compareItems(a, b Item) int {
	ta, tb := TimeOf(a), TimeOf(b)
	if ta != "" && tb != "" && ta != tb {
		return strings.Compare(ta, tb)
	}
	return cmp.Compare(Priority(a), Priority(b))
}
