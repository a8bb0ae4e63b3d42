package itinerary

import (
	"slices"
	"time"

	"github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-desk/internal/domain"
)

// Day is one calendar day of the itinerary.
// IsFreeDay is true exactly when Items is empty.
type Day struct {
	Date      time.Time
	Items     []Item
	IsFreeDay bool
}

// BuildDays derives the day-by-day schedule of a travel request.
//
// The range runs from the earliest to the latest date found anywhere in the
// request (stated trip dates and every leg date, arrivals included), so a leg
// outside the stated trip dates widens the schedule. Every day in that range
// appears once, in ascending order. A request without any date yields an
// empty, non-nil slice.
func BuildDays(req domain.TravelRequest) []Day {
	start, end, ok := dateRange(req)
	if !ok {
		return []Day{}
	}

	byDay := make(map[string][]Item)
	for _, it := range materialize(req) {
		key := dayKey(it.Date())
		byDay[key] = append(byDay[key], it)
	}

	days := make([]Day, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		items := byDay[dayKey(d)]
		if items == nil {
			items = []Item{}
		}
		slices.SortStableFunc(items, compareItems)
		days = append(days, Day{Date: d, Items: items, IsFreeDay: len(items) == 0})
	}
	return days
}

// SpanDays returns the number of days BuildDays would produce for req
// without materializing them.
func SpanDays(req domain.TravelRequest) int {
	start, end, ok := dateRange(req)
	if !ok {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

func dateRange(req domain.TravelRequest) (start, end time.Time, ok bool) {
	dates := collectDates(req)
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return slices.MinFunc(dates, time.Time.Compare), slices.MaxFunc(dates, time.Time.Compare), true
}

// collectDates returns every date carried by the request, truncated to its
// calendar day.
func collectDates(req domain.TravelRequest) []time.Time {
	var out []time.Time
	add := func(ds ...*types.Date) {
		for _, d := range ds {
			if d != nil && !d.Time.IsZero() {
				out = append(out, calendarDay(d.Time))
			}
		}
	}

	for _, t := range []*time.Time{req.TripStartDate, req.TripEndDate} {
		if t != nil && !t.IsZero() {
			out = append(out, calendarDay(*t))
		}
	}
	for _, f := range req.Flights {
		add(f.DepartureDate, f.ArrivalDate)
	}
	for _, j := range req.PrivateJets {
		add(j.DepartureDate, j.ArrivalDate)
	}
	for _, t := range req.Trains {
		add(t.DepartureDate, t.ArrivalDate)
	}
	for _, c := range req.RentalCarsSelfDrive {
		add(c.PickupDate, c.ReturnDate)
	}
	for _, c := range req.CarsWithDriver {
		add(c.PickupDate)
	}
	for _, h := range req.Hotels {
		add(h.CheckInDate, h.CheckOutDate)
	}
	for _, e := range req.Events {
		add(e.EventDate)
	}
	for _, e := range req.EmbassyServices {
		add(e.AppointmentDate)
	}
	for _, m := range req.MeetAssist {
		add(m.ServiceDate)
	}
	return out
}

// materialize emits one Item per dated role of every leg.
// Legs missing the date of a role simply do not contribute that item.
func materialize(req domain.TravelRequest) []Item {
	var items []Item
	on := func(d *types.Date) (time.Time, bool) {
		if d == nil || d.Time.IsZero() {
			return time.Time{}, false
		}
		return calendarDay(d.Time), true
	}

	for _, f := range req.Flights {
		if d, ok := on(f.DepartureDate); ok {
			items = append(items, FlightItem{On: d, Flight: f})
		}
	}
	for _, j := range req.PrivateJets {
		if d, ok := on(j.DepartureDate); ok {
			items = append(items, PrivateJetItem{On: d, Jet: j})
		}
	}
	for _, t := range req.Trains {
		if d, ok := on(t.DepartureDate); ok {
			items = append(items, TrainItem{On: d, Train: t})
		}
	}
	for _, c := range req.RentalCarsSelfDrive {
		if d, ok := on(c.PickupDate); ok {
			items = append(items, RentalCarItem{On: d, Car: c, IsPickup: true})
		}
		if d, ok := on(c.ReturnDate); ok {
			items = append(items, RentalCarItem{On: d, Car: c, IsPickup: false})
		}
	}
	for _, c := range req.CarsWithDriver {
		if d, ok := on(c.PickupDate); ok {
			items = append(items, CarWithDriverItem{On: d, Car: c})
		}
	}
	for _, h := range req.Hotels {
		if d, ok := on(h.CheckInDate); ok {
			items = append(items, HotelItem{On: d, Hotel: h, IsCheckIn: true})
		}
		if d, ok := on(h.CheckOutDate); ok {
			items = append(items, HotelItem{On: d, Hotel: h, IsCheckIn: false})
		}
	}
	for _, e := range req.Events {
		if d, ok := on(e.EventDate); ok {
			items = append(items, EventItem{On: d, Event: e})
		}
	}
	for _, e := range req.EmbassyServices {
		if d, ok := on(e.AppointmentDate); ok {
			items = append(items, EmbassyItem{On: d, Service: e})
		}
	}
	for _, m := range req.MeetAssist {
		if d, ok := on(m.ServiceDate); ok {
			items = append(items, MeetAssistItem{On: d, Service: m})
		}
	}
	return items
}

// calendarDay strips the time of day, keeping the wall-clock date of t.
func calendarDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) string {
	return t.Format(time.DateOnly)
}
