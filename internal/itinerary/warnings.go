package itinerary

import (
	"fmt"
	"time"

	"github.com/pkordes/travel-desk/internal/domain"
)

// Warning flags an item that falls outside the stated trip dates.
// BuildDays still includes such items; warnings are advisory.
type Warning struct {
	Date    time.Time
	Kind    Kind
	Message string
}

// OutOfRange lists the items of days dated before the request's stated
// TripStartDate or after its TripEndDate. Unset bounds are not checked.
func OutOfRange(req domain.TravelRequest, days []Day) []Warning {
	var start, end time.Time
	if req.TripStartDate != nil {
		start = calendarDay(*req.TripStartDate)
	}
	if req.TripEndDate != nil {
		end = calendarDay(*req.TripEndDate)
	}
	if start.IsZero() && end.IsZero() {
		return nil
	}

	var out []Warning
	for _, d := range days {
		for _, it := range d.Items {
			switch {
			case !start.IsZero() && it.Date().Before(start):
				out = append(out, Warning{
					Date:    it.Date(),
					Kind:    it.Kind(),
					Message: fmt.Sprintf("%s on %s is before the stated trip start %s", Label(it), dayKey(it.Date()), dayKey(start)),
				})
			case !end.IsZero() && it.Date().After(end):
				out = append(out, Warning{
					Date:    it.Date(),
					Kind:    it.Kind(),
					Message: fmt.Sprintf("%s on %s is after the stated trip end %s", Label(it), dayKey(it.Date()), dayKey(end)),
				})
			}
		}
	}
	return out
}
