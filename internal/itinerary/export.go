package itinerary

import (
	"time"

	"github.com/pkordes/travel-desk/internal/domain"
)

// Flatten turns the day sequence into export rows, one per item in display
// order and one per free day.
func Flatten(req domain.TravelRequest, days []Day) []domain.ItineraryRow {
	rows := make([]domain.ItineraryRow, 0, len(days))
	for i, d := range days {
		base := domain.ItineraryRow{
			RequestNumber: req.RequestNumber,
			Title:         req.Title,
			DayNumber:     i + 1,
			Date:          d.Date.Format(time.DateOnly),
		}
		if d.IsFreeDay {
			base.Label = "Free day"
			rows = append(rows, base)
			continue
		}
		for _, it := range d.Items {
			row := base
			row.Kind = string(it.Kind())
			row.Time = TimeOf(it)
			row.Label = Label(it)
			row.Detail = Title(it)
			rows = append(rows, row)
		}
	}
	return rows
}
