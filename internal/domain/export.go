package domain

// ItineraryRow is a single row in the flat itinerary export.
// It is a denormalized view: one row per itinerary item, with the request
// fields repeated on every row. Free days yield one row with an empty Kind
// so the export still shows every day of the trip.
type ItineraryRow struct {
	// Request fields, repeated for every row.
	RequestNumber string
	Title         string

	// Day fields.
	DayNumber int
	Date      string // "2006-01-02" formatted date

	// Item fields, zero values on free days.
	Kind   string
	Time   string // "15:04", empty when the item has no time
	Label  string
	Detail string
}
