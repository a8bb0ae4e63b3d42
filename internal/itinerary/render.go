package itinerary

import (
	"fmt"
	"time"

	"github.com/pkordes/travel-desk/internal/domain"
)

// Placeholder is shown for a missing optional value.
const Placeholder = "-"

// Disclaimer is printed at the bottom of every itinerary.
const Disclaimer = "This itinerary is provided for convenience only. All times are local. " +
	"Please confirm bookings with the respective providers before travel; " +
	"schedules may change without notice."

const (
	fullDateLayout  = "Monday, January 2, 2006"
	shortDateLayout = "Jan 2, 2006"
	stampLayout     = "Jan 2, 2006 15:04"
)

// RenderOptions carries the inputs Render does not take from the request.
type RenderOptions struct {
	// GeneratedAt is printed in the header. Callers pass the current time.
	GeneratedAt time.Time
}

// Render builds the printable document for a request and its days.
// The header, the travelers list, each day lead (day header plus the first
// block of the day), each item card, each free-day block and the footer are
// atomic. Render never fails: missing values become Placeholder and
// unrecognised items become a fallback block.
func Render(req domain.TravelRequest, days []Day, opts RenderOptions) Document {
	doc := Document{Title: "Itinerary " + orDash(req.RequestNumber)}

	doc.Children = append(doc.Children, header(req, opts))
	if len(req.Passengers) > 0 {
		doc.Children = append(doc.Children, travelers(req))
	}
	for i, d := range days {
		doc.Children = append(doc.Children, dayNode(i+1, d))
	}
	doc.Children = append(doc.Children, AtomicBlock{
		Class:    "footer",
		Children: []Node{Text{Text: Disclaimer, Muted: true}},
	})
	return doc
}

func header(req domain.TravelRequest, opts RenderOptions) Node {
	children := []Node{
		Heading{Level: 1, Text: "Travel Itinerary"},
		Field{Label: "Request", Value: orDash(req.RequestNumber)},
	}
	if req.Title != "" {
		children = append(children, Field{Label: "Trip", Value: req.Title})
	}
	children = append(children,
		Field{Label: "Dates", Value: statedRange(req)},
		Text{Text: "Generated " + opts.GeneratedAt.Format(stampLayout), Muted: true},
	)
	return AtomicBlock{Class: "header", Children: children}
}

func statedRange(req domain.TravelRequest) string {
	if req.TripStartDate == nil && req.TripEndDate == nil {
		return Placeholder
	}
	format := func(t *time.Time) string {
		if t == nil {
			return Placeholder
		}
		return t.Format(shortDateLayout)
	}
	return format(req.TripStartDate) + " - " + format(req.TripEndDate)
}

// travelers lists the main passenger first, then the rest in stored order.
func travelers(req domain.TravelRequest) Node {
	ps := req.Passengers
	if main, ok := req.MainPassenger(); ok {
		ps = make([]domain.Passenger, 0, len(req.Passengers))
		ps = append(ps, main)
		listed := false
		for _, p := range req.Passengers {
			if !listed && p.IsMain {
				listed = true
				continue
			}
			ps = append(ps, p)
		}
	}

	children := []Node{Heading{Level: 2, Text: "Travelers"}}
	for _, p := range ps {
		row := []Node{Text{Text: orDash(p.FullName)}}
		if p.IsMain {
			row = append(row, Badge{Text: "Main", Tone: "primary"})
		}
		children = append(children, Section{Class: "traveler", Children: row})
	}
	return AtomicBlock{Class: "travelers", Children: children}
}

func dayNode(index int, d Day) Node {
	lead := []Node{
		Heading{Level: 2, Text: fmt.Sprintf("Day %d", index)},
		Text{Text: d.Date.Format(fullDateLayout), Muted: true},
	}

	if d.IsFreeDay {
		lead = append(lead, AtomicBlock{
			Class: "free-day",
			Children: []Node{
				Icon{Name: "sun"},
				Text{Text: "Free day"},
				Text{Text: "No scheduled activities", Muted: true},
			},
		})
		return Section{Class: "day", Children: []Node{AtomicBlock{Class: "day-lead", Children: lead}}}
	}

	cards := make([]Node, 0, len(d.Items))
	for _, it := range d.Items {
		cards = append(cards, Card(it))
	}
	// The first card travels with the day header so a header is never
	// stranded at the bottom of a page.
	lead = append(lead, cards[0])
	children := append([]Node{AtomicBlock{Class: "day-lead", Children: lead}}, cards[1:]...)
	return Section{Class: "day", Children: children}
}

func orDash(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
