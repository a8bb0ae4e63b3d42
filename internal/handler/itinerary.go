package handler

import (
	"mime"
	"net/http"
	"strings"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-desk/internal/itinerary"
	"github.com/pkordes/travel-desk/internal/itinerary/printview"
)

// ItineraryResponse is the body of GET /travel-requests/{id}/itinerary.
type ItineraryResponse struct {
	Request  TravelRequest      `json:"request"`
	Days     []ItineraryDay     `json:"days"`
	Document itinerary.Document `json:"document"`
	Warnings []ItineraryWarning `json:"warnings"`
}

// ItineraryDay is one calendar day of an itinerary.
type ItineraryDay struct {
	DayNumber int                `json:"day_number"`
	Date      openapi_types.Date `json:"date"`
	IsFreeDay bool               `json:"is_free_day"`
	Items     []ItineraryItem    `json:"items"`
}

// ItineraryItem is a scheduled item in display order.
type ItineraryItem struct {
	Kind  itinerary.Kind `json:"kind"`
	Time  string         `json:"time,omitempty"`
	Label string         `json:"label"`
	Title string         `json:"title"`
}

// ItineraryWarning flags an item outside the stated trip dates.
type ItineraryWarning struct {
	Date    openapi_types.Date `json:"date"`
	Kind    itinerary.Kind     `json:"kind"`
	Message string             `json:"message"`
}

// GetItinerary handles GET /travel-requests/{id}/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}

	it, err := s.itineraries.Build(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}

	resp := ItineraryResponse{
		Request:  travelRequestToResponse(it.Request),
		Days:     make([]ItineraryDay, len(it.Days)),
		Document: it.Document,
		Warnings: make([]ItineraryWarning, len(it.Warnings)),
	}
	for i, d := range it.Days {
		resp.Days[i] = dayToResponse(i, d)
	}
	for i, wn := range it.Warnings {
		resp.Warnings[i] = ItineraryWarning{Date: openapi_types.Date{Time: wn.Date}, Kind: wn.Kind, Message: wn.Message}
	}
	writeJSON(w, http.StatusOK, resp)
}

// PrintItinerary handles GET /travel-requests/{id}/itinerary/print.
// It answers with a standalone HTML page laid out for A4 printing.
func (s *Server) PrintItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}

	it, err := s.itineraries.Build(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := printview.Write(w, it.Document); err != nil {
		// Headers are already sent; the best we can do is log.
		s.log.ErrorContext(r.Context(), "print view write failed", "request_id", id, "error", err)
	}
}

func dayToResponse(i int, d itinerary.Day) ItineraryDay {
	out := ItineraryDay{
		DayNumber: i + 1,
		Date:      openapi_types.Date{Time: d.Date},
		IsFreeDay: d.IsFreeDay,
		Items:     make([]ItineraryItem, len(d.Items)),
	}
	for j, item := range d.Items {
		out.Items[j] = ItineraryItem{
			Kind:  item.Kind(),
			Time:  itinerary.TimeOf(item),
			Label: itinerary.Label(item),
			Title: itinerary.Title(item),
		}
	}
	return out
}

// timestampLayout is used in export file names.
const timestampLayout = "20060102"

// exportFilename builds the download name. Characters outside
// [A-Za-z0-9._-] in the request number become underscores.
func exportFilename(requestNumber string, now time.Time) string {
	name := "itinerary-"
	if requestNumber != "" {
		name += strings.Map(fileNameRune, requestNumber) + "-"
	}
	return name + now.Format(timestampLayout) + ".csv"
}

func fileNameRune(r rune) rune {
	switch {
	case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '.', r == '-', r == '_':
		return r
	}
	return '_'
}

// attachment returns a Content-Disposition value for a file download.
func attachment(filename string) string {
	return mime.FormatMediaType("attachment", map[string]string{"filename": filename})
}
