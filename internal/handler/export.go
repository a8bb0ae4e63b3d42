package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/pkordes/travel-desk/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"request_number", "title", "day", "date", "kind", "time", "label", "detail",
}

// ExportRow is the JSON shape of one flat itinerary row.
type ExportRow struct {
	RequestNumber string `json:"request_number"`
	Title         string `json:"title"`
	DayNumber     int    `json:"day"`
	Date          string `json:"date"`
	Kind          string `json:"kind,omitempty"`
	Time          string `json:"time,omitempty"`
	Label         string `json:"label"`
	Detail        string `json:"detail,omitempty"`
}

// ExportItinerary handles GET /travel-requests/{id}/itinerary/export.
// It returns one row per itinerary item and one per free day.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}
	var format *string
	if err := queryParam(r, "format", &format); err != nil {
		invalidParam(w, err)
		return
	}

	rows, err := s.itineraries.Export(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}

	if format != nil && *format == "csv" {
		var reqNo string
		if len(rows) > 0 {
			reqNo = rows[0].RequestNumber
		}
		buf := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", attachment(exportFilename(reqNo, time.Now())))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		//nolint:errcheck // the client may have gone away; nothing to do.
		buf.WriteTo(w)
		return
	}

	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, ExportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// buildCSV encodes domain rows as CSV, header first.
func buildCSV(rows []domain.ItineraryRow) *bytes.Buffer {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	w.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		w.Write(rowToCSVRecord(r))
	}
	w.Flush()
	return &buf
}

func rowToCSVRecord(r domain.ItineraryRow) []string {
	return []string{
		r.RequestNumber,
		r.Title,
		strconv.Itoa(r.DayNumber),
		r.Date,
		r.Kind,
		r.Time,
		r.Label,
		r.Detail,
	}
}
