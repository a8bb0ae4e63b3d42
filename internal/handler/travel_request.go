package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-desk/internal/domain"
)

// TravelRequestBody is the payload of POST and PUT /travel-requests.
type TravelRequestBody struct {
	RequestNumber string              `json:"request_number"`
	Title         *string             `json:"title,omitempty"`
	TripStartDate *openapi_types.Date `json:"trip_start_date,omitempty"`
	TripEndDate   *openapi_types.Date `json:"trip_end_date,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
}

// TravelRequest is the API representation of a travel request.
type TravelRequest struct {
	ID            uuid.UUID           `json:"id"`
	RequestNumber string              `json:"request_number"`
	Title         string              `json:"title"`
	TripStartDate *openapi_types.Date `json:"trip_start_date"`
	TripEndDate   *openapi_types.Date `json:"trip_end_date"`
	Notes         string              `json:"notes"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TravelRequestList is the body of GET /travel-requests.
type TravelRequestList struct {
	Data       []TravelRequest `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

// CreateTravelRequest handles POST /travel-requests.
func (s *Server) CreateTravelRequest(w http.ResponseWriter, r *http.Request) {
	var body TravelRequestBody
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	created, err := s.requests.Create(r.Context(), bodyToTravelRequest(uuid.Nil, body))
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	writeJSON(w, http.StatusCreated, travelRequestToResponse(created))
}

// ListTravelRequests handles GET /travel-requests.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100), a ?q=
// search over request number and title, and a ?from=&to= date window.
func (s *Server) ListTravelRequests(w http.ResponseWriter, r *http.Request) {
	var (
		page, limit *int
		q           *string
		from, to    *openapi_types.Date
	)
	for name, dest := range map[string]any{"page": &page, "limit": &limit, "q": &q, "from": &from, "to": &to} {
		if err := queryParam(r, name, dest); err != nil {
			invalidParam(w, err)
			return
		}
	}

	filter := domain.TravelRequestFilter{From: dateToTime(from), To: dateToTime(to)}
	if q != nil {
		filter.Search = *q
	}
	params := domain.NewPaginationParams(page, limit)

	reqs, total, err := s.requests.ListPaged(r.Context(), filter, params)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}

	data := make([]TravelRequest, len(reqs))
	for i, tr := range reqs {
		data[i] = travelRequestToResponse(tr)
	}
	writeJSON(w, http.StatusOK, TravelRequestList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTravelRequest handles GET /travel-requests/{id}.
func (s *Server) GetTravelRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}

	tr, err := s.requests.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	writeJSON(w, http.StatusOK, travelRequestToResponse(tr))
}

// UpdateTravelRequest handles PUT /travel-requests/{id}.
func (s *Server) UpdateTravelRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}
	var body TravelRequestBody
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	updated, err := s.requests.Update(r.Context(), bodyToTravelRequest(id, body))
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	writeJSON(w, http.StatusOK, travelRequestToResponse(updated))
}

// DeleteTravelRequest handles DELETE /travel-requests/{id}.
func (s *Server) DeleteTravelRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}

	if err := s.requests.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- mapping helpers --------------------------------------------------------

// bodyToTravelRequest converts a request body into a domain.TravelRequest,
// using id as the primary key (uuid.Nil on create).
func bodyToTravelRequest(id uuid.UUID, body TravelRequestBody) domain.TravelRequest {
	tr := domain.TravelRequest{
		ID:            id,
		RequestNumber: body.RequestNumber,
		TripStartDate: dateToTime(body.TripStartDate),
		TripEndDate:   dateToTime(body.TripEndDate),
	}
	if body.Title != nil {
		tr.Title = *body.Title
	}
	if body.Notes != nil {
		tr.Notes = *body.Notes
	}
	return tr
}

// travelRequestToResponse maps a domain.TravelRequest to its API shape.
func travelRequestToResponse(tr domain.TravelRequest) TravelRequest {
	return TravelRequest{
		ID:            tr.ID,
		RequestNumber: tr.RequestNumber,
		Title:         tr.Title,
		TripStartDate: timeToDate(tr.TripStartDate),
		TripEndDate:   timeToDate(tr.TripEndDate),
		Notes:         tr.Notes,
		CreatedAt:     tr.CreatedAt,
		UpdatedAt:     tr.UpdatedAt,
	}
}

func dateToTime(d *openapi_types.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

func timeToDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}
