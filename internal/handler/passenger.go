package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-desk/internal/domain"
)

// PassengerBody is the payload of POST /travel-requests/{id}/passengers.
type PassengerBody struct {
	FullName string `json:"full_name"`
	IsMain   bool   `json:"is_main"`
}

// Passenger is the API representation of a traveller.
type Passenger struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	IsMain    bool      `json:"is_main"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePassenger handles POST /travel-requests/{id}/passengers.
// A second main passenger on the same request answers 409.
func (s *Server) CreatePassenger(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}
	var body PassengerBody
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}

	created, err := s.passengers.Create(r.Context(), domain.Passenger{
		TravelRequestID: requestID,
		FullName:        body.FullName,
		IsMain:          body.IsMain,
	})
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	writeJSON(w, http.StatusCreated, passengerToResponse(created))
}

// ListPassengers handles GET /travel-requests/{id}/passengers.
func (s *Server) ListPassengers(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}

	ps, err := s.passengers.ListByRequest(r.Context(), requestID)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	out := make([]Passenger, len(ps))
	for i, p := range ps {
		out[i] = passengerToResponse(p)
	}
	writeJSON(w, http.StatusOK, out)
}

// DeletePassenger handles DELETE /travel-requests/{id}/passengers/{passengerId}.
func (s *Server) DeletePassenger(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}
	passengerID, err := pathUUID(r, "passengerId")
	if err != nil {
		invalidParam(w, err)
		return
	}

	if err := s.passengers.Delete(r.Context(), requestID, passengerID); err != nil {
		s.writeError(w, r, err, "passenger not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func passengerToResponse(p domain.Passenger) Passenger {
	return Passenger{ID: p.ID, FullName: p.FullName, IsMain: p.IsMain, CreatedAt: p.CreatedAt}
}
