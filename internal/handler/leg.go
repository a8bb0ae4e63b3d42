package handler

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/pkordes/travel-desk/internal/domain"
)

// LegBody is the payload of POST /travel-requests/{id}/legs.
// Data holds the kind-specific fields (see the Flight, Hotel, ... schemas).
type LegBody struct {
	Kind domain.LegKind  `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// Leg is the API representation of a stored leg.
type Leg struct {
	ID        uuid.UUID       `json:"id"`
	Kind      domain.LegKind  `json:"kind"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"created_at"`
}

// CreateLeg handles POST /travel-requests/{id}/legs.
func (s *Server) CreateLeg(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}
	var body LegBody
	if err := decodeJSON(r, &body); err != nil {
		badRequest(w, err)
		return
	}
	if len(body.Data) == 0 {
		badRequest(w, errMissingData)
		return
	}

	created, err := s.legs.Create(r.Context(), requestID, body.Kind, body.Data)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	writeJSON(w, http.StatusCreated, legToResponse(created))
}

// ListLegs handles GET /travel-requests/{id}/legs.
func (s *Server) ListLegs(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}

	legs, err := s.legs.ListByRequest(r.Context(), requestID)
	if err != nil {
		s.writeError(w, r, err, "travel request not found")
		return
	}
	out := make([]Leg, len(legs))
	for i, l := range legs {
		out[i] = legToResponse(l)
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteLeg handles DELETE /travel-requests/{id}/legs/{legId}.
func (s *Server) DeleteLeg(w http.ResponseWriter, r *http.Request) {
	requestID, err := pathUUID(r, "id")
	if err != nil {
		invalidParam(w, err)
		return
	}
	legID, err := pathUUID(r, "legId")
	if err != nil {
		invalidParam(w, err)
		return
	}

	if err := s.legs.Delete(r.Context(), requestID, legID); err != nil {
		s.writeError(w, r, err, "leg not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func legToResponse(l domain.LegRecord) Leg {
	return Leg{ID: l.ID, Kind: l.Kind, Data: json.RawMessage(l.Payload), CreatedAt: l.CreatedAt}
}
