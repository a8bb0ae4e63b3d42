package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/handler"
)

// mockLegServicer is a test double for handler.LegServicer.
type mockLegServicer struct {
	create        func(ctx context.Context, requestID uuid.UUID, kind domain.LegKind, payload []byte) (domain.LegRecord, error)
	listByRequest func(ctx context.Context, requestID uuid.UUID) ([]domain.LegRecord, error)
	delete        func(ctx context.Context, requestID, legID uuid.UUID) error
}

func (m *mockLegServicer) Create(ctx context.Context, requestID uuid.UUID, kind domain.LegKind, payload []byte) (domain.LegRecord, error) {
	return m.create(ctx, requestID, kind, payload)
}
func (m *mockLegServicer) ListByRequest(ctx context.Context, requestID uuid.UUID) ([]domain.LegRecord, error) {
	return m.listByRequest(ctx, requestID)
}
func (m *mockLegServicer) Delete(ctx context.Context, requestID, legID uuid.UUID) error {
	return m.delete(ctx, requestID, legID)
}

// compile-time check: mockLegServicer must satisfy handler.LegServicer.
var _ handler.LegServicer = (*mockLegServicer)(nil)

func TestCreateLeg_201PassesKindAndData(t *testing.T) {
	requestID := uuid.New()
	var (
		gotKind    domain.LegKind
		gotPayload string
	)
	h := newHTTPHandler(servers{legs: &mockLegServicer{
		create: func(_ context.Context, id uuid.UUID, kind domain.LegKind, payload []byte) (domain.LegRecord, error) {
			require.Equal(t, requestID, id)
			gotKind, gotPayload = kind, string(payload)
			return domain.LegRecord{ID: uuid.New(), TravelRequestID: id, Kind: kind, Payload: payload, CreatedAt: time.Now()}, nil
		},
	}})

	rec := do(t, h, http.MethodPost, "/travel-requests/"+requestID.String()+"/legs", jsonBody(t, map[string]any{
		"kind": "hotel",
		"data": map[string]any{"name": "Hotel Sacher", "check_in_date": "2025-03-01"},
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.LegHotel, gotKind)
	assert.JSONEq(t, `{"name":"Hotel Sacher","check_in_date":"2025-03-01"}`, gotPayload)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "hotel", body["kind"])
	assert.Equal(t, "Hotel Sacher", body["data"].(map[string]any)["name"])
}

func TestCreateLeg_422WithoutData(t *testing.T) {
	h := newHTTPHandler(servers{legs: &mockLegServicer{}})

	rec := do(t, h, http.MethodPost, "/travel-requests/"+uuid.NewString()+"/legs", jsonBody(t, map[string]any{"kind": "hotel"}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "data is required", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestCreateLeg_422OnInvalidPayload(t *testing.T) {
	h := newHTTPHandler(servers{legs: &mockLegServicer{
		create: func(_ context.Context, _ uuid.UUID, _ domain.LegKind, _ []byte) (domain.LegRecord, error) {
			return domain.LegRecord{}, fmt.Errorf("%w: check_out_date must not be before check_in_date", domain.ErrValidation)
		},
	}})

	rec := do(t, h, http.MethodPost, "/travel-requests/"+uuid.NewString()+"/legs", jsonBody(t, map[string]any{
		"kind": "hotel",
		"data": map[string]any{"name": "x"},
	}))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "check_out_date must not be before check_in_date", decode[handler.ErrorResponse](t, rec).Error.Message)
}

func TestListLegs_404WhenRequestMissing(t *testing.T) {
	h := newHTTPHandler(servers{legs: &mockLegServicer{
		listByRequest: func(_ context.Context, _ uuid.UUID) ([]domain.LegRecord, error) {
			return nil, domain.ErrNotFound
		},
	}})

	rec := do(t, h, http.MethodGet, "/travel-requests/"+uuid.NewString()+"/legs", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListLegs_EmptyArray(t *testing.T) {
	h := newHTTPHandler(servers{legs: &mockLegServicer{
		listByRequest: func(_ context.Context, _ uuid.UUID) ([]domain.LegRecord, error) {
			return []domain.LegRecord{}, nil
		},
	}})

	rec := do(t, h, http.MethodGet, "/travel-requests/"+uuid.NewString()+"/legs", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestDeleteLeg_ScopedToRequest(t *testing.T) {
	requestID, legID := uuid.New(), uuid.New()
	h := newHTTPHandler(servers{legs: &mockLegServicer{
		delete: func(_ context.Context, rid, lid uuid.UUID) error {
			assert.Equal(t, requestID, rid)
			assert.Equal(t, legID, lid)
			return nil
		},
	}})

	rec := do(t, h, http.MethodDelete, fmt.Sprintf("/travel-requests/%s/legs/%s", requestID, legID), nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestDeleteLeg_400OnMalformedLegID(t *testing.T) {
	h := newHTTPHandler(servers{legs: &mockLegServicer{}})

	rec := do(t, h, http.MethodDelete, "/travel-requests/"+uuid.NewString()+"/legs/nope", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
