package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/repo"
	"github.com/pkordes/travel-desk/internal/service"
)

// mockTravelRequestRepo is a hand-written test double for repo.TravelRequestRepo.
// Each method is a function field; set only the ones your test needs.
type mockTravelRequestRepo struct {
	create    func(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.TravelRequest, error)
	list      func(ctx context.Context) ([]domain.TravelRequest, error)
	listPaged func(ctx context.Context, f domain.TravelRequestFilter, p domain.PaginationParams) ([]domain.TravelRequest, int64, error)
	update    func(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error)
	delete    func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTravelRequestRepo) Create(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error) {
	return m.create(ctx, req)
}
func (m *mockTravelRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TravelRequest, error) {
	return m.getByID(ctx, id)
}
func (m *mockTravelRequestRepo) List(ctx context.Context) ([]domain.TravelRequest, error) {
	return m.list(ctx)
}
func (m *mockTravelRequestRepo) ListPaged(ctx context.Context, f domain.TravelRequestFilter, p domain.PaginationParams) ([]domain.TravelRequest, int64, error) {
	return m.listPaged(ctx, f, p)
}
func (m *mockTravelRequestRepo) Update(ctx context.Context, req domain.TravelRequest) (domain.TravelRequest, error) {
	return m.update(ctx, req)
}
func (m *mockTravelRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// compile-time check: mockTravelRequestRepo must satisfy repo.TravelRequestRepo.
var _ repo.TravelRequestRepo = (*mockTravelRequestRepo)(nil)

// ---- helpers ---------------------------------------------------------------

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func validRequest() domain.TravelRequest {
	return domain.TravelRequest{
		RequestNumber: "TR-2025-0001",
		Title:         "Vienna and Salzburg",
		TripStartDate: date(2025, 3, 1),
		TripEndDate:   date(2025, 3, 5),
	}
}

func echoRequestRepo() *mockTravelRequestRepo {
	return &mockTravelRequestRepo{
		create: func(_ context.Context, r domain.TravelRequest) (domain.TravelRequest, error) { return r, nil },
		update: func(_ context.Context, r domain.TravelRequest) (domain.TravelRequest, error) { return r, nil },
	}
}

// existingRequest is a repo whose GetByID always finds the request.
func existingRequest() *mockTravelRequestRepo {
	return &mockTravelRequestRepo{
		getByID: func(_ context.Context, id uuid.UUID) (domain.TravelRequest, error) {
			r := validRequest()
			r.ID = id
			return r, nil
		},
	}
}

func missingRequest() *mockTravelRequestRepo {
	return &mockTravelRequestRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.TravelRequest, error) {
			return domain.TravelRequest{}, domain.ErrNotFound
		},
	}
}

// ---- Create ----------------------------------------------------------------

func TestTravelRequestService_Create_Valid(t *testing.T) {
	svc := service.NewTravelRequestService(echoRequestRepo())

	got, err := svc.Create(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "TR-2025-0001", got.RequestNumber)
}

func TestTravelRequestService_Create_TrimsRequestNumber(t *testing.T) {
	svc := service.NewTravelRequestService(echoRequestRepo())
	input := validRequest()
	input.RequestNumber = "  TR-9  "

	got, err := svc.Create(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, "TR-9", got.RequestNumber)
}

func TestTravelRequestService_Create_MissingRequestNumber(t *testing.T) {
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{})
	input := validRequest()
	input.RequestNumber = "   "

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTravelRequestService_Create_EndBeforeStart(t *testing.T) {
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{})
	input := validRequest()
	input.TripEndDate = date(2025, 2, 28)

	_, err := svc.Create(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTravelRequestService_Create_OpenEnded(t *testing.T) {
	svc := service.NewTravelRequestService(echoRequestRepo())
	input := validRequest()
	input.TripStartDate = nil
	input.TripEndDate = nil

	_, err := svc.Create(context.Background(), input)

	assert.NoError(t, err)
}

func TestTravelRequestService_Create_Conflict(t *testing.T) {
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{
		create: func(_ context.Context, _ domain.TravelRequest) (domain.TravelRequest, error) {
			return domain.TravelRequest{}, domain.ErrConflict
		},
	})

	_, err := svc.Create(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ---- Read ------------------------------------------------------------------

func TestTravelRequestService_GetByID_NotFound(t *testing.T) {
	svc := service.NewTravelRequestService(missingRequest())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTravelRequestService_List_Empty(t *testing.T) {
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{
		list: func(_ context.Context) ([]domain.TravelRequest, error) { return nil, nil },
	})

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTravelRequestService_ListPaged_PassesTrimmedFilter(t *testing.T) {
	var gotFilter domain.TravelRequestFilter
	var gotPage domain.PaginationParams
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{
		listPaged: func(_ context.Context, f domain.TravelRequestFilter, p domain.PaginationParams) ([]domain.TravelRequest, int64, error) {
			gotFilter, gotPage = f, p
			return nil, 0, nil
		},
	})

	page := 2
	reqs, total, err := svc.ListPaged(context.Background(),
		domain.TravelRequestFilter{Search: "  vienna "},
		domain.NewPaginationParams(&page, nil))

	require.NoError(t, err)
	assert.NotNil(t, reqs)
	assert.Zero(t, total)
	assert.Equal(t, "vienna", gotFilter.Search)
	assert.Equal(t, 20, gotPage.Offset())
}

func TestTravelRequestService_ListPaged_InvertedWindow(t *testing.T) {
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{})

	_, _, err := svc.ListPaged(context.Background(),
		domain.TravelRequestFilter{From: date(2025, 4, 1), To: date(2025, 3, 1)},
		domain.NewPaginationParams(nil, nil))

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- Update / Delete -------------------------------------------------------

func TestTravelRequestService_Update_ValidationFails(t *testing.T) {
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{})
	input := validRequest()
	input.RequestNumber = ""

	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTravelRequestService_Update_StatedDateOutsideBookingYears(t *testing.T) {
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{})
	input := validRequest()
	input.TripEndDate = date(2100, time.January, 1)

	_, err := svc.Update(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "trip_end_date")
}

func TestTravelRequestService_Update_Valid(t *testing.T) {
	svc := service.NewTravelRequestService(echoRequestRepo())
	input := validRequest()
	input.ID = uuid.New()

	got, err := svc.Update(context.Background(), input)

	require.NoError(t, err)
	assert.Equal(t, input.ID, got.ID)
}

func TestTravelRequestService_Delete_RepoError(t *testing.T) {
	dbErr := errors.New("connection reset")
	svc := service.NewTravelRequestService(&mockTravelRequestRepo{
		delete: func(_ context.Context, _ uuid.UUID) error { return dbErr },
	})

	err := svc.Delete(context.Background(), uuid.New())

	assert.ErrorIs(t, err, dbErr)
}
