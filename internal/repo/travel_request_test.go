package repo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/repo"
	"github.com/pkordes/travel-desk/testutil"
)

// testRepos bundles every repo backed by one rolled-back transaction so a
// test can create a parent request and its children together.
type testRepos struct {
	requests   repo.TravelRequestRepo
	legs       repo.LegRepo
	passengers repo.PassengerRepo
}

// newTestRepos returns repos sharing one rolled-back transaction.
// Requires TEST_DATABASE_URL; TestMain applies the migrations.
func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	tx := testutil.BeginTx(t, testutil.NewPool(t))
	return testRepos{
		requests:   repo.NewTravelRequestRepo(tx),
		legs:       repo.NewLegRepo(tx),
		passengers: repo.NewPassengerRepo(tx),
	}
}

var fixtureSeq int

// requestFixture returns a domain.TravelRequest with sensible defaults and a
// request number unique within the test binary.
func requestFixture() domain.TravelRequest {
	fixtureSeq++
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.TravelRequest{
		RequestNumber: fmt.Sprintf("TR-TEST-%04d", fixtureSeq),
		Title:         "Summer in Provence",
		TripStartDate: &start,
		TripEndDate:   &end,
		Notes:         "Test notes",
	}
}

// mustCreateRequest inserts a parent request and fails the test if the insert fails.
func mustCreateRequest(t *testing.T, r repo.TravelRequestRepo) domain.TravelRequest {
	t.Helper()
	req, err := r.Create(context.Background(), requestFixture())
	require.NoError(t, err, "create parent travel request")
	return req
}

func TestTravelRequestRepo_Create(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	input := requestFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, [16]byte{}, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.RequestNumber, got.RequestNumber)
	assert.Equal(t, input.Title, got.Title)
	require.NotNil(t, got.TripStartDate)
	assert.True(t, got.TripStartDate.Equal(*input.TripStartDate), "TripStartDate mismatch")
	require.NotNil(t, got.TripEndDate)
	assert.True(t, got.TripEndDate.Equal(*input.TripEndDate), "TripEndDate mismatch")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
}

func TestTravelRequestRepo_Create_NilDates(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	input := requestFixture()
	input.TripStartDate, input.TripEndDate = nil, nil

	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.Nil(t, got.TripStartDate)
	assert.Nil(t, got.TripEndDate)
}

func TestTravelRequestRepo_Create_DuplicateNumber(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	first := mustCreateRequest(t, r)
	dup := requestFixture()
	dup.RequestNumber = first.RequestNumber

	_, err := r.Create(ctx, dup)

	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestTravelRequestRepo_GetByID(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	created := mustCreateRequest(t, r)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.RequestNumber, got.RequestNumber)
}

func TestTravelRequestRepo_GetByID_NotFound(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	id := [16]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}

	_, err := r.GetByID(ctx, id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTravelRequestRepo_List(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	a := mustCreateRequest(t, r)
	b := mustCreateRequest(t, r)

	reqs, err := r.List(ctx)

	require.NoError(t, err)
	var numbers []string
	for _, x := range reqs {
		numbers = append(numbers, x.RequestNumber)
	}
	assert.Contains(t, numbers, a.RequestNumber)
	assert.Contains(t, numbers, b.RequestNumber)
}

func TestTravelRequestRepo_ListPaged_SearchAndWindow(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	june := requestFixture()
	june.Title = "Zermatt ski week"
	_, err := r.Create(ctx, june)
	require.NoError(t, err)

	autumn := requestFixture()
	autumnStart := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	autumnEnd := time.Date(2025, 10, 9, 0, 0, 0, 0, time.UTC)
	autumn.TripStartDate, autumn.TripEndDate = &autumnStart, &autumnEnd
	autumn.Title = "Zermatt autumn hike"
	_, err = r.Create(ctx, autumn)
	require.NoError(t, err)

	from := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	got, total, err := r.ListPaged(ctx,
		domain.TravelRequestFilter{Search: "zermatt", From: &from},
		domain.NewPaginationParams(nil, nil))

	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, autumn.RequestNumber, got[0].RequestNumber)
}

func TestTravelRequestRepo_ListPaged_Limit(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	for range 3 {
		mustCreateRequest(t, r)
	}

	limit := 2
	got, total, err := r.ListPaged(ctx, domain.TravelRequestFilter{Search: "TR-TEST-"}, domain.NewPaginationParams(nil, &limit))

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.GreaterOrEqual(t, total, int64(3))
}

func TestTravelRequestRepo_Update(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	created := mustCreateRequest(t, r)
	created.Title = "Updated title"
	created.TripEndDate = nil

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Updated title", updated.Title)
	assert.Nil(t, updated.TripEndDate)
}

func TestTravelRequestRepo_Update_NotFound(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	ghost := requestFixture()
	ghost.ID = [16]byte{0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef,
		0xde, 0xad, 0xbe, 0xef, 0xde, 0xad, 0xbe, 0xef}

	_, err := r.Update(ctx, ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTravelRequestRepo_Delete(t *testing.T) {
	r := newTestRepos(t).requests
	ctx := context.Background()

	created := mustCreateRequest(t, r)

	require.NoError(t, r.Delete(ctx, created.ID))

	_, err := r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "request should be gone after delete")
}

func TestTravelRequestRepo_Delete_NotFound(t *testing.T) {
	r := newTestRepos(t).requests

	id := [16]byte{0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe,
		0xca, 0xfe, 0xba, 0xbe, 0xca, 0xfe, 0xba, 0xbe}

	err := r.Delete(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
