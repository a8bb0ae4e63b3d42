package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-desk/internal/domain"
	"github.com/pkordes/travel-desk/internal/itinerary"
	"github.com/pkordes/travel-desk/internal/metrics"
	"github.com/pkordes/travel-desk/internal/service"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func leg(kind domain.LegKind, payload string) domain.LegRecord {
	return domain.LegRecord{ID: uuid.New(), Kind: kind, Payload: []byte(payload)}
}

// itineraryFixture wires an ItineraryService over in-memory legs and passengers.
func itineraryFixture(legs []domain.LegRecord, passengers []domain.Passenger) (*service.ItineraryService, *metrics.Metrics) {
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewItineraryService(
		existingRequest(),
		&mockLegRepo{
			listByRequest: func(_ context.Context, _ uuid.UUID) ([]domain.LegRecord, error) { return legs, nil },
		},
		&mockPassengerRepo{
			listByRequest: func(_ context.Context, _ uuid.UUID) ([]domain.Passenger, error) { return passengers, nil },
		},
		m,
		discard,
	).WithClock(func() time.Time { return time.Date(2025, 2, 20, 16, 30, 0, 0, time.UTC) })
	return svc, m
}

func TestItineraryService_Build_HydratesAndSchedules(t *testing.T) {
	hotel := leg(domain.LegHotel, `{"name":"Hotel Sacher","check_in_date":"2025-03-01","check_out_date":"2025-03-05"}`)
	flight := leg(domain.LegFlight, `{"flight_number":"BA 117","departure_date":"2025-03-01","departure_time":"08:15"}`)
	svc, m := itineraryFixture(
		[]domain.LegRecord{hotel, flight},
		[]domain.Passenger{{FullName: "Ada Lovelace", IsMain: true}},
	)

	got, err := svc.Build(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Len(t, got.Days, 5)
	require.Len(t, got.Request.Hotels, 1)
	assert.Equal(t, hotel.ID, got.Request.Hotels[0].ID)
	assert.Equal(t, flight.ID, got.Request.Flights[0].ID)

	day1 := got.Days[0].Items
	require.Len(t, day1, 2)
	assert.Equal(t, itinerary.KindFlight, day1[0].Kind(), "08:15 flight before the 15:00 check-in")
	assert.Equal(t, itinerary.KindHotel, day1[1].Kind())
	assert.True(t, got.Days[1].IsFreeDay)

	assert.Equal(t, "Itinerary TR-2025-0001", got.Document.Title)
	assert.Empty(t, got.Warnings)
	assert.NotNil(t, got.Warnings)
	assert.InDelta(t, 1, promtest.ToFloat64(m.Builds.WithLabelValues(metrics.OutcomeOK)), 0)
}

func TestItineraryService_Build_WarnsOutsideStatedRange(t *testing.T) {
	svc, m := itineraryFixture([]domain.LegRecord{
		leg(domain.LegEvent, `{"name":"Pre-trip fitting","event_date":"2025-02-27"}`),
	}, nil)

	got, err := svc.Build(context.Background(), uuid.New())

	require.NoError(t, err)
	require.Len(t, got.Warnings, 1)
	assert.Equal(t, itinerary.KindEvent, got.Warnings[0].Kind)
	assert.Equal(t, time.Date(2025, 2, 27, 0, 0, 0, 0, time.UTC), got.Days[0].Date, "range widened to the event")
	assert.InDelta(t, 1, promtest.ToFloat64(m.OutOfRangeItems), 0)
}

func TestItineraryService_Build_SkipsUndecodableLeg(t *testing.T) {
	svc, _ := itineraryFixture([]domain.LegRecord{
		leg(domain.LegHotel, `{"name":`),
		leg(domain.LegEmbassy, `{"appointment_date":"2025-03-02"}`),
	}, nil)

	got, err := svc.Build(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Empty(t, got.Request.Hotels)
	assert.Len(t, got.Request.EmbassyServices, 1)
}

func TestItineraryService_Build_NotFound(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	svc := service.NewItineraryService(missingRequest(), &mockLegRepo{}, &mockPassengerRepo{}, m, discard)

	_, err := svc.Build(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.InDelta(t, 1, promtest.ToFloat64(m.Builds.WithLabelValues(metrics.OutcomeNotFound)), 0)
}

func TestItineraryService_Build_LegRepoError(t *testing.T) {
	dbErr := errors.New("connection reset")
	svc := service.NewItineraryService(existingRequest(), &mockLegRepo{
		listByRequest: func(_ context.Context, _ uuid.UUID) ([]domain.LegRecord, error) { return nil, dbErr },
	}, &mockPassengerRepo{}, nil, discard)

	_, err := svc.Build(context.Background(), uuid.New())

	assert.ErrorIs(t, err, dbErr)
}

func TestItineraryService_Build_RejectsOverlongSpan(t *testing.T) {
	// Both dates are bookable on their own; together they span over three years.
	svc, m := itineraryFixture([]domain.LegRecord{
		leg(domain.LegEvent, `{"name":"Opening","event_date":"2025-03-01"}`),
		leg(domain.LegEvent, `{"name":"Closing","event_date":"2028-06-01"}`),
	}, nil)

	_, err := svc.Build(context.Background(), uuid.New())
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.ErrorContains(t, err, "limit is 731")
	assert.InDelta(t, 1, promtest.ToFloat64(m.Builds.WithLabelValues(metrics.OutcomeRejected)), 0)
	assert.InDelta(t, 0, promtest.ToFloat64(m.Builds.WithLabelValues(metrics.OutcomeOK)), 0)

	_, err = svc.Export(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestItineraryService_Build_SpanAtLimit(t *testing.T) {
	// The stated trip starts 2025-03-01; 730 days later is the last allowed day.
	last := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, domain.MaxItineraryDays-1)
	svc, _ := itineraryFixture([]domain.LegRecord{
		leg(domain.LegEmbassy, `{"appointment_date":"`+last.Format(time.DateOnly)+`"}`),
	}, nil)

	got, err := svc.Build(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Len(t, got.Days, domain.MaxItineraryDays)
}

func TestItineraryService_Export_OneRowPerItemOrFreeDay(t *testing.T) {
	svc, _ := itineraryFixture([]domain.LegRecord{
		leg(domain.LegRentalCar, `{"company":"Sixt","pickup_date":"2025-03-01","pickup_time":"10:00","return_date":"2025-03-03"}`),
	}, nil)

	rows, err := svc.Export(context.Background(), uuid.New())

	require.NoError(t, err)
	// Mar 1 pickup, Mar 2 free, Mar 3 return, Mar 4-5 free
	require.Len(t, rows, 5)
	assert.Equal(t, "Rental car pickup", rows[0].Label)
	assert.Equal(t, "10:00", rows[0].Time)
	assert.Equal(t, "Free day", rows[1].Label)
	assert.Equal(t, "Rental car return", rows[2].Label)
	assert.Equal(t, 3, rows[2].DayNumber)
	assert.Equal(t, "TR-2025-0001", rows[4].RequestNumber)
}
