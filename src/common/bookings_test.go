package common

import (
	"log"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	mock.MatchExpectationsInOrder(false)
	db.NewDB(gormDB)
	return gormDB, mock
}

func mustParse(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02T15:04:05", v)
	if err != nil {
		t.Fatalf("bad timestamp %q: %s", v, err)
	}
	return ts
}

func TestBookingMatchesStateAll(t *testing.T) {
	now := mustParse(t, "2023-06-01T00:00:00")
	bookings := []models.Booking{
		{Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour), Status: types.BOOKING_APPROVED},
		{Start: now.Add(-time.Hour), End: now.Add(time.Hour), Status: types.BOOKING_WAITING},
		{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: types.BOOKING_REJECTED},
	}
	for i := range bookings {
		assert.True(t, BookingMatchesState(&bookings[i], types.STATE_ALL, now))
	}
}

func TestBookingMatchesStateTemporal(t *testing.T) {
	now := mustParse(t, "2023-06-01T00:00:00")

	// A WAITING booking that has not started yet.
	future := models.Booking{
		Start:  mustParse(t, "2024-01-01T01:01:01"),
		End:    mustParse(t, "2024-02-01T01:01:01"),
		Status: types.BOOKING_WAITING,
	}
	assert.True(t, BookingMatchesState(&future, types.STATE_FUTURE, now))
	assert.False(t, BookingMatchesState(&future, types.STATE_PAST, now))
	assert.False(t, BookingMatchesState(&future, types.STATE_CURRENT, now))
	assert.True(t, BookingMatchesState(&future, types.STATE_WAITING, now))

	past := models.Booking{Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)}
	assert.True(t, BookingMatchesState(&past, types.STATE_PAST, now))
	assert.False(t, BookingMatchesState(&past, types.STATE_CURRENT, now))
	assert.False(t, BookingMatchesState(&past, types.STATE_FUTURE, now))

	current := models.Booking{Start: now.Add(-time.Hour), End: now.Add(time.Hour)}
	assert.True(t, BookingMatchesState(&current, types.STATE_CURRENT, now))
	assert.False(t, BookingMatchesState(&current, types.STATE_PAST, now))
	assert.False(t, BookingMatchesState(&current, types.STATE_FUTURE, now))
}

// Boundary rule: start == now and end == now both count as CURRENT,
// never PAST or FUTURE.
func TestBookingMatchesStateBoundaries(t *testing.T) {
	now := mustParse(t, "2023-06-01T12:00:00")

	startsNow := models.Booking{Start: now, End: now.Add(time.Hour)}
	assert.True(t, BookingMatchesState(&startsNow, types.STATE_CURRENT, now))
	assert.False(t, BookingMatchesState(&startsNow, types.STATE_FUTURE, now))

	endsNow := models.Booking{Start: now.Add(-time.Hour), End: now}
	assert.True(t, BookingMatchesState(&endsNow, types.STATE_CURRENT, now))
	assert.False(t, BookingMatchesState(&endsNow, types.STATE_PAST, now))
}

// CURRENT, PAST and FUTURE partition the timeline: for any booking and
// reference time exactly one of them matches.
func TestBookingStatePartition(t *testing.T) {
	now := mustParse(t, "2023-06-01T12:00:00")
	offsets := []time.Duration{-48 * time.Hour, -time.Hour, 0, time.Hour, 48 * time.Hour}
	for _, so := range offsets {
		for _, eo := range offsets {
			if eo <= so {
				continue
			}
			b := models.Booking{Start: now.Add(so), End: now.Add(eo)}
			matches := 0
			for _, state := range []types.BookingState{types.STATE_CURRENT, types.STATE_PAST, types.STATE_FUTURE} {
				if BookingMatchesState(&b, state, now) {
					matches++
				}
			}
			assert.Equal(t, 1, matches, "start=%s end=%s", b.Start, b.End)
		}
	}
}

// The REJECTED view covers CANCELED rows as well: out of WAITING(1),
// APPROVED(2), REJECTED(1), CANCELED(1) it selects exactly two.
func TestRejectedStateGroupsCanceled(t *testing.T) {
	now := mustParse(t, "2023-06-01T12:00:00")
	statuses := []types.BookingStatus{
		types.BOOKING_WAITING,
		types.BOOKING_APPROVED,
		types.BOOKING_APPROVED,
		types.BOOKING_REJECTED,
		types.BOOKING_CANCELED,
	}
	matched := 0
	for _, s := range statuses {
		b := models.Booking{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: s}
		if BookingMatchesState(&b, types.STATE_REJECTED, now) {
			matched++
		}
	}
	assert.Equal(t, 2, matched)
}

func TestCreateBookingInvalidTimeRange(t *testing.T) {
	newMockDB(t)
	start := time.Now().Add(24 * time.Hour).Format("2006-01-02T15:04:05")

	_, err := CreateBooking(1, &types.CreateBookingRequestBody{ItemID: 1, Start: start, End: start})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	end := time.Now().Add(12 * time.Hour).Format("2006-01-02T15:04:05")
	_, err = CreateBooking(1, &types.CreateBookingRequestBody{ItemID: 1, Start: start, End: end})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	pastStart := time.Now().Add(-48 * time.Hour).Format("2006-01-02T15:04:05")
	pastEnd := time.Now().Add(-24 * time.Hour).Format("2006-01-02T15:04:05")
	_, err = CreateBooking(1, &types.CreateBookingRequestBody{ItemID: 1, Start: pastStart, End: pastEnd})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = CreateBooking(1, &types.CreateBookingRequestBody{ItemID: 1, Start: "garbage", End: end})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

// Wall-clock timestamps just ahead of now must be accepted whatever
// zone the server runs in.
func TestCreateBookingNearFutureWallClock(t *testing.T) {
	_, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(1, "booker", "booker@example.com"))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "owner_id"}).AddRow(7, "drill", true, 2))
	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	start := time.Now().Add(time.Minute).Format("2006-01-02T15:04:05")
	end := time.Now().Add(2 * time.Minute).Format("2006-01-02T15:04:05")
	booking, err := CreateBooking(1, &types.CreateBookingRequestBody{ItemID: 7, Start: start, End: end})
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_WAITING, booking.Status)
}

func TestCreateBookingUnavailableItem(t *testing.T) {
	_, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(1, "booker", "booker@example.com"))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "owner_id"}).AddRow(7, "drill", false, 2))
	mock.ExpectRollback()

	start := time.Now().Add(24 * time.Hour).Format("2006-01-02T15:04:05")
	end := time.Now().Add(48 * time.Hour).Format("2006-01-02T15:04:05")
	_, err := CreateBooking(1, &types.CreateBookingRequestBody{ItemID: 7, Start: start, End: end})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestCreateBookingOwnItem(t *testing.T) {
	_, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(2, "owner", "owner@example.com"))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "owner_id"}).AddRow(7, "drill", true, 2))
	mock.ExpectRollback()

	start := time.Now().Add(24 * time.Hour).Format("2006-01-02T15:04:05")
	end := time.Now().Add(48 * time.Hour).Format("2006-01-02T15:04:05")
	_, err := CreateBooking(2, &types.CreateBookingRequestBody{ItemID: 7, Start: start, End: end})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideBookingNotFound(t *testing.T) {
	_, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := DecideBooking(42, 1, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDecideBookingUnauthorized(t *testing.T) {
	_, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date", "item_id", "booker_id", "status"}).
			AddRow(42, now.Add(time.Hour), now.Add(2*time.Hour), 7, 3, string(types.BOOKING_WAITING)))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "owner_id"}).AddRow(7, "drill", true, 2))
	mock.ExpectRollback()

	_, err := DecideBooking(42, 3, true)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// A booking already decided cannot be decided again.
func TestDecideBookingConflictState(t *testing.T) {
	_, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date", "item_id", "booker_id", "status"}).
			AddRow(42, now.Add(time.Hour), now.Add(2*time.Hour), 7, 3, string(types.BOOKING_APPROVED)))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "owner_id"}).AddRow(7, "drill", true, 2))
	mock.ExpectRollback()

	_, err := DecideBooking(42, 2, true)
	assert.ErrorIs(t, err, ErrConflictState)
}

func TestDecideBookingApproves(t *testing.T) {
	_, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date", "item_id", "booker_id", "status"}).
			AddRow(42, now.Add(time.Hour), now.Add(2*time.Hour), 7, 3, string(types.BOOKING_WAITING)))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "owner_id"}).AddRow(7, "drill", true, 2))
	mock.ExpectExec(`UPDATE "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(3, "booker", "booker@example.com"))
	mock.ExpectCommit()

	booking, err := DecideBooking(42, 2, true)
	assert.NoError(t, err)
	assert.Equal(t, types.BOOKING_APPROVED, booking.Status)
	assert.NotNil(t, booking.Item)
	assert.NotNil(t, booking.Booker)
}

// A booking is only visible to its booker and to the owner of its item.
func TestGetBookingUnauthorized(t *testing.T) {
	_, mock := newMockDB(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "start_date", "end_date", "item_id", "booker_id", "status"}).
			AddRow(42, now.Add(time.Hour), now.Add(2*time.Hour), 7, 3, string(types.BOOKING_WAITING)))
	mock.ExpectQuery(`SELECT \* FROM "items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "available", "owner_id"}).AddRow(7, "drill", true, 2))
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).AddRow(3, "booker", "booker@example.com"))

	_, err := GetBooking(9, 42)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestListBookingsInvalidPagination(t *testing.T) {
	newMockDB(t)

	_, err := ListBookingsByBooker(1, types.STATE_ALL, -1, 10)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ListBookingsByBooker(1, types.STATE_ALL, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ListBookingsByOwner(1, types.STATE_ALL, 0, -5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestListBookingsUnknownUser(t *testing.T) {
	_, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, err := ListBookingsByBooker(99, types.STATE_ALL, 0, 10)
	assert.ErrorIs(t, err, ErrNotFound)
}
