package scopes

import (
	"log"
	"shareit/src/models"
	"shareit/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, _, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}
	return gormDB.Session(&gorm.Session{DryRun: true})
}

func buildListSQL(t *testing.T, state types.BookingState) string {
	t.Helper()
	d := newDryRunDB(t)
	var bookings []models.Booking
	stmt := d.
		Model(&models.Booking{}).
		Scopes(
			WithBooker(3),
			WithBookingState(state, time.Now()),
			StartDescending,
			Paginated(5, 10),
		).
		Find(&bookings).Statement
	return stmt.SQL.String()
}

func TestWithBookingStateSQL(t *testing.T) {
	sql := buildListSQL(t, types.STATE_CURRENT)
	assert.Contains(t, sql, "bookings.start_date <=")
	assert.Contains(t, sql, "bookings.end_date >=")

	sql = buildListSQL(t, types.STATE_PAST)
	assert.Contains(t, sql, "bookings.end_date <")
	assert.NotContains(t, sql, "bookings.start_date <")

	sql = buildListSQL(t, types.STATE_FUTURE)
	assert.Contains(t, sql, "bookings.start_date >")

	sql = buildListSQL(t, types.STATE_WAITING)
	assert.Contains(t, sql, "bookings.status =")

	sql = buildListSQL(t, types.STATE_REJECTED)
	assert.Contains(t, sql, "bookings.status IN")

	// ALL adds no state condition.
	sql = buildListSQL(t, types.STATE_ALL)
	assert.NotContains(t, sql, "bookings.status")
	assert.NotContains(t, sql, "bookings.end_date")
}

func TestListingOrderAndWindow(t *testing.T) {
	sql := buildListSQL(t, types.STATE_ALL)
	assert.Contains(t, sql, "bookings.start_date DESC, bookings.id ASC")
	assert.Contains(t, sql, "LIMIT")
	assert.Contains(t, sql, "OFFSET")
	assert.Contains(t, sql, "bookings.booker_id =")
}

func TestWithItemOwnerJoinsItems(t *testing.T) {
	d := newDryRunDB(t)
	var bookings []models.Booking
	stmt := d.
		Model(&models.Booking{}).
		Scopes(WithItemOwner(2), StartDescending).
		Find(&bookings).Statement
	sql := stmt.SQL.String()
	assert.Contains(t, sql, "JOIN items ON items.id = bookings.item_id")
	assert.Contains(t, sql, "items.owner_id =")
}
