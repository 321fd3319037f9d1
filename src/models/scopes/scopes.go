package scopes

import (
	"shareit/src/types"
	"time"

	"gorm.io/gorm"
)

func WithID(id uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func WithBooker(bookerId uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("bookings.booker_id = ?", bookerId)
	}
}

// WithItemOwner narrows bookings to those whose item belongs to ownerId.
func WithItemOwner(ownerId uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", ownerId)
	}
}

// WithBookingState applies the state filter relative to now. Column
// references are qualified so the scope composes with joins.
// CURRENT is inclusive on both bounds (end == now is still CURRENT);
// REJECTED deliberately covers CANCELED as well.
func WithBookingState(state types.BookingState, now time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch state {
		case types.STATE_CURRENT:
			return db.Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now)
		case types.STATE_PAST:
			return db.Where("bookings.end_date < ?", now)
		case types.STATE_FUTURE:
			return db.Where("bookings.start_date > ?", now)
		case types.STATE_WAITING:
			return db.Where("bookings.status = ?", types.BOOKING_WAITING)
		case types.STATE_REJECTED:
			return db.Where("bookings.status IN (?)", []types.BookingStatus{types.BOOKING_REJECTED, types.BOOKING_CANCELED})
		default:
			return db
		}
	}
}

// StartDescending is the canonical listing order: most recently started
// first, ties broken by insertion order for determinism.
func StartDescending(db *gorm.DB) *gorm.DB {
	return db.Order("bookings.start_date DESC, bookings.id ASC")
}

// Paginated applies the exact offset window [from, from+size).
func Paginated(from, size int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(from).Limit(size)
	}
}
