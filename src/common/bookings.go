package common

import (
	"errors"
	"fmt"
	"log"
	"shareit/src/config"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingMatchesState is the pure form of the state filter. Listings
// apply the equivalent SQL conditions through scopes.WithBookingState;
// this predicate is the reference semantics both are held to.
//
// CURRENT is inclusive on both bounds: a booking with start == now or
// end == now is CURRENT, never PAST. REJECTED groups the CANCELED
// status in as well.
func BookingMatchesState(b *models.Booking, state types.BookingState, now time.Time) bool {
	switch state {
	case types.STATE_ALL:
		return true
	case types.STATE_CURRENT:
		return !b.Start.After(now) && !b.End.Before(now)
	case types.STATE_PAST:
		return b.End.Before(now)
	case types.STATE_FUTURE:
		return b.Start.After(now)
	case types.STATE_WAITING:
		return b.Status == types.BOOKING_WAITING
	case types.STATE_REJECTED:
		return b.Status == types.BOOKING_REJECTED || b.Status == types.BOOKING_CANCELED
	}
	return false
}

// CreateBooking validates and persists a new WAITING booking for
// bookerId. Owners cannot book their own items; that case reports
// NotFound so the endpoint behaves as if the item were not bookable at
// all for them.
func CreateBooking(bookerId uint, params *types.CreateBookingRequestBody) (*models.Booking, error) {
	// The wire format carries no zone; wall-clock times are read in the
	// server zone so the future-only check lines up with time.Now().
	start, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, params.Start, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse start", ErrInvalidTimeRange)
	}
	end, err := time.ParseInLocation(config.TIME_PARSE_FORMAT, params.End, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: could not parse end", ErrInvalidTimeRange)
	}
	if !start.Before(end) {
		return nil, fmt.Errorf("%w: start must be before end", ErrInvalidTimeRange)
	}
	if end.Before(time.Now()) {
		return nil, fmt.Errorf("%w: end must not be in the past", ErrInvalidTimeRange)
	}

	var booking *models.Booking
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var booker models.User
		if err := tx.Scopes(scopes.WithID(bookerId)).First(&booker).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user [%d]", ErrNotFound, bookerId)
			}
			return err
		}
		var item models.Item
		if err := tx.Scopes(scopes.WithID(params.ItemID)).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: item [%d]", ErrNotFound, params.ItemID)
			}
			return err
		}
		if item.OwnerID == bookerId {
			return fmt.Errorf("%w: item [%d]", ErrNotFound, params.ItemID)
		}
		if item.Available == nil || !*item.Available {
			return fmt.Errorf("%w: item [%d]", ErrUnavailable, params.ItemID)
		}
		b := models.Booking{
			Start:    start,
			End:      end,
			ItemID:   params.ItemID,
			BookerID: bookerId,
			Status:   types.BOOKING_WAITING,
		}
		if err := tx.Create(&b).Error; err != nil {
			return err
		}
		b.Item = &item
		b.Booker = &booker
		booking = &b
		return nil
	})
	if err != nil {
		log.Printf("Could not create booking: %s\n", err.Error())
		return nil, err
	}
	return booking, nil
}

// DecideBooking moves a WAITING booking to APPROVED or REJECTED. Only
// the owner of the booked item may decide; the booking row is locked
// for the duration of the transaction so a concurrent second decision
// observes the terminal status and fails with ErrConflictState.
func DecideBooking(bookingId uint, actorId uint, approved bool) (*models.Booking, error) {
	var booking *models.Booking
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var b models.Booking
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Scopes(scopes.WithID(bookingId)).
			First(&b).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking [%d]", ErrNotFound, bookingId)
			}
			return err
		}
		var item models.Item
		if err := tx.Scopes(scopes.WithID(b.ItemID)).First(&item).Error; err != nil {
			return err
		}
		if item.OwnerID != actorId {
			return fmt.Errorf("%w: user [%d] does not own item [%d]", ErrUnauthorized, actorId, item.ID)
		}
		if b.Status != types.BOOKING_WAITING {
			return fmt.Errorf("%w: booking [%d] is already %s", ErrConflictState, bookingId, b.Status)
		}
		status := types.BOOKING_REJECTED
		if approved {
			status = types.BOOKING_APPROVED
		}
		if err := tx.
			Model(&models.Booking{}).
			Scopes(scopes.WithID(bookingId)).
			Update("status", status).Error; err != nil {
			return err
		}
		var booker models.User
		if err := tx.Scopes(scopes.WithID(b.BookerID)).First(&booker).Error; err != nil {
			return err
		}
		b.Status = status
		b.Item = &item
		b.Booker = &booker
		booking = &b
		return nil
	})
	if err != nil {
		log.Printf("Could not decide booking [%d]: %s\n", bookingId, err.Error())
		return nil, err
	}
	return booking, nil
}

// GetBooking returns a booking to its booker or to the owner of its
// item. Anyone else is refused without revealing more than existence.
func GetBooking(actorId uint, bookingId uint) (*models.Booking, error) {
	db := db.GetDb()
	var booking models.Booking
	if err := db.
		Model(&models.Booking{}).
		Scopes(scopes.WithID(bookingId)).
		Preload("Item").
		Preload("Booker").
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking [%d]", ErrNotFound, bookingId)
		}
		return nil, err
	}
	if booking.BookerID != actorId && (booking.Item == nil || booking.Item.OwnerID != actorId) {
		return nil, fmt.Errorf("%w: user [%d] may not view booking [%d]", ErrUnauthorized, actorId, bookingId)
	}
	return &booking, nil
}

// ListBookingsByBooker returns the caller's own bookings filtered by
// state, most recently started first.
func ListBookingsByBooker(bookerId uint, state types.BookingState, from int, size int) ([]models.Booking, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}
	db := db.GetDb()
	if err := ensureUserExists(db, bookerId); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err := db.
		Model(&models.Booking{}).
		Scopes(
			scopes.WithBooker(bookerId),
			scopes.WithBookingState(state, time.Now()),
			scopes.StartDescending,
			scopes.Paginated(from, size),
		).
		Preload("Item").
		Preload("Booker").
		Find(&bookings).Error
	if err != nil {
		log.Printf("Could not list bookings for booker [%d]: %s\n", bookerId, err.Error())
		return nil, err
	}
	return bookings, nil
}

// ListBookingsByOwner returns bookings of all items owned by ownerId,
// filtered by state. An owner without items simply gets an empty list.
func ListBookingsByOwner(ownerId uint, state types.BookingState, from int, size int) ([]models.Booking, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}
	db := db.GetDb()
	if err := ensureUserExists(db, ownerId); err != nil {
		return nil, err
	}
	var bookings []models.Booking
	err := db.
		Model(&models.Booking{}).
		Scopes(
			scopes.WithItemOwner(ownerId),
			scopes.WithBookingState(state, time.Now()),
			scopes.StartDescending,
			scopes.Paginated(from, size),
		).
		Preload("Item").
		Preload("Booker").
		Find(&bookings).Error
	if err != nil {
		log.Printf("Could not list bookings for owner [%d]: %s\n", ownerId, err.Error())
		return nil, err
	}
	return bookings, nil
}

func validatePage(from int, size int) error {
	if from < 0 {
		return fmt.Errorf("%w: from must not be negative", ErrInvalidArgument)
	}
	if size <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidArgument)
	}
	return nil
}

func ensureUserExists(tx *gorm.DB, userId uint) error {
	var count int64
	if err := tx.Model(&models.User{}).Scopes(scopes.WithID(userId)).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: user [%d]", ErrNotFound, userId)
	}
	return nil
}
