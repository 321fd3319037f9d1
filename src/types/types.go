package types

import "strings"

type BookingStatus string

const (
	BOOKING_WAITING  BookingStatus = "WAITING"
	BOOKING_APPROVED BookingStatus = "APPROVED"
	BOOKING_REJECTED BookingStatus = "REJECTED"
	BOOKING_CANCELED BookingStatus = "CANCELED"
)

// Decided reports whether the status is terminal. A decided booking
// accepts no further transitions.
func (s BookingStatus) Decided() bool {
	return s == BOOKING_APPROVED || s == BOOKING_REJECTED || s == BOOKING_CANCELED
}

// BookingState is a query-time view over bookings relative to "now".
// It is never persisted.
type BookingState string

const (
	STATE_ALL      BookingState = "ALL"
	STATE_CURRENT  BookingState = "CURRENT"
	STATE_PAST     BookingState = "PAST"
	STATE_FUTURE   BookingState = "FUTURE"
	STATE_WAITING  BookingState = "WAITING"
	STATE_REJECTED BookingState = "REJECTED"
)

// ParseBookingState validates a raw state filter once at the boundary.
// Matching is case-insensitive; unknown names are rejected.
func ParseBookingState(raw string) (BookingState, bool) {
	switch BookingState(strings.ToUpper(raw)) {
	case STATE_ALL:
		return STATE_ALL, true
	case STATE_CURRENT:
		return STATE_CURRENT, true
	case STATE_PAST:
		return STATE_PAST, true
	case STATE_FUTURE:
		return STATE_FUTURE, true
	case STATE_WAITING:
		return STATE_WAITING, true
	case STATE_REJECTED:
		return STATE_REJECTED, true
	}
	return "", false
}

// BookingRef is the short booking annotation attached to item reads.
type BookingRef struct {
	ID       uint `json:"id"`
	BookerID uint `json:"bookerId"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}

type PageQueryParams struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}

type CreateUserRequestBody struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type UpdateUserRequestBody struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty" binding:"omitempty,email"`
}

type CreateItemRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
	RequestID   *uint  `json:"requestId,omitempty"`
}

type UpdateItemRequestBody struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

type CreateBookingRequestBody struct {
	ItemID uint   `json:"itemId" binding:"required"`
	Start  string `json:"start" binding:"required,sharedate"`
	End    string `json:"end" binding:"required,sharedate"`
}

type CreateItemRequestRequestBody struct {
	Description string `json:"description" binding:"required"`
}

type CreateCommentRequestBody struct {
	Text string `json:"text" binding:"required"`
}
