package models

import "shareit/src/types"

type Item struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Available   *bool  `gorm:"not null" json:"available"`
	OwnerID     uint   `gorm:"index" json:"owner_id,omitempty"`
	RequestID   *uint  `gorm:"index" json:"requestId,omitempty"`

	Owner    *User     `gorm:"foreignKey:owner_id" json:"owner,omitempty"`
	Comments []Comment `gorm:"foreignKey:item_id;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	// Adjacent-booking annotations, filled for the owner's reads only.
	LastBooking *types.BookingRef `gorm:"-" json:"lastBooking,omitempty"`
	NextBooking *types.BookingRef `gorm:"-" json:"nextBooking,omitempty"`

	types.Timestamps
}
