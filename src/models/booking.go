package models

import (
	"shareit/src/types"
	"time"
)

type Booking struct {
	ID       uint                `gorm:"primarykey" json:"id"`
	Start    time.Time           `gorm:"column:start_date;index" json:"start"`
	End      time.Time           `gorm:"column:end_date;index" json:"end"`
	ItemID   uint                `gorm:"index" json:"item_id,omitempty"`
	BookerID uint                `gorm:"index" json:"booker_id,omitempty"`
	Status   types.BookingStatus `gorm:"index;default:'WAITING'" json:"status,omitempty"`

	Item   *Item `gorm:"foreignKey:item_id" json:"item,omitempty"`
	Booker *User `gorm:"foreignKey:booker_id" json:"booker,omitempty"`

	types.Timestamps
}
