package models

import "time"

type ItemRequest struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Description string    `json:"description,omitempty"`
	RequesterID uint      `gorm:"index" json:"requester_id,omitempty"`
	Created     time.Time `gorm:"autoCreateTime" json:"created,omitempty"`

	Requester *User  `gorm:"foreignKey:requester_id" json:"requester,omitempty"`
	Items     []Item `gorm:"foreignKey:request_id" json:"items,omitempty"`
}
