package models

import "time"

type Comment struct {
	ID       uint      `gorm:"primarykey" json:"id"`
	Text     string    `json:"text,omitempty"`
	ItemID   uint      `gorm:"index" json:"item_id,omitempty"`
	AuthorID uint      `json:"author_id,omitempty"`
	Created  time.Time `gorm:"autoCreateTime" json:"created,omitempty"`

	Author *User `gorm:"foreignKey:author_id" json:"-"`

	// Flattened from Author for responses.
	AuthorName string `gorm:"-" json:"authorName,omitempty"`
}
