package common

import (
	"errors"
	"fmt"
	"log"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"
	"strings"
	"time"

	"gorm.io/gorm"
)

// LastBookingForItem resolves the most recent APPROVED booking already
// started at now; among candidates the one with the latest end wins.
// A nil ref means no such booking exists.
func LastBookingForItem(tx *gorm.DB, itemId uint, now time.Time) (*types.BookingRef, error) {
	var b models.Booking
	err := tx.
		Model(&models.Booking{}).
		Where("bookings.item_id = ?", itemId).
		Where("bookings.status = ?", types.BOOKING_APPROVED).
		Where("bookings.start_date <= ?", now).
		Order("bookings.end_date DESC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &types.BookingRef{ID: b.ID, BookerID: b.BookerID}, nil
}

// NextBookingForItem resolves the soonest APPROVED booking starting at
// or after now; the earliest start wins.
func NextBookingForItem(tx *gorm.DB, itemId uint, now time.Time) (*types.BookingRef, error) {
	var b models.Booking
	err := tx.
		Model(&models.Booking{}).
		Where("bookings.item_id = ?", itemId).
		Where("bookings.status = ?", types.BOOKING_APPROVED).
		Where("bookings.start_date >= ?", now).
		Order("bookings.start_date ASC").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &types.BookingRef{ID: b.ID, BookerID: b.BookerID}, nil
}

func annotateItem(tx *gorm.DB, item *models.Item, now time.Time) error {
	last, err := LastBookingForItem(tx, item.ID, now)
	if err != nil {
		return err
	}
	next, err := NextBookingForItem(tx, item.ID, now)
	if err != nil {
		return err
	}
	item.LastBooking = last
	item.NextBooking = next
	return nil
}

func fillCommentAuthors(comments []models.Comment) {
	for i := range comments {
		if comments[i].Author != nil {
			comments[i].AuthorName = comments[i].Author.Name
		}
	}
}

// CreateItem registers a new item for ownerId. When the item answers an
// open ItemRequest the request must exist.
func CreateItem(ownerId uint, params *types.CreateItemRequestBody) (*models.Item, error) {
	var item *models.Item
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, ownerId); err != nil {
			return err
		}
		if params.RequestID != nil {
			var count int64
			if err := tx.Model(&models.ItemRequest{}).Scopes(scopes.WithID(*params.RequestID)).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return fmt.Errorf("%w: request [%d]", ErrNotFound, *params.RequestID)
			}
		}
		i := models.Item{
			Name:        params.Name,
			Description: params.Description,
			Available:   params.Available,
			OwnerID:     ownerId,
			RequestID:   params.RequestID,
		}
		if err := tx.Create(&i).Error; err != nil {
			return err
		}
		item = &i
		return nil
	})
	if err != nil {
		log.Printf("Could not create item: %s\n", err.Error())
		return nil, err
	}
	return item, nil
}

// UpdateItem patches name, description or availability. Only the owner
// may update an item.
func UpdateItem(ownerId uint, itemId uint, params *types.UpdateItemRequestBody) (*models.Item, error) {
	var item models.Item
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scopes.WithID(itemId)).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: item [%d]", ErrNotFound, itemId)
			}
			return err
		}
		if item.OwnerID != ownerId {
			return fmt.Errorf("%w: user [%d] does not own item [%d]", ErrUnauthorized, ownerId, itemId)
		}
		updates := map[string]any{}
		if params.Name != nil {
			updates["name"] = *params.Name
			item.Name = *params.Name
		}
		if params.Description != nil {
			updates["description"] = *params.Description
			item.Description = *params.Description
		}
		if params.Available != nil {
			updates["available"] = *params.Available
			item.Available = params.Available
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.Item{}).Scopes(scopes.WithID(itemId)).Updates(updates).Error
	})
	if err != nil {
		log.Printf("Could not update item [%d]: %s\n", itemId, err.Error())
		return nil, err
	}
	return &item, nil
}

// GetItem returns an item with its comments. The owner additionally
// sees the lastBooking/nextBooking annotations.
func GetItem(callerId uint, itemId uint) (*models.Item, error) {
	db := db.GetDb()
	var item models.Item
	if err := db.
		Scopes(scopes.WithID(itemId)).
		Preload("Comments").
		Preload("Comments.Author").
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item [%d]", ErrNotFound, itemId)
		}
		return nil, err
	}
	fillCommentAuthors(item.Comments)
	if item.OwnerID == callerId {
		if err := annotateItem(db, &item, time.Now()); err != nil {
			return nil, err
		}
	}
	return &item, nil
}

// ListItems returns the caller's items in insertion order, each with
// comments and adjacent-booking annotations.
func ListItems(ownerId uint, from int, size int) ([]models.Item, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}
	db := db.GetDb()
	if err := ensureUserExists(db, ownerId); err != nil {
		return nil, err
	}
	var items []models.Item
	err := db.
		Where("items.owner_id = ?", ownerId).
		Order("items.id ASC").
		Scopes(scopes.Paginated(from, size)).
		Preload("Comments").
		Preload("Comments.Author").
		Find(&items).Error
	if err != nil {
		log.Printf("Could not list items for owner [%d]: %s\n", ownerId, err.Error())
		return nil, err
	}
	now := time.Now()
	for i := range items {
		fillCommentAuthors(items[i].Comments)
		if err := annotateItem(db, &items[i], now); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// SearchItems matches available items whose name or description
// contains text, case-insensitively. Blank text yields nothing.
func SearchItems(text string, from int, size int) ([]models.Item, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []models.Item{}, nil
	}
	db := db.GetDb()
	var items []models.Item
	pattern := "%" + text + "%"
	err := db.
		Where("items.available = ?", true).
		Where("(items.name ILIKE ? OR items.description ILIKE ?)", pattern, pattern).
		Order("items.id ASC").
		Scopes(scopes.Paginated(from, size)).
		Find(&items).Error
	if err != nil {
		log.Printf("Could not search items for %q: %s\n", text, err.Error())
		return nil, err
	}
	return items, nil
}

// AddComment stores a comment on an item. Only a user who held the
// item under an APPROVED booking already started (a PAST or CURRENT
// holder) may comment.
func AddComment(authorId uint, itemId uint, params *types.CreateCommentRequestBody) (*models.Comment, error) {
	var comment *models.Comment
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		var author models.User
		if err := tx.Scopes(scopes.WithID(authorId)).First(&author).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user [%d]", ErrNotFound, authorId)
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.Item{}).Scopes(scopes.WithID(itemId)).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return fmt.Errorf("%w: item [%d]", ErrNotFound, itemId)
		}
		var held int64
		if err := tx.
			Model(&models.Booking{}).
			Where("bookings.item_id = ? AND bookings.booker_id = ?", itemId, authorId).
			Where("bookings.status = ?", types.BOOKING_APPROVED).
			Where("bookings.start_date <= ?", time.Now()).
			Count(&held).Error; err != nil {
			return err
		}
		if held == 0 {
			return fmt.Errorf("%w: user [%d] never held item [%d]", ErrUnauthorized, authorId, itemId)
		}
		c := models.Comment{
			Text:     params.Text,
			ItemID:   itemId,
			AuthorID: authorId,
			Created:  time.Now(),
		}
		if err := tx.Create(&c).Error; err != nil {
			return err
		}
		c.AuthorName = author.Name
		comment = &c
		return nil
	})
	if err != nil {
		log.Printf("Could not add comment to item [%d]: %s\n", itemId, err.Error())
		return nil, err
	}
	return comment, nil
}
