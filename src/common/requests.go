package common

import (
	"errors"
	"fmt"
	"log"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"
	"time"

	"gorm.io/gorm"
)

// CreateItemRequest records a wish for an item not yet listed.
func CreateItemRequest(requesterId uint, params *types.CreateItemRequestRequestBody) (*models.ItemRequest, error) {
	var request *models.ItemRequest
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, requesterId); err != nil {
			return err
		}
		r := models.ItemRequest{
			Description: params.Description,
			RequesterID: requesterId,
			Created:     time.Now(),
		}
		if err := tx.Create(&r).Error; err != nil {
			return err
		}
		request = &r
		return nil
	})
	if err != nil {
		log.Printf("Could not create item request: %s\n", err.Error())
		return nil, err
	}
	return request, nil
}

// ListOwnRequests returns the caller's requests, newest first, each
// with the items listed in answer to it.
func ListOwnRequests(requesterId uint) ([]models.ItemRequest, error) {
	db := db.GetDb()
	if err := ensureUserExists(db, requesterId); err != nil {
		return nil, err
	}
	var requests []models.ItemRequest
	err := db.
		Where("item_requests.requester_id = ?", requesterId).
		Order("item_requests.created DESC").
		Preload("Items").
		Find(&requests).Error
	if err != nil {
		log.Printf("Could not list requests for user [%d]: %s\n", requesterId, err.Error())
		return nil, err
	}
	return requests, nil
}

// ListOtherRequests pages through requests posted by other users,
// newest first.
func ListOtherRequests(callerId uint, from int, size int) ([]models.ItemRequest, error) {
	if err := validatePage(from, size); err != nil {
		return nil, err
	}
	db := db.GetDb()
	if err := ensureUserExists(db, callerId); err != nil {
		return nil, err
	}
	var requests []models.ItemRequest
	err := db.
		Where("item_requests.requester_id <> ?", callerId).
		Order("item_requests.created DESC").
		Scopes(scopes.Paginated(from, size)).
		Preload("Items").
		Find(&requests).Error
	if err != nil {
		log.Printf("Could not list other requests for user [%d]: %s\n", callerId, err.Error())
		return nil, err
	}
	return requests, nil
}

// GetItemRequest returns a single request with its answering items to
// any existing user.
func GetItemRequest(callerId uint, requestId uint) (*models.ItemRequest, error) {
	db := db.GetDb()
	if err := ensureUserExists(db, callerId); err != nil {
		return nil, err
	}
	var request models.ItemRequest
	if err := db.
		Scopes(scopes.WithID(requestId)).
		Preload("Items").
		First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: request [%d]", ErrNotFound, requestId)
		}
		return nil, err
	}
	return &request, nil
}
