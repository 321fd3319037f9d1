package common

import (
	"errors"
	"fmt"
	"log"
	"shareit/src/db"
	"shareit/src/models"
	"shareit/src/models/scopes"
	"shareit/src/types"

	"gorm.io/gorm"
)

// CreateUser registers a user. Email addresses are unique; a taken
// address is a state conflict, not a validation failure.
func CreateUser(params *types.CreateUserRequestBody) (*models.User, error) {
	var user *models.User
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, params.Email, 0); err != nil {
			return err
		}
		u := models.User{Name: params.Name, Email: params.Email}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		user = &u
		return nil
	})
	if err != nil {
		log.Printf("Could not create user: %s\n", err.Error())
		return nil, err
	}
	return user, nil
}

// UpdateUser patches name and/or email.
func UpdateUser(userId uint, params *types.UpdateUserRequestBody) (*models.User, error) {
	var user models.User
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scopes.WithID(userId)).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: user [%d]", ErrNotFound, userId)
			}
			return err
		}
		updates := map[string]any{}
		if params.Name != nil {
			updates["name"] = *params.Name
			user.Name = *params.Name
		}
		if params.Email != nil {
			if err := ensureEmailFree(tx, *params.Email, userId); err != nil {
				return err
			}
			updates["email"] = *params.Email
			user.Email = *params.Email
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(&models.User{}).Scopes(scopes.WithID(userId)).Updates(updates).Error
	})
	if err != nil {
		log.Printf("Could not update user [%d]: %s\n", userId, err.Error())
		return nil, err
	}
	return &user, nil
}

func GetUser(userId uint) (*models.User, error) {
	db := db.GetDb()
	var user models.User
	if err := db.Scopes(scopes.WithID(userId)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user [%d]", ErrNotFound, userId)
		}
		return nil, err
	}
	return &user, nil
}

func ListUsers() ([]models.User, error) {
	db := db.GetDb()
	var users []models.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		log.Printf("Could not list users: %s\n", err.Error())
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the user; items, bookings and comments go with it
// through the FK cascades.
func DeleteUser(userId uint) error {
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserExists(tx, userId); err != nil {
			return err
		}
		return tx.Scopes(scopes.WithID(userId)).Delete(&models.User{}).Error
	})
	if err != nil {
		log.Printf("Could not delete user [%d]: %s\n", userId, err.Error())
		return err
	}
	return nil
}

func ensureEmailFree(tx *gorm.DB, email string, exceptId uint) error {
	var count int64
	q := tx.Model(&models.User{}).Where("email = ?", email)
	if exceptId != 0 {
		q = q.Where("id <> ?", exceptId)
	}
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: email %s is already in use", ErrConflictState, email)
	}
	return nil
}
