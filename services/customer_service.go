package services

import (
	"errors"

	"gorm.io/gorm"

	"restaurant-booking/models"
)

// FindOrCreateCustomer resolves a customer by email, creating the record on
// first contact and refreshing name/phone when a later submission differs.
// Email is the sole key; there is no password and no login for customers.
func FindOrCreateCustomer(db *gorm.DB, email, name, phone string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email: email,
			Name:  name,
			Phone: phone,
			Role:  models.RoleCustomer,
		}
		if createErr := db.Create(&user).Error; createErr != nil {
			// Lost a create race on the unique email index: take the winner's row.
			if lookupErr := db.Where("email = ?", email).First(&user).Error; lookupErr != nil {
				return nil, createErr
			}
		}
		return &user, nil
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if name != "" && user.Name != name {
		user.Name = name
		changed = true
	}
	if phone != "" && user.Phone != phone {
		user.Phone = phone
		changed = true
	}
	if changed {
		if err := db.Save(&user).Error; err != nil {
			return nil, err
		}
	}
	return &user, nil
}
