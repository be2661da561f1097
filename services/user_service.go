package services

import (
	"strings"

	"backend/config"
	"backend/models"
)

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByResetToken(token string) (*models.User, error) {
	var user models.User
	if err := config.DB.Where("reset_token = ? AND reset_token <> ''", token).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func UpdateProfile(userID uint, name string, dietary []string) (*models.User, error) {
	user, err := FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	user.Name = name
	user.DietaryRestrictions = strings.Join(dietary, ",")
	if err := config.DB.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
