package services

import (
	"errors"
	"log/slog"

	"birthdaybook/internal/models"

	"gorm.io/gorm"
)

// UserService owns every query against the users table. Lookups that
// find nothing return (nil, nil) / (0, nil); callers must check.
type UserService struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewUserService(db *gorm.DB, logger *slog.Logger) *UserService {
	return &UserService{db: db, logger: logger}
}

// FindUserCredentials returns the stored record for a username, or nil
// when no such user exists.
func (s *UserService) FindUserCredentials(username string) (*models.User, error) {
	var user models.User
	err := s.db.Where("user_name = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) CreateUser(username, passwordHash string) error {
	user := models.User{
		Username:     username,
		PasswordHash: passwordHash,
	}
	return s.db.Create(&user).Error
}

// UserIDByUsername returns the user's id, or 0 when the user does not exist.
func (s *UserService) UserIDByUsername(username string) (uint, error) {
	var user models.User
	err := s.db.Select("id").Where("user_name = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// UsernameExists is case-insensitive, matching the uniqueness rule.
func (s *UserService) UsernameExists(username string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).
		Where("LOWER(user_name) = LOWER(?)", username).
		Count(&count).Error
	return count > 0, err
}

// DeleteUser removes the account and everything it owns in one
// transaction: interests, birthdays, then the user row.
func (s *UserService) DeleteUser(username string) error {
	s.logger.Info("Deleting user account", "username", username)
	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("user_name = ?", username).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		sub := tx.Model(&models.Birthday{}).Select("id").Where("user_id = ?", user.ID)
		if err := tx.Where("birthday_id IN (?)", sub).Delete(&models.Interest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Birthday{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}
