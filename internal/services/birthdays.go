package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"birthdaybook/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const monthCacheTTL = 5 * time.Minute

// BirthdayService owns every query against the birthdays and interests
// tables. All operations are scoped by the owning user id. The month
// query is read-through cached in redis when a client is available;
// mutations invalidate the owner's cached months.
type BirthdayService struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger *slog.Logger
}

func NewBirthdayService(db *gorm.DB, rdb *redis.Client, logger *slog.Logger) *BirthdayService {
	return &BirthdayService{db: db, rdb: rdb, logger: logger}
}

// CreateBirthdayPerson inserts the person row and then each interest,
// sequentially but inside a single transaction so a failed interest
// insert cannot leave a half-created person behind.
func (s *BirthdayService) CreateBirthdayPerson(name string, birthDate time.Time, interests []string, userID uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		person := models.Birthday{
			Name:      name,
			BirthDate: birthDate,
			UserID:    userID,
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		for _, interest := range interests {
			row := models.Interest{BirthdayID: person.ID, Text: interest}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateMonthCache(userID, int(birthDate.Month()))
	return nil
}

// BirthdaysForMonth returns name -> day-of-month for every birthday the
// user tracks in the given month (1..12).
func (s *BirthdayService) BirthdaysForMonth(userID uint, month int) (map[string]int, error) {
	if cached, ok := s.cachedMonth(userID, month); ok {
		return cached, nil
	}

	var rows []models.Birthday
	if err := s.db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, err
	}

	days := make(map[string]int)
	for _, b := range rows {
		if int(b.BirthDate.Month()) == month {
			days[b.Name] = b.BirthDate.Day()
		}
	}

	s.storeMonthCache(userID, month, days)
	return days, nil
}

// AllBirthdaysForUser returns every birthday the user tracks, unsorted.
func (s *BirthdayService) AllBirthdaysForUser(userID uint) ([]models.Birthday, error) {
	var rows []models.Birthday
	err := s.db.Select("id", "birthday_name", "birth_date", "user_id").
		Where("user_id = ?", userID).
		Find(&rows).Error
	return rows, err
}

func (s *BirthdayService) BirthdayPersonExists(name string, userID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Birthday{}).
		Where("birthday_name = ? AND user_id = ?", name, userID).
		Count(&count).Error
	return count > 0, err
}

// GetBirthdayPerson returns the user's tracked person by stored name, or
// nil when absent.
func (s *BirthdayService) GetBirthdayPerson(name string, userID uint) (*models.Birthday, error) {
	var person models.Birthday
	err := s.db.Where("birthday_name = ? AND user_id = ?", name, userID).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (s *BirthdayService) InterestsForBirthdayPerson(birthdayID uint) ([]string, error) {
	var rows []models.Interest
	if err := s.db.Where("birthday_id = ?", birthdayID).Find(&rows).Error; err != nil {
		return nil, err
	}
	interests := make([]string, 0, len(rows))
	for _, row := range rows {
		interests = append(interests, row.Text)
	}
	return interests, nil
}

// DeleteBirthdayPerson removes the user's tracked person and their
// interests. Scoping by userID keeps one user's delete away from
// another user's records even when the names collide.
func (s *BirthdayService) DeleteBirthdayPerson(name string, userID uint) error {
	var month int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var person models.Birthday
		err := tx.Where("birthday_name = ? AND user_id = ?", name, userID).First(&person).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		month = int(person.BirthDate.Month())

		if err := tx.Where("birthday_id = ?", person.ID).Delete(&models.Interest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&person).Error
	})
	if err != nil {
		return err
	}

	if month != 0 {
		s.invalidateMonthCache(userID, month)
	}
	return nil
}

// CreateInterest resolves the user's person by name and attaches the
// interest. Unknown names are a silent no-op, matching the storage
// layer's absent-not-error contract.
func (s *BirthdayService) CreateInterest(name string, userID uint, interest string) error {
	person, err := s.GetBirthdayPerson(name, userID)
	if err != nil {
		return err
	}
	if person == nil {
		return nil
	}
	row := models.Interest{BirthdayID: person.ID, Text: interest}
	return s.db.Create(&row).Error
}

// BirthdayIDByName returns the id of the user's tracked person, or 0
// when absent.
func (s *BirthdayService) BirthdayIDByName(name string, userID uint) (uint, error) {
	person, err := s.GetBirthdayPerson(name, userID)
	if err != nil || person == nil {
		return 0, err
	}
	return person.ID, nil
}

func (s *BirthdayService) DeleteInterest(birthdayID uint, interest string) error {
	return s.db.
		Where("birthday_id = ? AND interest = ?", birthdayID, interest).
		Delete(&models.Interest{}).Error
}

func monthCacheKey(userID uint, month int) string {
	return fmt.Sprintf("bday:month:%d:%d", userID, month)
}

func (s *BirthdayService) cachedMonth(userID uint, month int) (map[string]int, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(context.Background(), monthCacheKey(userID, month)).Result()
	if err != nil {
		return nil, false
	}
	var days map[string]int
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, false
	}
	return days, true
}

func (s *BirthdayService) storeMonthCache(userID uint, month int, days map[string]int) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := s.rdb.Set(context.Background(), monthCacheKey(userID, month), raw, monthCacheTTL).Err(); err != nil {
		s.logger.Debug("month cache write failed", "error", err)
	}
}

func (s *BirthdayService) invalidateMonthCache(userID uint, month int) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(context.Background(), monthCacheKey(userID, month)).Err(); err != nil {
		s.logger.Debug("month cache invalidation failed", "error", err)
	}
}
