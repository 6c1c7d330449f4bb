package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cppla/linkbook/models"
	"github.com/cppla/linkbook/services"
)

func (s *Store) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *Store) FindByEmailWithInterests(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.db.WithContext(ctx).
		Preload("Interests", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		Where("email = ?", email).
		First(&u).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Save never touches associations; interests change only through ReplaceInterests.
func (s *Store) Save(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}
	tx := s.db.WithContext(ctx).Omit(clause.Associations)
	var err error
	if u.ID == 0 {
		err = tx.Create(u).Error
	} else {
		err = tx.Save(u).Error
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return services.ErrDuplicateEmail
	}
	return err
}

func (s *Store) ReplaceInterests(ctx context.Context, userID uint, change services.InterestChange) error {
	db := s.db.WithContext(ctx)
	if len(change.ToRemove) > 0 {
		if err := db.Where("user_id = ? AND field IN ?", userID, change.ToRemove).Delete(&models.Interest{}).Error; err != nil {
			return err
		}
	}
	if len(change.ToAdd) > 0 {
		rows := make([]models.Interest, 0, len(change.ToAdd))
		for _, f := range change.ToAdd {
			rows = append(rows, models.Interest{UserID: userID, Field: f})
		}
		if err := db.Create(&rows).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) Transaction(ctx context.Context, fn func(tx services.UserStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
