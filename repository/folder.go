package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cppla/linkbook/models"
)

func (s *Store) CreateFolder(ctx context.Context, f *models.Folder) error {
	if f == nil {
		return fmt.Errorf("folder is nil")
	}
	return s.db.WithContext(ctx).Omit("User", "Comments").Create(f).Error
}

func (s *Store) UpdateFolder(ctx context.Context, f *models.Folder) error {
	if f == nil {
		return fmt.Errorf("folder is nil")
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// map updates write zero values too, so clearing a field works
		err := tx.Model(&models.Folder{ID: f.ID}).Updates(map[string]interface{}{
			"parent_id":  f.ParentID,
			"title":      f.Title,
			"image":      f.Image,
			"content":    f.Content,
			"is_pinned":  f.IsPinned,
			"is_private": f.IsPrivate,
		}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("folder_id = ?", f.ID).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		if len(f.Bookmarks) == 0 {
			return nil
		}
		for i := range f.Bookmarks {
			f.Bookmarks[i].ID = 0
			f.Bookmarks[i].FolderID = f.ID
		}
		return tx.Create(&f.Bookmarks).Error
	})
}

func (s *Store) DeleteFolder(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var f models.Folder
		if err := tx.Select("id", "parent_id").First(&f, id).Error; err != nil {
			if notFound(err) {
				return nil
			}
			return err
		}
		if err := tx.Model(&models.Folder{}).Where("parent_id = ?", id).Update("parent_id", f.ParentID).Error; err != nil {
			return err
		}
		if err := tx.Where("folder_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("folder_id = ?", id).Delete(&models.Bookmark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Folder{}, id).Error
	})
}

func (s *Store) FindFolder(ctx context.Context, id uint) (*models.Folder, error) {
	var f models.Folder
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Bookmarks", func(tx *gorm.DB) *gorm.DB { return tx.Order("id ASC") }).
		First(&f, id).Error
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

func (s *Store) ListFoldersByUser(ctx context.Context, userID uint) ([]models.Folder, error) {
	var folders []models.Folder
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Bookmarks").
		Where("user_id = ?", userID).
		Order("is_pinned DESC, created_at ASC, id ASC").
		Find(&folders).Error
	return folders, err
}
