package repository

import (
	"context"
	"fmt"

	"github.com/cppla/linkbook/models"
)

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	if c == nil {
		return fmt.Errorf("comment is nil")
	}
	return s.db.WithContext(ctx).Omit("User").Create(c).Error
}

func (s *Store) FindComment(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (s *Store) ListCommentsByFolder(ctx context.Context, folderID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("folder_id = ?", folderID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}
