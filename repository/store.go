package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cppla/linkbook/models"
	"github.com/cppla/linkbook/services"
)

// Store implements the service store interfaces on top of GORM.
type Store struct {
	db *gorm.DB
}

var (
	_ services.UserStore    = (*Store)(nil)
	_ services.FolderStore  = (*Store)(nil)
	_ services.CommentStore = (*Store)(nil)
)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Models lists every table owned by the store, in migration order.
func Models() []interface{} {
	return []interface{}{&models.User{}, &models.Interest{}, &models.Folder{}, &models.Bookmark{}, &models.Comment{}}
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
