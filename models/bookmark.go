package models

import "time"

const (
	MaxBookmarkURLLen   = 2048
	MaxBookmarkTitleLen = 255
)

// Bookmark is a saved link inside a folder.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FolderID  uint      `gorm:"index;not null" json:"folder_id"`
	URL       string    `gorm:"size:2048;not null" json:"url"`
	Title     string    `gorm:"size:255" json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
