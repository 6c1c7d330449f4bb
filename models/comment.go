package models

import "time"

// Comment is a reply on a folder. ParentID is nil for top-level comments.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FolderID  uint      `gorm:"index;not null" json:"folder_id"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

func (c Comment) NodeID() uint { return c.ID }

func (c Comment) NodeParentID() *uint { return c.ParentID }
