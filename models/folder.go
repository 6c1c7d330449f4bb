package models

import "time"

// MaxFolderTitleLen is the width of the folder title column.
const MaxFolderTitleLen = 255

// Folder groups bookmarks. Folders may nest under a parent folder of the same owner.
type Folder struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	ParentID  *uint      `gorm:"index" json:"parent_id"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Image     string     `gorm:"size:512" json:"image"`
	Content   string     `gorm:"type:text" json:"content"`
	IsPinned  bool       `gorm:"default:false" json:"is_pinned"`
	IsPrivate bool       `gorm:"default:false" json:"is_private"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      User       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Bookmarks []Bookmark `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"bookmarks"`
	Comments  []Comment  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (f Folder) NodeID() uint { return f.ID }

func (f Folder) NodeParentID() *uint { return f.ParentID }
