package models

import (
	"time"

	"gorm.io/gorm"
)

// Widths of the user columns that hold free text.
const (
	MaxNameLen  = 64
	MaxImageLen = 512
)

// User represents a linkbook account. Passwords are stored as bcrypt hashes only.
type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Name         string     `gorm:"size:64" json:"name"`
	Image        string     `gorm:"size:512" json:"image"`
	Introduce    string     `gorm:"type:text" json:"introduce"`
	Interests    []Interest `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"interests"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// InterestFields returns the fields of the loaded interests in stored order.
func (u *User) InterestFields() []Field {
	out := make([]Field, 0, len(u.Interests))
	for _, it := range u.Interests {
		out = append(out, it.Field)
	}
	return out
}
