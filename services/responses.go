package services

import (
	"time"

	"github.com/cppla/linkbook/models"
)

// UserSummary is the reduced owner view attached to tree nodes.
type UserSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// UserResponse is the public projection of a user. It never carries the password hash.
type UserResponse struct {
	ID        uint           `json:"id"`
	Email     string         `json:"email"`
	Name      string         `json:"name"`
	Image     string         `json:"image"`
	Introduce string         `json:"introduce"`
	Interests []models.Field `json:"interests"`
	CreatedAt time.Time      `json:"created_at"`
}

type CommentResponse struct {
	ID        uint               `json:"id"`
	Children  []*CommentResponse `json:"children"`
	Content   string             `json:"content"`
	User      UserSummary        `json:"user"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

type BookmarkResponse struct {
	ID    uint   `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

type FolderResponse struct {
	ID            uint              `json:"id"`
	ParentID      *uint             `json:"parent_id"`
	Title         string            `json:"title"`
	Image         string            `json:"image"`
	Content       string            `json:"content"`
	IsPinned      bool              `json:"is_pinned"`
	IsPrivate     bool              `json:"is_private"`
	BookmarkCount int               `json:"bookmark_count"`
	User          UserSummary       `json:"user"`
	Children      []*FolderResponse `json:"children"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type FolderDetailResponse struct {
	ID        uint               `json:"id"`
	ParentID  *uint              `json:"parent_id"`
	Title     string             `json:"title"`
	Image     string             `json:"image"`
	Content   string             `json:"content"`
	IsPinned  bool               `json:"is_pinned"`
	IsPrivate bool               `json:"is_private"`
	User      UserSummary        `json:"user"`
	Bookmarks []BookmarkResponse `json:"bookmarks"`
	Comments  []*CommentResponse `json:"comments"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func summarize(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Image: u.Image}
}

func toUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Image:     u.Image,
		Introduce: u.Introduce,
		Interests: u.InterestFields(),
		CreatedAt: u.CreatedAt,
	}
}

func buildCommentResponse(c models.Comment, children []*CommentResponse) *CommentResponse {
	return &CommentResponse{
		ID:        c.ID,
		Children:  children,
		Content:   c.Content,
		User:      summarize(c.User),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func buildFolderResponse(f models.Folder, children []*FolderResponse) *FolderResponse {
	return &FolderResponse{
		ID:            f.ID,
		ParentID:      f.ParentID,
		Title:         f.Title,
		Image:         f.Image,
		Content:       f.Content,
		IsPinned:      f.IsPinned,
		IsPrivate:     f.IsPrivate,
		BookmarkCount: len(f.Bookmarks),
		User:          summarize(f.User),
		Children:      children,
		CreatedAt:     f.CreatedAt,
		UpdatedAt:     f.UpdatedAt,
	}
}
