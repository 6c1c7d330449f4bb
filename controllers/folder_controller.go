package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/linkbook/middleware"
	"github.com/cppla/linkbook/models"
	"github.com/cppla/linkbook/services"
	"github.com/cppla/linkbook/utils"
)

// FolderController exposes folder CRUD and folder trees.
type FolderController struct {
	folders *services.FolderService
}

func NewFolderController(folders *services.FolderService) *FolderController {
	return &FolderController{folders: folders}
}

type bookmarkRequest struct {
	URL   string `json:"url" binding:"required,url,max=2048"`
	Title string `json:"title" binding:"max=255"`
}

type folderRequest struct {
	ParentID  *uint             `json:"parent_id"`
	Title     string            `json:"title" binding:"required,max=128"`
	Image     string            `json:"image" binding:"omitempty,url,max=512"`
	Content   string            `json:"content" binding:"max=5000"`
	IsPinned  bool              `json:"is_pinned"`
	IsPrivate bool              `json:"is_private"`
	Bookmarks []bookmarkRequest `json:"bookmarks" binding:"omitempty,max=500,dive"`
}

func (r folderRequest) input() services.FolderInput {
	in := services.FolderInput{
		ParentID:  r.ParentID,
		Title:     utils.SanitizePlain(strings.TrimSpace(r.Title)),
		Image:     strings.TrimSpace(r.Image),
		Content:   utils.Sanitize(r.Content),
		IsPinned:  r.IsPinned,
		IsPrivate: r.IsPrivate,
	}
	for _, b := range r.Bookmarks {
		in.Bookmarks = append(in.Bookmarks, services.BookmarkInput{
			URL:   strings.TrimSpace(b.URL),
			Title: utils.SanitizePlain(strings.TrimSpace(b.Title)),
		})
	}
	return in
}

func bindFolder(ctx *gin.Context) (services.FolderInput, bool) {
	var req folderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return services.FolderInput{}, false
	}
	in := req.input()
	if in.Title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40041, "title is required")
		return services.FolderInput{}, false
	}
	if !utils.WithinLength(in.Title, models.MaxFolderTitleLen) {
		utils.Error(ctx, http.StatusBadRequest, 40042, "title is too long")
		return services.FolderInput{}, false
	}
	for _, b := range in.Bookmarks {
		if !utils.WithinLength(b.Title, models.MaxBookmarkTitleLen) {
			utils.Error(ctx, http.StatusBadRequest, 40043, "bookmark title is too long")
			return services.FolderInput{}, false
		}
	}
	return in, true
}

// ListMine returns the folder tree of the authenticated user, private folders included.
func (f *FolderController) ListMine(ctx *gin.Context) {
	uid := middleware.UserID(ctx)
	tree, err := f.folders.ListByUser(ctx.Request.Context(), uid, uid)
	if err != nil {
		respondServiceError(ctx, err, 50040, "failed to list folders")
		return
	}
	utils.Success(ctx, tree)
}

// ListByUser returns the public folder tree of another user.
func (f *FolderController) ListByUser(ctx *gin.Context) {
	ownerID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	tree, err := f.folders.ListByUser(ctx.Request.Context(), 0, ownerID)
	if err != nil {
		respondServiceError(ctx, err, 50041, "failed to list folders")
		return
	}
	utils.Success(ctx, tree)
}

// Detail returns one folder with bookmarks and comments.
func (f *FolderController) Detail(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	detail, err := f.folders.Detail(ctx.Request.Context(), middleware.UserID(ctx), id)
	if err != nil {
		respondServiceError(ctx, err, 50042, "failed to get folder")
		return
	}
	utils.Success(ctx, detail)
}

func (f *FolderController) Create(ctx *gin.Context) {
	in, ok := bindFolder(ctx)
	if !ok {
		return
	}
	id, err := f.folders.Create(ctx.Request.Context(), middleware.UserID(ctx), in)
	if err != nil {
		respondServiceError(ctx, err, 50043, "failed to create folder")
		return
	}
	utils.Metrics().FoldersCreated.Inc()
	utils.Created(ctx, gin.H{"id": id})
}

func (f *FolderController) Update(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	in, ok := bindFolder(ctx)
	if !ok {
		return
	}
	id, err := f.folders.Update(ctx.Request.Context(), middleware.UserID(ctx), id, in)
	if err != nil {
		respondServiceError(ctx, err, 50044, "failed to update folder")
		return
	}
	utils.Success(ctx, gin.H{"id": id})
}

func (f *FolderController) Delete(ctx *gin.Context) {
	id, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	if err := f.folders.Delete(ctx.Request.Context(), middleware.UserID(ctx), id); err != nil {
		respondServiceError(ctx, err, 50045, "failed to delete folder")
		return
	}
	utils.Success(ctx, gin.H{"id": id})
}
