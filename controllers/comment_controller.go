package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cppla/linkbook/middleware"
	"github.com/cppla/linkbook/services"
	"github.com/cppla/linkbook/utils"
)

type CommentController struct {
	comments *services.CommentService
}

func NewCommentController(comments *services.CommentService) *CommentController {
	return &CommentController{comments: comments}
}

// Tree returns the comments of a folder as reply trees.
func (c *CommentController) Tree(ctx *gin.Context) {
	folderID, ok := paramID(ctx, "id")
	if !ok {
		return
	}
	tree, err := c.comments.Tree(ctx.Request.Context(), middleware.UserID(ctx), folderID)
	if err != nil {
		respondServiceError(ctx, err, 50050, "failed to load comments")
		return
	}
	utils.Success(ctx, tree)
}

// Create adds a comment or a reply to a folder.
func (c *CommentController) Create(ctx *gin.Context) {
	folderID, ok := paramID(ctx, "id")
	if !ok {
		return
	}

	var req struct {
		ParentID *uint  `json:"parent_id"`
		Content  string `json:"content" binding:"required,max=2000"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}
	content := strings.TrimSpace(utils.Sanitize(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40051, "content is required")
		return
	}

	id, err := c.comments.Create(ctx.Request.Context(), middleware.UserID(ctx), folderID, req.ParentID, content)
	if err != nil {
		respondServiceError(ctx, err, 50051, "failed to create comment")
		return
	}
	utils.Metrics().CommentsCreated.Inc()
	utils.Created(ctx, gin.H{"id": id})
}
