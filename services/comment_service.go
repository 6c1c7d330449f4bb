package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cppla/linkbook/models"
)

// CommentStore returns (nil, nil) from FindComment when the id is unknown.
type CommentStore interface {
	CreateComment(ctx context.Context, c *models.Comment) error
	FindComment(ctx context.Context, id uint) (*models.Comment, error)
	// ListCommentsByFolder returns the flat comment rows of a folder with their
	// owners preloaded, oldest first.
	ListCommentsByFolder(ctx context.Context, folderID uint) ([]models.Comment, error)
}

type CommentService struct {
	comments CommentStore
	folders  FolderStore
	policy   OrphanPolicy
	logger   *zap.Logger
}

func NewCommentService(comments CommentStore, folders FolderStore, policy OrphanPolicy, logger *zap.Logger) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{comments: comments, folders: folders, policy: policy, logger: logger}
}

// Create adds a comment to a folder, optionally as a reply. The parent must
// belong to the same folder.
func (s *CommentService) Create(ctx context.Context, principalID, folderID uint, parentID *uint, content string) (uint, error) {
	if _, err := s.visibleFolder(ctx, principalID, folderID); err != nil {
		return 0, err
	}

	if parentID != nil {
		parent, err := s.comments.FindComment(ctx, *parentID)
		if err != nil {
			return 0, fmt.Errorf("find parent comment: %w", err)
		}
		if parent == nil || parent.FolderID != folderID {
			return 0, fmt.Errorf("parent comment %d: %w", *parentID, ErrNotFound)
		}
	}

	c := &models.Comment{
		FolderID: folderID,
		ParentID: parentID,
		UserID:   principalID,
		Content:  content,
	}
	if err := s.comments.CreateComment(ctx, c); err != nil {
		return 0, fmt.Errorf("create comment: %w", err)
	}
	return c.ID, nil
}

// Tree fetches the comments of a folder and assembles them into reply trees.
// viewerID 0 is an anonymous viewer.
func (s *CommentService) Tree(ctx context.Context, viewerID, folderID uint) ([]*CommentResponse, error) {
	if _, err := s.visibleFolder(ctx, viewerID, folderID); err != nil {
		return nil, err
	}
	return s.folderTree(ctx, folderID)
}

// folderTree assembles the comments of a folder the caller has already checked.
func (s *CommentService) folderTree(ctx context.Context, folderID uint) ([]*CommentResponse, error) {
	rows, err := s.comments.ListCommentsByFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	tree, err := AssembleTree(rows, s.policy, buildCommentResponse)
	if err != nil {
		s.logger.Warn("comment tree assembly failed", zap.Uint("folder_id", folderID), zap.Error(err))
		return nil, err
	}
	return tree, nil
}

func (s *CommentService) visibleFolder(ctx context.Context, viewerID, folderID uint) (*models.Folder, error) {
	f, err := s.folders.FindFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("find folder: %w", err)
	}
	if f == nil || (f.IsPrivate && f.UserID != viewerID) {
		return nil, fmt.Errorf("folder %d: %w", folderID, ErrNotFound)
	}
	return f, nil
}
