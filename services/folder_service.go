package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cppla/linkbook/models"
)

// FolderStore returns (nil, nil) from FindFolder when the id is unknown.
type FolderStore interface {
	// CreateFolder inserts the folder with its bookmarks and assigns ids.
	CreateFolder(ctx context.Context, f *models.Folder) error
	// UpdateFolder writes scalar columns and replaces the folder's bookmarks with f.Bookmarks.
	UpdateFolder(ctx context.Context, f *models.Folder) error
	// DeleteFolder removes the folder with its bookmarks and comments; sub-folders
	// move up to the deleted folder's parent.
	DeleteFolder(ctx context.Context, id uint) error
	FindFolder(ctx context.Context, id uint) (*models.Folder, error)
	ListFoldersByUser(ctx context.Context, userID uint) ([]models.Folder, error)
}

type BookmarkInput struct {
	URL   string
	Title string
}

// FolderInput is the full replacement state of a folder.
type FolderInput struct {
	ParentID  *uint
	Title     string
	Image     string
	Content   string
	IsPinned  bool
	IsPrivate bool
	Bookmarks []BookmarkInput
}

type FolderService struct {
	folders  FolderStore
	comments *CommentService
	policy   OrphanPolicy
	logger   *zap.Logger
}

func NewFolderService(folders FolderStore, comments *CommentService, policy OrphanPolicy, logger *zap.Logger) *FolderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FolderService{folders: folders, comments: comments, policy: policy, logger: logger}
}

// Create stores a new folder owned by ownerID.
func (s *FolderService) Create(ctx context.Context, ownerID uint, in FolderInput) (uint, error) {
	if in.ParentID != nil {
		if _, err := s.ownedFolder(ctx, ownerID, *in.ParentID); err != nil {
			return 0, err
		}
	}

	f := &models.Folder{UserID: ownerID}
	applyFolderInput(f, in)
	if err := s.folders.CreateFolder(ctx, f); err != nil {
		return 0, fmt.Errorf("create folder: %w", err)
	}
	return f.ID, nil
}

// Update replaces the folder's fields and bookmarks. Only the owner may update.
func (s *FolderService) Update(ctx context.Context, principalID, folderID uint, in FolderInput) (uint, error) {
	f, err := s.ownedFolder(ctx, principalID, folderID)
	if err != nil {
		return 0, err
	}
	if in.ParentID != nil {
		if err := s.checkReparent(ctx, principalID, folderID, *in.ParentID); err != nil {
			return 0, err
		}
	}

	applyFolderInput(f, in)
	if err := s.folders.UpdateFolder(ctx, f); err != nil {
		return 0, fmt.Errorf("update folder: %w", err)
	}
	return f.ID, nil
}

// Delete removes a folder owned by principalID.
func (s *FolderService) Delete(ctx context.Context, principalID, folderID uint) error {
	if _, err := s.ownedFolder(ctx, principalID, folderID); err != nil {
		return err
	}
	if err := s.folders.DeleteFolder(ctx, folderID); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

// ListByUser returns the folder hierarchy of ownerID. Viewers other than the
// owner do not see private folders nor anything nested below them.
func (s *FolderService) ListByUser(ctx context.Context, viewerID, ownerID uint) ([]*FolderResponse, error) {
	rows, err := s.folders.ListFoldersByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	if viewerID != ownerID {
		rows = publicFolders(rows)
	}

	tree, err := AssembleTree(rows, s.policy, buildFolderResponse)
	if err != nil {
		s.logger.Warn("folder tree assembly failed", zap.Uint("user_id", ownerID), zap.Error(err))
		return nil, err
	}
	return tree, nil
}

// Detail returns a folder with its bookmarks and comment tree.
func (s *FolderService) Detail(ctx context.Context, viewerID, folderID uint) (*FolderDetailResponse, error) {
	f, err := s.folders.FindFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("find folder: %w", err)
	}
	if f == nil || (f.IsPrivate && f.UserID != viewerID) {
		return nil, fmt.Errorf("folder %d: %w", folderID, ErrNotFound)
	}

	comments, err := s.comments.folderTree(ctx, folderID)
	if err != nil {
		return nil, err
	}

	bookmarks := make([]BookmarkResponse, 0, len(f.Bookmarks))
	for _, b := range f.Bookmarks {
		bookmarks = append(bookmarks, BookmarkResponse{ID: b.ID, URL: b.URL, Title: b.Title})
	}

	return &FolderDetailResponse{
		ID:        f.ID,
		ParentID:  f.ParentID,
		Title:     f.Title,
		Image:     f.Image,
		Content:   f.Content,
		IsPinned:  f.IsPinned,
		IsPrivate: f.IsPrivate,
		User:      summarize(f.User),
		Bookmarks: bookmarks,
		Comments:  comments,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}, nil
}

func (s *FolderService) ownedFolder(ctx context.Context, principalID, folderID uint) (*models.Folder, error) {
	f, err := s.folders.FindFolder(ctx, folderID)
	if err != nil {
		return nil, fmt.Errorf("find folder: %w", err)
	}
	if f == nil {
		return nil, fmt.Errorf("folder %d: %w", folderID, ErrNotFound)
	}
	if f.UserID != principalID {
		return nil, fmt.Errorf("folder %d: %w", folderID, ErrForbidden)
	}
	return f, nil
}

// checkReparent rejects moving a folder under itself or one of its descendants.
func (s *FolderService) checkReparent(ctx context.Context, ownerID, folderID, parentID uint) error {
	if parentID == folderID {
		return fmt.Errorf("%w: folder %d cannot contain itself", ErrConsistency, folderID)
	}
	rows, err := s.folders.ListFoldersByUser(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("list folders: %w", err)
	}
	parents := make(map[uint]*uint, len(rows))
	for _, r := range rows {
		parents[r.ID] = r.ParentID
	}
	if _, ok := parents[parentID]; !ok {
		return fmt.Errorf("parent folder %d: %w", parentID, ErrNotFound)
	}

	cur := &parentID
	for steps := 0; cur != nil && steps <= len(rows); steps++ {
		if *cur == folderID {
			return fmt.Errorf("%w: folder %d cannot move below its own descendant", ErrConsistency, folderID)
		}
		cur = parents[*cur]
	}
	return nil
}

func applyFolderInput(f *models.Folder, in FolderInput) {
	f.ParentID = in.ParentID
	f.Title = in.Title
	f.Image = in.Image
	f.Content = in.Content
	f.IsPinned = in.IsPinned
	f.IsPrivate = in.IsPrivate
	f.Bookmarks = make([]models.Bookmark, 0, len(in.Bookmarks))
	for _, b := range in.Bookmarks {
		f.Bookmarks = append(f.Bookmarks, models.Bookmark{FolderID: f.ID, URL: b.URL, Title: b.Title})
	}
}

// publicFolders drops private folders together with every folder nested below one.
func publicFolders(rows []models.Folder) []models.Folder {
	byID := make(map[uint]*models.Folder, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	hidden := func(f *models.Folder) bool {
		for steps := 0; f != nil && steps <= len(rows); steps++ {
			if f.IsPrivate {
				return true
			}
			if f.ParentID == nil {
				return false
			}
			f = byID[*f.ParentID]
		}
		return false
	}

	out := make([]models.Folder, 0, len(rows))
	for i := range rows {
		if !hidden(&rows[i]) {
			out = append(out, rows[i])
		}
	}
	return out
}
