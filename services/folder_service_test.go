package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/linkbook/models"
	"github.com/cppla/linkbook/services"
)

var (
	alice = models.User{ID: 1, Email: "alice@example.com", Name: "Alice", Image: "https://example.com/a.png"}
	bob   = models.User{ID: 2, Email: "bob@example.com", Name: "Bob"}
)

func newContentServices(policy services.OrphanPolicy) (*memContentStore, *services.FolderService, *services.CommentService) {
	store := newMemContentStore(alice, bob)
	comments := services.NewCommentService(store, store, policy, nil)
	folders := services.NewFolderService(store, comments, policy, nil)
	return store, folders, comments
}

func mustCreateFolder(t *testing.T, svc *services.FolderService, owner uint, in services.FolderInput) uint {
	t.Helper()
	id, err := svc.Create(context.Background(), owner, in)
	require.NoError(t, err)
	return id
}

func TestFolderService_ListByUserBuildsTree(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newContentServices(services.OrphanPromote)

	work := mustCreateFolder(t, svc, alice.ID, services.FolderInput{
		Title:     "Work",
		Bookmarks: []services.BookmarkInput{{URL: "https://go.dev", Title: "Go"}, {URL: "https://pkg.go.dev"}},
	})
	golang := mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Go", ParentID: &work})
	mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Generics", ParentID: &golang})
	mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Music"})
	mustCreateFolder(t, svc, bob.ID, services.FolderInput{Title: "Bob's"})

	tree, err := svc.ListByUser(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, "Work", tree[0].Title)
	assert.Equal(t, 2, tree[0].BookmarkCount)
	assert.Equal(t, services.UserSummary{ID: alice.ID, Name: alice.Name, Image: alice.Image}, tree[0].User)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Go", tree[0].Children[0].Title)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Generics", tree[0].Children[0].Children[0].Title)
	assert.Equal(t, "Music", tree[1].Title)
	assert.Empty(t, tree[1].Children)
}

func TestFolderService_PrivateFoldersHiddenFromOthers(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newContentServices(services.OrphanReject)

	public := mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Public"})
	secret := mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Secret", IsPrivate: true, ParentID: &public})
	mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Inside secret", ParentID: &secret})

	own, err := svc.ListByUser(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, own, 1)
	require.Len(t, own[0].Children, 1)
	assert.Len(t, own[0].Children[0].Children, 1)

	// the nested folder would be an orphan if it leaked, which the reject policy turns into an error
	others, err := svc.ListByUser(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Empty(t, others[0].Children)

	_, err = svc.Detail(ctx, bob.ID, secret)
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = svc.Detail(ctx, 0, secret)
	assert.ErrorIs(t, err, services.ErrNotFound)

	detail, err := svc.Detail(ctx, alice.ID, secret)
	require.NoError(t, err)
	assert.Equal(t, "Secret", detail.Title)
}

func TestFolderService_DetailReadsFolderOnce(t *testing.T) {
	ctx := context.Background()
	store, svc, comments := newContentServices(services.OrphanPromote)
	id := mustCreateFolder(t, svc, alice.ID, services.FolderInput{
		Title:     "Recipes",
		Bookmarks: []services.BookmarkInput{{URL: "https://soup.example", Title: "Soup"}},
	})
	first, err := comments.Create(ctx, bob.ID, id, nil, "yum")
	require.NoError(t, err)
	_, err = comments.Create(ctx, alice.ID, id, &first, "thanks")
	require.NoError(t, err)

	store.folderReads = 0
	detail, err := svc.Detail(ctx, bob.ID, id)
	require.NoError(t, err)
	assert.Equal(t, 1, store.folderReads)
	require.Len(t, detail.Bookmarks, 1)
	require.Len(t, detail.Comments, 1)
	assert.Len(t, detail.Comments[0].Children, 1)
}

func TestFolderService_CreateRequiresOwnedParent(t *testing.T) {
	ctx := context.Background()
	_, svc, _ := newContentServices(services.OrphanPromote)
	bobs := mustCreateFolder(t, svc, bob.ID, services.FolderInput{Title: "Bob's"})

	_, err := svc.Create(ctx, alice.ID, services.FolderInput{Title: "Sneaky", ParentID: &bobs})
	assert.ErrorIs(t, err, services.ErrForbidden)

	missing := uint(404)
	_, err = svc.Create(ctx, alice.ID, services.FolderInput{Title: "Lost", ParentID: &missing})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestFolderService_Update(t *testing.T) {
	ctx := context.Background()
	store, svc, _ := newContentServices(services.OrphanPromote)
	root := mustCreateFolder(t, svc, alice.ID, services.FolderInput{
		Title:     "Reading",
		Bookmarks: []services.BookmarkInput{{URL: "https://a.example"}, {URL: "https://b.example"}},
	})
	child := mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Papers", ParentID: &root})

	id, err := svc.Update(ctx, alice.ID, root, services.FolderInput{
		Title:     "Reading list",
		IsPinned:  true,
		Bookmarks: []services.BookmarkInput{{URL: "https://c.example", Title: "C"}},
	})
	require.NoError(t, err)
	assert.Equal(t, root, id)

	f, err := store.FindFolder(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, "Reading list", f.Title)
	assert.True(t, f.IsPinned)
	require.Len(t, f.Bookmarks, 1)
	assert.Equal(t, "https://c.example", f.Bookmarks[0].URL)

	t.Run("only the owner may update", func(t *testing.T) {
		_, err := svc.Update(ctx, bob.ID, root, services.FolderInput{Title: "Mine now"})
		assert.ErrorIs(t, err, services.ErrForbidden)
	})

	t.Run("unknown folder", func(t *testing.T) {
		_, err := svc.Update(ctx, alice.ID, 999, services.FolderInput{Title: "x"})
		assert.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("cannot become its own parent", func(t *testing.T) {
		_, err := svc.Update(ctx, alice.ID, root, services.FolderInput{Title: "Loop", ParentID: &root})
		assert.ErrorIs(t, err, services.ErrConsistency)
	})

	t.Run("cannot move below a descendant", func(t *testing.T) {
		_, err := svc.Update(ctx, alice.ID, root, services.FolderInput{Title: "Loop", ParentID: &child})
		assert.ErrorIs(t, err, services.ErrConsistency)
	})
}

func TestFolderService_Delete(t *testing.T) {
	ctx := context.Background()
	store, svc, comments := newContentServices(services.OrphanReject)
	top := mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Top"})
	middle := mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Middle", ParentID: &top})
	mustCreateFolder(t, svc, alice.ID, services.FolderInput{Title: "Bottom", ParentID: &middle})
	_, err := comments.Create(ctx, bob.ID, middle, nil, "nice list")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, middle), services.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, alice.ID, middle))

	tree, err := svc.ListByUser(ctx, alice.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "Bottom", tree[0].Children[0].Title)

	left, err := store.ListCommentsByFolder(ctx, middle)
	require.NoError(t, err)
	assert.Empty(t, left)

	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, middle), services.ErrNotFound)
}
