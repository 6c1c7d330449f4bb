package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/cppla/linkbook/models"
	"github.com/cppla/linkbook/services"
)

// plainVerifier stands in for bcrypt so tests stay fast.
type plainVerifier struct{}

func (plainVerifier) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }

func (plainVerifier) Matches(plaintext, hash string) bool { return hash == "hashed:"+plaintext }

// countingVerifier records how often a hash comparison ran.
type countingVerifier struct {
	plainVerifier
	mu      sync.Mutex
	matches int
}

func (v *countingVerifier) Matches(plaintext, hash string) bool {
	v.mu.Lock()
	v.matches++
	v.mu.Unlock()
	return v.plainVerifier.Matches(plaintext, hash)
}

func (v *countingVerifier) count() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.matches
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) FindByEmailWithInterests(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *mockUserStore) Save(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) ReplaceInterests(ctx context.Context, userID uint, change services.InterestChange) error {
	return m.Called(ctx, userID, change).Error(0)
}

func (m *mockUserStore) Transaction(ctx context.Context, fn func(tx services.UserStore) error) error {
	return fn(m)
}

// memUserStore keeps users in memory and records interest writes.
type memUserStore struct {
	mu             sync.Mutex
	users          map[string]*models.User
	nextID         uint
	nextInterestID uint
	replaced       []services.InterestChange
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*models.User{}}
}

func (s *memUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[email]
	return ok, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.FindByEmailWithInterests(ctx, email)
	if u != nil {
		u.Interests = nil
	}
	return u, err
}

func (s *memUserStore) FindByEmailWithInterests(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.Interests = append([]models.Interest(nil), u.Interests...)
	return &cp, nil
}

func (s *memUserStore) Save(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		if _, ok := s.users[u.Email]; ok {
			return services.ErrDuplicateEmail
		}
		s.nextID++
		u.ID = s.nextID
		cp := *u
		cp.Interests = nil
		s.users[u.Email] = &cp
		return nil
	}
	stored := s.byID(u.ID)
	stored.Name, stored.Image, stored.Introduce = u.Name, u.Image, u.Introduce
	return nil
}

func (s *memUserStore) ReplaceInterests(_ context.Context, userID uint, change services.InterestChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaced = append(s.replaced, change)
	u := s.byID(userID)

	remove := map[models.Field]bool{}
	for _, f := range change.ToRemove {
		remove[f] = true
	}
	kept := u.Interests[:0]
	for _, it := range u.Interests {
		if !remove[it.Field] {
			kept = append(kept, it)
		}
	}
	for _, f := range change.ToAdd {
		s.nextInterestID++
		kept = append(kept, models.Interest{ID: s.nextInterestID, UserID: userID, Field: f})
	}
	u.Interests = kept
	return nil
}

func (s *memUserStore) Transaction(_ context.Context, fn func(tx services.UserStore) error) error {
	return fn(s)
}

func (s *memUserStore) byID(id uint) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// memContentStore is an in-memory FolderStore and CommentStore.
type memContentStore struct {
	users       map[uint]models.User
	folders     []*models.Folder
	comments    []models.Comment
	nextFolder  uint
	nextComment uint
	folderReads int
}

func newMemContentStore(users ...models.User) *memContentStore {
	s := &memContentStore{users: map[uint]models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memContentStore) CreateFolder(_ context.Context, f *models.Folder) error {
	s.nextFolder++
	f.ID = s.nextFolder
	for i := range f.Bookmarks {
		f.Bookmarks[i].ID = uint(i + 1)
		f.Bookmarks[i].FolderID = f.ID
	}
	cp := *f
	cp.User = s.users[f.UserID]
	cp.Bookmarks = append([]models.Bookmark(nil), f.Bookmarks...)
	s.folders = append(s.folders, &cp)
	return nil
}

func (s *memContentStore) UpdateFolder(_ context.Context, f *models.Folder) error {
	for i, stored := range s.folders {
		if stored.ID == f.ID {
			cp := *f
			cp.User = s.users[f.UserID]
			cp.Bookmarks = append([]models.Bookmark(nil), f.Bookmarks...)
			s.folders[i] = &cp
		}
	}
	return nil
}

func (s *memContentStore) DeleteFolder(_ context.Context, id uint) error {
	var deleted *models.Folder
	kept := s.folders[:0]
	for _, f := range s.folders {
		if f.ID == id {
			deleted = f
			continue
		}
		kept = append(kept, f)
	}
	s.folders = kept
	if deleted == nil {
		return nil
	}
	for _, f := range s.folders {
		if f.ParentID != nil && *f.ParentID == id {
			f.ParentID = deleted.ParentID
		}
	}
	comments := s.comments[:0]
	for _, c := range s.comments {
		if c.FolderID != id {
			comments = append(comments, c)
		}
	}
	s.comments = comments
	return nil
}

func (s *memContentStore) FindFolder(_ context.Context, id uint) (*models.Folder, error) {
	s.folderReads++
	for _, f := range s.folders {
		if f.ID == id {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memContentStore) ListFoldersByUser(_ context.Context, userID uint) ([]models.Folder, error) {
	out := []models.Folder{}
	for _, f := range s.folders {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (s *memContentStore) CreateComment(_ context.Context, c *models.Comment) error {
	s.nextComment++
	c.ID = s.nextComment
	cp := *c
	cp.User = s.users[c.UserID]
	s.comments = append(s.comments, cp)
	return nil
}

func (s *memContentStore) FindComment(_ context.Context, id uint) (*models.Comment, error) {
	for _, c := range s.comments {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *memContentStore) ListCommentsByFolder(_ context.Context, folderID uint) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.FolderID == folderID {
			out = append(out, c)
		}
	}
	return out, nil
}
