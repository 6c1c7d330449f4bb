package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cppla/linkbook/models"
)

// UserStore is the persistence the account manager needs. Lookups return
// (nil, nil) when no user matches.
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByEmailWithInterests loads the user and its interests in one fetch.
	FindByEmailWithInterests(ctx context.Context, email string) (*models.User, error)
	// Save inserts a new user (assigning its ID) or updates scalar columns of an existing one.
	Save(ctx context.Context, u *models.User) error
	ReplaceInterests(ctx context.Context, userID uint, change InterestChange) error
	// Transaction runs fn against a store bound to a single transaction.
	Transaction(ctx context.Context, fn func(tx UserStore) error) error
}

// CredentialVerifier hashes secrets and checks them against stored hashes.
type CredentialVerifier interface {
	Hash(plaintext string) (string, error)
	Matches(plaintext, hash string) bool
}

// ProfileUpdate carries the full replacement profile. Every field is written as
// given, so an empty value clears the stored one.
type ProfileUpdate struct {
	Name      string
	Image     string
	Introduce string
	Interests []models.Field
}

// UserService owns registration, authentication and profile updates.
type UserService struct {
	store    UserStore
	verifier CredentialVerifier
	logger   *zap.Logger

	absentOnce sync.Once
	absentHash string
}

func NewUserService(store UserStore, verifier CredentialVerifier, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{store: store, verifier: verifier, logger: logger}
}

// NormalizeEmail trims and lower-cases an address so lookups and uniqueness are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account and returns the store-assigned id.
func (s *UserService) Register(ctx context.Context, email, password string) (uint, error) {
	email = NormalizeEmail(email)

	exists, err := s.store.ExistsByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return 0, ErrDuplicateEmail
	}

	hash, err := s.verifier.Hash(password)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Email: email, PasswordHash: hash}
	if err := s.store.Save(ctx, user); err != nil {
		return 0, fmt.Errorf("save user: %w", err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID))
	return user.ID, nil
}

// Authenticate returns the user for a matching credential pair. Unknown emails
// and wrong passwords produce the same ErrLoginFailure.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		// pay the same hashing cost as a wrong password
		s.verifier.Matches(password, s.absentUserHash())
		return nil, ErrLoginFailure
	}
	if !s.verifier.Matches(password, user.PasswordHash) {
		return nil, ErrLoginFailure
	}
	return user, nil
}

func (s *UserService) absentUserHash() string {
	s.absentOnce.Do(func() {
		hash, err := s.verifier.Hash("linkbook-absent-user")
		if err != nil {
			s.logger.Warn("hash placeholder credential", zap.Error(err))
		}
		s.absentHash = hash
	})
	return s.absentHash
}

// FindByEmail returns the public projection of the user, interests included.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.store.FindByEmailWithInterests(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	return toUserResponse(user), nil
}

// UpdateProfile overwrites name, image and introduce and makes the interest set
// equal to req.Interests. The principal is identified by email.
//
// Two concurrent updates for the same user are serialized only as far as the
// store's transaction isolation allows; the later commit wins.
func (s *UserService) UpdateProfile(ctx context.Context, email string, req ProfileUpdate) error {
	for _, f := range req.Interests {
		if !f.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidInterest, f)
		}
	}
	email = NormalizeEmail(email)

	return s.store.Transaction(ctx, func(tx UserStore) error {
		user, err := tx.FindByEmailWithInterests(ctx, email)
		if err != nil {
			return fmt.Errorf("find user: %w", err)
		}
		if user == nil {
			return fmt.Errorf("user %s: %w", email, ErrNotFound)
		}

		user.Name = req.Name
		user.Image = req.Image
		user.Introduce = req.Introduce
		if err := tx.Save(ctx, user); err != nil {
			return fmt.Errorf("save user: %w", err)
		}

		change := ReconcileInterests(user.InterestFields(), req.Interests)
		if change.Empty() {
			return nil
		}
		if err := tx.ReplaceInterests(ctx, user.ID, change); err != nil {
			return fmt.Errorf("replace interests: %w", err)
		}
		s.logger.Debug("interests reconciled",
			zap.Uint("user_id", user.ID),
			zap.Int("added", len(change.ToAdd)),
			zap.Int("removed", len(change.ToRemove)),
		)
		return nil
	})
}
