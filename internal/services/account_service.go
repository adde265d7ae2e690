package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/auth"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/models"
	"github.com/humabhutti05/Hackathon-2-Phase-III-TODOLIST/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrNameTooLong        = errors.New("name must be at most 255 characters")
	ErrAvatarURLTooLong   = errors.New("avatar_url must be at most 1024 characters")
)

// AccountService handles signup, login and profile business logic.
type AccountService struct {
	userRepo repository.UserRepository
	hasher   auth.PasswordHasher
	tokens   auth.TokenIssuer

	// Compared against when the email is unknown so login takes the same
	// time whether or not the account exists.
	dummyOnce sync.Once
	dummyHash string
}

// NewAccountService creates a new AccountService.
func NewAccountService(userRepo repository.UserRepository, hasher auth.PasswordHasher, tokens auth.TokenIssuer) *AccountService {
	return &AccountService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Email    string
	Name     *string
	Password string
}

// Signup creates a user and returns it with a freshly issued access token.
func (s *AccountService) Signup(ctx context.Context, input SignupInput) (*models.User, string, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, "", ErrEmailRequired
	}
	if input.Password == "" {
		return nil, "", ErrPasswordRequired
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := s.hasher.Hash(input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
	}

	// The unique index settles concurrent signups for the same email.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a new access token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.TrimSpace(input.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(input.Password, s.dummy())
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GetUser retrieves a user by ID.
func (s *AccountService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

const (
	maxNameLength      = 255
	maxAvatarURLLength = 1024
)

// UpdateProfileInput holds the profile fields to change. Nil fields are left
// unchanged; the Clear flags set a nullable field back to null.
type UpdateProfileInput struct {
	Email          *string
	Name           *string
	ClearName      bool
	AvatarURL      *string
	ClearAvatarURL bool
}

// UpdateProfile applies a partial update to the caller's own profile.
func (s *AccountService) UpdateProfile(ctx context.Context, callerID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, ErrEmailRequired
		}
		if email != user.Email {
			if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
				return nil, ErrEmailTaken
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			user.Email = email
		}
	}
	if input.ClearName {
		user.Name = nil
	} else if input.Name != nil {
		if utf8.RuneCountInString(*input.Name) > maxNameLength {
			return nil, ErrNameTooLong
		}
		user.Name = input.Name
	}
	if input.ClearAvatarURL {
		user.AvatarURL = nil
	} else if input.AvatarURL != nil {
		if utf8.RuneCountInString(*input.AvatarURL) > maxAvatarURLLength {
			return nil, ErrAvatarURLTooLong
		}
		user.AvatarURL = input.AvatarURL
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

func (s *AccountService) issue(user *models.User) (string, error) {
	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

func (s *AccountService) dummy() string {
	s.dummyOnce.Do(func() {
		// Errors leave the hash empty, which Verify rejects without hashing.
		s.dummyHash, _ = s.hasher.Hash("login-timing-placeholder")
	})
	return s.dummyHash
}
