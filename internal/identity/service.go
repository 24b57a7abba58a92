// Package identity wraps user accounts and sign-in. The rest of the
// application only needs a stable user id, email and display name from it.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"zentra-api/internal/auth"
	"zentra-api/internal/docstore"
	"zentra-api/internal/models"

	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
)

type Service struct {
	store  docstore.Store
	tokens *auth.Service
}

func NewService(store docstore.Store, tokens *auth.Service) *Service {
	return &Service{store: store, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	email = normalizeEmail(email)
	if len(password) < 6 {
		return nil, ErrWeakPassword
	}

	existing, err := s.userByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if user.DisplayName == "" {
		user.DisplayName = email
	}

	id, err := s.store.CreateDocument(ctx, docstore.CollectionUsers, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = id
	return &user, nil
}

// Login verifies credentials and returns a session token plus the user.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %v", err)
	}
	return token, user, nil
}

func (s *Service) UserByID(ctx context.Context, id string) (*models.User, error) {
	doc, err := s.store.GetDocument(ctx, docstore.CollectionUsers, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	var user models.User
	if err := json.Unmarshal(doc.Data, &user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %v", err)
	}
	user.ID = doc.ID
	return &user, nil
}

func (s *Service) userByEmail(ctx context.Context, email string) (*models.User, error) {
	docs, err := s.store.GetDocuments(ctx, docstore.CollectionUsers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %w", err)
	}

	for _, doc := range docs {
		var user models.User
		if err := json.Unmarshal(doc.Data, &user); err != nil {
			continue
		}
		if user.Email == email {
			user.ID = doc.ID
			return &user, nil
		}
	}
	return nil, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
