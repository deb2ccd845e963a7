package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/strrl/mentorlink/pkg/models"
)

const (
	GuestEmail    = "alex@example.com"
	GuestPassword = "password123"

	MinPasswordLength = 6

	defaultName  = "New User"
	defaultEmail = "user@example.com"
	defaultBio   = "Just joined MentorLink Pro!"
)

var (
	ErrPasswordMismatch = errors.New("Passwords do not match")
	ErrPasswordTooShort = fmt.Errorf("Password must be at least %d characters", MinPasswordLength)
	ErrInvalidPassword  = errors.New("Invalid password. Please try again.")
	ErrInvalidGuest     = fmt.Errorf("Invalid password. Use %q for this guest account.", GuestPassword)
	ErrUserNotFound     = errors.New("User not found. Please register or check your email.")
)

// GuestUser is the demo account that always exists
func GuestUser() models.User {
	return models.User{
		ID:     "u1",
		Name:   "Alex Rivera",
		Email:  GuestEmail,
		Role:   models.RoleMentee,
		Avatar: "https://picsum.photos/seed/alex/200",
		Skills: []string{"JavaScript", "React", "CSS"},
		Bio:    "Aspiring Fullstack Developer with a passion for AI.",
	}
}

type account struct {
	user         models.User
	passwordHash string
}

// Store holds the guest account and at most one registered account in memory
type Store struct {
	mu         sync.RWMutex
	guest      account
	registered *account
	logger     *zap.Logger
}

// NewStore creates a store containing only the guest account
func NewStore(logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	hash, err := HashPassword(GuestPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare guest account: %w", err)
	}

	return &Store{
		guest:  account{user: GuestUser(), passwordHash: hash},
		logger: logger,
	}, nil
}

// RegisterRequest is the input of the registration form
type RegisterRequest struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register validates the form and stores the account, replacing any
// previously registered one
func (s *Store) Register(req RegisterRequest) (models.User, error) {
	if req.Password != req.ConfirmPassword {
		return models.User{}, ErrPasswordMismatch
	}
	if len(req.Password) < MinPasswordLength {
		return models.User{}, ErrPasswordTooShort
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = defaultName
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = defaultEmail
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return models.User{}, err
	}

	seed := strings.TrimSpace(req.Name)
	if seed == "" {
		seed = "user"
	}

	user := models.User{
		ID:     "u-" + uuid.NewString(),
		Name:   name,
		Email:  email,
		Role:   models.RoleMentee,
		Avatar: fmt.Sprintf("https://picsum.photos/seed/%s/200", url.PathEscape(seed)),
		Skills: []string{},
		Bio:    defaultBio,
	}

	s.mu.Lock()
	s.registered = &account{user: user, passwordHash: hash}
	s.mu.Unlock()

	s.logger.Info("account registered", zap.String("id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Registered returns the registered account, if any
func (s *Store) Registered() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registered == nil {
		return models.User{}, false
	}
	return s.registered.user, true
}

// Login checks the registered account first, then the guest account
func (s *Store) Login(email, password string) (models.User, error) {
	s.mu.RLock()
	registered := s.registered
	guest := s.guest
	s.mu.RUnlock()

	if registered != nil && email == registered.user.Email {
		return s.verify(*registered, password, ErrInvalidPassword)
	}
	if email == guest.user.Email {
		return s.verify(guest, password, ErrInvalidGuest)
	}

	s.logger.Debug("login for unknown email", zap.String("email", email))
	return models.User{}, ErrUserNotFound
}

func (s *Store) verify(acc account, password string, mismatch error) (models.User, error) {
	ok, err := VerifyPassword(password, acc.passwordHash)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		s.logger.Debug("login rejected", zap.String("email", acc.user.Email))
		return models.User{}, mismatch
	}

	s.logger.Info("signed in", zap.String("id", acc.user.ID))
	return acc.user, nil
}
