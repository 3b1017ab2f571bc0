package service

import (
	"context"
	"errors"
	"strings"

	"github.com/YukiKuroshima/Team-Large/internal/cache"
	dom "github.com/YukiKuroshima/Team-Large/internal/domain"
	"github.com/YukiKuroshima/Team-Large/internal/repo"
	"github.com/YukiKuroshima/Team-Large/internal/utils"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

var (
	ErrUnknownEmail  = errors.New("unknown email")
	ErrWrongPassword = errors.New("wrong password")
	ErrEmailTaken    = errors.New("email already taken")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
)

// UserService handles signup, login and the member import API.
type UserService struct {
	repo  repo.UserRepo
	cache *cache.UserCache
	sf    singleflight.Group
}

// NewUserService creates a UserService. If c is nil, caching is disabled.
func NewUserService(r repo.UserRepo, c *cache.UserCache) *UserService {
	return &UserService{repo: r, cache: c}
}

// Signup creates a user with a bcrypt-hashed password and returns it.
func (s *UserService) Signup(ctx context.Context, firstName, lastName, email, password string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
	})
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return u, nil
}

// Authenticate checks email and password; returns the user if both match.
// ErrUnknownEmail and ErrWrongPassword are distinct so the login form can
// attach the error to the right field.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return dom.User{}, ErrUnknownEmail
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrUnknownEmail
		}
		return dom.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return dom.User{}, ErrWrongPassword
	}
	return u, nil
}

// AddMember inserts a user with username and email only (no password).
// Optimistic check-then-insert: an existing email is reported as ErrEmailTaken;
// a unique violation on the insert itself (lost race) comes back as the raw
// error for the handler to treat as an invalid payload.
func (s *UserService) AddMember(ctx context.Context, username, email string) (dom.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return dom.User{}, ErrInvalidInput
	}
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return dom.User{}, ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, dom.User{
		Username: strings.TrimSpace(username),
		Email:    email,
	})
	if err != nil {
		return dom.User{}, err
	}
	s.invalidateCache(ctx)
	return u, nil
}

// GetByID returns the user with the given ID.
func (s *UserService) GetByID(ctx context.Context, id int64) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

// List returns all users, through the cache when one is configured.
func (s *UserService) List(ctx context.Context) ([]dom.User, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do(keyUserList, func() (interface{}, error) {
			if list, err := s.cache.GetList(ctx); err == nil && list != nil {
				return list, nil
			}
			list, err := s.repo.List(ctx)
			if err != nil {
				return nil, err
			}
			_ = s.cache.SetList(ctx, list)
			return list, nil
		})
		if err != nil {
			return nil, err
		}
		return v.([]dom.User), nil
	}
	return s.repo.List(ctx)
}

const keyUserList = "users:list"

func (s *UserService) invalidateCache(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
