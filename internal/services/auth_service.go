package services

import (
	"errors"

	"robomart/internal/domain"
	"robomart/internal/repos"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadCreds = errors.New("invalid email or password")

type AuthService struct {
	Users *repos.UserRepo
}

func (s *AuthService) Login(sid, email, password string) (*domain.User, error) {
	u, err := s.Users.ByEmail(email)
	if err != nil {
		return nil, ErrBadCreds
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	if err := s.Users.BindSession(sid, u.ID); err != nil {
		return nil, err
	}
	return u, nil
}

// Register creates a customer account and signs it in.
func (s *AuthService) Register(sid, email, name, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return nil, err
	}
	id := uuid.NewString()
	if err := s.Users.Create(id, email, name, string(hash)); err != nil {
		return nil, err
	}
	if err := s.Users.BindSession(sid, id); err != nil {
		return nil, err
	}
	return &domain.User{ID: id, Email: email, Name: name, Role: domain.RoleCustomer}, nil
}

func (s *AuthService) Logout(sid string) error {
	return s.Users.UnbindSession(sid)
}

func (s *AuthService) CurrentUser(sid string) (*domain.User, error) {
	return s.Users.SessionUser(sid)
}

// Role is the single role resolver every admin surface consults; the gate is
// never re-derived per page.
func (s *AuthService) Role(sid string) string {
	if sid == "" {
		return domain.RoleCustomer
	}
	u, err := s.CurrentUser(sid)
	if err != nil || u == nil {
		return domain.RoleCustomer
	}
	return u.Role
}
