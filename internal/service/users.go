// internal/service/users.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Annany2002/collecta-backend/internal/auth"
	"github.com/Annany2002/collecta-backend/internal/core"
	"github.com/Annany2002/collecta-backend/internal/domain"
	"github.com/Annany2002/collecta-backend/internal/media"
)

// ErrInvalidCredentials is returned for an unknown login or a wrong password alike.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)

// RegisterInput carries a new account.
type RegisterInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Username    string `json:"username" validate:"required,min=3,max=32"`
	Email       string `json:"email" validate:"required,email,max=254"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

// LoginInput identifies a user by email or username.
type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ProfileInput is a whitelist of editable profile fields. Nil fields are left unchanged.
type ProfileInput struct {
	Name        *string `json:"name" form:"name" validate:"omitnil,max=100"`
	Username    *string `json:"username" form:"username" validate:"omitnil,min=3,max=32"`
	Email       *string `json:"email" form:"email" validate:"omitnil,email,max=254"`
	DateOfBirth *string `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkUsername(username string) error {
	if strings.ContainsAny(username, "@ \t") {
		return domain.Invalid("username", "may not contain '@' or spaces")
	}
	return nil
}

func (s *Service) checkDateOfBirth(dob string) error {
	if dob != "" && !core.IsPast(dob, s.now()) {
		return domain.Invalid("date_of_birth", "must not be in the future")
	}
	return nil
}

// Register creates an account. Duplicate emails or usernames are conflicts.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = normalizeEmail(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := checkUsername(in.Username); err != nil {
		return nil, err
	}
	if err := s.checkDateOfBirth(in.DateOfBirth); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		DateOfBirth:  in.DateOfBirth,
		CreatedAt:    s.now().UTC(),
	}
	if _, err := s.store.CreateUser(ctx, u); err != nil {
		customLog.Warnf("Service: Failed to register user %s: %v", in.Email, err)
		return nil, err
	}
	customLog.Printf("Service: Registered UserID %d (%s)", u.ID, u.Username)
	return u, nil
}

// Login checks the credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, in LoginInput) (string, *domain.User, error) {
	if err := validateStruct(in); err != nil {
		return "", nil, err
	}
	login := strings.TrimSpace(in.Login)
	if strings.Contains(login, "@") {
		login = normalizeEmail(login)
	}

	u, err := s.store.FindUserByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			customLog.Warnf("Service: Login failed for '%s': no such user", login)
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if !auth.CheckPasswordHash(in.Password, u.PasswordHash) {
		customLog.Warnf("Service: Login failed for UserID %d: invalid password", u.ID)
		return "", nil, ErrInvalidCredentials
	}

	token, err := auth.GenerateJWT(u.ID, s.cfg.JWTSecret, s.cfg.JWTExpiration)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context, caller *domain.Caller) (*domain.User, error) {
	if err := caller.Require(); err != nil {
		return nil, err
	}
	return s.store.FindUserByID(ctx, caller.UserID)
}

// UpdateProfile applies the whitelisted profile fields.
func (s *Service) UpdateProfile(ctx context.Context, caller *domain.Caller, in ProfileInput) (*domain.User, error) {
	u, err := s.Me(ctx, caller)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	if err := patchRequiredText("name", &u.Name, in.Name); err != nil {
		return nil, err
	}
	if err := patchRequiredText("username", &u.Username, in.Username); err != nil {
		return nil, err
	}
	if err := checkUsername(u.Username); err != nil {
		return nil, err
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	patchText(&u.DateOfBirth, in.DateOfBirth)
	if err := s.checkDateOfBirth(u.DateOfBirth); err != nil {
		return nil, err
	}

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// SetProfilePicture stores img and points the caller's profile at it.
func (s *Service) SetProfilePicture(ctx context.Context, caller *domain.Caller, img *media.Image) (*domain.User, error) {
	u, err := s.Me(ctx, caller)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, domain.Invalid("image", "is required")
	}

	path, err := s.saveImage(ctx, img)
	if err != nil {
		return nil, err
	}
	old := u.ProfilePicture
	u.ProfilePicture = path
	if err := s.store.UpdateUser(ctx, u); err != nil {
		s.discard(ctx, path)
		return nil, err
	}
	s.discard(ctx, replaced(old, path))
	return u, nil
}
