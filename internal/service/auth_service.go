package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
	"budgetmate/internal/repository/redis"
)

const minPasswordLen = 6

var errBadCredentials = pkg.Unauthenticated("Invalid email/username or password")

type AuthService struct {
	users    *mysql.UserRepository
	tokens   *pkg.TokenIssuer
	sessions SessionStore
	google   GoogleAuth
}

// AuthResult is returned by every sign-in path.
type AuthResult struct {
	User UserRef
	Pair *pkg.Pair
}

type SignupInput struct {
	Email    string
	Password string
	Username string
}

type AdminInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// NewAuthService wires authentication. sessions and google may be nil.
func NewAuthService(db *gorm.DB, tokens *pkg.TokenIssuer, sessions SessionStore, google GoogleAuth) *AuthService {
	return &AuthService{
		users:    &mysql.UserRepository{DB: db},
		tokens:   tokens,
		sessions: sessions,
		google:   google,
	}
}

func hashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(u *model.User, pw string) bool {
	if !u.HasPassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(pw)) == nil
}

// issue signs a token pair and records the access token as the user's live session.
func (s *AuthService) issue(ctx context.Context, u *model.User) (*AuthResult, error) {
	pair, err := s.tokens.GeneratePair(u.ID)
	if err != nil {
		return nil, fmt.Errorf("sign tokens: %w", err)
	}
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, u.ID, pair.AccessToken); err != nil {
			return nil, err
		}
	}
	return &AuthResult{User: NewUserRef(u), Pair: pair}, nil
}

func (s *AuthService) emailInUse(ctx context.Context, email string) error {
	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return pkg.Conflict("Email already exists")
	case errors.Is(err, mysql.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("find user: %w", err)
	}
}

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, pkg.Validation("Please include a valid email")
	}
	if len(in.Password) < minPasswordLen {
		return nil, pkg.Validation("Password must be at least 6 characters long")
	}
	if blank(in.Username) {
		return nil, pkg.Validation("Username is required")
	}
	if err := errors.Join(
		maxLen("Email", email, model.EmailMaxLen),
		maxLen("Username", strings.TrimSpace(in.Username), model.NameMaxLen),
	); err != nil {
		return nil, err
	}
	if err := s.emailInUse(ctx, email); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Name:       strings.TrimSpace(in.Username),
		Email:      email,
		Password:   &hash,
		Role:       model.RoleUser,
		AvatarSeed: uuid.NewString(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(ctx, u)
}

// Login accepts either the email or the display name as login.
func (s *AuthService) Login(ctx context.Context, login, password string) (*AuthResult, error) {
	if blank(login) || password == "" {
		return nil, pkg.Validation("Email/Username and password are required")
	}
	login = strings.TrimSpace(login)
	if strings.Contains(login, "@") {
		login = normalizeEmail(login)
	}
	u, err := s.users.FindByLogin(ctx, login)
	if errors.Is(err, mysql.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !checkPassword(u, password) {
		return nil, errBadCredentials
	}
	return s.issue(ctx, u)
}

// Google signs in with a Google ID token, creating a password-less account on first use.
func (s *AuthService) Google(ctx context.Context, idToken string) (*AuthResult, error) {
	if blank(idToken) {
		return nil, pkg.Validation("id_token is required")
	}
	if s.google == nil {
		return nil, pkg.Unauthenticated("Invalid Google token")
	}
	profile, err := s.google.Verify(ctx, idToken)
	if err != nil {
		return nil, pkg.Unauthenticated("Invalid Google token")
	}
	email := normalizeEmail(profile.Email)
	if email == "" {
		return nil, pkg.Validation("Google account has no email")
	}
	if err := maxLen("Email", email, model.EmailMaxLen); err != nil {
		return nil, err
	}
	u, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, mysql.ErrNotFound) {
		u = &model.User{
			Name:       truncate(profile.Name, model.NameMaxLen),
			Email:      email,
			GoogleID:   profile.Subject,
			Role:       model.RoleUser,
			AvatarSeed: uuid.NewString(),
		}
		err = s.users.Create(ctx, u)
	}
	if err != nil {
		return nil, fmt.Errorf("google user: %w", err)
	}
	return s.issue(ctx, u)
}

// Logout drops the live session. Without a session store it is a no-op.
func (s *AuthService) Logout(ctx context.Context, actor Actor) error {
	if s.sessions == nil {
		return nil
	}
	return s.sessions.Delete(ctx, actor.ID)
}

// Authenticate resolves a bearer access token to its user, reading the row each time so role
// changes apply at once.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.ParseAccess(token)
	if err != nil {
		return nil, pkg.Unauthenticated("Token is not valid")
	}
	if s.sessions != nil {
		live, err := s.sessions.Get(ctx, claims.UserID)
		if errors.Is(err, redis.ErrSessionNotFound) || (err == nil && live != token) {
			return nil, pkg.Unauthenticated("Session expired, please log in again")
		}
		if err != nil {
			return nil, err
		}
		if err := s.sessions.Extend(ctx, claims.UserID); err != nil {
			return nil, err
		}
	}
	u, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, mysql.ErrNotFound) {
		return nil, pkg.Unauthenticated("Token is not valid")
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (s *AuthService) Profile(ctx context.Context, actor Actor) (*UserRef, error) {
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	ref := NewUserRef(u)
	return &ref, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, actor Actor, name, email string) (*UserRef, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" && email == "" {
		return nil, pkg.Validation("At least one field (name or email) is required")
	}
	if err := errors.Join(
		maxLen("Name", name, model.NameMaxLen),
		maxLen("Email", email, model.EmailMaxLen),
	); err != nil {
		return nil, err
	}
	if email != "" {
		if !validEmail(email) {
			return nil, pkg.Validation("Invalid email format")
		}
		taken, err := s.users.EmailTaken(ctx, email, actor.ID)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, pkg.Conflict("Email already in use")
		}
	}
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, notFoundOr(err, "User not found")
	}
	if err := s.users.UpdateProfile(ctx, u, name, email); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	ref := NewUserRef(u)
	return &ref, nil
}

// ChangePassword replaces the password and ends the live session.
func (s *AuthService) ChangePassword(ctx context.Context, actor Actor, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return pkg.Validation("All password fields are required")
	}
	if len(next) < minPasswordLen {
		return pkg.Validation("New password must be at least 6 characters")
	}
	if next != confirm {
		return pkg.Validation("New passwords do not match")
	}
	u, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return notFoundOr(err, "User not found")
	}
	if !u.HasPassword() {
		return pkg.Validation("Cannot change password for Google-authenticated accounts")
	}
	if !checkPassword(u, current) {
		return pkg.Unauthenticated("Current password is incorrect")
	}
	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, u, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return s.Logout(ctx, actor)
}

// CreateAdmin registers a new admin account. Callers must already be admins.
func (s *AuthService) CreateAdmin(ctx context.Context, in AdminInput) (*UserRef, error) {
	if blank(in.Name) || blank(in.Email) || in.Password == "" || in.ConfirmPassword == "" {
		return nil, pkg.Validation("All fields are required (name, email, password, confirmPassword)")
	}
	email := normalizeEmail(in.Email)
	if !validEmail(email) {
		return nil, pkg.Validation("Invalid email format")
	}
	if len(in.Password) < minPasswordLen {
		return nil, pkg.Validation("Password must be at least 6 characters")
	}
	if in.Password != in.ConfirmPassword {
		return nil, pkg.Validation("Passwords do not match")
	}
	if err := errors.Join(
		maxLen("Name", strings.TrimSpace(in.Name), model.NameMaxLen),
		maxLen("Email", email, model.EmailMaxLen),
	); err != nil {
		return nil, err
	}
	if err := s.emailInUse(ctx, email); err != nil {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		Name:       strings.TrimSpace(in.Name),
		Email:      email,
		Password:   &hash,
		Role:       model.RoleAdmin,
		AvatarSeed: uuid.NewString(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	ref := NewUserRef(u)
	return &ref, nil
}

// Refresh exchanges a refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	if blank(refreshToken) {
		return nil, pkg.Validation("refreshToken is required")
	}
	pair, err := s.tokens.Refresh(refreshToken)
	if err != nil {
		return nil, pkg.Unauthenticated("Refresh token is not valid")
	}
	claims, err := s.tokens.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("parse refreshed token: %w", err)
	}
	if _, err := s.users.FindByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			return nil, pkg.Unauthenticated("Refresh token is not valid")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if s.sessions != nil {
		if err := s.sessions.Save(ctx, claims.UserID, pair.AccessToken); err != nil {
			return nil, err
		}
	}
	return pair, nil
}

// Promote gives an existing account the admin role.
func (s *AuthService) Promote(ctx context.Context, email string) (*model.User, error) {
	u, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, notFoundOr(err, fmt.Sprintf("User with email %q not found", email))
	}
	if u.Role.IsAdmin() {
		return u, nil
	}
	if err := s.users.UpdateRole(ctx, u, model.RoleAdmin); err != nil {
		return nil, fmt.Errorf("promote: %w", err)
	}
	u.Role = model.RoleAdmin
	return u, nil
}
