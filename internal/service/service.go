package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	"budgetmate/internal/repository/mysql"
)

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   uint64
	Role model.Role
	Name string
}

// Owns is strict id equality; there is no admin override here.
func (a Actor) Owns(ownerID uint64) bool {
	return a.ID == ownerID
}

// CanDelete allows owners and admins. override is true when an admin removes someone else's content.
func (a Actor) CanDelete(ownerID uint64) (allowed, override bool) {
	if a.Owns(ownerID) {
		return true, false
	}
	if a.Role.IsAdmin() {
		return true, true
	}
	return false, false
}

// SessionStore keeps the live access token per user.
type SessionStore interface {
	Save(ctx context.Context, userID uint64, token string) error
	Get(ctx context.Context, userID uint64) (string, error)
	Extend(ctx context.Context, userID uint64) error
	Delete(ctx context.Context, userID uint64) error
}

// FeedCache caches the serialized post feed.
type FeedCache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, feed []byte) error
	Invalidate(ctx context.Context, delay time.Duration) error
	Acquire(ctx context.Context, token string) (bool, error)
	Release(ctx context.Context, token string) error
}

// GoogleAuth verifies a Google ID token.
type GoogleAuth interface {
	Verify(ctx context.Context, rawToken string) (*pkg.GoogleProfile, error)
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// maxLen counts characters, as VARCHAR columns do.
func maxLen(field, v string, limit int) error {
	if utf8.RuneCountInString(v) > limit {
		return pkg.Validation(fmt.Sprintf("%s must be at most %d characters", field, limit))
	}
	return nil
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}

// notFoundOr turns a missing row into a NotFound error carrying msg.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, mysql.ErrNotFound) {
		return pkg.NotFound(msg)
	}
	return err
}

var errNotAuthorized = pkg.Forbidden("Not authorized")
